package repository

import (
	"errors"

	"gupshup/chat_backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MessageFilter сужает выборку сообщений чата до строк с текстом
// или строк с медиа. Пустое значение — без фильтра.
type MessageFilter string

const (
	FilterNone    MessageFilter = ""
	FilterMessage MessageFilter = "message"
	FilterMedia   MessageFilter = "media"
)

type MessageRepository interface {
	Create(msg *model.Message) error
	LatestByAuthor(chatID, userID uuid.UUID) (*model.Message, error)
	UpdateText(messageID uuid.UUID, text string) (*model.Message, int64, error)
	Delete(messageID uuid.UUID) (int64, error)
	ListByChat(chatID uuid.UUID, filter MessageFilter, offset, limit int) ([]model.Message, int64, error)
	InboxForUser(userID uuid.UUID, offset, limit int) ([]model.InboxEntry, int64, error)
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(msg *model.Message) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(msg).Error
	})
}

// LatestByAuthor возвращает самое свежее сообщение автора в чате
// или (nil, nil), если сообщений нет.
func (r *messageRepository) LatestByAuthor(chatID, userID uuid.UUID) (*model.Message, error) {
	var msg model.Message
	err := r.db.
		Where("chat_id = ? AND user_id = ?", chatID, userID).
		Order("created_at DESC").
		First(&msg).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &msg, nil
}

func (r *messageRepository) UpdateText(messageID uuid.UUID, text string) (*model.Message, int64, error) {
	res := r.db.Model(&model.Message{}).Where("id = ?", messageID).Update("message", text)
	if res.Error != nil {
		return nil, 0, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, 0, nil
	}

	var msg model.Message
	if err := r.db.First(&msg, "id = ?", messageID).Error; err != nil {
		return nil, res.RowsAffected, err
	}
	return &msg, res.RowsAffected, nil
}

func (r *messageRepository) Delete(messageID uuid.UUID) (int64, error) {
	res := r.db.Where("id = ?", messageID).Delete(&model.Message{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *messageRepository) ListByChat(chatID uuid.UUID, filter MessageFilter, offset, limit int) ([]model.Message, int64, error) {
	query := r.db.Model(&model.Message{}).Where("chat_id = ?", chatID)

	switch filter {
	case FilterMessage:
		query = query.Where("message IS NOT NULL")
	case FilterMedia:
		query = query.Where("media IS NOT NULL")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var messages []model.Message
	err := query.
		Order("created_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, 0, err
	}

	return messages, total, nil
}

// InboxForUser собирает по одной строке на каждый чат пользователя:
// метаданные чата, последнее сообщение и для single-чатов данные
// второго участника. Сортировка по времени последнего сообщения.
func (r *messageRepository) InboxForUser(userID uuid.UUID, offset, limit int) ([]model.InboxEntry, int64, error) {
	var total int64
	err := r.db.Model(&model.UserChat{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var entries []model.InboxEntry
	err = r.db.Raw(`
		SELECT c.id          AS chat_id,
		       c.name        AS chat_name,
		       c.description AS description,
		       c.image       AS chat_image,
		       c.type        AS type,
		       lm.message    AS last_message,
		       lm.media      AS last_media,
		       lm.created_at AS last_message_at,
		       u.name        AS user_name,
		       u.image       AS user_image,
		       u.about       AS user_about,
		       c.created_at  AS created_at,
		       c.updated_at  AS updated_at
		FROM users_chats uc
		JOIN chats c ON c.id = uc.chat_id AND c.deleted_at IS NULL
		LEFT JOIN LATERAL (
			SELECT m.message, m.media, m.created_at
			FROM messages m
			WHERE m.chat_id = c.id AND m.deleted_at IS NULL
			ORDER BY m.created_at DESC
			LIMIT 1
		) lm ON TRUE
		LEFT JOIN users_chats other
			ON other.chat_id = c.id
			AND other.user_id <> uc.user_id
			AND other.deleted_at IS NULL
			AND c.type = 'single'
		LEFT JOIN users u ON u.id = other.user_id AND u.deleted_at IS NULL
		WHERE uc.user_id = ? AND uc.deleted_at IS NULL
		ORDER BY lm.created_at DESC NULLS LAST
		OFFSET ? LIMIT ?
	`, userID, offset, limit).Scan(&entries).Error
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}
