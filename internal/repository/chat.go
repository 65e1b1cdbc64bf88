package repository

import (
	"errors"

	"gupshup/chat_backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatRepository interface {
	CreateWithMembers(chat *model.Chat, members []model.UserChat) error
	FindByID(id uuid.UUID) (*model.Chat, error)
	FindSingleBetween(user1ID, user2ID uuid.UUID) (*model.Chat, error)
	Update(chatID uuid.UUID, updates map[string]any) (*model.Chat, error)
	Delete(chatID uuid.UUID) (int64, error)

	FindMembership(chatID, userID uuid.UUID) (*model.UserChat, error)
	Memberships(chatID uuid.UUID) ([]model.UserChat, error)
	AddMember(member *model.UserChat) error
	RemoveMember(chatID, userID uuid.UUID) (int64, error)
	GrantAdmin(chatID uuid.UUID, userIDs []uuid.UUID) (int64, error)
	CountAdmins(chatID uuid.UUID) (int64, error)
}

type chatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

// CreateWithMembers создает чат вместе со всеми участниками в одной
// транзакции: либо всё, либо ничего.
func (r *chatRepository) CreateWithMembers(chat *model.Chat, members []model.UserChat) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(chat).Error; err != nil {
			return err
		}

		for i := range members {
			members[i].ChatID = chat.ID
		}

		return tx.Create(&members).Error
	})
}

func (r *chatRepository) FindByID(id uuid.UUID) (*model.Chat, error) {
	var chat model.Chat
	if err := r.db.First(&chat, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &chat, nil
}

// FindSingleBetween ищет существующий single-чат, где оба пользователя
// являются участниками. Нужен для дедупликации при создании.
func (r *chatRepository) FindSingleBetween(user1ID, user2ID uuid.UUID) (*model.Chat, error) {
	var chat model.Chat
	err := r.db.
		Joins("JOIN users_chats AS uc1 ON uc1.chat_id = chats.id AND uc1.user_id = ? AND uc1.deleted_at IS NULL", user1ID).
		Joins("JOIN users_chats AS uc2 ON uc2.chat_id = chats.id AND uc2.user_id = ? AND uc2.deleted_at IS NULL", user2ID).
		Where("chats.type = ?", model.ChatTypeSingle).
		First(&chat).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &chat, nil
}

func (r *chatRepository) Update(chatID uuid.UUID, updates map[string]any) (*model.Chat, error) {
	var chat model.Chat
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Chat{}).Where("id = ?", chatID).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&chat, "id = ?", chatID).Error
	})
	if err != nil {
		return nil, err
	}
	return &chat, nil
}

// Delete удаляет чат и все его членства одной транзакцией.
func (r *chatRepository) Delete(chatID uuid.UUID) (int64, error) {
	var deleted int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("chat_id = ?", chatID).Delete(&model.UserChat{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected

		res = tx.Where("id = ?", chatID).Delete(&model.Chat{})
		if res.Error != nil {
			return res.Error
		}
		deleted += res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

func (r *chatRepository) FindMembership(chatID, userID uuid.UUID) (*model.UserChat, error) {
	var membership model.UserChat
	err := r.db.Where("chat_id = ? AND user_id = ?", chatID, userID).First(&membership).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &membership, nil
}

func (r *chatRepository) Memberships(chatID uuid.UUID) ([]model.UserChat, error) {
	var memberships []model.UserChat
	err := r.db.Where("chat_id = ?", chatID).Find(&memberships).Error
	if err != nil {
		return nil, err
	}
	return memberships, nil
}

func (r *chatRepository) AddMember(member *model.UserChat) error {
	return r.db.Create(member).Error
}

func (r *chatRepository) RemoveMember(chatID, userID uuid.UUID) (int64, error) {
	res := r.db.Where("chat_id = ? AND user_id = ?", chatID, userID).Delete(&model.UserChat{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// GrantAdmin выставляет is_admin для перечисленных участников чата.
// ID, которых в чате нет, молча пропускаются.
func (r *chatRepository) GrantAdmin(chatID uuid.UUID, userIDs []uuid.UUID) (int64, error) {
	res := r.db.Model(&model.UserChat{}).
		Where("chat_id = ? AND user_id IN ?", chatID, userIDs).
		Update("is_admin", true)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *chatRepository) CountAdmins(chatID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.UserChat{}).
		Where("chat_id = ? AND is_admin = ?", chatID, true).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
