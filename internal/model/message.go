package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Message struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID      `json:"user_id" gorm:"type:uuid;index"`
	ChatID    uuid.UUID      `json:"chat_id" gorm:"type:uuid;index"`
	Message   *string        `json:"message"`
	Media     *string        `json:"media"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// IsEmpty — сообщение без текста и без медиа не имеет смысла
func (m *Message) IsEmpty() bool {
	return (m.Message == nil || *m.Message == "") && (m.Media == nil || *m.Media == "")
}
