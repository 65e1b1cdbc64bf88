package model

import (
	"time"

	"github.com/google/uuid"
)

// InboxEntry — строка агрегированного инбокса: чат плюс его последнее
// сообщение. Для single-чатов заполняются поля второго участника,
// для групповых они остаются пустыми.
type InboxEntry struct {
	ChatID        uuid.UUID  `json:"chat_id"`
	ChatName      string     `json:"chat_name"`
	Description   string     `json:"description"`
	ChatImage     string     `json:"chat_image"`
	Type          ChatType   `json:"type"`
	LastMessage   *string    `json:"last_message"`
	LastMedia     *string    `json:"last_media"`
	LastMessageAt *time.Time `json:"last_message_at"`
	UserName      *string    `json:"user_name,omitempty"`
	UserImage     *string    `json:"user_image,omitempty"`
	UserAbout     *string    `json:"user_about,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
