package service

import (
	"gupshup/chat_backend/internal/model"
	"gupshup/chat_backend/internal/repository"

	"github.com/google/uuid"
)

// Запросы приходят сюда уже типизированными: разбор и валидация
// формы тела лежат на HTTP-слое.

type CreateChatRequest struct {
	Type        model.ChatType
	Name        string
	Description string
	UserIDs     []uuid.UUID
}

type EditChatRequest struct {
	Name        string
	Description string
}

type CreateMessageRequest struct {
	Message *string
	Media   *string
}

type RegisterRequest struct {
	Name  string
	About string
	Email string
}

type EditProfileRequest struct {
	Name  string
	About string
	Email string
}

// ChatDetails — результат Find: для single-чата User указывает
// на второго участника, для группового он nil.
type ChatDetails struct {
	Chat *model.Chat `json:"chat"`
	User *model.User `json:"user,omitempty"`
}

type MessagePage struct {
	Messages    []model.Message `json:"messages"`
	TotalItems  int64           `json:"totalItems"`
	TotalPages  int             `json:"totalPages"`
	CurrentPage int             `json:"currentPage"`
}

type InboxPage struct {
	Results     []model.InboxEntry `json:"results"`
	TotalItems  int64              `json:"totalItems"`
	TotalPages  int                `json:"totalPages"`
	CurrentPage int                `json:"currentPage"`
}

type ChatService interface {
	Create(callerID uuid.UUID, req CreateChatRequest, imagePath string) (*model.Chat, error)
	Find(chatID, callerID uuid.UUID) (*ChatDetails, error)
	Edit(chatID, callerID uuid.UUID, req EditChatRequest, imagePath string) (*model.Chat, error)
	Remove(chatID, callerID uuid.UUID) (int64, error)
	EditRole(chatID, callerID uuid.UUID, userIDs []uuid.UUID) (int64, error)
	Invite(chatID, callerID, targetUserID uuid.UUID) (string, error)
	AddUser(chatID, callerID uuid.UUID, token string) (*model.UserChat, error)
	RemoveUser(callerID, chatID, targetUserID uuid.UUID) (int64, error)
}

type MessageService interface {
	Create(chatID, authorID uuid.UUID, req CreateMessageRequest) (*model.Message, error)
	Edit(chatID, messageID, authorID uuid.UUID, text string) (*model.Message, error)
	Delete(chatID, messageID, authorID uuid.UUID) (int64, error)
	Display(chatID, callerID uuid.UUID, page int, filter repository.MessageFilter) (*MessagePage, error)
	Inbox(userID, callerID uuid.UUID, page int) (*InboxPage, error)
}

type UserService interface {
	Profile(id uuid.UUID) (*model.User, error)
	EditProfile(id uuid.UUID, req EditProfileRequest, imagePath string) (*model.User, error)
	Search(prompt string) ([]*model.User, error)
}

type AuthService interface {
	Register(req RegisterRequest, imagePath string) (*model.User, error)
	SendOTP(email string) error
	VerifyOTP(email, otp string) (string, error)
	Logout(token string) error
}
