package service

import (
	"gupshup/chat_backend/internal/model"
	"gupshup/chat_backend/internal/pkg/apperr"
	"gupshup/chat_backend/internal/repository"

	"github.com/google/uuid"
)

// DefaultPageSize — размер страницы сообщений и инбокса,
// если в конфиге не задан другой.
const DefaultPageSize = 4

type messageService struct {
	messageRepo repository.MessageRepository
	chatRepo    repository.ChatRepository
	userRepo    repository.UserRepository
	pageSize    int
}

func NewMessageService(
	messageRepo repository.MessageRepository,
	chatRepo repository.ChatRepository,
	userRepo repository.UserRepository,
	pageSize int,
) MessageService {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &messageService{
		messageRepo: messageRepo,
		chatRepo:    chatRepo,
		userRepo:    userRepo,
		pageSize:    pageSize,
	}
}

func (s *messageService) Create(chatID, authorID uuid.UUID, req CreateMessageRequest) (*model.Message, error) {
	chat, err := s.chatRepo.FindByID(chatID)
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, apperr.NotFound("chat does not exist")
	}

	author, err := s.userRepo.FindByID(authorID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, apperr.NotFound("user does not exist")
	}

	membership, err := s.chatRepo.FindMembership(chatID, authorID)
	if err != nil {
		return nil, err
	}
	if membership == nil {
		return nil, apperr.NotFound("user not found")
	}

	msg := &model.Message{
		UserID:  authorID,
		ChatID:  chatID,
		Message: req.Message,
		Media:   req.Media,
	}

	if msg.IsEmpty() {
		return nil, apperr.Unprocessable("message requires text or media")
	}

	if err := s.messageRepo.Create(msg); err != nil {
		return nil, err
	}

	return msg, nil
}

// Edit меняет текст сообщения. Редактировать можно только свое
// последнее сообщение в чате, не произвольное историческое.
func (s *messageService) Edit(chatID, messageID, authorID uuid.UUID, text string) (*model.Message, error) {
	if text == "" {
		return nil, apperr.Unprocessable("message text is required")
	}

	latest, err := s.messageRepo.LatestByAuthor(chatID, authorID)
	if err != nil {
		return nil, err
	}
	if latest == nil {
		return nil, apperr.NotFound("message not found")
	}
	if latest.ID != messageID {
		return nil, apperr.Forbidden("can not edit this message")
	}

	updated, affected, err := s.messageRepo.UpdateText(messageID, text)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, apperr.NotFound("message not found")
	}

	return updated, nil
}

func (s *messageService) Delete(chatID, messageID, authorID uuid.UUID) (int64, error) {
	latest, err := s.messageRepo.LatestByAuthor(chatID, authorID)
	if err != nil {
		return 0, err
	}
	if latest == nil {
		return 0, apperr.NotFound("message not found")
	}
	if latest.ID != messageID {
		return 0, apperr.Forbidden("can not delete this message")
	}

	return s.messageRepo.Delete(messageID)
}

func (s *messageService) Display(chatID, callerID uuid.UUID, page int, filter repository.MessageFilter) (*MessagePage, error) {
	switch filter {
	case repository.FilterNone, repository.FilterMessage, repository.FilterMedia:
	default:
		return nil, apperr.BadRequest("invalid message filter")
	}

	membership, err := s.chatRepo.FindMembership(chatID, callerID)
	if err != nil {
		return nil, err
	}
	if membership == nil {
		return nil, apperr.Forbidden("user is not a member of this chat")
	}

	if page < 0 {
		page = 0
	}

	messages, total, err := s.messageRepo.ListByChat(chatID, filter, page*s.pageSize, s.pageSize)
	if err != nil {
		return nil, err
	}

	return &MessagePage{
		Messages:    messages,
		TotalItems:  total,
		TotalPages:  totalPages(total, s.pageSize),
		CurrentPage: page,
	}, nil
}

// Inbox доступен только своему владельцу; никаких запросов к данным
// до этой проверки не делается.
func (s *messageService) Inbox(userID, callerID uuid.UUID, page int) (*InboxPage, error) {
	if userID != callerID {
		return nil, apperr.BadRequest("can not view another user's inbox")
	}

	if page < 0 {
		page = 0
	}

	entries, total, err := s.messageRepo.InboxForUser(userID, page*s.pageSize, s.pageSize)
	if err != nil {
		return nil, err
	}

	return &InboxPage{
		Results:     entries,
		TotalItems:  total,
		TotalPages:  totalPages(total, s.pageSize),
		CurrentPage: page,
	}, nil
}

func totalPages(total int64, pageSize int) int {
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
