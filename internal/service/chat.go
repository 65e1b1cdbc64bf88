package service

import (
	"gupshup/chat_backend/internal/model"
	"gupshup/chat_backend/internal/pkg/apperr"
	"gupshup/chat_backend/internal/pkg/cipher"
	"gupshup/chat_backend/internal/pkg/mailer"
	"gupshup/chat_backend/internal/repository"

	"github.com/google/uuid"
)

type chatService struct {
	chatRepo   repository.ChatRepository
	userRepo   repository.UserRepository
	inviteRepo repository.InviteRepository
	codec      *cipher.Codec
	mail       mailer.Dispatcher
}

func NewChatService(
	chatRepo repository.ChatRepository,
	userRepo repository.UserRepository,
	inviteRepo repository.InviteRepository,
	codec *cipher.Codec,
	mail mailer.Dispatcher,
) ChatService {
	return &chatService{
		chatRepo:   chatRepo,
		userRepo:   userRepo,
		inviteRepo: inviteRepo,
		codec:      codec,
		mail:       mail,
	}
}

func (s *chatService) Create(callerID uuid.UUID, req CreateChatRequest, imagePath string) (*model.Chat, error) {
	switch req.Type {
	case model.ChatTypeSingle:
		return s.createSingle(callerID, req)
	case model.ChatTypeGroup:
		return s.createGroup(callerID, req, imagePath)
	default:
		return nil, apperr.BadRequest("invalid chat type")
	}
}

// createSingle создает личный чат. На пару пользователей может
// существовать не больше одного single-чата.
func (s *chatService) createSingle(callerID uuid.UUID, req CreateChatRequest) (*model.Chat, error) {
	if len(req.UserIDs) != 1 {
		return nil, apperr.BadRequest("a single chat requires exactly one target user")
	}
	targetID := req.UserIDs[0]

	existing, err := s.chatRepo.FindSingleBetween(callerID, targetID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("chat already exists")
	}

	if user, err := s.userRepo.FindByID(targetID); err != nil {
		return nil, err
	} else if user == nil {
		return nil, apperr.NotFound("user does not exist")
	}

	caller, err := s.userRepo.FindByID(callerID)
	if err != nil {
		return nil, err
	}
	if caller == nil {
		return nil, apperr.NotFound("user does not exist")
	}

	// Запись single-чата зеркалит профиль создателя, не собеседника.
	chat := &model.Chat{
		Name:        caller.Name,
		Image:       caller.Image,
		Description: caller.About,
		Type:        model.ChatTypeSingle,
	}

	members := []model.UserChat{
		{UserID: callerID, IsAdmin: true},
		{UserID: targetID, IsAdmin: true},
	}

	if err := s.chatRepo.CreateWithMembers(chat, members); err != nil {
		return nil, apperr.BadRequest("chat creation failed")
	}

	return chat, nil
}

func (s *chatService) createGroup(callerID uuid.UUID, req CreateChatRequest, imagePath string) (*model.Chat, error) {
	if req.Name == "" {
		return nil, apperr.BadRequest("group chat name is required")
	}

	for _, id := range req.UserIDs {
		user, err := s.userRepo.FindByID(id)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, apperr.NotFound("user does not exist")
		}
	}

	chat := &model.Chat{
		Name:        req.Name,
		Description: req.Description,
		Image:       imagePath,
		Type:        model.ChatTypeGroup,
	}

	members := make([]model.UserChat, 0, len(req.UserIDs)+1)
	members = append(members, model.UserChat{UserID: callerID, IsAdmin: true})
	for _, id := range req.UserIDs {
		members = append(members, model.UserChat{UserID: id, IsAdmin: false})
	}

	if err := s.chatRepo.CreateWithMembers(chat, members); err != nil {
		return nil, apperr.BadRequest("chat creation failed")
	}

	return chat, nil
}

func (s *chatService) Find(chatID, callerID uuid.UUID) (*ChatDetails, error) {
	chat, err := s.chatRepo.FindByID(chatID)
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, apperr.NotFound("chat does not exist")
	}

	memberships, err := s.chatRepo.Memberships(chatID)
	if err != nil {
		return nil, err
	}

	var other *model.UserChat
	isMember := false
	for i := range memberships {
		if memberships[i].UserID == callerID {
			isMember = true
		} else {
			other = &memberships[i]
		}
	}

	if !isMember {
		return nil, apperr.Forbidden("user is not a member of this chat")
	}

	if chat.Type == model.ChatTypeGroup {
		return &ChatDetails{Chat: chat}, nil
	}

	if other == nil {
		return nil, apperr.NotFound("user not found")
	}

	user, err := s.userRepo.FindByID(other.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("user not found")
	}

	return &ChatDetails{Chat: chat, User: user}, nil
}

func (s *chatService) Edit(chatID, callerID uuid.UUID, req EditChatRequest, imagePath string) (*model.Chat, error) {
	chat, err := s.chatRepo.FindByID(chatID)
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, apperr.NotFound("chat does not exist")
	}
	if chat.Type == model.ChatTypeSingle {
		return nil, apperr.BadRequest("only a group chat can be edited")
	}

	if _, err := s.requireAdmin(chatID, callerID); err != nil {
		return nil, err
	}

	// Пустые поля сохраняют старые значения
	updates := map[string]any{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if imagePath != "" {
		updates["image"] = imagePath
	}

	if len(updates) == 0 {
		return chat, nil
	}

	return s.chatRepo.Update(chatID, updates)
}

func (s *chatService) Remove(chatID, callerID uuid.UUID) (int64, error) {
	chat, err := s.chatRepo.FindByID(chatID)
	if err != nil {
		return 0, err
	}
	if chat == nil {
		return 0, apperr.NotFound("chat does not exist")
	}
	if chat.Type == model.ChatTypeSingle {
		return 0, apperr.BadRequest("can not delete a one to one conversation")
	}

	if _, err := s.requireAdmin(chatID, callerID); err != nil {
		return 0, err
	}

	return s.chatRepo.Delete(chatID)
}

func (s *chatService) EditRole(chatID, callerID uuid.UUID, userIDs []uuid.UUID) (int64, error) {
	chat, err := s.chatRepo.FindByID(chatID)
	if err != nil {
		return 0, err
	}
	if chat == nil {
		return 0, apperr.NotFound("chat does not exist")
	}
	if chat.Type == model.ChatTypeSingle {
		return 0, apperr.BadRequest("roles can not be changed in a one to one conversation")
	}

	if _, err := s.requireAdmin(chatID, callerID); err != nil {
		return 0, err
	}

	if len(userIDs) == 0 {
		return 0, nil
	}

	return s.chatRepo.GrantAdmin(chatID, userIDs)
}

func (s *chatService) Invite(chatID, callerID, targetUserID uuid.UUID) (string, error) {
	chat, err := s.chatRepo.FindByID(chatID)
	if err != nil {
		return "", err
	}
	if chat == nil {
		return "", apperr.NotFound("chat does not exist")
	}
	if chat.Type == model.ChatTypeSingle {
		return "", apperr.BadRequest("can not invite into a one to one conversation")
	}

	if _, err := s.requireAdmin(chatID, callerID); err != nil {
		return "", err
	}

	target, err := s.userRepo.FindByID(targetUserID)
	if err != nil {
		return "", err
	}
	if target == nil {
		return "", apperr.NotFound("user does not exist")
	}

	token, err := s.codec.Encrypt(targetUserID.String())
	if err != nil {
		return "", err
	}

	if err := s.inviteRepo.SaveToken(targetUserID, token); err != nil {
		return "", err
	}

	// Токен уже в кеше; ошибка доставки письма его не отменяет.
	if err := s.mail.SendInvite(chat.Name, token, target.Email, chatID); err != nil {
		return "", apperr.BadRequest("error sending mail")
	}

	return token, nil
}

// AddUser принимает приглашение. Токен валиден, только если он лежит
// в кеше под id выкупающего и расшифровывается в этот же id.
func (s *chatService) AddUser(chatID, callerID uuid.UUID, token string) (*model.UserChat, error) {
	chat, err := s.chatRepo.FindByID(chatID)
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, apperr.NotFound("chat does not exist")
	}

	supplied, err := s.codec.Decrypt(token)
	if err != nil {
		return nil, apperr.Forbidden("invalid invite token")
	}

	cached, err := s.inviteRepo.GetToken(callerID)
	if err != nil {
		return nil, err
	}
	if cached == "" {
		return nil, apperr.Unauthorized("invite token is missing or expired")
	}

	stored, err := s.codec.Decrypt(cached)
	if err != nil {
		return nil, apperr.Forbidden("invalid invite token")
	}

	if supplied != stored || supplied != callerID.String() {
		return nil, apperr.Forbidden("invite token does not match the user")
	}

	if chat.Type == model.ChatTypeSingle {
		return nil, apperr.BadRequest("can not join a one to one conversation")
	}

	existing, err := s.chatRepo.FindMembership(chatID, callerID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("user is already in the chat")
	}

	member := &model.UserChat{
		UserID:  callerID,
		ChatID:  chatID,
		IsAdmin: false,
	}

	if err := s.chatRepo.AddMember(member); err != nil {
		return nil, err
	}

	return member, nil
}

func (s *chatService) RemoveUser(callerID, chatID, targetUserID uuid.UUID) (int64, error) {
	chat, err := s.chatRepo.FindByID(chatID)
	if err != nil {
		return 0, err
	}
	if chat == nil {
		return 0, apperr.NotFound("chat does not exist")
	}
	if chat.Type == model.ChatTypeSingle {
		return 0, apperr.BadRequest("can not remove a user from a one to one conversation")
	}

	if _, err := s.requireAdmin(chatID, callerID); err != nil {
		return 0, err
	}

	target, err := s.chatRepo.FindMembership(chatID, targetUserID)
	if err != nil {
		return 0, err
	}
	if target != nil && target.IsAdmin {
		admins, err := s.chatRepo.CountAdmins(chatID)
		if err != nil {
			return 0, err
		}
		if admins <= 1 {
			return 0, apperr.BadRequest("can not remove the last admin of the chat")
		}
	}

	// Удаление нуля строк — не ошибка
	return s.chatRepo.RemoveMember(chatID, targetUserID)
}

// requireAdmin — единая проверка админ-прав: отсутствие членства —
// NotFound, членство без прав — Forbidden. Никаких молчаливых no-op.
func (s *chatService) requireAdmin(chatID, callerID uuid.UUID) (*model.UserChat, error) {
	membership, err := s.chatRepo.FindMembership(chatID, callerID)
	if err != nil {
		return nil, err
	}
	if membership == nil {
		return nil, apperr.NotFound("user not found")
	}
	if !membership.IsAdmin {
		return nil, apperr.Forbidden("user is not admin")
	}
	return membership, nil
}
