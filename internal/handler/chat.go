package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"gupshup/chat_backend/internal/model"
	"gupshup/chat_backend/internal/pkg/httputils"
	"gupshup/chat_backend/internal/repository"
	"gupshup/chat_backend/internal/service"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type ChatHandler struct {
	chatService    service.ChatService
	messageService service.MessageService
}

func NewChatHandler(chatService service.ChatService, messageService service.MessageService) *ChatHandler {
	return &ChatHandler{chatService: chatService, messageService: messageService}
}

func (h *ChatHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/chats", h.createChat).Methods("POST", "OPTIONS")
	router.HandleFunc("/chats/{chatId}", h.getChat).Methods("GET", "OPTIONS")
	router.HandleFunc("/chats/{chatId}", h.editChat).Methods("PUT", "OPTIONS")
	router.HandleFunc("/chats/{chatId}", h.deleteChat).Methods("DELETE", "OPTIONS")
	router.HandleFunc("/chats/{chatId}/users", h.editRole).Methods("PUT", "OPTIONS")
	router.HandleFunc("/chats/{chatId}/users", h.addUser).Methods("POST", "OPTIONS")
	router.HandleFunc("/chats/{chatId}/users/{userId}", h.removeUser).Methods("DELETE", "OPTIONS")
	router.HandleFunc("/chats/{chatId}/invite", h.invite).Methods("POST", "OPTIONS")
	router.HandleFunc("/chats/{chatId}/messages", h.createMessage).Methods("POST", "OPTIONS")
	router.HandleFunc("/chats/{chatId}/messages", h.displayMessages).Methods("GET", "OPTIONS")
	router.HandleFunc("/chats/{chatId}/messages/{messageId}", h.editMessage).Methods("PUT", "OPTIONS")
	router.HandleFunc("/chats/{chatId}/messages/{messageId}", h.deleteMessage).Methods("DELETE", "OPTIONS")
}

type createChatRequest struct {
	Type        string   `json:"type"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	UserIDs     []string `json:"user_ids"`
}

// @Summary Create chat
// @Description Create a single or group conversation
// @ID chats-create
// @Accept json
// @Produce json
// @Param ChatData body createChatRequest true "Chat Data"
// @Success 201 {object} model.Chat
// @Failure 409 {object} httputils.ErrorResponse
// @Router /chats [post]
func (h *ChatHandler) createChat(w http.ResponseWriter, r *http.Request) {
	callerID, ok := CallerID(r)
	if !ok {
		httputils.ResponseError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var request createChatRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		httputils.ResponseError(w, http.StatusBadRequest, "invalid request format")
		return
	}

	userIDs := make([]uuid.UUID, 0, len(request.UserIDs))
	for _, raw := range request.UserIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			httputils.ResponseError(w, http.StatusBadRequest, "invalid user id")
			return
		}
		userIDs = append(userIDs, id)
	}

	chat, err := h.chatService.Create(callerID, service.CreateChatRequest{
		Type:        model.ChatType(request.Type),
		Name:        request.Name,
		Description: request.Description,
		UserIDs:     userIDs,
	}, request.Image)
	if err != nil {
		httputils.ResponseAppError(w, err)
		return
	}

	httputils.ResponseJSON(w, http.StatusCreated, chat)
}

// @Summary Get chat
// @Description Chat details; for single chats includes the other member
// @ID chats-get
// @Produce json
// @Param chatId path string true "Chat ID"
// @Success 200 {object} service.ChatDetails
// @Failure 404 {object} httputils.ErrorResponse
// @Router /chats/{chatId} [get]
func (h *ChatHandler) getChat(w http.ResponseWriter, r *http.Request) {
	callerID, chatID, ok := callerAndChat(w, r)
	if !ok {
		return
	}

	details, err := h.chatService.Find(chatID, callerID)
	if err != nil {
		httputils.ResponseAppError(w, err)
		return
	}

	httputils.ResponseJSON(w, http.StatusOK, details)
}

type editChatRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// @Summary Edit chat
// @Description Edit group chat metadata (admin only)
// @ID chats-edit
// @Accept json
// @Produce json
// @Param chatId path string true "Chat ID"
// @Param ChatData body editChatRequest true "Chat Data"
// @Success 202 {object} model.Chat
// @Failure 403 {object} httputils.ErrorResponse
// @Router /chats/{chatId} [put]
func (h *ChatHandler) editChat(w http.ResponseWriter, r *http.Request) {
	callerID, chatID, ok := callerAndChat(w, r)
	if !ok {
		return
	}

	var request editChatRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		httputils.ResponseError(w, http.StatusBadRequest, "invalid request format")
		return
	}

	chat, err := h.chatService.Edit(chatID, callerID, service.EditChatRequest{
		Name:        request.Name,
		Description: request.Description,
	}, request.Image)
	if err != nil {
		httputils.ResponseAppError(w, err)
		return
	}

	httputils.ResponseJSON(w, http.StatusAccepted, chat)
}

// @Summary Delete chat
// @Description Delete a group chat with all its memberships (admin only)
// @ID chats-delete
// @Produce json
// @Param chatId path string true "Chat ID"
// @Success 202
// @Failure 403 {object} httputils.ErrorResponse
// @Router /chats/{chatId} [delete]
func (h *ChatHandler) deleteChat(w http.ResponseWriter, r *http.Request) {
	callerID, chatID, ok := callerAndChat(w, r)
	if !ok {
		return
	}

	deleted, err := h.chatService.Remove(chatID, callerID)
	if err != nil {
		httputils.ResponseAppError(w, err)
		return
	}

	httputils.ResponseJSON(w, http.StatusAccepted, map[string]int64{"deleted": deleted})
}

type editRoleRequest struct {
	UserIDs []string `json:"user_ids"`
}

// @Summary Edit roles
// @Description Grant admin to chat members (admin only)
// @ID chats-edit-role
// @Accept json
// @Produce json
// @Param chatId path string true "Chat ID"
// @Param RoleData body editRoleRequest true "Role Data"
// @Success 202
// @Failure 403 {object} httputils.ErrorResponse
// @Router /chats/{chatId}/users [put]
func (h *ChatHandler) editRole(w http.ResponseWriter, r *http.Request) {
	callerID, chatID, ok := callerAndChat(w, r)
	if !ok {
		return
	}

	var request editRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		httputils.ResponseError(w, http.StatusBadRequest, "invalid request format")
		return
	}

	userIDs := make([]uuid.UUID, 0, len(request.UserIDs))
	for _, raw := range request.UserIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			httputils.ResponseError(w, http.StatusBadRequest, "invalid user id")
			return
		}
		userIDs = append(userIDs, id)
	}

	updated, err := h.chatService.EditRole(chatID, callerID, userIDs)
	if err != nil {
		httputils.ResponseAppError(w, err)
		return
	}

	httputils.ResponseJSON(w, http.StatusAccepted, map[string]int64{"updated": updated})
}

type inviteRequest struct {
	UserID string `json:"user_id"`
}

// @Summary Invite user
// @Description Email an invite token to a user (admin only)
// @ID chats-invite
// @Accept json
// @Produce json
// @Param chatId path string true "Chat ID"
// @Param InviteData body inviteRequest true "Invite Data"
// @Success 200
// @Failure 404 {object} httputils.ErrorResponse
// @Router /chats/{chatId}/invite [post]
func (h *ChatHandler) invite(w http.ResponseWriter, r *http.Request) {
	callerID, chatID, ok := callerAndChat(w, r)
	if !ok {
		return
	}

	var request inviteRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		httputils.ResponseError(w, http.StatusBadRequest, "invalid request format")
		return
	}

	targetID, err := uuid.Parse(request.UserID)
	if err != nil {
		httputils.ResponseError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	token, err := h.chatService.Invite(chatID, callerID, targetID)
	if err != nil {
		httputils.ResponseAppError(w, err)
		return
	}

	httputils.ResponseJSON(w, http.StatusOK, map[string]string{"token": token})
}

type addUserRequest struct {
	Token string `json:"token"`
}

// @Summary Join chat
// @Description Redeem an invite token and join the group
// @ID chats-add-user
// @Accept json
// @Produce json
// @Param chatId path string true "Chat ID"
// @Param TokenData body addUserRequest true "Invite token"
// @Success 201 {object} model.UserChat
// @Failure 401 {object} httputils.ErrorResponse
// @Router /chats/{chatId}/users [post]
func (h *ChatHandler) addUser(w http.ResponseWriter, r *http.Request) {
	callerID, chatID, ok := callerAndChat(w, r)
	if !ok {
		return
	}

	var request addUserRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		httputils.ResponseError(w, http.StatusBadRequest, "invalid request format")
		return
	}

	member, err := h.chatService.AddUser(chatID, callerID, request.Token)
	if err != nil {
		httputils.ResponseAppError(w, err)
		return
	}

	httputils.ResponseJSON(w, http.StatusCreated, member)
}

// @Summary Remove user
// @Description Remove a member from the chat (admin only)
// @ID chats-remove-user
// @Produce json
// @Param chatId path string true "Chat ID"
// @Param userId path string true "User ID"
// @Success 202
// @Failure 403 {object} httputils.ErrorResponse
// @Router /chats/{chatId}/users/{userId} [delete]
func (h *ChatHandler) removeUser(w http.ResponseWriter, r *http.Request) {
	callerID, chatID, ok := callerAndChat(w, r)
	if !ok {
		return
	}

	targetID, err := uuid.Parse(mux.Vars(r)["userId"])
	if err != nil {
		httputils.ResponseError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	removed, err := h.chatService.RemoveUser(callerID, chatID, targetID)
	if err != nil {
		httputils.ResponseAppError(w, err)
		return
	}

	httputils.ResponseJSON(w, http.StatusAccepted, map[string]int64{"removed": removed})
}

type createMessageRequest struct {
	Message *string `json:"message"`
	Media   *string `json:"media"`
}

// @Summary Send message
// @Description Create a message in the chat
// @ID messages-create
// @Accept json
// @Produce json
// @Param chatId path string true "Chat ID"
// @Param MessageData body createMessageRequest true "Message Data"
// @Success 201 {object} model.Message
// @Failure 422 {object} httputils.ErrorResponse
// @Router /chats/{chatId}/messages [post]
func (h *ChatHandler) createMessage(w http.ResponseWriter, r *http.Request) {
	callerID, chatID, ok := callerAndChat(w, r)
	if !ok {
		return
	}

	var request createMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		httputils.ResponseError(w, http.StatusBadRequest, "invalid request format")
		return
	}

	msg, err := h.messageService.Create(chatID, callerID, service.CreateMessageRequest{
		Message: request.Message,
		Media:   request.Media,
	})
	if err != nil {
		httputils.ResponseAppError(w, err)
		return
	}

	httputils.ResponseJSON(w, http.StatusCreated, msg)
}

type editMessageRequest struct {
	Message string `json:"message"`
}

// @Summary Edit message
// @Description Edit your latest message in the chat
// @ID messages-edit
// @Accept json
// @Produce json
// @Param chatId path string true "Chat ID"
// @Param messageId path string true "Message ID"
// @Param MessageData body editMessageRequest true "Message Data"
// @Success 200 {object} model.Message
// @Failure 403 {object} httputils.ErrorResponse
// @Router /chats/{chatId}/messages/{messageId} [put]
func (h *ChatHandler) editMessage(w http.ResponseWriter, r *http.Request) {
	callerID, chatID, ok := callerAndChat(w, r)
	if !ok {
		return
	}

	messageID, err := uuid.Parse(mux.Vars(r)["messageId"])
	if err != nil {
		httputils.ResponseError(w, http.StatusBadRequest, "invalid message id")
		return
	}

	var request editMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		httputils.ResponseError(w, http.StatusBadRequest, "invalid request format")
		return
	}

	msg, err := h.messageService.Edit(chatID, messageID, callerID, request.Message)
	if err != nil {
		httputils.ResponseAppError(w, err)
		return
	}

	httputils.ResponseJSON(w, http.StatusOK, msg)
}

// @Summary Delete message
// @Description Delete your latest message in the chat
// @ID messages-delete
// @Produce json
// @Param chatId path string true "Chat ID"
// @Param messageId path string true "Message ID"
// @Success 202
// @Failure 403 {object} httputils.ErrorResponse
// @Router /chats/{chatId}/messages/{messageId} [delete]
func (h *ChatHandler) deleteMessage(w http.ResponseWriter, r *http.Request) {
	callerID, chatID, ok := callerAndChat(w, r)
	if !ok {
		return
	}

	messageID, err := uuid.Parse(mux.Vars(r)["messageId"])
	if err != nil {
		httputils.ResponseError(w, http.StatusBadRequest, "invalid message id")
		return
	}

	deleted, err := h.messageService.Delete(chatID, messageID, callerID)
	if err != nil {
		httputils.ResponseAppError(w, err)
		return
	}

	httputils.ResponseJSON(w, http.StatusAccepted, map[string]int64{"deleted": deleted})
}

// @Summary Chat messages
// @Description Paginated chat history, oldest first
// @ID messages-display
// @Produce json
// @Param chatId path string true "Chat ID"
// @Param page query int false "Zero-indexed page"
// @Param filter query string false "message or media"
// @Success 200 {object} service.MessagePage
// @Failure 403 {object} httputils.ErrorResponse
// @Router /chats/{chatId}/messages [get]
func (h *ChatHandler) displayMessages(w http.ResponseWriter, r *http.Request) {
	callerID, chatID, ok := callerAndChat(w, r)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	filter := repository.MessageFilter(r.URL.Query().Get("filter"))

	result, err := h.messageService.Display(chatID, callerID, page, filter)
	if err != nil {
		httputils.ResponseAppError(w, err)
		return
	}

	httputils.ResponseJSON(w, http.StatusOK, result)
}

func callerAndChat(w http.ResponseWriter, r *http.Request) (callerID, chatID uuid.UUID, ok bool) {
	callerID, authed := CallerID(r)
	if !authed {
		httputils.ResponseError(w, http.StatusUnauthorized, "not authenticated")
		return uuid.Nil, uuid.Nil, false
	}

	chatID, err := uuid.Parse(mux.Vars(r)["chatId"])
	if err != nil {
		httputils.ResponseError(w, http.StatusBadRequest, "invalid chat id")
		return uuid.Nil, uuid.Nil, false
	}

	return callerID, chatID, true
}
