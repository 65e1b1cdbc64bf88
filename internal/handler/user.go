package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"gupshup/chat_backend/internal/pkg/httputils"
	"gupshup/chat_backend/internal/service"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type UserHandler struct {
	userService    service.UserService
	messageService service.MessageService
}

func NewUserHandler(userService service.UserService, messageService service.MessageService) *UserHandler {
	return &UserHandler{userService: userService, messageService: messageService}
}

func (h *UserHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/users/me", h.myProfile).Methods("GET", "OPTIONS")
	router.HandleFunc("/users/me", h.editProfile).Methods("PUT", "OPTIONS")
	router.HandleFunc("/users", h.search).Methods("GET", "OPTIONS")
	router.HandleFunc("/users/{id}", h.profile).Methods("GET", "OPTIONS")
	router.HandleFunc("/users/{id}/inbox", h.inbox).Methods("GET", "OPTIONS")
}

// @Summary My profile
// @ID users-me
// @Produce json
// @Success 200 {object} model.User
// @Failure 404 {object} httputils.ErrorResponse
// @Router /users/me [get]
func (h *UserHandler) myProfile(w http.ResponseWriter, r *http.Request) {
	callerID, ok := CallerID(r)
	if !ok {
		httputils.ResponseError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	user, err := h.userService.Profile(callerID)
	if err != nil {
		httputils.ResponseAppError(w, err)
		return
	}

	httputils.ResponseJSON(w, http.StatusOK, user)
}

// @Summary User profile
// @ID users-profile
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} model.User
// @Failure 404 {object} httputils.ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) profile(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		httputils.ResponseError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	user, err := h.userService.Profile(id)
	if err != nil {
		httputils.ResponseAppError(w, err)
		return
	}

	httputils.ResponseJSON(w, http.StatusOK, user)
}

type editProfileRequest struct {
	Name  string `json:"name"`
	About string `json:"about"`
	Email string `json:"email"`
	Image string `json:"image"`
}

// @Summary Edit my profile
// @ID users-edit
// @Accept json
// @Produce json
// @Param ProfileData body editProfileRequest true "Profile Data"
// @Success 200 {object} model.User
// @Failure 404 {object} httputils.ErrorResponse
// @Router /users/me [put]
func (h *UserHandler) editProfile(w http.ResponseWriter, r *http.Request) {
	callerID, ok := CallerID(r)
	if !ok {
		httputils.ResponseError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var request editProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		httputils.ResponseError(w, http.StatusBadRequest, "invalid request format")
		return
	}

	user, err := h.userService.EditProfile(callerID, service.EditProfileRequest{
		Name:  request.Name,
		About: request.About,
		Email: request.Email,
	}, request.Image)
	if err != nil {
		httputils.ResponseAppError(w, err)
		return
	}

	httputils.ResponseJSON(w, http.StatusOK, user)
}

// @Summary Search users
// @ID users-search
// @Produce json
// @Param search query string true "Search prompt"
// @Success 200 {object} []model.User
// @Router /users [get]
func (h *UserHandler) search(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.Search(r.URL.Query().Get("search"))
	if err != nil {
		httputils.ResponseAppError(w, err)
		return
	}

	httputils.ResponseJSON(w, http.StatusOK, users)
}

// @Summary Inbox
// @Description Chats of the user with their latest message, most recently active first
// @ID users-inbox
// @Produce json
// @Param id path string true "User ID"
// @Param page query int false "Zero-indexed page"
// @Success 200 {object} service.InboxPage
// @Failure 400 {object} httputils.ErrorResponse
// @Router /users/{id}/inbox [get]
func (h *UserHandler) inbox(w http.ResponseWriter, r *http.Request) {
	callerID, ok := CallerID(r)
	if !ok {
		httputils.ResponseError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	userID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		httputils.ResponseError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	inbox, err := h.messageService.Inbox(userID, callerID, page)
	if err != nil {
		httputils.ResponseAppError(w, err)
		return
	}

	httputils.ResponseJSON(w, http.StatusOK, inbox)
}
