package handler

import (
	"encoding/json"
	"net/http"

	"gupshup/chat_backend/internal/pkg/httputils"
	"gupshup/chat_backend/internal/service"

	"github.com/gorilla/mux"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/auth/register", h.register).Methods("POST", "OPTIONS")
	router.HandleFunc("/auth/login", h.login).Methods("POST", "OPTIONS")
	router.HandleFunc("/auth/verify", h.verify).Methods("POST", "OPTIONS")
	router.HandleFunc("/auth/logout", h.logout).Methods("DELETE", "OPTIONS")
}

type registerRequest struct {
	Name  string `json:"name"`
	About string `json:"about"`
	Email string `json:"email"`
	Image string `json:"image"`
}

// @Summary Register user
// @Description Register a new user profile
// @ID auth-register
// @Accept json
// @Produce json
// @Param UserData body registerRequest true "User Data"
// @Success 201 {object} model.User
// @Failure 409 {object} httputils.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var request registerRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		httputils.ResponseError(w, http.StatusBadRequest, "invalid request format")
		return
	}

	user, err := h.authService.Register(service.RegisterRequest{
		Name:  request.Name,
		About: request.About,
		Email: request.Email,
	}, request.Image)
	if err != nil {
		httputils.ResponseAppError(w, err)
		return
	}

	httputils.ResponseJSON(w, http.StatusCreated, user)
}

type loginRequest struct {
	Email string `json:"email"`
}

// @Summary Request OTP
// @Description Send a one-time login code to the user's email
// @ID auth-login
// @Accept json
// @Produce json
// @Param LoginData body loginRequest true "Login Data"
// @Success 200
// @Failure 404 {object} httputils.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var request loginRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		httputils.ResponseError(w, http.StatusBadRequest, "invalid request format")
		return
	}

	if err := h.authService.SendOTP(request.Email); err != nil {
		httputils.ResponseAppError(w, err)
		return
	}

	httputils.ResponseJSON(w, http.StatusOK, map[string]string{"message": "otp sent successfully"})
}

type verifyRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// @Summary Verify OTP
// @Description Exchange the one-time code for an access token
// @ID auth-verify
// @Accept json
// @Produce json
// @Param VerifyData body verifyRequest true "Verify Data"
// @Success 200
// @Failure 401 {object} httputils.ErrorResponse
// @Router /auth/verify [post]
func (h *AuthHandler) verify(w http.ResponseWriter, r *http.Request) {
	var request verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		httputils.ResponseError(w, http.StatusBadRequest, "invalid request format")
		return
	}

	token, err := h.authService.VerifyOTP(request.Email, request.OTP)
	if err != nil {
		httputils.ResponseAppError(w, err)
		return
	}

	httputils.ResponseJSON(w, http.StatusOK, map[string]string{"token": token})
}

// @Summary Logout
// @Description Revoke the current access token
// @ID auth-logout
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200
// @Failure 401 {object} httputils.ErrorResponse
// @Router /auth/logout [delete]
func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.authService.Logout(bearerToken(r)); err != nil {
		httputils.ResponseAppError(w, err)
		return
	}

	httputils.ResponseJSON(w, http.StatusOK, map[string]string{"message": "logged out successfully"})
}
