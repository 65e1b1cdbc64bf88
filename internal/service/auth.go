package service

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"gupshup/chat_backend/internal/model"
	"gupshup/chat_backend/internal/pkg/apperr"
	"gupshup/chat_backend/internal/pkg/auth"
	"gupshup/chat_backend/internal/pkg/mailer"
	"gupshup/chat_backend/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

type authService struct {
	userRepo      repository.UserRepository
	otpRepo       repository.OTPRepository
	blacklistRepo repository.BlacklistRepository
	tokens        *auth.TokenManager
	mail          mailer.Dispatcher
}

func NewAuthService(
	userRepo repository.UserRepository,
	otpRepo repository.OTPRepository,
	blacklistRepo repository.BlacklistRepository,
	tokens *auth.TokenManager,
	mail mailer.Dispatcher,
) AuthService {
	return &authService{
		userRepo:      userRepo,
		otpRepo:       otpRepo,
		blacklistRepo: blacklistRepo,
		tokens:        tokens,
		mail:          mail,
	}
}

func (s *authService) Register(req RegisterRequest, imagePath string) (*model.User, error) {
	if req.Email == "" || req.Name == "" {
		return nil, apperr.BadRequest("name and email are required")
	}

	exists, err := s.userRepo.EmailExists(req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("user already registered")
	}

	user := &model.User{
		Name:  req.Name,
		About: req.About,
		Email: req.Email,
		Image: imagePath,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *authService) SendOTP(email string) error {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return err
	}
	if user == nil {
		return apperr.NotFound("user is not registered")
	}

	otp, err := generateOTP()
	if err != nil {
		return err
	}

	// В кеш уходит только bcrypt-хеш кода
	hash, err := bcrypt.GenerateFromPassword([]byte(otp), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.otpRepo.SaveCode(email, string(hash)); err != nil {
		return err
	}

	if err := s.mail.SendOTP(email, otp); err != nil {
		return apperr.BadRequest("error sending mail")
	}

	return nil
}

func (s *authService) VerifyOTP(email, otp string) (string, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", apperr.NotFound("user is not registered")
	}

	hash, err := s.otpRepo.GetCode(email)
	if err != nil {
		return "", err
	}
	if hash == "" {
		return "", apperr.Unauthorized("otp is missing or expired")
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(otp)) != nil {
		return "", apperr.Unauthorized("otp did not match")
	}

	if err := s.otpRepo.DeleteCode(email); err != nil {
		return "", err
	}

	return s.tokens.Generate(user.ID)
}

func (s *authService) Logout(token string) error {
	if token == "" {
		return apperr.Unauthorized("token is required for logout")
	}

	claims, err := s.tokens.Validate(token)
	if err != nil {
		return apperr.Unauthorized("invalid token")
	}

	return s.blacklistRepo.Add(token, s.tokens.RemainingTTL(claims))
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
