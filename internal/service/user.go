package service

import (
	"gupshup/chat_backend/internal/model"
	"gupshup/chat_backend/internal/pkg/apperr"
	"gupshup/chat_backend/internal/repository"

	"github.com/google/uuid"
)

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) Profile(id uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("user not found")
	}
	return user, nil
}

func (s *userService) EditProfile(id uuid.UUID, req EditProfileRequest, imagePath string) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("user not found")
	}

	// Пустые поля оставляют прежние значения
	if req.Name != "" {
		user.Name = req.Name
	}
	if req.About != "" {
		user.About = req.About
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if imagePath != "" {
		user.Image = imagePath
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *userService) Search(prompt string) ([]*model.User, error) {
	return s.userRepo.Search(prompt)
}
