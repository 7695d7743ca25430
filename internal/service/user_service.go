package service

import (
	"errors"

	"nandhub_backend/internal/model"
	"nandhub_backend/internal/repository"
	"nandhub_backend/internal/util"

	"gorm.io/gorm"
)

type UserService struct {
	UserRepo   *repository.UserRepository
	BanService *BanService
}

func NewUserService(userRepo *repository.UserRepository, banService *BanService) *UserService {
	return &UserService{
		UserRepo:   userRepo,
		BanService: banService,
	}
}

func (s *UserService) Get(id string) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	return user, err
}

func (s *UserService) ChangeRole(userID, roleName string) (*model.User, error) {
	role, ok := model.ParseUserRole(roleName)
	if !ok {
		return nil, util.ErrInvalidRole
	}

	user, err := s.Get(userID)
	if err != nil {
		return nil, err
	}

	if err := s.UserRepo.UpdateRole(user.ID, role); err != nil {
		return nil, err
	}
	user.Role = role
	return user, nil
}

// BanUser resolves both parties before delegating to the ban
// lifecycle.
func (s *UserService) BanUser(userID, reason, moderatorID string, durationDays int) (*model.UserBan, error) {
	user, err := s.UserRepo.FindByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	moderator, err := s.UserRepo.FindByID(moderatorID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrModeratorNotFound
	}
	if err != nil {
		return nil, err
	}

	return s.BanService.BanUser(user, reason, moderator, durationDays)
}

func (s *UserService) UnbanUser(banID, reason, moderatorID string) (*model.UserBan, error) {
	moderator, err := s.UserRepo.FindByID(moderatorID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrModeratorNotFound
	}
	if err != nil {
		return nil, err
	}

	return s.BanService.UnbanUser(banID, reason, moderator)
}

func (s *UserService) SetAvatar(userID, url string) error {
	return s.UserRepo.UpdateAvatar(userID, url)
}
