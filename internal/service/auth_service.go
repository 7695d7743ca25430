package service

import (
	"errors"
	"net/http"

	"nandhub_backend/internal/config"
	"nandhub_backend/internal/model"
	"nandhub_backend/internal/repository"
	"nandhub_backend/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo   *repository.UserRepository
	BanService *BanService
	Cfg        *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, banService *BanService, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo:   userRepo,
		BanService: banService,
		Cfg:        cfg,
	}
}

func (s *AuthService) Register(name, email, password string) (*model.User, error) {
	inUse, err := s.UserRepo.NameOrEmailInUse(name, email)
	if err != nil {
		return nil, err
	}
	if inUse {
		return nil, util.NewAppError(http.StatusBadRequest, util.KindBadRequest, "User already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates by email and password; users with an active ban
// cannot log in.
func (s *AuthService) Login(email, password string) (string, *model.User, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, util.ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, util.ErrInvalidCredentials
	}

	if err := s.BanService.CheckIfBanned(user.ID); err != nil {
		return "", nil, err
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// GetCurrentUser resolves the authenticated user from the request
// claims. A missing claim or a deleted user yields ErrInvalidAuth;
// database failures are returned as-is for the boundary to report.
func (s *AuthService) GetCurrentUser(c *gin.Context) (*model.User, error) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		return nil, util.ErrInvalidAuth
	}

	user, err := s.UserRepo.FindByID(claims.UserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrInvalidAuth
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
