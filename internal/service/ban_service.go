package service

import (
	"errors"
	"math"
	"net/http"
	"strings"
	"time"

	"nandhub_backend/internal/model"
	"nandhub_backend/internal/repository"
	"nandhub_backend/internal/util"

	"gorm.io/gorm"
)

type BanService struct {
	BanRepo *repository.UserBanRepository
}

func NewBanService(banRepo *repository.UserBanRepository) *BanService {
	return &BanService{BanRepo: banRepo}
}

func (s *BanService) Get(id string) (*model.UserBan, error) {
	ban, err := s.BanRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrBanNotFound
	}
	return ban, err
}

// GetActiveForUser returns the user's active ban or nil. Lifted and
// expired bans are both inactive.
func (s *BanService) GetActiveForUser(userID string) (*model.UserBan, error) {
	ban, err := s.BanRepo.FindActiveForUser(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return ban, err
}

// CheckIfBanned gates login and puzzle mutations: it fails with a
// YouAreBanned error reporting the days remaining when an active ban
// exists.
func (s *BanService) CheckIfBanned(userID string) error {
	ban, err := s.GetActiveForUser(userID)
	if err != nil {
		return err
	}
	if ban != nil {
		days := daysUntil(ban.ExpiresAt)
		return util.NewAppErrorf(http.StatusForbidden, util.KindYouAreBanned,
			"You are banned! Your ban will last for %d more days!", days)
	}
	return nil
}

func (s *BanService) TimeToExpire(ban *model.UserBan) time.Duration {
	return time.Until(ban.ExpiresAt)
}

func (s *BanService) IsExpired(ban *model.UserBan) bool {
	return s.TimeToExpire(ban) < 0
}

func (s *BanService) BanUser(user *model.User, reason string, moderator *model.User, durationDays int) (*model.UserBan, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, util.ErrBanReasonEmpty
	}
	if durationDays <= 0 {
		return nil, util.ErrBanDurationZero
	}

	active, err := s.GetActiveForUser(user.ID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, util.ErrUserAlreadyBanned
	}

	ban := &model.UserBan{
		UserID:      user.ID,
		Reason:      reason,
		ModeratorID: moderator.ID,
		ExpiresAt:   time.Now().AddDate(0, 0, durationDays),
	}
	if err := s.BanRepo.Create(ban); err != nil {
		return nil, err
	}
	return ban, nil
}

func (s *BanService) UnbanUser(banID, reason string, moderator *model.User) (*model.UserBan, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, util.ErrBanReasonEmpty
	}

	ban, err := s.Get(banID)
	if err != nil {
		return nil, err
	}
	if ban.LiftedAt != nil {
		return nil, util.ErrBanLifted
	}
	if s.IsExpired(ban) {
		return nil, util.ErrBanExpired
	}

	now := time.Now()
	ban.LiftedAt = &now
	ban.ReasonLifted = reason
	ban.ModeratorLiftID = &moderator.ID
	if err := s.BanRepo.Save(ban); err != nil {
		return nil, err
	}
	return ban, nil
}

func (s *BanService) ListForUser(userID string, p util.Pagination) (*util.PageResult, error) {
	return util.Paginate(p,
		func() (int64, error) { return s.BanRepo.CountForUser(userID) },
		func(offset, limit int) (interface{}, error) {
			return s.BanRepo.ListForUser(userID, offset, limit)
		})
}

func (s *BanService) ListActive(p util.Pagination) (*util.PageResult, error) {
	return util.Paginate(p,
		func() (int64, error) { return s.BanRepo.CountActive() },
		func(offset, limit int) (interface{}, error) {
			return s.BanRepo.ListActive(offset, limit)
		})
}

func daysUntil(t time.Time) int {
	return int(math.Ceil(time.Until(t).Hours() / 24))
}
