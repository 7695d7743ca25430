package repository

import (
	"time"

	"nandhub_backend/internal/model"

	"gorm.io/gorm"
)

type UserBanRepository struct {
	DB *gorm.DB
}

func NewUserBanRepository(db *gorm.DB) *UserBanRepository {
	return &UserBanRepository{DB: db}
}

func (r *UserBanRepository) Create(ban *model.UserBan) error {
	return r.DB.Create(ban).Error
}

func (r *UserBanRepository) Save(ban *model.UserBan) error {
	return r.DB.Save(ban).Error
}

func (r *UserBanRepository) FindByID(id string) (*model.UserBan, error) {
	var ban model.UserBan
	err := r.DB.First(&ban, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &ban, nil
}

// FindActiveForUser returns the user's active ban, if any. Expired
// bans are filtered here so they can never gate anyone, even with
// LiftedAt still nil.
func (r *UserBanRepository) FindActiveForUser(userID string) (*model.UserBan, error) {
	var ban model.UserBan
	err := r.DB.Where("user_id = ? AND lifted_at IS NULL AND expires_at > ?", userID, time.Now()).
		First(&ban).Error
	if err != nil {
		return nil, err
	}
	return &ban, nil
}

func (r *UserBanRepository) CountForUser(userID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.UserBan{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *UserBanRepository) ListForUser(userID string, offset, limit int) ([]model.UserBan, error) {
	var bans []model.UserBan
	err := r.DB.Where("user_id = ?", userID).
		Order("created_at desc").
		Offset(offset).Limit(limit).
		Find(&bans).Error
	return bans, err
}

func (r *UserBanRepository) CountActive() (int64, error) {
	var count int64
	err := r.DB.Model(&model.UserBan{}).
		Where("lifted_at IS NULL AND expires_at > ?", time.Now()).
		Count(&count).Error
	return count, err
}

func (r *UserBanRepository) ListActive(offset, limit int) ([]model.UserBan, error) {
	var bans []model.UserBan
	err := r.DB.Where("lifted_at IS NULL AND expires_at > ?", time.Now()).
		Order("created_at desc").
		Offset(offset).Limit(limit).
		Find(&bans).Error
	return bans, err
}
