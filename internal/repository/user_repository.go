package repository

import (
	"nandhub_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id string) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, "email = ?", email).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByName(name string) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, "name = ?", name).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) NameOrEmailInUse(name, email string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.User{}).
		Where("name = ? OR email = ?", name, email).
		Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) UpdateTrophies(id string, trophies int) error {
	return r.DB.Model(&model.User{}).Where("id = ?", id).Update("trophies", trophies).Error
}

func (r *UserRepository) UpdateRole(id string, role model.UserRole) error {
	return r.DB.Model(&model.User{}).Where("id = ?", id).Update("role", role).Error
}

func (r *UserRepository) UpdateAvatar(id string, avatar string) error {
	return r.DB.Model(&model.User{}).Where("id = ?", id).Update("avatar", avatar).Error
}
