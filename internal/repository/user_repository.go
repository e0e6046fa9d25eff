package repository

import (
	"github.com/flowerhq/flower-api/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUserName finds a user by username
func (r *GormUserRepository) FindByUserName(userName string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("user_name = ?", userName).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UserNameExists reports whether a username is already taken
func (r *GormUserRepository) UserNameExists(userName string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("user_name = ?", userName).Count(&count).Error
	return count > 0, err
}

// EmailExists reports whether an email is already registered
func (r *GormUserRepository) EmailExists(email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("user_email = ?", email).Count(&count).Error
	return count > 0, err
}
