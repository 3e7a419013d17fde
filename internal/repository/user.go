package repository

import (
	"errors"

	"github.com/mealweek/mealweek-api/internal/models"
	"gorm.io/gorm"
)

// UserRepository is a repository for users.
type UserRepository struct {
	DB *gorm.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// CreateUser creates a user and its credentials in one transaction.
func (r *UserRepository) CreateUser(user *models.User) (*models.User, error) {
	if err := r.DB.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByID retrieves a user by ID, without credentials.
func (r *UserRepository) GetUserByID(userID uint) (*models.User, error) {
	var user models.User
	if err := r.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("User not found")
		}
		return nil, err
	}
	return &user, nil
}

// GetUserAuthByUsername retrieves a user with credentials preloaded, for
// login verification.
func (r *UserRepository) GetUserAuthByUsername(username string) (*models.User, error) {
	var user models.User
	err := r.DB.Preload("Auth").Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("User not found")
		}
		return nil, err
	}
	return &user, nil
}

// UsernameExists reports whether a username is taken.
func (r *UserRepository) UsernameExists(username string) (bool, error) {
	var count int64
	err := r.DB.Model(&models.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}
