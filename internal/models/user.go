package models

import (
	"gorm.io/gorm"
)

// User is the model for a user account.
type User struct {
	gorm.Model
	Username string `gorm:"uniqueIndex;not null"`
	Email    string `gorm:"uniqueIndex"`
	IsAdmin  bool   `gorm:"default:false"`
	Auth     *UserAuth
}

// UserAuth holds a user's credentials, split out so the hash is never
// preloaded by accident.
type UserAuth struct {
	gorm.Model
	UserID         uint   `gorm:"uniqueIndex;not null"`
	HashedPassword string `gorm:"not null" json:"-"`
}
