// Package auth verifies identifier/password pairs against stored
// bcrypt hashes.
package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"lab_manager/internal/models"
)

// ErrInvalidCredentials covers both an unknown identifier and a wrong
// password. Callers must not be able to tell the two apart.
var ErrInvalidCredentials = errors.New("invalid credentials")

// dummyHash is compared against when the lookup misses so that a miss
// costs roughly the same as a real mismatch.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("lab-manager-dummy"), bcrypt.DefaultCost)

// Authenticate looks up an active user by userNumber or email
// (loginType "userNumber" or "email") and verifies the password.
func Authenticate(db *gorm.DB, loginType, identifier, password string) (*models.User, error) {
	var user models.User
	query := db.Where("is_active = ?", true)
	if loginType == "email" {
		query = query.Where("email = ?", identifier)
	} else {
		query = query.Where("user_number = ?", identifier)
	}

	if err := query.First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// HashPassword produces the stored form of a password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
