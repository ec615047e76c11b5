package services

import (
	"errors"

	"task-planner-api/internal/apperrors"
	"task-planner-api/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RegisterUser creates a user with a bcrypt-hashed password. Email is the
// unique credential anchor.
func RegisterUser(db *gorm.DB, username, email, password string) (*models.User, error) {
	var existing models.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, apperrors.E(apperrors.Conflict, "email %s is already registered", email)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.Internal, err, "failed to fetch user")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.Internal, err, "failed to hash password")
	}

	user := models.User{Username: username, Email: email, Password: string(hashed)}
	if err := db.Create(&user).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.Internal, err, "failed to create user")
	}

	return &user, nil
}

// AuthenticateUser verifies an email/password pair. Unknown emails and
// wrong passwords produce the same error so callers cannot enumerate
// accounts.
func AuthenticateUser(db *gorm.DB, email, password string) (*models.User, error) {
	var user models.User
	err := db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.E(apperrors.InvalidCredentials, "invalid email or password")
		}
		return nil, apperrors.Wrap(apperrors.Internal, err, "failed to fetch user")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, apperrors.E(apperrors.InvalidCredentials, "invalid email or password")
	}

	return &user, nil
}

// ListUsers returns all users.
func ListUsers(db *gorm.DB) ([]models.User, error) {
	var users []models.User
	if err := db.Find(&users).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.Internal, err, "failed to fetch users")
	}
	return users, nil
}
