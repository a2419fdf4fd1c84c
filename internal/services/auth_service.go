package services

import (
	"errors"
	"log"
	"strings"

	"gorm.io/gorm"

	"bookmarkd/internal/auth"
	"bookmarkd/internal/models"
	"bookmarkd/internal/repositories"
)

// AuthService covers registration and credential checks. Token issuance
// itself lives in the auth package; this layer owns the user records.
type AuthService interface {
	Register(username, email, password string) (*models.User, error)
	// Login verifies the password and returns the user. Unknown usernames
	// and wrong passwords both come back as ErrInvalidCredentials.
	Login(username, password string) (*models.User, error)
	GetUser(userID uint) (*models.User, error)
}

type authService struct {
	db       *gorm.DB
	userRepo repositories.UserRepository
}

func NewAuthService(db *gorm.DB, userRepo repositories.UserRepository) AuthService {
	return &authService{db: db, userRepo: userRepo}
}

func (s *authService) Register(username, email, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" {
		return nil, validationErrorf("username is required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, validationErrorf("a valid email is required")
	}
	if len(password) < 8 {
		return nil, validationErrorf("password must be at least 8 characters")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Printf("[ERROR] Register: failed to hash password: %v", err)
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(nil, user); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, ErrUserExists
		}
		log.Printf("[ERROR] Register: failed to create user %q: %v", username, err)
		return nil, err
	}

	log.Printf("[INFO] Register: created user %q (id=%d)", username, user.ID)
	return user, nil
}

func (s *authService) Login(username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(nil, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := auth.CheckPasswordHash(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *authService) GetUser(userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(nil, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
