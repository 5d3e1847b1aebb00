package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/justsurfingit/jobhunt/internal/dtos"
	"github.com/justsurfingit/jobhunt/internal/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// bcrypt ignores everything past 72 bytes; reject instead of truncating silently.
const maxPasswordBytes = 72

type UserService struct {
	DB *gorm.DB
	// Cost is the bcrypt work factor.
	Cost int
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db, Cost: bcrypt.DefaultCost}
}

// Register creates a user. A taken username is ErrConflict.
func (s *UserService) Register(ctx context.Context, req *dtos.CredentialsRequest) (*models.User, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrValidation)
	}
	if len(req.Password) > maxPasswordBytes {
		return nil, fmt.Errorf("%w: password must be at most %d bytes", ErrValidation, maxPasswordBytes)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.Cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{Username: username, PasswordHash: string(hash)}
	if err := s.DB.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: username %q is already registered", ErrConflict, username)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	zap.S().Named("users").Infow("user registered", "user_id", user.ID)
	return user, nil
}

// Authenticate checks a username/password pair. Unknown users and wrong
// passwords are indistinguishable to the caller.
func (s *UserService) Authenticate(ctx context.Context, req *dtos.CredentialsRequest) (*models.User, error) {
	var user models.User
	err := s.DB.WithContext(ctx).Where("username = ?", strings.TrimSpace(req.Username)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUnauthorized
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrUnauthorized
	}
	return &user, nil
}

// Exists returns ErrInvalidScope when no user has the given id.
func (s *UserService) Exists(ctx context.Context, userID uint) error {
	return userExists(s.DB.WithContext(ctx), userID)
}

func userExists(db *gorm.DB, userID uint) error {
	var count int64
	if err := db.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return fmt.Errorf("look up user %d: %w", userID, err)
	}
	if count == 0 {
		return fmt.Errorf("%w: user %d does not exist", ErrInvalidScope, userID)
	}
	return nil
}
