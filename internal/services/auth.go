package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/gramlet-dev/gramlet/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// oauthPasswordPrefix marks accounts created through Google sign-in. The
// marker is stored in the password hash column but is not a bcrypt hash, so
// bcrypt.CompareHashAndPassword can never accept it during a normal login.
const oauthPasswordPrefix = "google_oauth_"

type RegisterInput struct {
	Username string
	Email    string
	Password string
	FullName string
}

type GoogleLoginInput struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	GoogleID string `json:"googleId"`
	Picture  string `json:"picture"`
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	GoogleLogin(ctx context.Context, input GoogleLoginInput) (*models.User, error)
}

type authService struct {
	db *gorm.DB
}

func NewAuthService(gdb *gorm.DB) AuthService {
	return &authService{db: gdb}
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	username := strings.TrimSpace(input.Username)

	var existing models.User

	err := s.db.WithContext(ctx).
		Where("email = ? OR username = ?", email, username).
		First(&existing).Error

	if err == nil {
		return nil, ErrUserExists
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)

	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(passwordHash),
		FullName:     input.FullName,
	}

	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User

	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

func (s *authService) GoogleLogin(ctx context.Context, input GoogleLoginInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	var user models.User

	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error

	if err == nil {
		// Known account. Backfill the avatar from the provider if we don't
		// have one yet.
		if user.AvatarURL == "" && input.Picture != "" {
			if err := s.db.WithContext(ctx).Model(&user).Update("avatar_url", input.Picture).Error; err != nil {
				return nil, fmt.Errorf("failed to backfill avatar: %w", err)
			}
			user.AvatarURL = input.Picture
		}
		return &user, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	username, err := s.uniqueUsername(ctx, input.Username, email)

	if err != nil {
		return nil, err
	}

	fullName := input.Username
	if fullName == "" {
		fullName = username
	}

	payload, err := json.Marshal(input)

	if err != nil {
		return nil, fmt.Errorf("failed to encode provider payload: %w", err)
	}

	user = models.User{
		Username:      username,
		Email:         email,
		PasswordHash:  oauthPasswordPrefix + input.GoogleID,
		FullName:      fullName,
		AvatarURL:     input.Picture,
		EmailVerified: true,
		OAuthData:     payload,
	}

	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

// uniqueUsername picks the requested username or the local part of the email,
// appending a random numeric suffix when the name is taken.
func (s *authService) uniqueUsername(ctx context.Context, requested, email string) (string, error) {
	username := strings.TrimSpace(requested)

	if username == "" {
		username = strings.SplitN(email, "@", 2)[0]
	}

	var count int64

	err := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("username = ?", username).
		Count(&count).Error

	if err != nil {
		return "", fmt.Errorf("failed to check username: %w", err)
	}

	if count > 0 {
		username = fmt.Sprintf("%s%d", username, rand.Intn(10000))
	}

	return username, nil
}
