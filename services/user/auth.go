package user

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"mechradii/models"
	"mechradii/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 72 * time.Hour

// redisTokenStore is the production TokenStore, backed by the shared auth
// cache.
type redisTokenStore struct{}

func (redisTokenStore) Store(ctx context.Context, userID, token string, ttl time.Duration) error {
	return utils.StoreTokenHash(ctx, userID, token, ttl)
}

func (redisTokenStore) Revoke(ctx context.Context, userID string) error {
	return utils.RevokeTokenHash(ctx, userID)
}

func (s *DefaultUserService) tokens() TokenStore {
	if s.Tokens != nil {
		return s.Tokens
	}
	return redisTokenStore{}
}

func validateSignup(fullName, email, password string) error {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" || len(fullName) > 100 {
		return ValidationError{Msg: "name is required and must be less than 100 characters"}
	}
	if len(email) > 255 {
		return ValidationError{Msg: "email must be less than 255 characters"}
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return ValidationError{Msg: "invalid email address"}
	}
	if len(password) < 8 || len(password) > 128 {
		return ValidationError{Msg: "password must be between 8 and 128 characters"}
	}
	return nil
}

// RegisterUser validates sign-up details, creates the profile record, and
// issues a token. Duplicate emails are rejected before any write.
func (s *DefaultUserService) RegisterUser(fullName, email, password string) (*AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateSignup(fullName, email, password); err != nil {
		return nil, err
	}

	existing, err := s.Repo.GetByEmail(email)
	if err != nil {
		utils.GetLogger().Error("RegisterUser: failed to check for existing profile", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if existing != nil {
		return nil, ErrEmailInUse
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		utils.GetLogger().Error("RegisterUser: failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	profile := models.Profile{
		UserID:       uuid.New().String(),
		FullName:     strings.TrimSpace(fullName),
		Email:        email,
		PasswordHash: string(hashedPassword),
	}
	if err := s.Repo.Create(&profile); err != nil {
		utils.GetLogger().Error("RegisterUser: failed to create profile", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	return s.issueToken(&profile)
}

// AuthenticateUser verifies credentials and issues a fresh token, replacing
// any previously cached token hash.
func (s *DefaultUserService) AuthenticateUser(email, password string) (*AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	profile, err := s.Repo.GetByEmail(email)
	if err != nil {
		utils.GetLogger().Error("AuthenticateUser: failed to fetch profile", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if profile == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueToken(profile)
}

func (s *DefaultUserService) issueToken(profile *models.Profile) (*AuthResponse, error) {
	token, err := utils.GenerateToken(profile.UserID, profile.Email, tokenTTL)
	if err != nil {
		utils.GetLogger().Error("issueToken: failed to generate token", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if err := s.tokens().Store(context.Background(), profile.UserID, token, tokenTTL); err != nil {
		utils.GetLogger().Error("issueToken: failed to cache token hash", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}

	return &AuthResponse{
		ID:        profile.UserID,
		Token:     token,
		FullName:  profile.FullName,
		Email:     profile.Email,
		AvatarURL: profile.AvatarURL,
	}, nil
}

// RevokeUserAuthToken drops the cached token hash so the current token stops
// validating everywhere.
func (s *DefaultUserService) RevokeUserAuthToken(userID string) error {
	if err := s.tokens().Revoke(context.Background(), userID); err != nil {
		return fmt.Errorf("failed to revoke auth token: %w", err)
	}
	return nil
}
