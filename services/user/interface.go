package user

import (
	"context"
	"time"

	mechanicRepo "mechradii/database/repository/mechanic"
	profileRepo "mechradii/database/repository/profile"
	"mechradii/models"
)

// UserService defines business logic for account operations.
type UserService interface {
	// RegisterUser validates the sign-up details, creates a profile record,
	// and returns an auth response with a fresh token.
	RegisterUser(fullName, email, password string) (*AuthResponse, error)
	// AuthenticateUser verifies credentials and returns ID and token.
	AuthenticateUser(email, password string) (*AuthResponse, error)
	// GetUserByID retrieves a profile by its unique ID.
	GetUserByID(userID string) (*models.Profile, error)
	// UpdateProfile updates the caller's display name and/or avatar URL.
	UpdateProfile(userID, fullName, avatarURL string) (*models.Profile, error)
	// UpdateFCMToken stores the device push token for the user.
	UpdateFCMToken(userID, token string) error
	// RevokeUserAuthToken revokes the user's authentication token (for logout).
	RevokeUserAuthToken(userID string) error
	// DeleteUser removes the profile record along with the account's
	// mechanic listing (if any) and its active session.
	DeleteUser(userID string) error
}

// TokenStore caches the active token hash per user so sessions can be
// checked and revoked.
type TokenStore interface {
	Store(ctx context.Context, userID, token string, ttl time.Duration) error
	Revoke(ctx context.Context, userID string) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo      profileRepo.ProfileRepository
	Mechanics mechanicRepo.MechanicRepository
	Tokens    TokenStore
}

// AuthResponse contains the user's ID, token, and profile summary.
type AuthResponse struct {
	ID        string `json:"id"`
	Token     string `json:"token"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url,omitempty"`
}
