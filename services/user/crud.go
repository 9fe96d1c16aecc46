package user

import (
	"context"
	"fmt"
	"strings"

	"mechradii/models"
	"mechradii/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// GetUserByID retrieves a profile by its unique ID.
func (s *DefaultUserService) GetUserByID(userID string) (*models.Profile, error) {
	profile, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	return profile, nil
}

// UpdateProfile updates the caller's display name and/or avatar URL. Empty
// arguments leave the corresponding field untouched.
func (s *DefaultUserService) UpdateProfile(userID, fullName, avatarURL string) (*models.Profile, error) {
	fields := bson.M{}
	if trimmed := strings.TrimSpace(fullName); trimmed != "" {
		if len(trimmed) > 100 {
			return nil, ValidationError{Msg: "name must be less than 100 characters"}
		}
		fields["full_name"] = trimmed
	}
	if avatarURL != "" {
		fields["avatar_url"] = avatarURL
	}
	if len(fields) == 0 {
		return nil, ValidationError{Msg: "nothing to update"}
	}

	if err := s.Repo.UpdateFields(userID, fields); err != nil {
		utils.GetLogger().Error("UpdateProfile: update failed", zap.String("id", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return s.Repo.GetByID(userID)
}

// UpdateFCMToken stores the device push token for the user.
func (s *DefaultUserService) UpdateFCMToken(userID, token string) error {
	if token == "" {
		return ValidationError{Msg: "fcm token is required"}
	}
	if err := s.Repo.UpdateFields(userID, bson.M{"fcm_token": token}); err != nil {
		return fmt.Errorf("failed to update fcm token: %w", err)
	}
	return nil
}

// DeleteUser removes a profile record. The account's active session is
// revoked and its mechanic listing (if any) is deleted first, so a deleted
// account's token stops validating and no orphan listing stays bookable.
func (s *DefaultUserService) DeleteUser(userID string) error {
	if err := s.tokens().Revoke(context.Background(), userID); err != nil {
		return fmt.Errorf("failed to revoke auth token: %w", err)
	}

	if s.Mechanics != nil {
		rec, err := s.Mechanics.GetByID(userID)
		if err != nil {
			return fmt.Errorf("failed to check for mechanic listing: %w", err)
		}
		if rec != nil {
			if err := s.Mechanics.Delete(userID); err != nil {
				return fmt.Errorf("failed to delete mechanic listing: %w", err)
			}
		}
	}

	if err := s.Repo.Delete(userID); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	return nil
}
