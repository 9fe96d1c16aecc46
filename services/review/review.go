package review

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	reviewRepo "mechradii/database/repository/review"
	"mechradii/models"
	"mechradii/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const reviewTimeout = 10 * time.Second

// SubmitReview validates the review, resolves the reviewer's display name,
// and persists the review together with the mechanic's rating aggregate.
func (s *DefaultReviewService) SubmitReview(actingUserID string, req SubmitRequest) (*models.Review, error) {
	if strings.TrimSpace(req.MechanicID) == "" {
		return nil, ValidationError{Msg: "mechanic id is required"}
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ValidationError{Msg: "rating must be between 1 and 5"}
	}
	if strings.TrimSpace(req.Comment) == "" {
		return nil, ValidationError{Msg: "comment is required"}
	}

	profile, err := s.Profiles.GetByID(actingUserID)
	if err != nil {
		utils.GetLogger().Error("SubmitReview: failed to fetch reviewer profile", zap.String("id", actingUserID), zap.Error(err))
		return nil, fmt.Errorf("review submission failed, please try again")
	}

	rev := models.Review{
		ID:         uuid.New().String(),
		MechanicID: req.MechanicID,
		UserID:     actingUserID,
		UserName:   profile.FullName,
		Rating:     req.Rating,
		Comment:    strings.TrimSpace(req.Comment),
		CreatedAt:  time.Now(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), reviewTimeout)
	defer cancel()

	if err := s.Repo.SubmitReview(ctx, &rev); err != nil {
		if errors.Is(err, reviewRepo.ErrMechanicNotFound) {
			return nil, ErrMechanicNotFound
		}
		utils.GetLogger().Error("SubmitReview: transaction failed", zap.String("mechanic_id", req.MechanicID), zap.Error(err))
		return nil, fmt.Errorf("review submission failed, please try again")
	}
	return &rev, nil
}

// ListReviews fetches all reviews for a mechanic, newest first.
func (s *DefaultReviewService) ListReviews(mechanicID string) ([]models.Review, error) {
	if strings.TrimSpace(mechanicID) == "" {
		return nil, ValidationError{Msg: "mechanic id is required"}
	}

	ctx, cancel := context.WithTimeout(context.Background(), reviewTimeout)
	defer cancel()

	mech, err := s.Mechanics.GetByID(mechanicID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch mechanic: %w", err)
	}
	if mech == nil {
		return nil, ErrMechanicNotFound
	}

	reviews, err := s.Repo.GetByMechanicID(ctx, mechanicID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reviews: %w", err)
	}
	return reviews, nil
}
