package review

import (
	mechanicRepo "mechradii/database/repository/mechanic"
	profileRepo "mechradii/database/repository/profile"
	reviewRepo "mechradii/database/repository/review"
	"mechradii/models"
)

// SubmitRequest carries a new review for a mechanic.
type SubmitRequest struct {
	MechanicID string `json:"mechanic_id"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
}

// ReviewService defines business logic for review submission and listing.
type ReviewService interface {
	// SubmitReview validates and persists the review, updating the
	// mechanic's rating aggregate atomically with the insert.
	SubmitReview(actingUserID string, req SubmitRequest) (*models.Review, error)
	// ListReviews fetches all reviews for a mechanic, newest first.
	ListReviews(mechanicID string) ([]models.Review, error)
}

// DefaultReviewService is the production implementation.
type DefaultReviewService struct {
	Repo      reviewRepo.ReviewRepository
	Mechanics mechanicRepo.MechanicRepository
	Profiles  profileRepo.ProfileRepository
}
