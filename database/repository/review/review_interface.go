package reviewRepo

import (
	"context"
	"errors"

	"mechradii/models"
)

// ErrMechanicNotFound aborts a review submission that targets a mechanic id
// with no record; nothing is persisted in that case.
var ErrMechanicNotFound = errors.New("mechanic does not exist")

// ReviewRepository defines methods for review data access.
type ReviewRepository interface {
	// SubmitReview inserts the review and updates the owning mechanic's
	// rating aggregate as a single all-or-nothing unit.
	SubmitReview(ctx context.Context, review *models.Review) error
	// GetByMechanicID fetches all reviews for a mechanic, newest first.
	GetByMechanicID(ctx context.Context, mechanicID string) ([]models.Review, error)
}
