package profileRepo

import (
	"mechradii/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ProfileRepository defines methods for account/profile data access.
type ProfileRepository interface {
	// GetByID retrieves a profile by the owning user's id.
	GetByID(id string) (*models.Profile, error)
	// GetByEmail retrieves a profile by email, nil if none exists.
	GetByEmail(email string) (*models.Profile, error)
	// Create inserts a new profile record.
	Create(profile *models.Profile) error
	// Delete removes a profile record by its id.
	Delete(id string) error
	// GetByIDWithProjection retrieves a profile by id with a projection.
	GetByIDWithProjection(id string, projection bson.M) (*models.Profile, error)
	// UpdateFields applies a partial $set update to the profile document.
	UpdateFields(id string, fields bson.M) error
}
