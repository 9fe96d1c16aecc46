package mechanicRepo

import (
	"mechradii/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ListOptions narrows and orders a mechanic listing.
type ListOptions struct {
	// Service filters to mechanics offering the named service; empty means all.
	Service string
	// SortBy is "rating" or "reviews"; empty preserves insertion order.
	SortBy string
}

// MechanicRepository defines methods for mechanic listing data access.
type MechanicRepository interface {
	// GetByID retrieves a mechanic record by user id, nil if none exists.
	GetByID(id string) (*models.MechanicRecord, error)
	// GetAll retrieves mechanic records per the listing options.
	GetAll(opts ListOptions) ([]models.MechanicRecord, error)
	// Create inserts a new mechanic record.
	Create(rec *models.MechanicRecord) error
	// UpdateFields applies a partial $set update to the mechanic document.
	UpdateFields(id string, fields bson.M) error
	// SetAvailability flips the availability_status field.
	SetAvailability(id string, status string) error
	// Delete removes a mechanic record by user id.
	Delete(id string) error
}
