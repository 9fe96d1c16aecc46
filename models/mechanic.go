// models/mechanic.go
package models

import (
	"time"
)

// Mechanic availability states.
const (
	AvailabilityAvailable = "available"
	AvailabilityBusy      = "busy"
)

// ServiceCatalog lists the services a mechanic may offer.
var ServiceCatalog = []string{
	"Engine Repair",
	"Transmission",
	"Brake Service",
	"Tire Change",
	"Battery Service",
	"Auto Electric",
	"Oil Change",
	"Diagnostics",
	"Roadside Assistance",
	"Towing",
}

// IsCatalogService reports whether the given service name is offered on the platform.
func IsCatalogService(name string) bool {
	for _, s := range ServiceCatalog {
		if s == name {
			return true
		}
	}
	return false
}

// MechanicRecord is the public listing document for a mechanic. Keyed by the
// owning account's user id. The rating/total_reviews pair is a denormalized
// aggregate maintained exclusively by the review transaction; the
// availability_status field is flipped by the owning mechanic or by booking
// lifecycle transitions.
type MechanicRecord struct {
	UserID             string    `bson:"user_id" json:"user_id"`
	FullName           string    `bson:"full_name" json:"full_name"`
	Email              string    `bson:"email" json:"email"`
	Phone              string    `bson:"phone" json:"phone"`
	Location           string    `bson:"location" json:"location"`
	ExperienceYears    int       `bson:"experience_years" json:"experience_years"`
	About              string    `bson:"about" json:"about"`
	Services           []string  `bson:"services" json:"services"`
	AvatarURL          string    `bson:"avatar_url,omitempty" json:"avatar_url,omitempty"`
	IsVerified         bool      `bson:"is_verified" json:"is_verified"`
	IsAvailable        bool      `bson:"is_available" json:"is_available"`
	AvailabilityStatus string    `bson:"availability_status" json:"availability_status"`
	Rating             float64   `bson:"rating" json:"rating"`
	TotalReviews       int       `bson:"total_reviews" json:"total_reviews"`
	CreatedAt          time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt          time.Time `bson:"updated_at" json:"updated_at"`
}

// Specialty returns the mechanic's headline service for denormalized booking
// snapshots.
func (m *MechanicRecord) Specialty() string {
	if len(m.Services) > 0 {
		return m.Services[0]
	}
	return "General Mechanic"
}
