package mechanic

import (
	mechanicRepo "mechradii/database/repository/mechanic"
	profileRepo "mechradii/database/repository/profile"
	"mechradii/models"
	"mechradii/services/user"
)

// RegistrationRequest carries the mechanic sign-up form. Email and password
// are only used when the caller is not yet an account holder.
type RegistrationRequest struct {
	FullName        string   `json:"full_name"`
	Email           string   `json:"email"`
	Password        string   `json:"password"`
	Phone           string   `json:"phone"`
	Location        string   `json:"location"`
	ExperienceYears int      `json:"experience_years"`
	About           string   `json:"about"`
	Services        []string `json:"services"`
	AvatarURL       string   `json:"avatar_url"`
}

// UpdateRequest carries a partial mechanic profile update. Nil/empty fields
// are left untouched; email is immutable.
type UpdateRequest struct {
	FullName        string   `json:"full_name"`
	Phone           string   `json:"phone"`
	Location        string   `json:"location"`
	ExperienceYears *int     `json:"experience_years"`
	About           string   `json:"about"`
	Services        []string `json:"services"`
	AvatarURL       string   `json:"avatar_url"`
}

// RegistrationResponse bundles the created listing with the auth response
// (present only when a fresh account was created).
type RegistrationResponse struct {
	Auth     *user.AuthResponse     `json:"auth,omitempty"`
	Mechanic *models.MechanicRecord `json:"mechanic"`
}

// MechanicService defines business logic for the mechanic registry.
type MechanicService interface {
	// RegisterMechanic creates a mechanic listing, creating the backing
	// account first when the caller is not signed in (actingUserID empty).
	RegisterMechanic(actingUserID string, req RegistrationRequest) (*RegistrationResponse, error)
	// GetMechanicByID retrieves one mechanic record.
	GetMechanicByID(id string) (*models.MechanicRecord, error)
	// ListMechanics retrieves mechanic records, optionally filtered by
	// service and sorted by rating or review count.
	ListMechanics(service, sortBy string) ([]models.MechanicRecord, error)
	// UpdateMechanic applies a partial update to the caller's own listing.
	UpdateMechanic(actingUserID string, req UpdateRequest) (*models.MechanicRecord, error)
	// ToggleAvailability flips the caller between available and busy and
	// returns the new status.
	ToggleAvailability(actingUserID string) (string, error)
}

// DefaultMechanicService is the production implementation.
type DefaultMechanicService struct {
	Repo     mechanicRepo.MechanicRepository
	Profiles profileRepo.ProfileRepository
	Users    user.UserService
}
