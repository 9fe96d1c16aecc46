package mechanic

import (
	"fmt"
	"strings"

	mechanicRepo "mechradii/database/repository/mechanic"
	"mechradii/models"
	"mechradii/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func validateRegistration(req RegistrationRequest) error {
	if strings.TrimSpace(req.FullName) == "" {
		return ValidationError{Msg: "name is required"}
	}
	if strings.TrimSpace(req.Phone) == "" {
		return ValidationError{Msg: "phone number is required"}
	}
	if strings.TrimSpace(req.Location) == "" {
		return ValidationError{Msg: "location is required"}
	}
	if strings.TrimSpace(req.About) == "" {
		return ValidationError{Msg: "about section is required"}
	}
	if req.ExperienceYears < 0 {
		return ValidationError{Msg: "experience years cannot be negative"}
	}
	return validateServices(req.Services)
}

func validateServices(services []string) error {
	if len(services) == 0 {
		return ValidationError{Msg: "at least one service is required"}
	}
	for _, svc := range services {
		if !models.IsCatalogService(svc) {
			return ValidationError{Msg: fmt.Sprintf("unknown service %q", svc)}
		}
	}
	return nil
}

// RegisterMechanic creates a mechanic listing. When actingUserID is empty a
// fresh account is created from the email/password in the request; otherwise
// the signed-in account is upgraded to a mechanic.
func (s *DefaultMechanicService) RegisterMechanic(actingUserID string, req RegistrationRequest) (*RegistrationResponse, error) {
	if err := validateRegistration(req); err != nil {
		return nil, err
	}

	var resp RegistrationResponse
	userID := actingUserID
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if userID == "" {
		auth, err := s.Users.RegisterUser(req.FullName, email, req.Password)
		if err != nil {
			return nil, err
		}
		resp.Auth = auth
		userID = auth.ID
	} else {
		profile, err := s.Profiles.GetByID(userID)
		if err != nil {
			utils.GetLogger().Error("RegisterMechanic: failed to fetch profile", zap.String("id", userID), zap.Error(err))
			return nil, fmt.Errorf("mechanic registration failed, please try again")
		}
		email = profile.Email

		existing, err := s.Repo.GetByID(userID)
		if err != nil {
			return nil, fmt.Errorf("mechanic registration failed, please try again")
		}
		if existing != nil {
			return nil, ErrAlreadyMechanic
		}
	}

	rec := models.MechanicRecord{
		UserID:             userID,
		FullName:           strings.TrimSpace(req.FullName),
		Email:              email,
		Phone:              strings.TrimSpace(req.Phone),
		Location:           strings.TrimSpace(req.Location),
		ExperienceYears:    req.ExperienceYears,
		About:              strings.TrimSpace(req.About),
		Services:           req.Services,
		AvatarURL:          req.AvatarURL,
		IsVerified:         false,
		IsAvailable:        true,
		AvailabilityStatus: models.AvailabilityAvailable,
		Rating:             0,
		TotalReviews:       0,
	}
	if err := s.Repo.Create(&rec); err != nil {
		utils.GetLogger().Error("RegisterMechanic: failed to create listing", zap.String("id", userID), zap.Error(err))
		return nil, fmt.Errorf("mechanic registration failed, please try again")
	}

	if req.AvatarURL != "" {
		// Keep the account avatar in step with the listing photo.
		if err := s.Profiles.UpdateFields(userID, bson.M{"avatar_url": req.AvatarURL}); err != nil {
			utils.GetLogger().Warn("RegisterMechanic: failed to sync profile avatar", zap.String("id", userID), zap.Error(err))
		}
	}

	resp.Mechanic = &rec
	return &resp, nil
}

// GetMechanicByID retrieves one mechanic record.
func (s *DefaultMechanicService) GetMechanicByID(id string) (*models.MechanicRecord, error) {
	rec, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch mechanic: %w", err)
	}
	if rec == nil {
		return nil, ErrMechanicNotFound
	}
	return rec, nil
}

// ListMechanics retrieves mechanic records per the listing options.
func (s *DefaultMechanicService) ListMechanics(service, sortBy string) ([]models.MechanicRecord, error) {
	if service != "" && !models.IsCatalogService(service) {
		return nil, ValidationError{Msg: fmt.Sprintf("unknown service %q", service)}
	}
	switch sortBy {
	case "", "rating", "reviews":
	default:
		return nil, ValidationError{Msg: fmt.Sprintf("unknown sort %q", sortBy)}
	}
	return s.Repo.GetAll(mechanicRepo.ListOptions{Service: service, SortBy: sortBy})
}

// UpdateMechanic applies a partial update to the caller's own listing.
func (s *DefaultMechanicService) UpdateMechanic(actingUserID string, req UpdateRequest) (*models.MechanicRecord, error) {
	existing, err := s.Repo.GetByID(actingUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch mechanic: %w", err)
	}
	if existing == nil {
		return nil, ErrMechanicNotFound
	}

	fields := bson.M{}
	if v := strings.TrimSpace(req.FullName); v != "" {
		fields["full_name"] = v
	}
	if v := strings.TrimSpace(req.Phone); v != "" {
		fields["phone"] = v
	}
	if v := strings.TrimSpace(req.Location); v != "" {
		fields["location"] = v
	}
	if v := strings.TrimSpace(req.About); v != "" {
		fields["about"] = v
	}
	if req.ExperienceYears != nil {
		if *req.ExperienceYears < 0 {
			return nil, ValidationError{Msg: "experience years cannot be negative"}
		}
		fields["experience_years"] = *req.ExperienceYears
	}
	if req.Services != nil {
		if err := validateServices(req.Services); err != nil {
			return nil, err
		}
		fields["services"] = req.Services
	}
	if req.AvatarURL != "" {
		fields["avatar_url"] = req.AvatarURL
	}
	if len(fields) == 0 {
		return nil, ValidationError{Msg: "nothing to update"}
	}

	if err := s.Repo.UpdateFields(actingUserID, fields); err != nil {
		return nil, fmt.Errorf("failed to update mechanic: %w", err)
	}
	return s.Repo.GetByID(actingUserID)
}

// ToggleAvailability flips the caller between available and busy.
func (s *DefaultMechanicService) ToggleAvailability(actingUserID string) (string, error) {
	existing, err := s.Repo.GetByID(actingUserID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch mechanic: %w", err)
	}
	if existing == nil {
		return "", ErrMechanicNotFound
	}

	newStatus := models.AvailabilityBusy
	if existing.AvailabilityStatus == models.AvailabilityBusy {
		newStatus = models.AvailabilityAvailable
	}
	if err := s.Repo.SetAvailability(actingUserID, newStatus); err != nil {
		return "", fmt.Errorf("failed to update availability: %w", err)
	}
	return newStatus, nil
}
