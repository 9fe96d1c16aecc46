package mechanic

import (
	"errors"
	"testing"

	mechanicRepo "mechradii/database/repository/mechanic"
	"mechradii/models"
	"mechradii/services/user"

	"go.mongodb.org/mongo-driver/bson"
)

type fakeMechanicRepo struct {
	records map[string]*models.MechanicRecord
}

func (f *fakeMechanicRepo) GetByID(id string) (*models.MechanicRecord, error) {
	rec, ok := f.records[id]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (f *fakeMechanicRepo) GetAll(opts mechanicRepo.ListOptions) ([]models.MechanicRecord, error) {
	var out []models.MechanicRecord
	for _, rec := range f.records {
		if opts.Service != "" {
			offered := false
			for _, s := range rec.Services {
				if s == opts.Service {
					offered = true
				}
			}
			if !offered {
				continue
			}
		}
		out = append(out, *rec)
	}
	return out, nil
}

func (f *fakeMechanicRepo) Create(rec *models.MechanicRecord) error {
	cp := *rec
	f.records[rec.UserID] = &cp
	return nil
}

func (f *fakeMechanicRepo) UpdateFields(id string, fields bson.M) error {
	rec, ok := f.records[id]
	if !ok {
		return errors.New("no record")
	}
	if v, ok := fields["full_name"]; ok {
		rec.FullName = v.(string)
	}
	if v, ok := fields["services"]; ok {
		rec.Services = v.([]string)
	}
	return nil
}

func (f *fakeMechanicRepo) SetAvailability(id, status string) error {
	rec, ok := f.records[id]
	if !ok {
		return errors.New("no record")
	}
	rec.AvailabilityStatus = status
	rec.IsAvailable = status == models.AvailabilityAvailable
	return nil
}

func (f *fakeMechanicRepo) Delete(id string) error {
	delete(f.records, id)
	return nil
}

type fakeProfileRepo struct {
	profiles map[string]*models.Profile
}

func (f *fakeProfileRepo) GetByID(id string) (*models.Profile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, errors.New("profile not found")
	}
	return p, nil
}
func (f *fakeProfileRepo) GetByEmail(string) (*models.Profile, error) { return nil, nil }
func (f *fakeProfileRepo) Create(p *models.Profile) error {
	f.profiles[p.UserID] = p
	return nil
}
func (f *fakeProfileRepo) Delete(string) error { return nil }
func (f *fakeProfileRepo) GetByIDWithProjection(id string, _ bson.M) (*models.Profile, error) {
	return f.GetByID(id)
}
func (f *fakeProfileRepo) UpdateFields(string, bson.M) error { return nil }

type fakeUserService struct{}

func (fakeUserService) RegisterUser(fullName, email, _ string) (*user.AuthResponse, error) {
	return &user.AuthResponse{ID: "new-user", Token: "tok", FullName: fullName, Email: email}, nil
}
func (fakeUserService) AuthenticateUser(string, string) (*user.AuthResponse, error) {
	return nil, nil
}
func (fakeUserService) GetUserByID(string) (*models.Profile, error) { return nil, nil }
func (fakeUserService) UpdateProfile(string, string, string) (*models.Profile, error) {
	return nil, nil
}
func (fakeUserService) UpdateFCMToken(string, string) error { return nil }
func (fakeUserService) RevokeUserAuthToken(string) error    { return nil }
func (fakeUserService) DeleteUser(string) error             { return nil }

func validRequest() RegistrationRequest {
	return RegistrationRequest{
		FullName:        "Juma Otieno",
		Email:           "juma@example.com",
		Password:        "strongpass1",
		Phone:           "+254700000000",
		Location:        "Nairobi CBD",
		ExperienceYears: 7,
		About:           "Mobile mechanic covering the CBD.",
		Services:        []string{"Engine Repair", "Towing"},
	}
}

func newService() *DefaultMechanicService {
	return &DefaultMechanicService{
		Repo: &fakeMechanicRepo{records: make(map[string]*models.MechanicRecord)},
		Profiles: &fakeProfileRepo{profiles: map[string]*models.Profile{
			"user-1": {UserID: "user-1", FullName: "Amina W", Email: "amina@example.com"},
		}},
		Users: fakeUserService{},
	}
}

func TestRegisterMechanicNewAccount(t *testing.T) {
	svc := newService()

	resp, err := svc.RegisterMechanic("", validRequest())
	if err != nil {
		t.Fatalf("RegisterMechanic: %v", err)
	}
	if resp.Auth == nil || resp.Auth.ID != "new-user" {
		t.Errorf("auth = %+v, want fresh account", resp.Auth)
	}
	if resp.Mechanic.AvailabilityStatus != models.AvailabilityAvailable || !resp.Mechanic.IsAvailable {
		t.Errorf("new listing should start available: %+v", resp.Mechanic)
	}
	if resp.Mechanic.IsVerified {
		t.Error("new listing should start unverified")
	}
	if resp.Mechanic.Rating != 0 || resp.Mechanic.TotalReviews != 0 {
		t.Errorf("new listing should start unrated: %+v", resp.Mechanic)
	}
}

func TestRegisterMechanicExistingAccount(t *testing.T) {
	svc := newService()

	resp, err := svc.RegisterMechanic("user-1", validRequest())
	if err != nil {
		t.Fatalf("RegisterMechanic: %v", err)
	}
	if resp.Auth != nil {
		t.Error("upgrading an existing account should not mint a new auth response")
	}
	if resp.Mechanic.Email != "amina@example.com" {
		t.Errorf("listing email = %q, want the account's email", resp.Mechanic.Email)
	}

	if _, err := svc.RegisterMechanic("user-1", validRequest()); !errors.Is(err, ErrAlreadyMechanic) {
		t.Errorf("second registration: got %v, want ErrAlreadyMechanic", err)
	}
}

func TestRegisterMechanicValidation(t *testing.T) {
	svc := newService()

	bad := validRequest()
	bad.Services = []string{"Quantum Tuning"}
	var ve ValidationError
	if _, err := svc.RegisterMechanic("user-1", bad); !errors.As(err, &ve) {
		t.Errorf("unknown service: got %v, want ValidationError", err)
	}

	bad = validRequest()
	bad.Services = nil
	if _, err := svc.RegisterMechanic("user-1", bad); !errors.As(err, &ve) {
		t.Errorf("empty services: got %v, want ValidationError", err)
	}

	bad = validRequest()
	bad.ExperienceYears = -1
	if _, err := svc.RegisterMechanic("user-1", bad); !errors.As(err, &ve) {
		t.Errorf("negative experience: got %v, want ValidationError", err)
	}
}

func TestListMechanicsRejectsUnknownFilters(t *testing.T) {
	svc := newService()

	var ve ValidationError
	if _, err := svc.ListMechanics("Quantum Tuning", ""); !errors.As(err, &ve) {
		t.Errorf("unknown service filter: got %v, want ValidationError", err)
	}
	if _, err := svc.ListMechanics("", "price"); !errors.As(err, &ve) {
		t.Errorf("unknown sort: got %v, want ValidationError", err)
	}
	if _, err := svc.ListMechanics("Towing", "rating"); err != nil {
		t.Errorf("valid filters rejected: %v", err)
	}
}

func TestToggleAvailability(t *testing.T) {
	svc := newService()
	if _, err := svc.RegisterMechanic("user-1", validRequest()); err != nil {
		t.Fatalf("RegisterMechanic: %v", err)
	}

	status, err := svc.ToggleAvailability("user-1")
	if err != nil {
		t.Fatalf("ToggleAvailability: %v", err)
	}
	if status != models.AvailabilityBusy {
		t.Errorf("first toggle = %s, want busy", status)
	}

	status, err = svc.ToggleAvailability("user-1")
	if err != nil {
		t.Fatalf("ToggleAvailability: %v", err)
	}
	if status != models.AvailabilityAvailable {
		t.Errorf("second toggle = %s, want available", status)
	}

	if _, err := svc.ToggleAvailability("nobody"); !errors.Is(err, ErrMechanicNotFound) {
		t.Errorf("got %v, want ErrMechanicNotFound", err)
	}
}
