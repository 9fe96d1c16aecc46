package user

import (
	"context"
	"testing"
	"time"

	mechanicRepo "mechradii/database/repository/mechanic"
	"mechradii/models"

	"go.mongodb.org/mongo-driver/bson"
)

type fakeProfileRepo struct {
	profiles map[string]*models.Profile
}

func (f *fakeProfileRepo) GetByID(id string) (*models.Profile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, nil
	}
	return p, nil
}
func (f *fakeProfileRepo) GetByEmail(string) (*models.Profile, error) { return nil, nil }
func (f *fakeProfileRepo) Create(p *models.Profile) error {
	f.profiles[p.UserID] = p
	return nil
}
func (f *fakeProfileRepo) Delete(id string) error {
	delete(f.profiles, id)
	return nil
}
func (f *fakeProfileRepo) GetByIDWithProjection(id string, _ bson.M) (*models.Profile, error) {
	return f.GetByID(id)
}
func (f *fakeProfileRepo) UpdateFields(string, bson.M) error { return nil }

type fakeMechanicRepo struct {
	records map[string]*models.MechanicRecord
}

func (f *fakeMechanicRepo) GetByID(id string) (*models.MechanicRecord, error) {
	rec, ok := f.records[id]
	if !ok {
		return nil, nil
	}
	return rec, nil
}
func (f *fakeMechanicRepo) GetAll(mechanicRepo.ListOptions) ([]models.MechanicRecord, error) {
	return nil, nil
}
func (f *fakeMechanicRepo) Create(rec *models.MechanicRecord) error {
	f.records[rec.UserID] = rec
	return nil
}
func (f *fakeMechanicRepo) UpdateFields(string, bson.M) error    { return nil }
func (f *fakeMechanicRepo) SetAvailability(string, string) error { return nil }
func (f *fakeMechanicRepo) Delete(id string) error {
	delete(f.records, id)
	return nil
}

type fakeTokenStore struct {
	stored  map[string]string
	revoked []string
}

func (f *fakeTokenStore) Store(_ context.Context, userID, token string, _ time.Duration) error {
	if f.stored == nil {
		f.stored = make(map[string]string)
	}
	f.stored[userID] = token
	return nil
}

func (f *fakeTokenStore) Revoke(_ context.Context, userID string) error {
	delete(f.stored, userID)
	f.revoked = append(f.revoked, userID)
	return nil
}

func TestDeleteUserRevokesSessionAndListing(t *testing.T) {
	profiles := &fakeProfileRepo{profiles: map[string]*models.Profile{
		"user-1": {UserID: "user-1", FullName: "Juma Otieno", Email: "juma@example.com"},
	}}
	mechanics := &fakeMechanicRepo{records: map[string]*models.MechanicRecord{
		"user-1": {UserID: "user-1", FullName: "Juma Otieno"},
	}}
	tokens := &fakeTokenStore{stored: map[string]string{"user-1": "tok"}}
	svc := &DefaultUserService{Repo: profiles, Mechanics: mechanics, Tokens: tokens}

	if err := svc.DeleteUser("user-1"); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}

	if len(tokens.revoked) != 1 || tokens.revoked[0] != "user-1" {
		t.Errorf("token revocations = %v, want [user-1]", tokens.revoked)
	}
	if _, ok := tokens.stored["user-1"]; ok {
		t.Error("token hash still cached after account deletion")
	}
	if rec, _ := mechanics.GetByID("user-1"); rec != nil {
		t.Error("mechanic listing survived account deletion")
	}
	if p, _ := profiles.GetByID("user-1"); p != nil {
		t.Error("profile survived account deletion")
	}
}

func TestDeleteUserWithoutListing(t *testing.T) {
	profiles := &fakeProfileRepo{profiles: map[string]*models.Profile{
		"user-2": {UserID: "user-2", FullName: "Amina W", Email: "amina@example.com"},
	}}
	mechanics := &fakeMechanicRepo{records: map[string]*models.MechanicRecord{}}
	tokens := &fakeTokenStore{stored: map[string]string{"user-2": "tok"}}
	svc := &DefaultUserService{Repo: profiles, Mechanics: mechanics, Tokens: tokens}

	if err := svc.DeleteUser("user-2"); err != nil {
		t.Fatalf("DeleteUser for a plain account: %v", err)
	}
	if len(tokens.revoked) != 1 {
		t.Errorf("token revocations = %v, want exactly one", tokens.revoked)
	}
	if p, _ := profiles.GetByID("user-2"); p != nil {
		t.Error("profile survived account deletion")
	}
}
