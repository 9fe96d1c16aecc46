package booking

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	bookingRepo "mechradii/database/repository/booking"
	mechanicRepo "mechradii/database/repository/mechanic"
	"mechradii/models"

	"go.mongodb.org/mongo-driver/bson"
)

type fakeBookingRepo struct {
	bookings map[string]*models.Booking
	// availability writes recorded per Transition call
	lastAvailability string
	availabilityFor  string
	// entries handed to AppendReply, pre-concatenation
	appendedEntries []string
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]*models.Booking)}
}

func (f *fakeBookingRepo) Create(_ context.Context, b *models.Booking) error {
	cp := *b
	cp.Status = models.StatusPending
	f.bookings[cp.ID] = &cp
	return nil
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBookingRepo) GetByUserID(_ context.Context, userID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) GetActiveByMechanicID(_ context.Context, mechanicID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.MechanicID == mechanicID && !models.IsTerminalStatus(b.Status) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) Transition(_ context.Context, bookingID, from, to, mechanicID, availabilityStatus string) error {
	if !models.CanTransition(from, to) {
		return bookingRepo.ErrIllegalTransition
	}
	b, ok := f.bookings[bookingID]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	if b.Status != from {
		return bookingRepo.ErrStatusConflict
	}
	b.Status = to
	f.lastAvailability = availabilityStatus
	f.availabilityFor = mechanicID
	return nil
}

func (f *fakeBookingRepo) AppendReply(_ context.Context, bookingID, entry string) error {
	b, ok := f.bookings[bookingID]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	if b.MechanicReply != "" {
		b.MechanicReply += "\n\n" + entry
	} else {
		b.MechanicReply = entry
	}
	now := time.Now()
	b.MechanicReplyAt = &now
	f.appendedEntries = append(f.appendedEntries, entry)
	return nil
}

func (f *fakeBookingRepo) WatchStatusChanges(_ context.Context) (<-chan models.BookingEvent, error) {
	ch := make(chan models.BookingEvent)
	close(ch)
	return ch, nil
}

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

func (f *fakeMechanicRepo) GetAll(mechanicRepo.ListOptions) ([]models.MechanicRecord, error) {
	return nil, nil
}
func (f *fakeMechanicRepo) Create(rec *models.MechanicRecord) error {
	f.records[rec.UserID] = rec
	return nil
}
func (f *fakeMechanicRepo) UpdateFields(string, bson.M) error { return nil }
func (f *fakeMechanicRepo) SetAvailability(id, status string) error {
	if rec, ok := f.records[id]; ok {
		rec.AvailabilityStatus = status
	}
	return nil
}
func (f *fakeMechanicRepo) Delete(string) error { return nil }

type fakeProfileRepo struct {
	profiles map[string]*models.Profile
}

func (f *fakeProfileRepo) GetByID(id string) (*models.Profile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, errors.New("profile not found")
	}
	cp := *p
	return &cp, nil
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

func newService() (*DefaultBookingService, *fakeBookingRepo) {
	repo := newFakeBookingRepo()
	mechRepo := &fakeMechanicRepo{records: map[string]*models.MechanicRecord{
		"mech-1": {
			UserID:             "mech-1",
			FullName:           "Juma Otieno",
			Services:           []string{"Engine Repair", "Towing"},
			AvailabilityStatus: models.AvailabilityAvailable,
		},
	}}
	profRepo := &fakeProfileRepo{profiles: map[string]*models.Profile{
		"user-1": {UserID: "user-1", FullName: "Amina W", Email: "amina@example.com"},
	}}
	return &DefaultBookingService{Repo: repo, Mechanics: mechRepo, Profiles: profRepo}, repo
}

func mustCreate(t *testing.T, svc *DefaultBookingService) *models.Booking {
	t.Helper()
	b, err := svc.CreateBooking("user-1", CreateRequest{
		MechanicID: "mech-1",
		ActionType: "Emergency Request",
		Message:    "Stalled on the A104",
	})
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	return b
}

func TestCreateBookingSnapshotsMechanic(t *testing.T) {
	svc, _ := newService()
	b := mustCreate(t, svc)

	if b.Status != models.StatusPending {
		t.Errorf("new booking status = %s, want pending", b.Status)
	}
	if b.MechanicName != "Juma Otieno" {
		t.Errorf("mechanic name snapshot = %q", b.MechanicName)
	}
	if b.MechanicSpecialty != "Engine Repair" {
		t.Errorf("mechanic specialty snapshot = %q", b.MechanicSpecialty)
	}
	if b.UserEmail != "amina@example.com" {
		t.Errorf("user email snapshot = %q", b.UserEmail)
	}
}

func TestCreateBookingValidation(t *testing.T) {
	svc, _ := newService()

	if _, err := svc.CreateBooking("user-1", CreateRequest{MechanicID: "mech-1", ActionType: "Tow Me"}); err == nil {
		t.Error("unknown action type accepted")
	}
	if _, err := svc.CreateBooking("user-1", CreateRequest{MechanicID: "ghost", ActionType: "Message"}); !errors.Is(err, ErrMechanicNotFound) {
		t.Errorf("booking against missing mechanic: got %v, want ErrMechanicNotFound", err)
	}
	if _, err := svc.CreateBooking("mech-1", CreateRequest{MechanicID: "mech-1", ActionType: "Message"}); err == nil {
		t.Error("self-booking accepted")
	}
}

func TestAcceptMarksMechanicBusy(t *testing.T) {
	svc, repo := newService()
	b := mustCreate(t, svc)

	updated, err := svc.AcceptBooking("mech-1", b.ID)
	if err != nil {
		t.Fatalf("AcceptBooking: %v", err)
	}
	if updated.Status != models.StatusAccepted {
		t.Errorf("status = %s, want accepted", updated.Status)
	}
	if repo.lastAvailability != models.AvailabilityBusy || repo.availabilityFor != "mech-1" {
		t.Errorf("availability write = %q for %q, want busy for mech-1", repo.lastAvailability, repo.availabilityFor)
	}
}

func TestCompleteMarksMechanicAvailable(t *testing.T) {
	svc, repo := newService()
	b := mustCreate(t, svc)

	if _, err := svc.AcceptBooking("mech-1", b.ID); err != nil {
		t.Fatalf("AcceptBooking: %v", err)
	}
	updated, err := svc.CompleteBooking("mech-1", b.ID)
	if err != nil {
		t.Fatalf("CompleteBooking: %v", err)
	}
	if updated.Status != models.StatusCompleted {
		t.Errorf("status = %s, want completed", updated.Status)
	}
	if repo.lastAvailability != models.AvailabilityAvailable {
		t.Errorf("availability write = %q, want available", repo.lastAvailability)
	}
}

func TestRejectLeavesAvailabilityAlone(t *testing.T) {
	svc, repo := newService()
	b := mustCreate(t, svc)

	if _, err := svc.RejectBooking("mech-1", b.ID); err != nil {
		t.Fatalf("RejectBooking: %v", err)
	}
	if repo.lastAvailability != "" {
		t.Errorf("reject wrote availability %q, want none", repo.lastAvailability)
	}
}

func TestIllegalTransitions(t *testing.T) {
	svc, _ := newService()
	b := mustCreate(t, svc)

	// pending -> completed skips accepted
	if _, err := svc.CompleteBooking("mech-1", b.ID); !errors.Is(err, ErrIllegalTransition) {
		t.Errorf("pending->completed: got %v, want ErrIllegalTransition", err)
	}

	if _, err := svc.RejectBooking("mech-1", b.ID); err != nil {
		t.Fatalf("RejectBooking: %v", err)
	}
	// rejected is terminal
	if _, err := svc.AcceptBooking("mech-1", b.ID); !errors.Is(err, ErrIllegalTransition) {
		t.Errorf("rejected->accepted: got %v, want ErrIllegalTransition", err)
	}
}

func TestTransitionOwnership(t *testing.T) {
	svc, _ := newService()
	b := mustCreate(t, svc)

	if _, err := svc.AcceptBooking("someone-else", b.ID); !errors.Is(err, ErrNotAuthorized) {
		t.Errorf("got %v, want ErrNotAuthorized", err)
	}
	if _, err := svc.AcceptBooking("user-1", b.ID); !errors.Is(err, ErrNotAuthorized) {
		t.Errorf("requester accepting own booking: got %v, want ErrNotAuthorized", err)
	}
}

func TestReplyAppendsTimestampedLines(t *testing.T) {
	svc, _ := newService()
	b := mustCreate(t, svc)

	first, err := svc.ReplyToBooking("mech-1", b.ID, "On my way")
	if err != nil {
		t.Fatalf("ReplyToBooking: %v", err)
	}
	if !strings.HasSuffix(first.MechanicReply, "] On my way") || !strings.HasPrefix(first.MechanicReply, "[") {
		t.Errorf("first reply = %q", first.MechanicReply)
	}

	second, err := svc.ReplyToBooking("mech-1", b.ID, "Stuck in traffic")
	if err != nil {
		t.Fatalf("ReplyToBooking: %v", err)
	}
	if !strings.Contains(second.MechanicReply, "] On my way\n\n[") {
		t.Errorf("replies not separated by blank line: %q", second.MechanicReply)
	}
	if !strings.HasSuffix(second.MechanicReply, "] Stuck in traffic") {
		t.Errorf("second reply = %q", second.MechanicReply)
	}
}

func TestReplySendsOnlyTheNewEntryToTheStore(t *testing.T) {
	svc, repo := newService()
	b := mustCreate(t, svc)

	if _, err := svc.ReplyToBooking("mech-1", b.ID, "On my way"); err != nil {
		t.Fatalf("ReplyToBooking: %v", err)
	}
	if _, err := svc.ReplyToBooking("mech-1", b.ID, "Five minutes out"); err != nil {
		t.Fatalf("ReplyToBooking: %v", err)
	}

	// The store owns the concatenation. If the service ever sends the whole
	// thread built from a previously-read value, two concurrent replies can
	// silently drop one.
	if len(repo.appendedEntries) != 2 {
		t.Fatalf("got %d append calls, want 2", len(repo.appendedEntries))
	}
	for i, entry := range repo.appendedEntries {
		if strings.Contains(entry, "\n\n") {
			t.Errorf("entry %d contains a pre-composed thread: %q", i, entry)
		}
	}
	if !strings.HasSuffix(repo.appendedEntries[1], "] Five minutes out") {
		t.Errorf("second entry = %q", repo.appendedEntries[1])
	}
}

func TestReplyRefusedOnClosedBooking(t *testing.T) {
	svc, _ := newService()
	b := mustCreate(t, svc)

	if _, err := svc.RejectBooking("mech-1", b.ID); err != nil {
		t.Fatalf("RejectBooking: %v", err)
	}
	if _, err := svc.ReplyToBooking("mech-1", b.ID, "too late"); !errors.Is(err, ErrBookingClosed) {
		t.Errorf("got %v, want ErrBookingClosed", err)
	}
}

func TestInboxDropsClosedBookings(t *testing.T) {
	svc, _ := newService()
	open := mustCreate(t, svc)
	closed := mustCreate(t, svc)
	if _, err := svc.RejectBooking("mech-1", closed.ID); err != nil {
		t.Fatalf("RejectBooking: %v", err)
	}

	inbox, err := svc.ListMechanicInbox("mech-1")
	if err != nil {
		t.Fatalf("ListMechanicInbox: %v", err)
	}
	if len(inbox) != 1 || inbox[0].ID != open.ID {
		t.Errorf("inbox = %+v, want only the open booking", inbox)
	}
}
