package notification

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"mechradii/models"

	"go.mongodb.org/mongo-driver/bson"
)

type memorySink struct {
	mu      sync.Mutex
	notices []models.Notice
	closed  bool
	fail    bool
}

func (s *memorySink) Send(n models.Notice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("broken pipe")
	}
	s.notices = append(s.notices, n)
	return nil
}

func (s *memorySink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *memorySink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.notices)
}

func TestHubDeliversToSubscriber(t *testing.T) {
	hub := NewHub()
	sink := &memorySink{}
	hub.Subscribe("user-1", sink)

	hub.Publish("user-1", models.Notice{Title: "Request Accepted!"})
	hub.Publish("user-2", models.Notice{Title: "not for us"})

	if sink.count() != 1 {
		t.Fatalf("got %d notices, want 1", sink.count())
	}
}

func TestHubMultipleSubscriptionsPerUser(t *testing.T) {
	hub := NewHub()
	a := &memorySink{}
	b := &memorySink{}
	hub.Subscribe("user-1", a)
	hub.Subscribe("user-1", b)

	hub.Publish("user-1", models.Notice{Title: "hello"})

	if a.count() != 1 || b.count() != 1 {
		t.Errorf("got %d and %d notices, want 1 each", a.count(), b.count())
	}
}

func TestHubUnsubscribeStopsDelivery(t *testing.T) {
	hub := NewHub()
	sink := &memorySink{}
	hub.Subscribe("user-1", sink)
	hub.Unsubscribe("user-1", sink)

	hub.Publish("user-1", models.Notice{Title: "after goodbye"})

	if sink.count() != 0 {
		t.Errorf("got %d notices after unsubscribe, want 0", sink.count())
	}
	if !sink.closed {
		t.Error("unsubscribe did not close the sink")
	}
}

func TestHubDropsFailingSink(t *testing.T) {
	hub := NewHub()
	dead := &memorySink{fail: true}
	live := &memorySink{}
	hub.Subscribe("user-1", dead)
	hub.Subscribe("user-1", live)

	hub.Publish("user-1", models.Notice{Title: "one"})
	hub.Publish("user-1", models.Notice{Title: "two"})

	if live.count() != 2 {
		t.Errorf("live sink got %d notices, want 2", live.count())
	}
	if !dead.closed {
		t.Error("failing sink was not dropped")
	}
}

func TestNoticeFor(t *testing.T) {
	cases := []struct {
		status string
		level  string
	}{
		{models.StatusAccepted, models.NoticeSuccess},
		{models.StatusRejected, models.NoticeError},
		{models.StatusCompleted, models.NoticeInfo},
	}
	for _, tc := range cases {
		notice := NoticeFor(models.BookingEvent{
			BookingID:    "b-1",
			Status:       tc.status,
			MechanicName: "Juma Otieno",
		})
		if notice.Level != tc.level {
			t.Errorf("status %s: level = %s, want %s", tc.status, notice.Level, tc.level)
		}
		if notice.Booking != "b-1" || notice.Status != tc.status {
			t.Errorf("status %s: notice = %+v", tc.status, notice)
		}
	}

	accepted := NoticeFor(models.BookingEvent{Status: models.StatusAccepted, MechanicName: "Juma Otieno"})
	if accepted.Body != "Juma Otieno is on the way." {
		t.Errorf("accepted body = %q", accepted.Body)
	}
}

type scriptedBookingRepo struct {
	events []models.BookingEvent
}

func (s *scriptedBookingRepo) Create(context.Context, *models.Booking) error { return nil }
func (s *scriptedBookingRepo) GetByID(context.Context, string) (*models.Booking, error) {
	return nil, nil
}
func (s *scriptedBookingRepo) GetByUserID(context.Context, string) ([]models.Booking, error) {
	return nil, nil
}
func (s *scriptedBookingRepo) GetActiveByMechanicID(context.Context, string) ([]models.Booking, error) {
	return nil, nil
}
func (s *scriptedBookingRepo) Transition(context.Context, string, string, string, string, string) error {
	return nil
}
func (s *scriptedBookingRepo) AppendReply(context.Context, string, string) error { return nil }

func (s *scriptedBookingRepo) WatchStatusChanges(ctx context.Context) (<-chan models.BookingEvent, error) {
	ch := make(chan models.BookingEvent)
	go func() {
		defer close(ch)
		for _, ev := range s.events {
			select {
			case ch <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch, nil
}

type noProfileRepo struct{}

func (noProfileRepo) GetByID(string) (*models.Profile, error)    { return nil, errors.New("none") }
func (noProfileRepo) GetByEmail(string) (*models.Profile, error) { return nil, nil }
func (noProfileRepo) Create(*models.Profile) error               { return nil }
func (noProfileRepo) Delete(string) error                        { return nil }
func (noProfileRepo) UpdateFields(string, bson.M) error          { return nil }
func (noProfileRepo) GetByIDWithProjection(string, bson.M) (*models.Profile, error) {
	return nil, nil
}

func TestRelayDeliversOneNoticePerTransition(t *testing.T) {
	hub := NewHub()
	sink := &memorySink{}
	hub.Subscribe("user-1", sink)

	relay := &Relay{
		Bookings: &scriptedBookingRepo{events: []models.BookingEvent{
			{BookingID: "b-1", UserID: "user-1", Status: models.StatusAccepted, MechanicName: "Juma"},
			{BookingID: "b-1", UserID: "user-1", Status: models.StatusCompleted, MechanicName: "Juma"},
			{BookingID: "b-2", UserID: "someone-else", Status: models.StatusRejected},
		}},
		Profiles: noProfileRepo{},
		Hub:      hub,
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := relay.Run(ctx); err != nil && err != context.Canceled {
		t.Fatalf("Run: %v", err)
	}

	if sink.count() != 2 {
		t.Fatalf("got %d notices, want 2 (one per transition for user-1)", sink.count())
	}
	sink.mu.Lock()
	defer sink.mu.Unlock()
	if sink.notices[0].Status != models.StatusAccepted || sink.notices[1].Status != models.StatusCompleted {
		t.Errorf("notices out of order: %+v", sink.notices)
	}
}
