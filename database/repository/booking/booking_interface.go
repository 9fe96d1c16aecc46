package bookingRepo

import (
	"context"
	"errors"

	"mechradii/models"
)

var (
	// ErrBookingNotFound reports a booking id with no document behind it.
	ErrBookingNotFound = errors.New("booking not found")
	// ErrIllegalTransition reports a status change that is not an allowed
	// edge of the booking lifecycle.
	ErrIllegalTransition = errors.New("illegal booking status transition")
	// ErrStatusConflict reports that the booking left the expected status
	// before the write landed (a concurrent transition won).
	ErrStatusConflict = errors.New("booking status changed concurrently")
)

// BookingRepository defines methods for booking data access.
type BookingRepository interface {
	// Create inserts a new booking in pending status.
	Create(ctx context.Context, booking *models.Booking) error
	// GetByID retrieves a booking by id.
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// GetByUserID fetches all bookings created by a user, newest first.
	GetByUserID(ctx context.Context, userID string) ([]models.Booking, error)
	// GetActiveByMechanicID fetches the mechanic's non-terminal bookings,
	// newest first.
	GetActiveByMechanicID(ctx context.Context, mechanicID string) ([]models.Booking, error)
	// Transition moves a booking from one status to another, applying the
	// coupled mechanic availability write (if any) in the same transaction.
	// The edge must be legal and the booking must still be in the expected
	// status when the write lands.
	Transition(ctx context.Context, bookingID, from, to, mechanicID, availabilityStatus string) error
	// AppendReply appends one reply entry to the booking's mechanic_reply
	// field and stamps mechanic_reply_at. The append is performed by the
	// store, so concurrent replies cannot overwrite each other.
	AppendReply(ctx context.Context, bookingID, entry string) error
	// WatchStatusChanges opens a change stream delivering one BookingEvent
	// per status transition until the context is cancelled.
	WatchStatusChanges(ctx context.Context) (<-chan models.BookingEvent, error)
}
