package booking

import (
	bookingRepo "mechradii/database/repository/booking"
	mechanicRepo "mechradii/database/repository/mechanic"
	profileRepo "mechradii/database/repository/profile"
	"mechradii/models"
)

// CreateRequest carries a new service request from a user to a mechanic.
type CreateRequest struct {
	MechanicID string `json:"mechanic_id"`
	ActionType string `json:"action_type"`
	Message    string `json:"message"`
}

// BookingService defines business logic for the booking lifecycle.
type BookingService interface {
	// CreateBooking opens a pending request, snapshotting the mechanic's
	// display details onto the booking.
	CreateBooking(actingUserID string, req CreateRequest) (*models.Booking, error)
	// GetBooking retrieves a booking visible to the acting user (either
	// side of the request).
	GetBooking(actingUserID, bookingID string) (*models.Booking, error)
	// ListUserBookings fetches all bookings the user has opened, newest first.
	ListUserBookings(actingUserID string) ([]models.Booking, error)
	// ListMechanicInbox fetches the mechanic's non-terminal bookings,
	// newest first.
	ListMechanicInbox(actingUserID string) ([]models.Booking, error)
	// AcceptBooking moves a pending booking to accepted and marks the
	// mechanic busy in the same transaction.
	AcceptBooking(actingUserID, bookingID string) (*models.Booking, error)
	// RejectBooking moves a pending booking to rejected. Availability is
	// untouched.
	RejectBooking(actingUserID, bookingID string) (*models.Booking, error)
	// CompleteBooking moves an accepted booking to completed and marks the
	// mechanic available again in the same transaction.
	CompleteBooking(actingUserID, bookingID string) (*models.Booking, error)
	// ReplyToBooking appends a timestamped reply to a non-terminal booking.
	ReplyToBooking(actingUserID, bookingID, text string) (*models.Booking, error)
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Repo      bookingRepo.BookingRepository
	Mechanics mechanicRepo.MechanicRepository
	Profiles  profileRepo.ProfileRepository
}
