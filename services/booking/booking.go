package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	bookingRepo "mechradii/database/repository/booking"
	"mechradii/models"
	"mechradii/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const bookingTimeout = 10 * time.Second

func newContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), bookingTimeout)
}

// CreateBooking opens a pending request against a mechanic, snapshotting the
// mechanic's name, specialty, and photo for display without a join.
func (s *DefaultBookingService) CreateBooking(actingUserID string, req CreateRequest) (*models.Booking, error) {
	if strings.TrimSpace(req.MechanicID) == "" {
		return nil, ValidationError{Msg: "mechanic id is required"}
	}
	if !models.IsBookingActionType(req.ActionType) {
		return nil, ValidationError{Msg: fmt.Sprintf("unknown action type %q", req.ActionType)}
	}
	if req.MechanicID == actingUserID {
		return nil, ValidationError{Msg: "cannot book your own listing"}
	}

	mech, err := s.Mechanics.GetByID(req.MechanicID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch mechanic: %w", err)
	}
	if mech == nil {
		return nil, ErrMechanicNotFound
	}

	profile, err := s.Profiles.GetByID(actingUserID)
	if err != nil {
		utils.GetLogger().Error("CreateBooking: failed to fetch requester profile", zap.String("id", actingUserID), zap.Error(err))
		return nil, fmt.Errorf("booking failed, please try again")
	}

	booking := models.Booking{
		ID:                uuid.New().String(),
		UserID:            actingUserID,
		UserEmail:         profile.Email,
		MechanicID:        mech.UserID,
		MechanicName:      mech.FullName,
		MechanicSpecialty: mech.Specialty(),
		MechanicImage:     mech.AvatarURL,
		ActionType:        req.ActionType,
		Message:           strings.TrimSpace(req.Message),
		Status:            models.StatusPending,
		CreatedAt:         time.Now(),
	}

	ctx, cancel := newContext()
	defer cancel()
	if err := s.Repo.Create(ctx, &booking); err != nil {
		utils.GetLogger().Error("CreateBooking: insert failed", zap.String("mechanic_id", mech.UserID), zap.Error(err))
		return nil, fmt.Errorf("booking failed, please try again")
	}
	return &booking, nil
}

// GetBooking retrieves a booking, restricted to its two parties.
func (s *DefaultBookingService) GetBooking(actingUserID, bookingID string) (*models.Booking, error) {
	ctx, cancel := newContext()
	defer cancel()

	booking, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	if booking.UserID != actingUserID && booking.MechanicID != actingUserID {
		return nil, ErrNotAuthorized
	}
	return booking, nil
}

// ListUserBookings fetches all bookings the user has opened, newest first.
func (s *DefaultBookingService) ListUserBookings(actingUserID string) ([]models.Booking, error) {
	ctx, cancel := newContext()
	defer cancel()

	bookings, err := s.Repo.GetByUserID(ctx, actingUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}
	return bookings, nil
}

// ListMechanicInbox fetches the acting mechanic's open requests. Rejected and
// completed bookings drop out of the inbox.
func (s *DefaultBookingService) ListMechanicInbox(actingUserID string) ([]models.Booking, error) {
	ctx, cancel := newContext()
	defer cancel()

	bookings, err := s.Repo.GetActiveByMechanicID(ctx, actingUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking inbox: %w", err)
	}
	return bookings, nil
}

// AcceptBooking moves a pending booking to accepted. The mechanic is flipped
// to busy in the same transaction as the status write.
func (s *DefaultBookingService) AcceptBooking(actingUserID, bookingID string) (*models.Booking, error) {
	return s.transition(actingUserID, bookingID, models.StatusAccepted, models.AvailabilityBusy)
}

// RejectBooking moves a pending booking to rejected. Availability stays as is.
func (s *DefaultBookingService) RejectBooking(actingUserID, bookingID string) (*models.Booking, error) {
	return s.transition(actingUserID, bookingID, models.StatusRejected, "")
}

// CompleteBooking moves an accepted booking to completed. The mechanic is
// flipped back to available in the same transaction as the status write.
func (s *DefaultBookingService) CompleteBooking(actingUserID, bookingID string) (*models.Booking, error) {
	return s.transition(actingUserID, bookingID, models.StatusCompleted, models.AvailabilityAvailable)
}

func (s *DefaultBookingService) transition(actingUserID, bookingID, to, availabilityStatus string) (*models.Booking, error) {
	ctx, cancel := newContext()
	defer cancel()

	booking, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	if booking.MechanicID != actingUserID {
		return nil, ErrNotAuthorized
	}
	if !models.CanTransition(booking.Status, to) {
		return nil, ErrIllegalTransition
	}

	err = s.Repo.Transition(ctx, bookingID, booking.Status, to, booking.MechanicID, availabilityStatus)
	switch {
	case err == nil:
	case errors.Is(err, bookingRepo.ErrIllegalTransition), errors.Is(err, bookingRepo.ErrStatusConflict):
		// A concurrent transition won the race; re-checking would only
		// report the same thing the caller sees on refresh.
		return nil, ErrIllegalTransition
	default:
		utils.GetLogger().Error("booking transition failed",
			zap.String("booking_id", bookingID), zap.String("to", to), zap.Error(err))
		return nil, fmt.Errorf("booking update failed, please try again")
	}

	booking.Status = to
	return booking, nil
}

// ReplyToBooking appends a timestamped line to the booking's reply thread.
// Closed bookings cannot be replied to.
func (s *DefaultBookingService) ReplyToBooking(actingUserID, bookingID, text string) (*models.Booking, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ValidationError{Msg: "reply text is required"}
	}

	ctx, cancel := newContext()
	defer cancel()

	booking, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	if booking.MechanicID != actingUserID {
		return nil, ErrNotAuthorized
	}
	if models.IsTerminalStatus(booking.Status) {
		return nil, ErrBookingClosed
	}

	// The store performs the concatenation, so the entry here is only the
	// new line; a concurrent reply cannot be lost to a stale read.
	entry := "[" + time.Now().Format("15:04:05") + "] " + text
	if err := s.Repo.AppendReply(ctx, bookingID, entry); err != nil {
		utils.GetLogger().Error("booking reply failed", zap.String("booking_id", bookingID), zap.Error(err))
		return nil, fmt.Errorf("reply failed, please try again")
	}
	return s.Repo.GetByID(ctx, bookingID)
}
