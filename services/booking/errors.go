package booking

import "errors"

var (
	// ErrBookingNotFound reports a booking id with no document behind it.
	ErrBookingNotFound = errors.New("booking not found")
	// ErrMechanicNotFound reports a booking aimed at a mechanic id with no
	// listing behind it.
	ErrMechanicNotFound = errors.New("mechanic not found")
	// ErrNotAuthorized reports an action on a booking the acting user is
	// not a party to.
	ErrNotAuthorized = errors.New("not authorized for this booking")
	// ErrIllegalTransition reports a status change that is not an allowed
	// edge of the booking lifecycle.
	ErrIllegalTransition = errors.New("illegal booking status transition")
	// ErrBookingClosed reports a reply to a booking already in a terminal
	// status.
	ErrBookingClosed = errors.New("booking is closed")
)

// ValidationError reports malformed booking input, caught before any write.
type ValidationError struct {
	Msg string
}

func (e ValidationError) Error() string {
	return e.Msg
}
