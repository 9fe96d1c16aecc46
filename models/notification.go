// models/notification.go
package models

import (
	"time"
)

// Notice severity levels mirrored to the client toast styles.
const (
	NoticeSuccess = "success"
	NoticeError   = "error"
	NoticeInfo    = "info"
)

// BookingEvent is one detected status transition on a booking, produced by
// the live notification relay. Exactly one event is emitted per transition.
type BookingEvent struct {
	BookingID    string    `json:"booking_id"`
	UserID       string    `json:"user_id"`
	MechanicID   string    `json:"mechanic_id"`
	MechanicName string    `json:"mechanic_name"`
	Status       string    `json:"status"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// Notice is the user-facing rendering of a BookingEvent.
type Notice struct {
	Level   string `json:"level"`
	Title   string `json:"title"`
	Body    string `json:"body"`
	Booking string `json:"booking_id"`
	Status  string `json:"status"`
}
