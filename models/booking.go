// models/booking.go
package models

import (
	"time"
)

// Booking status constants. Transitions are one-directional: a booking never
// re-enters pending, and rejected/completed are terminal.
const (
	StatusPending   = "pending"
	StatusAccepted  = "accepted"
	StatusRejected  = "rejected"
	StatusCompleted = "completed"
)

var bookingTransitions = map[string]map[string]struct{}{
	StatusPending:  {StatusAccepted: {}, StatusRejected: {}},
	StatusAccepted: {StatusCompleted: {}},
}

// CanTransition reports whether moving a booking from one status to another
// is a legal edge of the lifecycle.
func CanTransition(from, to string) bool {
	next, ok := bookingTransitions[from]
	if !ok {
		return false
	}
	_, ok = next[to]
	return ok
}

// IsTerminalStatus reports whether a booking in this status can never change again.
func IsTerminalStatus(status string) bool {
	return status == StatusRejected || status == StatusCompleted
}

// Action types a requester can open a booking with.
var BookingActionTypes = []string{
	"Emergency Request",
	"Send Message",
	"Call Now",
	"Schedule Later",
	"Message",
}

// IsBookingActionType reports whether the action type is one the platform accepts.
func IsBookingActionType(action string) bool {
	for _, a := range BookingActionTypes {
		if a == action {
			return true
		}
	}
	return false
}

// Booking is a single service request from a user to a mechanic. Mechanic
// name/specialty/image are snapshotted at creation for display without a join.
type Booking struct {
	ID                string     `bson:"id" json:"id"`
	UserID            string     `bson:"user_id" json:"user_id"`
	UserEmail         string     `bson:"user_email" json:"user_email"`
	MechanicID        string     `bson:"mechanic_id" json:"mechanic_id"`
	MechanicName      string     `bson:"mechanic_name" json:"mechanic_name"`
	MechanicSpecialty string     `bson:"mechanic_specialty" json:"mechanic_specialty"`
	MechanicImage     string     `bson:"mechanic_image,omitempty" json:"mechanic_image,omitempty"`
	ActionType        string     `bson:"action_type" json:"action_type"`
	Message           string     `bson:"message,omitempty" json:"message,omitempty"`
	Status            string     `bson:"status" json:"status"`
	MechanicReply     string     `bson:"mechanic_reply,omitempty" json:"mechanic_reply,omitempty"`
	MechanicReplyAt   *time.Time `bson:"mechanic_reply_at,omitempty" json:"mechanic_reply_at,omitempty"`
	CreatedAt         time.Time  `bson:"created_at" json:"created_at"`
}
