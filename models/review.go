// models/review.go
package models

import (
	"time"
)

// Review is a single immutable rating left for a mechanic. There is no edit
// or delete path; the mechanic's aggregate is updated in the same transaction
// that inserts the review.
type Review struct {
	ID         string    `bson:"id" json:"id"`
	MechanicID string    `bson:"mechanic_id" json:"mechanic_id"`
	UserID     string    `bson:"user_id" json:"user_id"`
	UserName   string    `bson:"user_name" json:"user_name"`
	Rating     int       `bson:"rating" json:"rating"`
	Comment    string    `bson:"comment" json:"comment"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}
