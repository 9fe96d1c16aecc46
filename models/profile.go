// models/profile.go
package models

import (
	"time"
)

// Profile represents an authenticated account. One document per actor; the
// same document backs both plain users and mechanics (a mechanic additionally
// owns a MechanicRecord keyed by the same user id).
type Profile struct {
	UserID       string    `bson:"user_id" json:"user_id"`
	FullName     string    `bson:"full_name" json:"full_name"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	AvatarURL    string    `bson:"avatar_url,omitempty" json:"avatar_url,omitempty"`
	FCMToken     string    `bson:"fcm_token,omitempty" json:"-"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}
