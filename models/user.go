package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an account stored in the mongo "users" collection. The password
// field always holds a bcrypt hash, never plaintext.
type User struct {
	ID        uuid.UUID `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Password  string    `json:"-" bson:"password"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
