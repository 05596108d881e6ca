// Package model defines the data structures used throughout the application.
package model

import "time"

// User represents a registered account.
//
// Email doubles as the login name and carries a UNIQUE constraint in the
// database — a duplicate signup must fail with a conflict, never overwrite
// an existing account.
//
// PasswordHash holds the bcrypt output (salt and cost are embedded in the
// hash string itself). It is tagged `json:"-"` so it can never leak into an
// HTTP response, no matter which handler serializes a User.
type User struct {
	ID           string    `json:"id"        db:"id"`
	Email        string    `json:"email"     db:"email"`
	PasswordHash string    `json:"-"         db:"password_hash"`
	FirstName    string    `json:"firstName" db:"first_name"`
	LastName     string    `json:"lastName"  db:"last_name"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// DisplayName returns the name shown on a public shared view.
// Falls back to the email when the user never set a name.
func (u *User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.Email
	}
}
