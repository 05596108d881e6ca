package model

import "time"

// ShareLink maps a random public hash to the user whose collection it
// exposes. At most one exists per user — user_id is the primary key in the
// database, which is what makes the enable-sharing get-or-create safe even
// when two requests race.
//
// The hash is a capability: anyone who holds it can read the owner's entire
// current collection, live, until the owner disables sharing. There is no
// expiry.
type ShareLink struct {
	UserID    string    `json:"userId"    db:"user_id"`
	Hash      string    `json:"hash"      db:"hash"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
