// Package models contains the persistent data structures of the warning system.
package models

import "time"

// User is the opportunistically refreshed mirror of a Discord identity.
// Every interaction that touches a user upserts this row, so the stored
// attributes are last-write-wins.
type User struct {
	ID            string    `db:"id" json:"id"`
	Username      string    `db:"username" json:"username"`
	Discriminator string    `db:"discriminator" json:"discriminator"`
	Avatar        string    `db:"avatar" json:"avatar"`
	UpdatedAt     time.Time `db:"updated_at" json:"updatedAt"`
}

// Tag returns the classic username#discriminator form, or just the
// username for accounts migrated off discriminators.
func (u *User) Tag() string {
	if u.Discriminator == "" || u.Discriminator == "0" {
		return u.Username
	}
	return u.Username + "#" + u.Discriminator
}
