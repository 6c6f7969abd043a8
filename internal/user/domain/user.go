package domain

import "time"

type ID string

// User owns an ordered list of place ids. Every id in PlaceIDs references a
// place whose creator is this user; the two sides are always written in the
// same transaction.
type User struct {
	ID           ID
	Name         string
	Email        string
	PasswordHash string
	Image        string
	PlaceIDs     []string
	CreatedAt    time.Time
}
