package domain

import (
	"time"

	"github.com/migfernandes01/places-share-API/internal/geocode"
	userdomain "github.com/migfernandes01/places-share-API/internal/user/domain"
)

type ID string

// Place's Address, Location and Creator are set exactly once at creation and
// never change; updates touch Title and Description only.
type Place struct {
	ID          ID
	Title       string
	Description string
	Address     string
	Location    geocode.Location
	Image       string
	Creator     userdomain.ID
	CreatedAt   time.Time
}
