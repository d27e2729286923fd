package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// UserType is the profile kind chosen at signup.
type UserType string

const (
	UserTypeLocal    UserType = "local"
	UserTypeTraveler UserType = "traveler"
	UserTypeBusiness UserType = "business"
)

// ParseUserType validates a wire value.
func ParseUserType(s string) (UserType, bool) {
	switch t := UserType(strings.ToLower(strings.TrimSpace(s))); t {
	case UserTypeLocal, UserTypeTraveler, UserTypeBusiness:
		return t, true
	}
	return "", false
}

// Hometown is where a user lives. State is optional and only shown for
// domestic hometowns.
type Hometown struct {
	City    string `json:"city"`
	State   string `json:"state,omitempty"`
	Country string `json:"country,omitempty"`
}

// Format renders the hometown as a search location.
// It prefers "city, state" when a state is present and the country is blank
// or equal to defaultCountry, then "city, country", then the bare city.
// A hometown with no city formats as "".
func (h Hometown) Format(defaultCountry string) string {
	city := strings.TrimSpace(h.City)
	if city == "" {
		return ""
	}
	state := strings.TrimSpace(h.State)
	country := strings.TrimSpace(h.Country)

	domestic := country == "" || strings.EqualFold(country, strings.TrimSpace(defaultCountry))
	switch {
	case state != "" && domestic:
		return city + ", " + state
	case country != "":
		return city + ", " + country
	default:
		return city
	}
}

// User is the read-only view of an account the matching core works from.
// Accounts are owned by the account subsystem; this service never writes them.
// BusinessLocation is only meaningful for business accounts.
type User struct {
	ID               uuid.UUID
	Username         string
	Name             string
	Type             UserType
	Hometown         Hometown
	BusinessLocation string
	CreatedAt        time.Time
}
