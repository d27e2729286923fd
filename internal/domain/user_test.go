package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/travel-match/backend/internal/domain"
)

func TestHometown_Format(t *testing.T) {
	tests := []struct {
		name string
		home domain.Hometown
		want string
	}{
		{"domestic with state", domain.Hometown{City: "Austin", State: "Texas", Country: "United States"}, "Austin, Texas"},
		{"domestic country case-insensitive", domain.Hometown{City: "Austin", State: "Texas", Country: "united states"}, "Austin, Texas"},
		{"state without country", domain.Hometown{City: "Austin", State: "Texas"}, "Austin, Texas"},
		{"foreign with state", domain.Hometown{City: "Toronto", State: "Ontario", Country: "Canada"}, "Toronto, Canada"},
		{"foreign without state", domain.Hometown{City: "Lisbon", Country: "Portugal"}, "Lisbon, Portugal"},
		{"bare city", domain.Hometown{City: "Reykjavik"}, "Reykjavik"},
		{"trims whitespace", domain.Hometown{City: "  Miami ", State: " Florida "}, "Miami, Florida"},
		{"no city", domain.Hometown{State: "Texas", Country: "United States"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.home.Format("United States"))
		})
	}
}

func TestParseUserType(t *testing.T) {
	got, ok := domain.ParseUserType(" Traveler ")
	assert.True(t, ok)
	assert.Equal(t, domain.UserTypeTraveler, got)

	_, ok = domain.ParseUserType("tourist")
	assert.False(t, ok)
}
