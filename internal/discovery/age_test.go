package discovery_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/travel-match/backend/internal/discovery"
	"github.com/pkordes/travel-match/backend/internal/domain"
)

func TestCheckAge(t *testing.T) {
	today := domain.MustParseDate("2025-06-15")

	cases := []struct {
		birth   string
		valid   bool
		age     int
		message string
	}{
		{"2009-06-15", true, 16, ""},                            // 16th birthday today
		{"2009-06-16", false, 15, "must be at least 16"},        // one day short
		{"1926-06-16", true, 98, ""},                            // turns 99 tomorrow
		{"1926-06-15", true, 99, ""},                            // 99th birthday today
		{"1925-06-15", false, 100, "must be 99 or younger"},     // 100 today
		{"1990-01-01", true, 35, ""},                            // birthday passed this year
		{"2025-06-16", false, 0, "cannot be in the future"},     // born tomorrow
		{"1990-13-01", false, 0, "enter a valid date of birth"}, // month 13
		{"", false, 0, "enter a valid date of birth"},           // not provided
		{"not a date", false, 0, "enter a valid date of birth"}, // free text
	}
	for _, tc := range cases {
		t.Run(tc.birth, func(t *testing.T) {
			got := discovery.CheckAge(tc.birth, today)
			assert.Equal(t, tc.valid, got.Valid)
			assert.Equal(t, tc.age, got.Age)
			if tc.message == "" {
				assert.Empty(t, got.Message)
				assert.NoError(t, got.Err())
			} else {
				assert.Contains(t, got.Message, tc.message)
				assert.ErrorIs(t, got.Err(), domain.ErrValidation)
			}
		})
	}
}

func TestAgeOn_LeapDayBirth(t *testing.T) {
	birth := domain.MustParseDate("2004-02-29")

	assert.Equal(t, 20, discovery.AgeOn(birth, domain.MustParseDate("2025-02-28")))
	assert.Equal(t, 21, discovery.AgeOn(birth, domain.MustParseDate("2025-03-01")))
}
