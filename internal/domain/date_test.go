package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-match/backend/internal/domain"
)

func TestParseDate_DateOnly(t *testing.T) {
	got, err := domain.ParseDate("2025-03-10")

	require.NoError(t, err)
	assert.Equal(t, domain.Date{Year: 2025, Month: time.March, Day: 10}, got)
}

// TestParseDate_DateTimeKeepsWrittenDay verifies that the time and offset in a
// date-time string never move the calendar day.
func TestParseDate_DateTimeKeepsWrittenDay(t *testing.T) {
	for _, in := range []string{
		"2025-01-01T00:00:00Z",
		"2025-01-01T00:00:00.000Z",
		"2025-01-01T23:59:59-11:00",
		"2025-01-01T00:30:00+14:00",
		"2025-01-01 18:30:00",
		"  2025-01-01  ",
	} {
		got, err := domain.ParseDate(in)
		require.NoError(t, err, in)
		assert.Equal(t, domain.NewDate(2025, time.January, 1), got, in)
	}
}

func TestParseDate_Invalid(t *testing.T) {
	for _, in := range []string{"", "2025", "not a date", "2025-02-30", "2025-13-01", "2025-01-01X", "01/02/2025"} {
		_, err := domain.ParseDate(in)
		assert.ErrorIs(t, err, domain.ErrInvalidDate, in)
	}
}

// TestDateOf_UsesOwnLocation verifies that a UTC-midnight timestamp stays on
// its UTC day no matter which zone the machine evaluating it sits in.
func TestDateOf_UsesOwnLocation(t *testing.T) {
	utcMidnight := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, domain.NewDate(2025, time.January, 1), domain.DateOf(utcMidnight))

	// The same instant, viewed from a zone west of UTC, is still Dec 31 there.
	west := time.FixedZone("UTC-5", -5*60*60)
	assert.Equal(t, domain.NewDate(2024, time.December, 31), domain.DateOf(utcMidnight.In(west)))
}

func TestDate_Compare(t *testing.T) {
	a := domain.MustParseDate("2025-03-10")
	b := domain.MustParseDate("2025-03-11")
	c := domain.MustParseDate("2026-01-01")

	assert.True(t, a.Before(b))
	assert.True(t, c.After(b))
	assert.Equal(t, 0, a.Compare(domain.MustParseDate("2025-03-10")))
	assert.Equal(t, -1, b.Compare(c))
}

func TestDate_AddDaysAndYears(t *testing.T) {
	d := domain.MustParseDate("2024-02-28")

	assert.Equal(t, "2024-02-29", d.AddDays(1).String())
	assert.Equal(t, "2024-03-01", d.AddDays(2).String())
	assert.Equal(t, "2008-02-28", d.AddYears(-16).String())
}

func TestDate_JSONRoundTrip(t *testing.T) {
	type wrapper struct {
		Start domain.Date  `json:"start"`
		End   *domain.Date `json:"end,omitempty"`
	}

	b, err := json.Marshal(wrapper{Start: domain.MustParseDate("2025-06-01")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"start":"2025-06-01"}`, string(b))

	var got wrapper
	require.NoError(t, json.Unmarshal([]byte(`{"start":"2025-06-01T00:00:00Z","end":"2025-06-03"}`), &got))
	assert.Equal(t, "2025-06-01", got.Start.String())
	require.NotNil(t, got.End)
	assert.Equal(t, "2025-06-03", got.End.String())
}

func TestDate_ZeroValue(t *testing.T) {
	var d domain.Date
	assert.True(t, d.IsZero())
	assert.Equal(t, "", d.String())

	require.NoError(t, d.UnmarshalText([]byte("")))
	assert.True(t, d.IsZero())
}
