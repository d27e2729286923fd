package discovery

import (
	"fmt"

	"github.com/pkordes/travel-match/backend/internal/domain"
)

// Accepted age range, inclusive.
const (
	MinAge = 16
	MaxAge = 99
)

// AgeCheck is the outcome of CheckAge.
type AgeCheck struct {
	Valid   bool   `json:"valid"`
	Age     int    `json:"age,omitempty"`
	Message string `json:"message,omitempty"`
}

// Err returns nil for a valid check, otherwise an error wrapping
// domain.ErrValidation with the message.
func (a AgeCheck) Err() error {
	if a.Valid {
		return nil
	}
	return fmt.Errorf("%w: %s", domain.ErrValidation, a.Message)
}

// AgeOn returns birth's age in whole years on today: the year difference,
// minus one when today's month/day precedes the birth month/day.
func AgeOn(birth, today domain.Date) int {
	age := today.Year - birth.Year
	if today.Month < birth.Month || (today.Month == birth.Month && today.Day < birth.Day) {
		age--
	}
	return age
}

// CheckAge parses a birth date and accepts it only when the age on today is
// between MinAge and MaxAge. Unparseable and future dates are rejected with a
// message rather than an error so the form stays fillable.
func CheckAge(birth string, today domain.Date) AgeCheck {
	b, err := domain.ParseDate(birth)
	if err != nil {
		return AgeCheck{Message: "enter a valid date of birth"}
	}
	if b.After(today) {
		return AgeCheck{Message: "date of birth cannot be in the future"}
	}

	age := AgeOn(b, today)
	switch {
	case age < MinAge:
		return AgeCheck{Age: age, Message: fmt.Sprintf("must be at least %d", MinAge)}
	case age > MaxAge:
		return AgeCheck{Age: age, Message: fmt.Sprintf("must be %d or younger", MaxAge)}
	}
	return AgeCheck{Valid: true, Age: age}
}
