// Package domain contains the core data types for the Travel Match service.
// This package depends only on google/uuid and is imported by every other
// internal package (facet, presence, discovery, repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// TravelPlan is one trip a user has announced: a destination covering a range
// of calendar days. EndDate is nil while the plan is open-ended; it stays
// active from StartDate onward until someone closes it.
type TravelPlan struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Destination string    `json:"destination"`
	StartDate   Date      `json:"start_date"`
	EndDate     *Date     `json:"end_date,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Open reports whether the plan has no end date.
func (p TravelPlan) Open() bool {
	return p.EndDate == nil || p.EndDate.IsZero()
}

// Covers reports whether day falls inside the plan: StartDate <= day and,
// unless the plan is open-ended, day <= EndDate.
func (p TravelPlan) Covers(day Date) bool {
	if day.Before(p.StartDate) {
		return false
	}
	if p.Open() {
		return true
	}
	return !day.After(*p.EndDate)
}
