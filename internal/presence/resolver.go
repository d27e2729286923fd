// Package presence decides which single location a user is grouped under for
// discovery: the destination of a travel plan active today, or the hometown.
//
// All comparisons are made on domain.Date values, never on instants, so a plan
// starting "2025-01-01" is active on the caller's local calendar day
// 2025-01-01 regardless of the machine's UTC offset.
package presence

import (
	"time"

	"github.com/pkordes/travel-match/backend/internal/domain"
)

// Clock supplies the current instant. Tests inject a fixed clock; production
// uses SystemClock.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now calls f.
func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock.
var SystemClock Clock = ClockFunc(time.Now)

// Resolver computes presence buckets. It holds no per-user state and is safe
// for concurrent use.
type Resolver struct {
	clock          Clock
	loc            *time.Location
	defaultCountry string
}

// NewResolver builds a Resolver.
// loc is the calendar "today" is read in; nil means UTC.
// defaultCountry is the domestic country whose hometowns format as "city, state".
func NewResolver(clock Clock, loc *time.Location, defaultCountry string) *Resolver {
	if clock == nil {
		clock = SystemClock
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Resolver{clock: clock, loc: loc, defaultCountry: defaultCountry}
}

// Today returns the current calendar date in the resolver's location.
func (r *Resolver) Today() domain.Date {
	return domain.DateOf(r.clock.Now().In(r.loc))
}

// Resolve returns the bucket of the given kind for user as of the resolver's today.
func (r *Resolver) Resolve(kind domain.BucketKind, user domain.User, plans []domain.TravelPlan) domain.PresenceBucket {
	return r.ResolveOn(r.Today(), kind, user, plans)
}

// ResolveOn is Resolve with an explicit "today", for callers that know the
// user's own calendar date.
//
// Business accounts always resolve to their business location. Otherwise
// BucketLocals always resolves to the hometown and BucketCurrent resolves to
// the active plan's destination when one exists.
func (r *Resolver) ResolveOn(today domain.Date, kind domain.BucketKind, user domain.User, plans []domain.TravelPlan) domain.PresenceBucket {
	if user.Type == domain.UserTypeBusiness {
		loc := user.BusinessLocation
		if loc == "" {
			loc = user.Hometown.Format(r.defaultCountry)
		}
		return domain.PresenceBucket{Label: domain.LabelHometown, Location: loc}
	}

	if kind != domain.BucketLocals {
		if plan, ok := ActivePlan(plans, today); ok {
			return domain.PresenceBucket{Label: domain.LabelTraveling, Location: plan.Destination}
		}
	}

	return domain.PresenceBucket{
		Label:    domain.LabelHometown,
		Location: user.Hometown.Format(r.defaultCountry),
	}
}

// ActivePlan returns the plan covering today, if any.
// When several plans overlap today the one with the latest StartDate wins;
// equal start dates go to the plan listed last.
func ActivePlan(plans []domain.TravelPlan, today domain.Date) (domain.TravelPlan, bool) {
	var (
		best  domain.TravelPlan
		found bool
	)
	for _, p := range plans {
		if !p.Covers(today) {
			continue
		}
		if !found || !p.StartDate.Before(best.StartDate) {
			best, found = p, true
		}
	}
	return best, found
}
