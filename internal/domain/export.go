package domain

// PlanStatus places a travel plan relative to a calendar day.
type PlanStatus string

const (
	PlanUpcoming PlanStatus = "upcoming"
	PlanActive   PlanStatus = "active"
	PlanPast     PlanStatus = "past"
)

// StatusOn reports where p sits relative to day.
func (p TravelPlan) StatusOn(day Date) PlanStatus {
	switch {
	case day.Before(p.StartDate):
		return PlanUpcoming
	case p.Covers(day):
		return PlanActive
	default:
		return PlanPast
	}
}

// PlanExportRow is one row of a user's itinerary export: a flat view of a
// plan plus its status on the export day and whether it is the plan that
// decides the user's current presence.
//
// EndDate is "" for open-ended plans.
type PlanExportRow struct {
	PlanID      string
	Destination string
	StartDate   string
	EndDate     string
	Status      PlanStatus
	Current     bool
}
