package discovery

import (
	"fmt"

	"github.com/pkordes/travel-match/backend/internal/domain"
	"github.com/pkordes/travel-match/backend/internal/facet"
)

// Policy is a minimum-selection rule: at least Threshold values summed across
// Categories. Policies belong to the signup flow, so they are presets rather
// than a single constant.
type Policy struct {
	Name       string            `json:"name"`
	Categories []domain.Category `json:"categories"`
	Threshold  int               `json:"threshold"`
}

var matchCategories = []domain.Category{
	domain.CategoryInterests,
	domain.CategoryActivities,
	domain.CategoryEvents,
	domain.CategoryLanguages,
}

// Policy presets observed across signup variants.
var (
	PolicyTraveler      = Policy{Name: "traveler", Categories: matchCategories, Threshold: 10}
	PolicyLocalComplete = Policy{Name: "local-complete", Categories: matchCategories, Threshold: 10}
	PolicyLocal         = Policy{Name: "local", Categories: []domain.Category{domain.CategoryInterests}, Threshold: 3}
	PolicyBusiness      = Policy{Name: "business", Categories: []domain.Category{domain.CategoryInterests}, Threshold: 0}
)

// Policies lists every preset.
func Policies() []Policy {
	return []Policy{PolicyTraveler, PolicyLocalComplete, PolicyLocal, PolicyBusiness}
}

// PolicyByName looks up a preset by name.
func PolicyByName(name string) (Policy, bool) {
	for _, p := range Policies() {
		if p.Name == name {
			return p, true
		}
	}
	return Policy{}, false
}

// DefaultPolicy returns the preset a full signup of the given user type uses.
func DefaultPolicy(t domain.UserType) Policy {
	switch t {
	case domain.UserTypeTraveler:
		return PolicyTraveler
	case domain.UserTypeBusiness:
		return PolicyBusiness
	default:
		return PolicyLocalComplete
	}
}

// State is where a session sits relative to its policy.
type State string

const (
	StateEmpty             State = "empty"
	StatePartiallySelected State = "partially_selected"
	StateThresholdMet      State = "threshold_met"
)

// Readiness is the outcome of ValidateMinimumSelections.
type Readiness struct {
	Policy    string `json:"policy"`
	Selected  int    `json:"selected"`
	Required  int    `json:"required"`
	Shortfall int    `json:"shortfall"`
	Passed    bool   `json:"passed"`
	State     State  `json:"state"`
	Message   string `json:"message,omitempty"`
}

// ValidateMinimumSelections sums the selection across the policy's categories
// and compares it with the threshold. It has no side effects and returns the
// same result for the same input, so it can run on every change.
func ValidateMinimumSelections(sel *facet.Selection, p Policy) Readiness {
	selected := 0
	if sel != nil {
		selected = sel.Total(p.Categories...)
	}

	r := Readiness{
		Policy:   p.Name,
		Selected: selected,
		Required: p.Threshold,
		Passed:   selected >= p.Threshold,
		State:    stateFor(selected, p.Threshold),
	}
	if !r.Passed {
		r.Shortfall = p.Threshold - selected
		r.Message = shortfallMessage(r.Shortfall)
	}
	return r
}

// StateOf returns the session state for sel under p.
func StateOf(sel *facet.Selection, p Policy) State {
	return ValidateMinimumSelections(sel, p).State
}

// Err returns nil when r passed, otherwise an error wrapping
// domain.ErrValidation with the remediation message.
func (r Readiness) Err() error {
	if r.Passed {
		return nil
	}
	return fmt.Errorf("%w: %s", domain.ErrValidation, r.Message)
}

func stateFor(selected, threshold int) State {
	switch {
	case selected >= threshold:
		return StateThresholdMet
	case selected == 0:
		return StateEmpty
	default:
		return StatePartiallySelected
	}
}

func shortfallMessage(n int) string {
	if n == 1 {
		return "select 1 more item"
	}
	return fmt.Sprintf("select %d more items", n)
}
