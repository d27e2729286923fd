package domain

import "fmt"

// Category identifies one independent facet of matching attributes.
// The set is closed: only the constants below are valid, and each carries its
// own canonical vocabulary. Code that receives a category name from outside
// (HTTP, session storage) must go through ParseCategory.
type Category uint8

const (
	CategoryInterests Category = iota + 1
	CategoryActivities
	CategoryEvents
	CategoryLanguages
	CategoryGender
	CategorySexualPreference
	CategoryUserType
	CategoryTravelerType
	CategoryMilitaryStatus
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryInterests,
	CategoryActivities,
	CategoryEvents,
	CategoryLanguages,
	CategoryGender,
	CategorySexualPreference,
	CategoryUserType,
	CategoryTravelerType,
	CategoryMilitaryStatus,
}

// categoryNames holds the wire name of each category. These names are also the
// query parameter keys sent to the directory search endpoint.
var categoryNames = map[Category]string{
	CategoryInterests:        "interests",
	CategoryActivities:       "activities",
	CategoryEvents:           "events",
	CategoryLanguages:        "languages",
	CategoryGender:           "gender",
	CategorySexualPreference: "sexualPreference",
	CategoryUserType:         "userType",
	CategoryTravelerType:     "travelerType",
	CategoryMilitaryStatus:   "militaryStatus",
}

// ParseCategory maps a wire name to its Category.
func ParseCategory(name string) (Category, bool) {
	for c, n := range categoryNames {
		if n == name {
			return c, true
		}
	}
	return 0, false
}

// Valid reports whether c is one of the declared categories.
func (c Category) Valid() bool {
	_, ok := categoryNames[c]
	return ok
}

// MustValid panics when c is not a declared category. An unknown category is
// a programming error, not a user-facing one.
func (c Category) MustValid() {
	if !c.Valid() {
		panic(fmt.Sprintf("domain: unknown facet category %d", uint8(c)))
	}
}

// String returns the wire name of c.
func (c Category) String() string {
	if n, ok := categoryNames[c]; ok {
		return n
	}
	return fmt.Sprintf("Category(%d)", uint8(c))
}

// MarshalText encodes c by wire name so it can be used as a JSON map key.
func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("domain: unknown facet category %d", uint8(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText decodes a wire name.
func (c *Category) UnmarshalText(b []byte) error {
	parsed, ok := ParseCategory(string(b))
	if !ok {
		return fmt.Errorf("%w: unknown category %q", ErrValidation, string(b))
	}
	*c = parsed
	return nil
}

// Demographic reports whether c is a demographic filter rather than an
// interest-style facet. Demographic categories are sent to the directory as
// standalone filters.
func (c Category) Demographic() bool {
	switch c {
	case CategoryGender, CategorySexualPreference, CategoryUserType,
		CategoryTravelerType, CategoryMilitaryStatus:
		return true
	}
	return false
}

// Vocabulary returns the canonical values offered for c. The returned slice
// must not be modified.
func (c Category) Vocabulary() []string {
	c.MustValid()
	return vocabularies[c]
}

// TopChoices returns the quick-select subset of c's vocabulary, or nil when
// the category has no quick-select group.
func (c Category) TopChoices() []string {
	c.MustValid()
	return topChoices[c]
}

// Canonical reports whether value is part of c's canonical vocabulary.
// Any other value in a selection is a custom entry.
func (c Category) Canonical(value string) bool {
	for _, v := range c.Vocabulary() {
		if v == value {
			return true
		}
	}
	return false
}
