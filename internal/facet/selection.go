// Package facet holds the per-session selection store: which values a user has
// chosen in each facet category.
//
// A Selection is an explicit value owned by one signup or search session. It
// is never global; callers construct one per session and pass it to the query
// builder. Every mutation goes through Toggle, AddCustom, Remove, SelectAll or
// ClearAll, which together guarantee that no category ever contains a blank
// or duplicate value.
package facet

import (
	"strings"
	"sync"

	"github.com/pkordes/travel-match/backend/internal/domain"
)

// Selection is the set of chosen values per category.
// Values keep insertion order for display; matching treats them as sets.
// A Selection is safe for concurrent use; each operation is applied atomically.
type Selection struct {
	mu   sync.Mutex
	sets map[domain.Category][]string
}

// New returns an empty Selection.
func New() *Selection {
	return &Selection{sets: make(map[domain.Category][]string)}
}

// Toggle removes value from c if present, otherwise appends it.
// Values are trimmed; a blank value is ignored. Panics on an unknown category.
func (s *Selection) Toggle(c domain.Category, value string) {
	c.MustValid()
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := indexOf(s.sets[c], value); i >= 0 {
		s.removeAt(c, i)
		return
	}
	s.sets[c] = append(s.sets[c], value)
}

// AddCustom is the free-text entry path. It trims rawText and appends it to c
// unless the result is blank or already present (case-sensitive). On a
// successful add it calls clearBuffer, if non-nil, so the caller can reset its
// input buffer. It reports whether the value was added.
func (s *Selection) AddCustom(c domain.Category, rawText string, clearBuffer func()) bool {
	c.MustValid()
	value := strings.TrimSpace(rawText)
	if value == "" {
		return false
	}

	s.mu.Lock()
	if indexOf(s.sets[c], value) >= 0 {
		s.mu.Unlock()
		return false
	}
	s.sets[c] = append(s.sets[c], value)
	s.mu.Unlock()

	if clearBuffer != nil {
		clearBuffer()
	}
	return true
}

// Remove deletes value from c. It is a no-op when value is absent.
func (s *Selection) Remove(c domain.Category, value string) {
	c.MustValid()
	value = strings.TrimSpace(value)

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := indexOf(s.sets[c], value); i >= 0 {
		s.removeAt(c, i)
	}
}

// SelectAll adds every canonical value of subset to c that is not already
// selected. Values in subset outside c's vocabulary are ignored, and custom
// entries or other canonical values already in c are left alone.
func (s *Selection) SelectAll(c domain.Category, subset []string) {
	c.MustValid()

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, v := range subset {
		if !c.Canonical(v) || indexOf(s.sets[c], v) >= 0 {
			continue
		}
		s.sets[c] = append(s.sets[c], v)
	}
}

// ClearAll removes every canonical value of subset from c, leaving custom
// entries and canonical values outside subset untouched.
func (s *Selection) ClearAll(c domain.Category, subset []string) {
	c.MustValid()

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, v := range subset {
		if !c.Canonical(v) {
			continue
		}
		if i := indexOf(s.sets[c], v); i >= 0 {
			s.removeAt(c, i)
		}
	}
}

// Total returns the number of selected values across the given categories.
func (s *Selection) Total(categories ...domain.Category) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, c := range categories {
		c.MustValid()
		n += len(s.sets[c])
	}
	return n
}

// Len returns the number of values selected in c.
func (s *Selection) Len(c domain.Category) int {
	return s.Total(c)
}

// Has reports whether value is selected in c.
func (s *Selection) Has(c domain.Category, value string) bool {
	c.MustValid()

	s.mu.Lock()
	defer s.mu.Unlock()
	return indexOf(s.sets[c], strings.TrimSpace(value)) >= 0
}

// Values returns a copy of c's values in insertion order.
func (s *Selection) Values(c domain.Category) []string {
	c.MustValid()

	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.sets[c]...)
}

// Custom returns the values in c that are not part of its canonical vocabulary.
func (s *Selection) Custom(c domain.Category) []string {
	var out []string
	for _, v := range s.Values(c) {
		if !c.Canonical(v) {
			out = append(out, v)
		}
	}
	return out
}

// IsEmpty reports whether no category has any value.
func (s *Selection) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, vs := range s.sets {
		if len(vs) > 0 {
			return false
		}
	}
	return true
}

func (s *Selection) removeAt(c domain.Category, i int) {
	vs := s.sets[c]
	s.sets[c] = append(vs[:i:i], vs[i+1:]...)
	if len(s.sets[c]) == 0 {
		delete(s.sets, c)
	}
}

func indexOf(vs []string, v string) int {
	for i, x := range vs {
		if x == v {
			return i
		}
	}
	return -1
}
