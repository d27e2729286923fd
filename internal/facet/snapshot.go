package facet

import (
	"strings"

	"github.com/pkordes/travel-match/backend/internal/domain"
)

// Snapshot is an immutable copy of a Selection, keyed by category.
// Only non-empty categories appear. It marshals to JSON as
// {"interests":["Music",...],...} and is what sessions persist and what the
// query builder reads.
type Snapshot map[domain.Category][]string

// Snapshot returns a deep copy of the current selections.
func (s *Selection) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(Snapshot, len(s.sets))
	for c, vs := range s.sets {
		if len(vs) == 0 {
			continue
		}
		out[c] = append([]string(nil), vs...)
	}
	return out
}

// FromSnapshot rebuilds a Selection from a stored Snapshot.
// Values are re-sanitised on the way in, so a tampered or legacy snapshot
// cannot smuggle blanks, duplicates or unknown categories into a session.
func FromSnapshot(snap Snapshot) *Selection {
	s := New()
	for _, c := range domain.Categories {
		for _, v := range snap[c] {
			v = strings.TrimSpace(v)
			if v == "" || indexOf(s.sets[c], v) >= 0 {
				continue
			}
			s.sets[c] = append(s.sets[c], v)
		}
	}
	return s
}

// Categories returns the categories present in the snapshot, in the canonical
// order of domain.Categories.
func (snap Snapshot) Categories() []domain.Category {
	var out []domain.Category
	for _, c := range domain.Categories {
		if len(snap[c]) > 0 {
			out = append(out, c)
		}
	}
	return out
}
