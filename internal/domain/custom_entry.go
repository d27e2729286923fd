package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CustomEntry is a free-text facet value some user typed instead of picking
// from the canonical vocabulary. Entries are global per category and are used
// to suggest popular custom values to other users.
// Identity is (Category, Slug); Value preserves the casing of the first user
// to enter it.
type CustomEntry struct {
	ID        uuid.UUID
	Category  Category
	Value     string
	Slug      string
	Uses      int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CheckCustomText rejects free text the directory cannot match as typed.
// The search index quotes values with backticks and has no escape for them.
func CheckCustomText(text string) error {
	if strings.Contains(text, "`") {
		return fmt.Errorf("%w: custom entries must not contain backticks", ErrValidation)
	}
	return nil
}
