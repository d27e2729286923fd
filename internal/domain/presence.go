package domain

import "fmt"

// BucketLabel says why a location was chosen for a user.
type BucketLabel string

const (
	LabelHometown  BucketLabel = "hometown"
	LabelTraveling BucketLabel = "traveling"
)

// BucketKind selects which question the resolver answers.
type BucketKind string

const (
	// BucketCurrent answers "where is this user physically today".
	BucketCurrent BucketKind = "current"
	// BucketLocals answers "where does this user call home", regardless of travel.
	BucketLocals BucketKind = "locals"
)

// ParseBucketKind validates a wire value. An empty string means BucketCurrent.
func ParseBucketKind(s string) (BucketKind, error) {
	switch k := BucketKind(s); k {
	case "":
		return BucketCurrent, nil
	case BucketCurrent, BucketLocals:
		return k, nil
	}
	return "", fmt.Errorf("%w: unknown bucket kind %q", ErrValidation, s)
}

// PresenceBucket is the single location a user is grouped under for discovery.
// It is recomputed on demand and never stored.
// An empty Location means the user cannot be searched yet.
type PresenceBucket struct {
	Label    BucketLabel `json:"label"`
	Location string      `json:"location"`
}

// Searchable reports whether the bucket resolved to a location.
func (b PresenceBucket) Searchable() bool {
	return b.Location != ""
}
