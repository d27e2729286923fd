package discovery

import (
	"fmt"
	"strings"

	"github.com/pkordes/travel-match/backend/internal/domain"
	"github.com/pkordes/travel-match/backend/internal/facet"
)

// BuildRegistration assembles the finished signup payload from the account
// draft, the profile step and the facet selection.
//
// Pending custom text in profile is folded into a copy of sel first, so the
// caller's session is left untouched. The first failing check is returned as
// an error wrapping domain.ErrValidation.
func BuildRegistration(
	draft domain.AccountDraft,
	profile domain.ProfileInput,
	sel *facet.Selection,
	p Policy,
	today domain.Date,
) (domain.Registration, error) {
	if err := validateDraft(draft); err != nil {
		return domain.Registration{}, err
	}

	userType, ok := domain.ParseUserType(string(profile.UserType))
	if !ok {
		return domain.Registration{}, fmt.Errorf("%w: choose local, traveler or business", domain.ErrValidation)
	}

	age := CheckAge(profile.DateOfBirth, today)
	if err := age.Err(); err != nil {
		return domain.Registration{}, err
	}
	dob, _ := domain.ParseDate(profile.DateOfBirth)

	hometown := domain.Hometown{
		City:    strings.TrimSpace(profile.Hometown.City),
		State:   strings.TrimSpace(profile.Hometown.State),
		Country: strings.TrimSpace(profile.Hometown.Country),
	}
	business := strings.TrimSpace(profile.BusinessLocation)
	switch {
	case userType == domain.UserTypeBusiness && business == "":
		return domain.Registration{}, fmt.Errorf("%w: enter your business location", domain.ErrValidation)
	case userType != domain.UserTypeBusiness && hometown.City == "":
		return domain.Registration{}, fmt.Errorf("%w: enter your hometown city", domain.ErrValidation)
	}

	working := facet.New()
	if sel != nil {
		working = facet.FromSnapshot(sel.Snapshot())
	}
	for c, text := range profile.Pending {
		if !c.Valid() {
			continue
		}
		working.AddCustom(c, text, nil)
	}

	if err := ValidateMinimumSelections(working, p).Err(); err != nil {
		return domain.Registration{}, err
	}

	return domain.Registration{
		UserType:         userType,
		Email:            strings.TrimSpace(draft.Email),
		Username:         strings.TrimSpace(draft.Username),
		Name:             strings.TrimSpace(draft.Name),
		Password:         draft.Password,
		DateOfBirth:      dob,
		Hometown:         hometown,
		BusinessLocation: business,
		Facets:           mergedFacets(working),
		IsVeteran:        profile.IsVeteran,
		IsActiveDuty:     profile.IsActiveDuty,
		TravelsWithKids:  profile.TravelsWithKids,
	}, nil
}

func validateDraft(d domain.AccountDraft) error {
	for _, f := range []string{d.Email, d.Username, d.Name, d.Password} {
		if strings.TrimSpace(f) == "" {
			return fmt.Errorf("%w: account details are missing; restart signup", domain.ErrValidation)
		}
	}
	return nil
}

// mergedFacets lists canonical values first, then custom entries, per category.
func mergedFacets(sel *facet.Selection) map[domain.Category][]string {
	out := make(map[domain.Category][]string)
	for _, c := range sel.Snapshot().Categories() {
		var canonical []string
		for _, v := range sel.Values(c) {
			if c.Canonical(v) {
				canonical = append(canonical, v)
			}
		}
		if merged := MergeValues(canonical, sel.Custom(c)); len(merged) > 0 {
			out[c] = merged
		}
	}
	return out
}
