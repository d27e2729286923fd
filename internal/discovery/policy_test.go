package discovery_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-match/backend/internal/discovery"
	"github.com/pkordes/travel-match/backend/internal/domain"
	"github.com/pkordes/travel-match/backend/internal/facet"
)

func selectN(sel *facet.Selection, c domain.Category, n int) {
	for _, v := range c.Vocabulary()[:n] {
		sel.Toggle(c, v)
	}
}

func TestValidateMinimumSelections_ShortByOne(t *testing.T) {
	sel := facet.New()
	selectN(sel, domain.CategoryInterests, 6)
	selectN(sel, domain.CategoryLanguages, 3)

	r := discovery.ValidateMinimumSelections(sel, discovery.PolicyTraveler)

	assert.False(t, r.Passed)
	assert.Equal(t, 9, r.Selected)
	assert.Equal(t, 10, r.Required)
	assert.Equal(t, 1, r.Shortfall)
	assert.Equal(t, "select 1 more item", r.Message)
	assert.Equal(t, discovery.StatePartiallySelected, r.State)
	require.Error(t, r.Err())
	assert.True(t, errors.Is(r.Err(), domain.ErrValidation))

	sel.Toggle(domain.CategoryActivities, "Hiking")
	r = discovery.ValidateMinimumSelections(sel, discovery.PolicyTraveler)

	assert.True(t, r.Passed)
	assert.Zero(t, r.Shortfall)
	assert.Empty(t, r.Message)
	assert.Equal(t, discovery.StateThresholdMet, r.State)
	assert.NoError(t, r.Err())
}

func TestValidateMinimumSelections_IgnoresOtherCategories(t *testing.T) {
	sel := facet.New()
	selectN(sel, domain.CategoryGender, 3)
	selectN(sel, domain.CategoryTravelerType, 5)

	r := discovery.ValidateMinimumSelections(sel, discovery.PolicyTraveler)

	assert.Equal(t, 0, r.Selected)
	assert.Equal(t, "select 10 more items", r.Message)
	assert.Equal(t, discovery.StateEmpty, r.State)
}

func TestValidateMinimumSelections_CustomEntriesCount(t *testing.T) {
	sel := facet.New()
	selectN(sel, domain.CategoryInterests, 2)
	sel.AddCustom(domain.CategoryInterests, "Birdwatching", nil)

	r := discovery.ValidateMinimumSelections(sel, discovery.PolicyLocal)

	assert.True(t, r.Passed)
	assert.Equal(t, 3, r.Selected)
}

func TestValidateMinimumSelections_Idempotent(t *testing.T) {
	sel := facet.New()
	selectN(sel, domain.CategoryInterests, 4)

	first := discovery.ValidateMinimumSelections(sel, discovery.PolicyTraveler)
	second := discovery.ValidateMinimumSelections(sel, discovery.PolicyTraveler)

	assert.Equal(t, first, second)
	assert.Equal(t, 4, sel.Len(domain.CategoryInterests))
}

func TestValidateMinimumSelections_NilSelection(t *testing.T) {
	r := discovery.ValidateMinimumSelections(nil, discovery.PolicyLocal)
	assert.Equal(t, 3, r.Shortfall)
	assert.Equal(t, discovery.StateEmpty, r.State)
}

func TestStateOf_Transitions(t *testing.T) {
	sel := facet.New()
	assert.Equal(t, discovery.StateEmpty, discovery.StateOf(sel, discovery.PolicyLocal))

	sel.Toggle(domain.CategoryInterests, "Music")
	assert.Equal(t, discovery.StatePartiallySelected, discovery.StateOf(sel, discovery.PolicyLocal))

	selectN(sel, domain.CategoryInterests, 2)
	assert.Equal(t, discovery.StateThresholdMet, discovery.StateOf(sel, discovery.PolicyLocal))

	sel.Toggle(domain.CategoryInterests, "Music")
	assert.Equal(t, discovery.StatePartiallySelected, discovery.StateOf(sel, discovery.PolicyLocal))
}

func TestPolicyByName(t *testing.T) {
	for _, p := range discovery.Policies() {
		got, ok := discovery.PolicyByName(p.Name)
		require.True(t, ok, p.Name)
		assert.Equal(t, p, got)
	}
	_, ok := discovery.PolicyByName("nope")
	assert.False(t, ok)
}

func TestDefaultPolicy(t *testing.T) {
	assert.Equal(t, discovery.PolicyTraveler, discovery.DefaultPolicy(domain.UserTypeTraveler))
	assert.Equal(t, discovery.PolicyLocalComplete, discovery.DefaultPolicy(domain.UserTypeLocal))
	assert.Equal(t, discovery.PolicyBusiness, discovery.DefaultPolicy(domain.UserTypeBusiness))
}
