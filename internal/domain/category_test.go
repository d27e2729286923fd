package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-match/backend/internal/domain"
)

func TestParseCategory_RoundTripsEveryCategory(t *testing.T) {
	for _, c := range domain.Categories {
		got, ok := domain.ParseCategory(c.String())
		require.True(t, ok, c.String())
		assert.Equal(t, c, got)
		assert.NotEmpty(t, c.Vocabulary(), c.String())
	}
}

func TestParseCategory_Unknown(t *testing.T) {
	_, ok := domain.ParseCategory("hobbies")
	assert.False(t, ok)
}

func TestCategory_UnknownPanics(t *testing.T) {
	assert.Panics(t, func() { domain.Category(200).Vocabulary() })
}

func TestCategory_TopChoicesAreCanonical(t *testing.T) {
	for _, c := range domain.Categories {
		for _, v := range c.TopChoices() {
			assert.True(t, c.Canonical(v), "%s top choice %q must be canonical", c, v)
		}
	}
}

func TestCategory_JSONMapKeys(t *testing.T) {
	in := map[domain.Category][]string{
		domain.CategoryInterests: {"Music"},
		domain.CategoryGender:    {"Female"},
	}

	b, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"interests":["Music"],"gender":["Female"]}`, string(b))

	var out map[domain.Category][]string
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, in, out)
}

func TestCategory_Demographic(t *testing.T) {
	assert.False(t, domain.CategoryInterests.Demographic())
	assert.True(t, domain.CategoryMilitaryStatus.Demographic())
}
