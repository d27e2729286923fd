package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-match/backend/internal/domain"
	"github.com/pkordes/travel-match/backend/internal/repo"
)

func newCustomEntryRepo(t *testing.T) repo.CustomEntryRepo {
	t.Helper()
	return repo.NewCustomEntryRepo(newTx(t))
}

func TestCustomEntryRepo_Record_Create(t *testing.T) {
	r := newCustomEntryRepo(t)

	got, err := r.Record(context.Background(), domain.CategoryInterests, "Urban Sketching", "urban-sketching")

	require.NoError(t, err)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, domain.CategoryInterests, got.Category)
	assert.Equal(t, "Urban Sketching", got.Value)
	assert.Equal(t, 1, got.Uses)
}

func TestCustomEntryRepo_Record_BumpsUsesKeepsFirstValue(t *testing.T) {
	r := newCustomEntryRepo(t)
	ctx := context.Background()

	first, err := r.Record(ctx, domain.CategoryInterests, "urban sketching", "urban-sketching")
	require.NoError(t, err)
	second, err := r.Record(ctx, domain.CategoryInterests, "Urban Sketching", "urban-sketching")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "urban sketching", second.Value)
	assert.Equal(t, 2, second.Uses)
}

func TestCustomEntryRepo_Record_CategoriesIndependent(t *testing.T) {
	r := newCustomEntryRepo(t)
	ctx := context.Background()

	a, err := r.Record(ctx, domain.CategoryInterests, "Paragliding", "paragliding")
	require.NoError(t, err)
	b, err := r.Record(ctx, domain.CategoryActivities, "Paragliding", "paragliding")
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 1, b.Uses)
}

func TestCustomEntryRepo_ListPaged(t *testing.T) {
	r := newCustomEntryRepo(t)
	ctx := context.Background()

	record := func(value, slug string, times int) {
		for range times {
			_, err := r.Record(ctx, domain.CategoryActivities, value, slug)
			require.NoError(t, err)
		}
	}
	record("Paragliding", "paragliding", 3)
	record("Parkour", "parkour", 1)
	record("Padel", "padel", 2)
	record("Kitesurfing", "kitesurfing", 5)

	page, total, err := r.ListPaged(ctx, domain.CategoryActivities, "pa", domain.PaginationParams{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page, 2)
	assert.Equal(t, "Paragliding", page[0].Value, "most used first")
	assert.Equal(t, "Padel", page[1].Value)

	page, total, err = r.ListPaged(ctx, domain.CategoryActivities, "pa", domain.PaginationParams{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page, 1)
	assert.Equal(t, "Parkour", page[0].Value)
}

func TestCustomEntryRepo_ListPaged_NoMatch(t *testing.T) {
	r := newCustomEntryRepo(t)

	page, total, err := r.ListPaged(context.Background(), domain.CategoryEvents, "zzz", domain.PaginationParams{Page: 1, Limit: 20})

	require.NoError(t, err)
	assert.Empty(t, page)
	assert.Zero(t, total)
}
