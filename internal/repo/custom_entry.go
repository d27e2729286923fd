package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/travel-match/backend/internal/domain"
)

// CustomEntryRepo records free-text facet values and lists popular ones.
type CustomEntryRepo interface {
	// Record inserts an entry, or bumps uses on an existing (category, slug).
	// The value of the first writer is preserved on conflict.
	Record(ctx context.Context, c domain.Category, value, slug string) (domain.CustomEntry, error)

	// ListPaged returns one page of entries in category whose slug starts with
	// prefix, most used first, and the total matching count.
	ListPaged(ctx context.Context, c domain.Category, prefix string, p domain.PaginationParams) ([]domain.CustomEntry, int64, error)
}

type pgCustomEntryRepo struct {
	db db
}

// NewCustomEntryRepo constructs a CustomEntryRepo backed by db.
func NewCustomEntryRepo(db db) CustomEntryRepo {
	return &pgCustomEntryRepo{db: db}
}

func (r *pgCustomEntryRepo) Record(ctx context.Context, c domain.Category, value, slug string) (domain.CustomEntry, error) {
	const q = `
		INSERT INTO custom_entries (category, value, slug)
		VALUES (@category, @value, @slug)
		ON CONFLICT (category, slug) DO UPDATE
		SET uses       = custom_entries.uses + 1,
		    updated_at = now()
		RETURNING id, category, value, slug, uses, created_at, updated_at`

	args := pgx.NamedArgs{"category": c.String(), "value": value, "slug": slug}

	result, err := scanCustomEntry(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.CustomEntry{}, fmt.Errorf("repo.CustomEntryRepo.Record: %w", translate(err))
	}
	return result, nil
}

// ListPaged uses a window count so the page and the total come back in one
// round trip.
func (r *pgCustomEntryRepo) ListPaged(ctx context.Context, c domain.Category, prefix string, p domain.PaginationParams) ([]domain.CustomEntry, int64, error) {
	const q = `
		SELECT id, category, value, slug, uses, created_at, updated_at,
		       count(*) OVER () AS total
		FROM custom_entries
		WHERE category = @category
		  AND slug LIKE @prefix || '%'
		ORDER BY uses DESC, slug ASC
		LIMIT @limit OFFSET @offset`

	args := pgx.NamedArgs{
		"category": c.String(),
		"prefix":   prefix,
		"limit":    p.Limit,
		"offset":   p.Offset(),
	}

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.CustomEntryRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	var (
		entries = []domain.CustomEntry{}
		total   int64
	)
	for rows.Next() {
		var (
			e        domain.CustomEntry
			id       pgtype.UUID
			category string
		)
		if err := rows.Scan(&id, &category, &e.Value, &e.Slug, &e.Uses, &e.CreatedAt, &e.UpdatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("repo.CustomEntryRepo.ListPaged: scan: %w", err)
		}
		e.ID = uuid.UUID(id.Bytes)
		e.Category, _ = domain.ParseCategory(category)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.CustomEntryRepo.ListPaged: rows: %w", err)
	}
	return entries, total, nil
}

func scanCustomEntry(s scanner) (domain.CustomEntry, error) {
	var (
		e        domain.CustomEntry
		id       pgtype.UUID
		category string
	)
	if err := s.Scan(&id, &category, &e.Value, &e.Slug, &e.Uses, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return domain.CustomEntry{}, err
	}
	e.ID = uuid.UUID(id.Bytes)
	e.Category, _ = domain.ParseCategory(category)
	return e, nil
}
