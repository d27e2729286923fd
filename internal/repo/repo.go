// Package repo contains all Postgres access for the Travel Match API.
// Each resource has its own file with an interface and a pgx implementation.
// Only SQL and type mapping live here.
package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/travel-match/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn and pgx.Tx.
// Integration tests pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// scanner is satisfied by both pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// Postgres error codes the repos translate.
const (
	pgCheckViolation      = "23514"
	pgForeignKeyViolation = "23503"
)

// translate maps driver errors onto domain sentinels. No rows becomes
// ErrNotFound; constraint violations become ErrValidation.
func translate(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgCheckViolation:
			return errors.Join(domain.ErrValidation, err)
		case pgForeignKeyViolation:
			return errors.Join(domain.ErrNotFound, err)
		}
	}
	return err
}

// pgDate converts a domain.Date for a DATE column. The zero Date is NULL.
func pgDate(d domain.Date) pgtype.Date {
	if d.IsZero() {
		return pgtype.Date{}
	}
	return pgtype.Date{Time: d.Time(), Valid: true}
}

// pgDatePtr is pgDate for optional dates.
func pgDatePtr(d *domain.Date) pgtype.Date {
	if d == nil {
		return pgtype.Date{}
	}
	return pgDate(*d)
}

// fromPgDate reads a DATE column. pgx decodes DATE as UTC midnight, so the
// calendar day is taken in UTC.
func fromPgDate(d pgtype.Date) domain.Date {
	if !d.Valid {
		return domain.Date{}
	}
	return domain.DateOf(d.Time.UTC())
}
