package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/travel-match/backend/internal/domain"
)

// UserRepo reads the user profiles owned by the account subsystem.
// This service never writes users.
type UserRepo interface {
	// GetByID returns the user or domain.ErrNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)
}

type pgUserRepo struct {
	db db
}

// NewUserRepo constructs a UserRepo backed by db.
func NewUserRepo(db db) UserRepo {
	return &pgUserRepo{db: db}
}

func (r *pgUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	const q = `
		SELECT id, username, name, user_type,
		       hometown_city, hometown_state, hometown_country,
		       business_location, created_at
		FROM users
		WHERE id = @id`

	var (
		u        domain.User
		uid      pgtype.UUID
		userType string
	)
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}).Scan(
		&uid, &u.Username, &u.Name, &userType,
		&u.Hometown.City, &u.Hometown.State, &u.Hometown.Country,
		&u.BusinessLocation, &u.CreatedAt,
	)
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByID: %w", translate(err))
	}

	u.ID = uuid.UUID(uid.Bytes)
	u.Type = domain.UserType(userType)
	return u, nil
}
