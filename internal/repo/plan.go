package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/travel-match/backend/internal/domain"
)

// PlanRepo defines the persistence operations for travel plans.
// Every read and write is scoped by user ID to enforce ownership.
type PlanRepo interface {
	// Create inserts a plan and returns it with id and timestamps populated.
	// Returns domain.ErrNotFound if the user does not exist.
	Create(ctx context.Context, plan domain.TravelPlan) (domain.TravelPlan, error)

	// GetByID retrieves one plan owned by userID.
	// Returns domain.ErrNotFound if no such plan exists for that user.
	GetByID(ctx context.Context, userID, planID uuid.UUID) (domain.TravelPlan, error)

	// ListByUser returns all of a user's plans in entry order, oldest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.TravelPlan, error)

	// Update overwrites destination and dates of an existing plan.
	Update(ctx context.Context, plan domain.TravelPlan) (domain.TravelPlan, error)

	// Close sets the end date of an open-ended plan.
	// Returns domain.ErrNotFound if the plan does not exist or already has an end date.
	Close(ctx context.Context, userID, planID uuid.UUID, end domain.Date) (domain.TravelPlan, error)

	// Delete removes a plan. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, userID, planID uuid.UUID) error
}

type pgPlanRepo struct {
	db db
}

// NewPlanRepo constructs a PlanRepo backed by db.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx.
func NewPlanRepo(db db) PlanRepo {
	return &pgPlanRepo{db: db}
}

const planColumns = `id, user_id, destination, start_date, end_date, created_at, updated_at`

func (r *pgPlanRepo) Create(ctx context.Context, plan domain.TravelPlan) (domain.TravelPlan, error) {
	const q = `
		INSERT INTO travel_plans (user_id, destination, start_date, end_date)
		VALUES (@user_id, @destination, @start_date, @end_date)
		RETURNING ` + planColumns

	args := pgx.NamedArgs{
		"user_id":     plan.UserID,
		"destination": plan.Destination,
		"start_date":  pgDate(plan.StartDate),
		"end_date":    pgDatePtr(plan.EndDate),
	}

	result, err := scanPlan(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.TravelPlan{}, fmt.Errorf("repo.PlanRepo.Create: %w", translate(err))
	}
	return result, nil
}

func (r *pgPlanRepo) GetByID(ctx context.Context, userID, planID uuid.UUID) (domain.TravelPlan, error) {
	const q = `
		SELECT ` + planColumns + `
		FROM travel_plans
		WHERE id = @id AND user_id = @user_id`

	result, err := scanPlan(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": planID, "user_id": userID}))
	if err != nil {
		return domain.TravelPlan{}, fmt.Errorf("repo.PlanRepo.GetByID: %w", translate(err))
	}
	return result, nil
}

// ListByUser orders by seq so the "last listed" plan is the last one entered,
// which decides ties between overlapping plans.
func (r *pgPlanRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.TravelPlan, error) {
	const q = `
		SELECT ` + planColumns + `
		FROM travel_plans
		WHERE user_id = @user_id
		ORDER BY seq ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("repo.PlanRepo.ListByUser: %w", err)
	}
	defer rows.Close()

	plans := []domain.TravelPlan{}
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.PlanRepo.ListByUser: scan: %w", err)
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.PlanRepo.ListByUser: rows: %w", err)
	}
	return plans, nil
}

func (r *pgPlanRepo) Update(ctx context.Context, plan domain.TravelPlan) (domain.TravelPlan, error) {
	const q = `
		UPDATE travel_plans
		SET destination = @destination,
		    start_date  = @start_date,
		    end_date    = @end_date,
		    updated_at  = now()
		WHERE id = @id AND user_id = @user_id
		RETURNING ` + planColumns

	args := pgx.NamedArgs{
		"id":          plan.ID,
		"user_id":     plan.UserID,
		"destination": plan.Destination,
		"start_date":  pgDate(plan.StartDate),
		"end_date":    pgDatePtr(plan.EndDate),
	}

	result, err := scanPlan(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.TravelPlan{}, fmt.Errorf("repo.PlanRepo.Update: %w", translate(err))
	}
	return result, nil
}

func (r *pgPlanRepo) Close(ctx context.Context, userID, planID uuid.UUID, end domain.Date) (domain.TravelPlan, error) {
	const q = `
		UPDATE travel_plans
		SET end_date   = @end_date,
		    updated_at = now()
		WHERE id = @id AND user_id = @user_id AND end_date IS NULL
		RETURNING ` + planColumns

	args := pgx.NamedArgs{"id": planID, "user_id": userID, "end_date": pgDate(end)}

	result, err := scanPlan(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.TravelPlan{}, fmt.Errorf("repo.PlanRepo.Close: %w", translate(err))
	}
	return result, nil
}

func (r *pgPlanRepo) Delete(ctx context.Context, userID, planID uuid.UUID) error {
	const q = `DELETE FROM travel_plans WHERE id = @id AND user_id = @user_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": planID, "user_id": userID})
	if err != nil {
		return fmt.Errorf("repo.PlanRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.PlanRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func scanPlan(s scanner) (domain.TravelPlan, error) {
	var (
		p              domain.TravelPlan
		id, userID     pgtype.UUID
		start, endDate pgtype.Date
	)
	if err := s.Scan(&id, &userID, &p.Destination, &start, &endDate, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return domain.TravelPlan{}, err
	}

	p.ID = uuid.UUID(id.Bytes)
	p.UserID = uuid.UUID(userID.Bytes)
	p.StartDate = fromPgDate(start)
	if endDate.Valid {
		ed := fromPgDate(endDate)
		p.EndDate = &ed
	}
	return p, nil
}
