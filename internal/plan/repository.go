package plan

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/FransiTsena/fitme-sub001/internal/apperr"
)

var ErrPlanNotFound = apperr.Wrap(apperr.ErrNotFound, "membership plan not found")

const planColumns = `id, gym_id, owner_id, title, description, duration_in_days, price_cents, is_active, created_at, updated_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Plan) error {
	query := `
		INSERT INTO membership_plans (gym_id, owner_id, title, description, duration_in_days, price_cents, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE)
		RETURNING ` + planColumns

	return r.db.GetContext(ctx, p, query, p.GymID, p.OwnerID, p.Title, p.Description, p.DurationInDays, p.PriceCents)
}

func (r *repository) GetByID(ctx context.Context, id int) (*Plan, error) {
	var p Plan
	err := r.db.GetContext(ctx, &p, `SELECT `+planColumns+` FROM membership_plans WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) ListActiveByGym(ctx context.Context, gymID int) ([]Plan, error) {
	query := `
		SELECT ` + planColumns + `
		FROM membership_plans
		WHERE gym_id = $1 AND is_active = TRUE
		ORDER BY created_at DESC
	`

	plans := []Plan{}
	if err := r.db.SelectContext(ctx, &plans, query, gymID); err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *repository) Update(ctx context.Context, id int, req UpdatePlanRequest) (*Plan, error) {
	query := `
		UPDATE membership_plans
		SET title = COALESCE($2, title),
		    description = COALESCE($3, description),
		    duration_in_days = COALESCE($4, duration_in_days),
		    price_cents = COALESCE($5, price_cents),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING ` + planColumns

	return r.getReturning(ctx, query, id, req.Title, req.Description, req.DurationInDays, req.PriceCents)
}

func (r *repository) SetActive(ctx context.Context, id int, active bool) (*Plan, error) {
	query := `
		UPDATE membership_plans
		SET is_active = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + planColumns

	return r.getReturning(ctx, query, id, active)
}

func (r *repository) getReturning(ctx context.Context, query string, args ...interface{}) (*Plan, error) {
	var p Plan
	err := r.db.GetContext(ctx, &p, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
