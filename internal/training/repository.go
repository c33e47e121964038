package training

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/FransiTsena/fitme-sub001/internal/apperr"
)

var ErrSessionNotFound = apperr.Wrap(apperr.ErrNotFound, "training session not found")

const sessionColumns = `id, trainer_id, gym_id, title, description, duration_minutes, price_cents, is_active, created_at, updated_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, s *Session) error {
	query := `
		INSERT INTO training_sessions (trainer_id, gym_id, title, description, duration_minutes, price_cents, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE)
		RETURNING ` + sessionColumns

	return r.db.GetContext(ctx, s, query, s.TrainerID, s.GymID, s.Title, s.Description, s.DurationMinutes, s.PriceCents)
}

func (r *repository) GetByID(ctx context.Context, id int) (*Session, error) {
	return r.one(ctx, `SELECT `+sessionColumns+` FROM training_sessions WHERE id = $1`, id)
}

func (r *repository) ListActiveByGym(ctx context.Context, gymID int) ([]Session, error) {
	sessions := []Session{}
	err := r.db.SelectContext(ctx, &sessions, `
		SELECT `+sessionColumns+`
		FROM training_sessions
		WHERE gym_id = $1 AND is_active = TRUE
		ORDER BY created_at DESC
	`, gymID)
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *repository) ListByTrainer(ctx context.Context, trainerID int) ([]Session, error) {
	sessions := []Session{}
	err := r.db.SelectContext(ctx, &sessions, `
		SELECT `+sessionColumns+`
		FROM training_sessions
		WHERE trainer_id = $1
		ORDER BY created_at DESC
	`, trainerID)
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *repository) Update(ctx context.Context, id int, req UpdateSessionRequest) (*Session, error) {
	return r.one(ctx, `
		UPDATE training_sessions
		SET title = COALESCE($2, title),
		    description = COALESCE($3, description),
		    duration_minutes = COALESCE($4, duration_minutes),
		    price_cents = COALESCE($5, price_cents),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING `+sessionColumns,
		id, req.Title, req.Description, req.DurationMinutes, req.PriceCents)
}

func (r *repository) SetActive(ctx context.Context, id int, active bool) (*Session, error) {
	return r.one(ctx, `
		UPDATE training_sessions
		SET is_active = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING `+sessionColumns,
		id, active)
}

func (r *repository) one(ctx context.Context, query string, args ...interface{}) (*Session, error) {
	var s Session
	err := r.db.GetContext(ctx, &s, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}
