package trainer

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/FransiTsena/fitme-sub001/internal/apperr"
	"github.com/FransiTsena/fitme-sub001/internal/db"
)

var (
	ErrTrainerNotFound = apperr.Wrap(apperr.ErrNotFound, "trainer profile not found")
	ErrAlreadyTrainer  = apperr.Wrap(apperr.ErrInvalidCandidate, "user already has a trainer profile")
)

const trainerColumns = `id, user_id, gym_id, specialization, bio, rating_average, rating_count, is_active, created_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id int) (*Trainer, error) {
	return r.getOne(ctx, `SELECT `+trainerColumns+` FROM trainers WHERE id = $1`, id)
}

func (r *repository) GetByUserID(ctx context.Context, userID int) (*Trainer, error) {
	return r.getOne(ctx, `SELECT `+trainerColumns+` FROM trainers WHERE user_id = $1`, userID)
}

func (r *repository) getOne(ctx context.Context, query string, arg int) (*Trainer, error) {
	var t Trainer
	err := r.db.GetContext(ctx, &t, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTrainerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) ListByGym(ctx context.Context, gymID int) ([]Trainer, error) {
	query := `
		SELECT ` + trainerColumns + `
		FROM trainers
		WHERE gym_id = $1 AND is_active = TRUE
		ORDER BY rating_average DESC, id
	`

	trainers := []Trainer{}
	if err := r.db.SelectContext(ctx, &trainers, query, gymID); err != nil {
		return nil, err
	}
	return trainers, nil
}

// UpdateProfile leaves a field untouched when it is nil.
func (r *repository) UpdateProfile(ctx context.Context, id int, specialization []string, bio *string) (*Trainer, error) {
	var spec interface{}
	if specialization != nil {
		spec = pq.StringArray(specialization)
	}

	query := `
		UPDATE trainers
		SET specialization = COALESCE($2, specialization),
		    bio = COALESCE($3, bio)
		WHERE id = $1
		RETURNING ` + trainerColumns

	var t Trainer
	err := r.db.GetContext(ctx, &t, query, id, spec, bio)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTrainerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateTx inserts an empty, active profile. Runs inside the promotion acceptance transaction.
func (r *repository) CreateTx(ctx context.Context, q db.Querier, userID, gymID int) (*Trainer, error) {
	query := `
		INSERT INTO trainers (user_id, gym_id, specialization, is_active)
		VALUES ($1, $2, '{}', TRUE)
		RETURNING ` + trainerColumns

	var t Trainer
	err := sqlx.GetContext(ctx, q, &t, query, userID, gymID)
	if db.IsUniqueViolation(err, "trainers_user_id_key") {
		return nil, ErrAlreadyTrainer
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}
