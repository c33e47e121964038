package gym

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateGym(ctx context.Context, ownerID int, name, location string) (*Gym, error) {
	query := `
		INSERT INTO gyms (owner_id, name, location)
		VALUES ($1, $2, $3)
		RETURNING id, owner_id, name, location, created_at
	`

	var gym Gym
	if err := r.db.GetContext(ctx, &gym, query, ownerID, name, location); err != nil {
		return nil, err
	}

	return &gym, nil
}

func (r *repository) GetAllGyms(ctx context.Context) ([]Gym, error) {
	query := `
		SELECT id, owner_id, name, location, created_at
		FROM gyms
		ORDER BY created_at DESC
	`

	gyms := []Gym{}
	if err := r.db.SelectContext(ctx, &gyms, query); err != nil {
		return nil, err
	}

	return gyms, nil
}

func (r *repository) GetGymByID(ctx context.Context, id int) (*Gym, error) {
	query := `
		SELECT id, owner_id, name, location, created_at
		FROM gyms
		WHERE id = $1
	`

	var gym Gym
	err := r.db.GetContext(ctx, &gym, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGymNotFound
	}
	if err != nil {
		return nil, err
	}

	return &gym, nil
}

func (r *repository) ListByOwner(ctx context.Context, ownerID int) ([]Gym, error) {
	query := `
		SELECT id, owner_id, name, location, created_at
		FROM gyms
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`

	gyms := []Gym{}
	if err := r.db.SelectContext(ctx, &gyms, query, ownerID); err != nil {
		return nil, err
	}

	return gyms, nil
}
