package payment

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/FransiTsena/fitme-sub001/internal/db"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// CreateTx inserts p and fills in its ID and CreatedAt.
func (r *repository) CreateTx(ctx context.Context, q db.Querier, p *Payment) error {
	err := sqlx.GetContext(ctx, q, p,
		`INSERT INTO payments (user_id, amount_cents, currency, status, method, type, reference)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, user_id, amount_cents, currency, status, method, type, reference, created_at`,
		p.UserID, p.AmountCents, p.Currency, p.Status, p.Method, p.Type, p.Reference,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

func (r *repository) ListByUser(ctx context.Context, userID, limit, offset int) ([]Payment, error) {
	if limit <= 0 {
		limit = 50
	}

	payments := []Payment{}
	err := r.db.SelectContext(ctx, &payments, `
		SELECT id, user_id, amount_cents, currency, status, method, type, reference, created_at
		FROM payments
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	return payments, nil
}
