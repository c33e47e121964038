package payment

import (
	"context"

	"github.com/FransiTsena/fitme-sub001/internal/db"
)

type Repository interface {
	CreateTx(ctx context.Context, q db.Querier, p *Payment) error
	ListByUser(ctx context.Context, userID, limit, offset int) ([]Payment, error)
}
