package user

import (
	"context"

	"github.com/FransiTsena/fitme-sub001/internal/db"
)

type Repository interface {
	Create(ctx context.Context, name, email, passwordHash string, role Role) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id int) (*User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	FindByIDTx(ctx context.Context, q db.Querier, id int) (*User, error)
	UpdateRoleTx(ctx context.Context, q db.Querier, id int, role Role) error
}
