package trainer

import (
	"context"

	"github.com/FransiTsena/fitme-sub001/internal/db"
)

type Repository interface {
	GetByID(ctx context.Context, id int) (*Trainer, error)
	GetByUserID(ctx context.Context, userID int) (*Trainer, error)
	ListByGym(ctx context.Context, gymID int) ([]Trainer, error)
	UpdateProfile(ctx context.Context, id int, specialization []string, bio *string) (*Trainer, error)
	CreateTx(ctx context.Context, q db.Querier, userID, gymID int) (*Trainer, error)
}
