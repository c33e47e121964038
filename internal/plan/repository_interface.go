package plan

import "context"

type Repository interface {
	Create(ctx context.Context, p *Plan) error
	GetByID(ctx context.Context, id int) (*Plan, error)
	ListActiveByGym(ctx context.Context, gymID int) ([]Plan, error)
	Update(ctx context.Context, id int, req UpdatePlanRequest) (*Plan, error)
	SetActive(ctx context.Context, id int, active bool) (*Plan, error)
}
