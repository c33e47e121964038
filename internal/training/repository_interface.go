package training

import "context"

type Repository interface {
	Create(ctx context.Context, s *Session) error
	GetByID(ctx context.Context, id int) (*Session, error)
	ListActiveByGym(ctx context.Context, gymID int) ([]Session, error)
	ListByTrainer(ctx context.Context, trainerID int) ([]Session, error)
	Update(ctx context.Context, id int, req UpdateSessionRequest) (*Session, error)
	SetActive(ctx context.Context, id int, active bool) (*Session, error)
}
