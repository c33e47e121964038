package promotion

import (
	"context"
	"time"
)

type Repository interface {
	HasPending(ctx context.Context, gymID, memberID int, now time.Time) (bool, error)
	CreatePending(ctx context.Context, p *Promotion, now time.Time) error
	GetByID(ctx context.Context, id int) (*Promotion, error)
	ListByGym(ctx context.Context, gymID int) ([]PromotionView, error)
	Accept(ctx context.Context, tokenHash string, now time.Time) (*AcceptResult, error)
	Reject(ctx context.Context, tokenHash string, now time.Time) (*Promotion, error)
	RotateToken(ctx context.Context, p *Promotion, tokenHash string, now, expiresAt time.Time) (*Promotion, error)
}
