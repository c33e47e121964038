package membership

import (
	"context"
	"time"

	"github.com/FransiTsena/fitme-sub001/internal/payment"
)

type Repository interface {
	HasActive(ctx context.Context, userID, gymID int, now time.Time) (bool, error)
	CreateWithPayment(ctx context.Context, m *Membership, p *payment.Payment, now time.Time) error
	GetByID(ctx context.Context, id int) (*Membership, error)
	ListByUserWithDetails(ctx context.Context, userID int) ([]MembershipDetails, error)
	Cancel(ctx context.Context, id int) (*Membership, error)
}
