package booking

import (
	"context"
	"time"

	"github.com/FransiTsena/fitme-sub001/internal/payment"
)

type Repository interface {
	SlotTaken(ctx context.Context, trainerID int, date time.Time, timeSlot string) (bool, error)
	CreateWithPayment(ctx context.Context, b *Booking, p *payment.Payment) error
	GetByID(ctx context.Context, id int) (*Booking, error)
	UpdateStatus(ctx context.Context, id int, status Status) (*Booking, error)
	ListByMember(ctx context.Context, memberID int) ([]BookingWithDetails, error)
	ListByTrainer(ctx context.Context, trainerID int) ([]BookingWithDetails, error)
}
