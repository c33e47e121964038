package payment

import (
	"time"

	"github.com/google/uuid"
)

type Status string
type Type string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"

	TypeMembership Type = "membership"
	TypeSession    Type = "session"
	TypeOther      Type = "other"

	// MethodManual marks payments recorded without a gateway.
	MethodManual = "manual"
)

// Payment is an immutable ledger record.
type Payment struct {
	ID          int       `db:"id" json:"id"`
	UserID      int       `db:"user_id" json:"user_id"`
	AmountCents int64     `db:"amount_cents" json:"amount_cents"`
	Currency    string    `db:"currency" json:"currency"`
	Status      Status    `db:"status" json:"status"`
	Method      string    `db:"method" json:"method"`
	Type        Type      `db:"type" json:"type"`
	Reference   string    `db:"reference" json:"reference"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// NewCompleted builds the record written alongside a purchase or booking.
func NewCompleted(userID int, amountCents int64, currency string, typ Type) *Payment {
	return &Payment{
		UserID:      userID,
		AmountCents: amountCents,
		Currency:    currency,
		Status:      StatusCompleted,
		Method:      MethodManual,
		Type:        typ,
		Reference:   uuid.NewString(),
	}
}
