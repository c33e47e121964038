package membership

import (
	"time"

	"github.com/FransiTsena/fitme-sub001/internal/payment"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusExpired   Status = "expired"
	StatusCancelled Status = "cancelled"
)

type Membership struct {
	ID        int       `db:"id" json:"id"`
	UserID    int       `db:"user_id" json:"user_id"`
	GymID     int       `db:"gym_id" json:"gym_id"`
	PlanID    int       `db:"plan_id" json:"plan_id"`
	PaymentID int       `db:"payment_id" json:"payment_id"`
	StartDate time.Time `db:"start_date" json:"start_date"`
	EndDate   time.Time `db:"end_date" json:"end_date"`
	Status    Status    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// MembershipDetails is a membership joined with its plan title and gym name.
type MembershipDetails struct {
	Membership
	PlanTitle string `db:"plan_title" json:"plan_title"`
	GymName   string `db:"gym_name" json:"gym_name"`
	IsCurrent bool   `db:"-" json:"is_current"`
}

type PurchaseResult struct {
	Membership *Membership      `json:"membership"`
	Payment    *payment.Payment `json:"payment"`
}

// IsCurrent reports whether a membership ending at endDate still grants access at now.
// Expiry is never written back; every read derives it from the end date.
func IsCurrent(endDate, now time.Time) bool {
	return endDate.After(now)
}

// Current is true for an active membership that has not run out at now.
func (m *Membership) Current(now time.Time) bool {
	return m.Status == StatusActive && IsCurrent(m.EndDate, now)
}

// EndDate adds durationInDays calendar days to start, keeping the time of day.
func EndDate(start time.Time, durationInDays int) time.Time {
	return start.AddDate(0, 0, durationInDays)
}
