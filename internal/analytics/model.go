package analytics

import (
	"time"

	"github.com/FransiTsena/fitme-sub001/internal/apperr"
)

const (
	dateLayout = "2006-01-02"

	defaultWindowDays = 30
	maxWindowDays     = 366
)

var (
	ErrInvalidRange = apperr.Wrap(apperr.ErrValidation, "from and to must be YYYY-MM-DD with from <= to")
	ErrRangeTooWide = apperr.Wrap(apperr.ErrValidation, "date range may span at most 366 days")
)

type BookingCounts struct {
	Booked    int `db:"booked" json:"booked"`
	Completed int `db:"completed" json:"completed"`
	Cancelled int `db:"cancelled" json:"cancelled"`
}

type GymStats struct {
	GymID                  int           `db:"-" json:"gym_id"`
	ActiveMemberships      int           `db:"active_memberships" json:"active_memberships"`
	TotalMemberships       int           `db:"total_memberships" json:"total_memberships"`
	MembershipRevenueCents int64         `db:"membership_revenue_cents" json:"membership_revenue_cents"`
	SessionRevenueCents    int64         `db:"session_revenue_cents" json:"session_revenue_cents"`
	Bookings               BookingCounts `db:"-" json:"bookings"`
	ActiveTrainers         int           `db:"active_trainers" json:"active_trainers"`
	ActivePlans            int           `db:"active_plans" json:"active_plans"`
	GeneratedAt            time.Time     `db:"-" json:"generated_at"`
}

type TrainerStats struct {
	TrainerID        int `db:"-" json:"trainer_id"`
	BookingCounts    `json:"bookings"`
	RevenueCents     int64 `db:"revenue_cents" json:"revenue_cents"`
	DistinctMembers  int   `db:"distinct_members" json:"distinct_members"`
	UpcomingBookings int   `db:"upcoming_bookings" json:"upcoming_bookings"`
}

type DayBookings struct {
	Day time.Time `db:"day" json:"day"`
	BookingCounts
}
