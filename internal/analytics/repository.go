package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	GymStats(ctx context.Context, gymID int, now time.Time) (*GymStats, error)
	TrainerStats(ctx context.Context, trainerID int, today time.Time) (*TrainerStats, error)
	BookingsByDay(ctx context.Context, gymID int, from, to time.Time) ([]DayBookings, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GymStats(ctx context.Context, gymID int, now time.Time) (*GymStats, error) {
	stats := &GymStats{GymID: gymID, GeneratedAt: now}

	err := r.db.GetContext(ctx, stats, `
SELECT
  (SELECT COUNT(*) FROM user_memberships m
    WHERE m.gym_id = $1 AND m.status = 'active' AND m.end_date > $2) AS active_memberships,
  (SELECT COUNT(*) FROM user_memberships m WHERE m.gym_id = $1)    AS total_memberships,
  (SELECT COALESCE(SUM(p.amount_cents), 0)
     FROM user_memberships m JOIN payments p ON p.id = m.payment_id
    WHERE m.gym_id = $1)                                            AS membership_revenue_cents,
  (SELECT COALESCE(SUM(p.amount_cents), 0)
     FROM session_bookings b JOIN payments p ON p.id = b.payment_id
    WHERE b.gym_id = $1)                                            AS session_revenue_cents,
  (SELECT COUNT(*) FROM trainers t WHERE t.gym_id = $1 AND t.is_active)          AS active_trainers,
  (SELECT COUNT(*) FROM membership_plans mp WHERE mp.gym_id = $1 AND mp.is_active) AS active_plans;
`, gymID, now)
	if err != nil {
		return nil, fmt.Errorf("gym stats: %w", err)
	}

	err = r.db.GetContext(ctx, &stats.Bookings, `
SELECT
  COUNT(*) FILTER (WHERE status = 'booked')    AS booked,
  COUNT(*) FILTER (WHERE status = 'completed') AS completed,
  COUNT(*) FILTER (WHERE status = 'cancelled') AS cancelled
FROM session_bookings
WHERE gym_id = $1;
`, gymID)
	if err != nil {
		return nil, fmt.Errorf("gym booking counts: %w", err)
	}

	return stats, nil
}

func (r *repository) TrainerStats(ctx context.Context, trainerID int, today time.Time) (*TrainerStats, error) {
	stats := &TrainerStats{TrainerID: trainerID}

	err := r.db.GetContext(ctx, stats, `
SELECT
  COUNT(*) FILTER (WHERE b.status = 'booked')                           AS booked,
  COUNT(*) FILTER (WHERE b.status = 'completed')                        AS completed,
  COUNT(*) FILTER (WHERE b.status = 'cancelled')                        AS cancelled,
  COALESCE(SUM(p.amount_cents), 0)                                      AS revenue_cents,
  COUNT(DISTINCT b.member_id)                                           AS distinct_members,
  COUNT(*) FILTER (WHERE b.status = 'booked' AND b.scheduled_date >= $2) AS upcoming_bookings
FROM session_bookings b
JOIN payments p ON p.id = b.payment_id
WHERE b.trainer_id = $1;
`, trainerID, today)
	if err != nil {
		return nil, fmt.Errorf("trainer stats: %w", err)
	}
	return stats, nil
}

// BookingsByDay buckets a gym's bookings by scheduled date, both bounds inclusive.
func (r *repository) BookingsByDay(ctx context.Context, gymID int, from, to time.Time) ([]DayBookings, error) {
	days := []DayBookings{}
	err := r.db.SelectContext(ctx, &days, `
SELECT
  scheduled_date AS day,
  COUNT(*) FILTER (WHERE status = 'booked')    AS booked,
  COUNT(*) FILTER (WHERE status = 'completed') AS completed,
  COUNT(*) FILTER (WHERE status = 'cancelled') AS cancelled
FROM session_bookings
WHERE gym_id = $1
  AND scheduled_date BETWEEN $2 AND $3
GROUP BY scheduled_date
ORDER BY day;
`, gymID, from, to)
	if err != nil {
		return nil, fmt.Errorf("bookings by day: %w", err)
	}
	return days, nil
}
