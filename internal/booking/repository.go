package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/FransiTsena/fitme-sub001/internal/apperr"
	"github.com/FransiTsena/fitme-sub001/internal/db"
	"github.com/FransiTsena/fitme-sub001/internal/payment"
)

var ErrBookingNotFound = apperr.Wrap(apperr.ErrNotFound, "booking not found")

// slotIndex is the partial unique index over booked (trainer, date, slot) triples.
const slotIndex = "session_bookings_slot_uniq"

const bookingColumns = `id, session_id, trainer_id, member_id, gym_id, payment_id, scheduled_date, time_slot, status, created_at, updated_at`

type repository struct {
	db       *sqlx.DB
	payments payment.Repository
}

func NewRepository(db *sqlx.DB, payments payment.Repository) Repository {
	return &repository{db: db, payments: payments}
}

func (r *repository) SlotTaken(ctx context.Context, trainerID int, date time.Time, timeSlot string) (bool, error) {
	return db.Exists(ctx, r.db, `
		SELECT EXISTS(
			SELECT 1
			FROM session_bookings
			WHERE trainer_id = $1
			  AND scheduled_date = $2
			  AND time_slot = $3
			  AND status = 'booked'
		)`, trainerID, date, timeSlot)
}

// CreateWithPayment records the payment and the booking atomically. A concurrent booking of the
// same slot trips the partial unique index, which rolls the payment back and surfaces as
// ErrSlotUnavailable.
func (r *repository) CreateWithPayment(ctx context.Context, b *Booking, p *payment.Payment) error {
	return db.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := r.payments.CreateTx(ctx, tx, p); err != nil {
			return err
		}
		b.PaymentID = p.ID

		err := tx.QueryRowxContext(ctx, `
			INSERT INTO session_bookings (session_id, trainer_id, member_id, gym_id, payment_id, scheduled_date, time_slot, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING `+bookingColumns,
			b.SessionID, b.TrainerID, b.MemberID, b.GymID, b.PaymentID, b.ScheduledDate, b.TimeSlot, b.Status,
		).StructScan(b)
		if db.IsUniqueViolation(err, slotIndex) {
			return apperr.ErrSlotUnavailable
		}
		if err != nil {
			return fmt.Errorf("insert booking: %w", err)
		}
		return nil
	})
}

func (r *repository) GetByID(ctx context.Context, id int) (*Booking, error) {
	b := &Booking{}
	err := r.db.GetContext(ctx, b, `SELECT `+bookingColumns+` FROM session_bookings WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// UpdateStatus only moves bookings out of 'booked'; completed and cancelled are terminal.
func (r *repository) UpdateStatus(ctx context.Context, id int, status Status) (*Booking, error) {
	b := &Booking{}
	err := r.db.GetContext(ctx, b, `
		UPDATE session_bookings
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'booked'
		RETURNING `+bookingColumns, id, status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrInvalidTransition
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

const detailsSelect = `
	SELECT b.id, b.session_id, b.trainer_id, b.member_id, b.gym_id, b.payment_id,
	       b.scheduled_date, b.time_slot, b.status, b.created_at, b.updated_at,
	       s.title AS session_title,
	       u.name AS member_name
	FROM session_bookings b
	JOIN training_sessions s ON s.id = b.session_id
	JOIN users u ON u.id = b.member_id`

func (r *repository) ListByMember(ctx context.Context, memberID int) ([]BookingWithDetails, error) {
	list := []BookingWithDetails{}
	err := r.db.SelectContext(ctx, &list, detailsSelect+`
		WHERE b.member_id = $1
		ORDER BY b.created_at DESC, b.id DESC`, memberID)
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *repository) ListByTrainer(ctx context.Context, trainerID int) ([]BookingWithDetails, error) {
	list := []BookingWithDetails{}
	err := r.db.SelectContext(ctx, &list, detailsSelect+`
		WHERE b.trainer_id = $1
		ORDER BY b.scheduled_date DESC, b.time_slot, b.id DESC`, trainerID)
	if err != nil {
		return nil, err
	}
	return list, nil
}
