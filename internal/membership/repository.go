package membership

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

var ErrMembershipNotFound = apperr.Wrap(apperr.ErrNotFound, "membership not found")

const membershipColumns = `id, user_id, gym_id, plan_id, payment_id, start_date, end_date, status, created_at, updated_at`

const hasActiveQuery = `
	SELECT EXISTS(
		SELECT 1
		FROM user_memberships
		WHERE user_id = $1
		  AND gym_id = $2
		  AND status = 'active'
		  AND end_date > $3
	)`

type repository struct {
	db       *sqlx.DB
	payments payment.Repository
}

func NewRepository(db *sqlx.DB, payments payment.Repository) Repository {
	return &repository{db: db, payments: payments}
}

func (r *repository) HasActive(ctx context.Context, userID, gymID int, now time.Time) (bool, error) {
	return db.Exists(ctx, r.db, hasActiveQuery, userID, gymID, now)
}

func lockKey(userID, gymID int) string {
	return fmt.Sprintf("membership:%d:%d", userID, gymID)
}

// CreateWithPayment writes the payment and the membership in one transaction. Purchases for the
// same (user, gym) queue on an advisory lock, and the active check is repeated once the lock is
// held, so at most one of them commits.
func (r *repository) CreateWithPayment(ctx context.Context, m *Membership, p *payment.Payment, now time.Time) error {
	return db.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := db.AdvisoryXactLock(ctx, tx, lockKey(m.UserID, m.GymID)); err != nil {
			return err
		}

		active, err := db.Exists(ctx, tx, hasActiveQuery, m.UserID, m.GymID, now)
		if err != nil {
			return fmt.Errorf("check active membership: %w", err)
		}
		if active {
			return apperr.ErrDuplicateActiveMembership
		}

		if err := r.payments.CreateTx(ctx, tx, p); err != nil {
			return err
		}
		m.PaymentID = p.ID

		err = tx.QueryRowxContext(ctx, `
			INSERT INTO user_memberships (user_id, gym_id, plan_id, payment_id, start_date, end_date, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING `+membershipColumns,
			m.UserID, m.GymID, m.PlanID, m.PaymentID, m.StartDate, m.EndDate, m.Status,
		).StructScan(m)
		if err != nil {
			return fmt.Errorf("insert membership: %w", err)
		}
		return nil
	})
}

func (r *repository) GetByID(ctx context.Context, id int) (*Membership, error) {
	m := &Membership{}
	err := r.db.GetContext(ctx, m, `SELECT `+membershipColumns+` FROM user_memberships WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMembershipNotFound
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *repository) ListByUserWithDetails(ctx context.Context, userID int) ([]MembershipDetails, error) {
	details := []MembershipDetails{}
	err := r.db.SelectContext(ctx, &details, `
		SELECT m.id, m.user_id, m.gym_id, m.plan_id, m.payment_id, m.start_date, m.end_date,
		       m.status, m.created_at, m.updated_at,
		       p.title AS plan_title,
		       g.name AS gym_name
		FROM user_memberships m
		JOIN membership_plans p ON p.id = m.plan_id
		JOIN gyms g ON g.id = m.gym_id
		WHERE m.user_id = $1
		ORDER BY m.created_at DESC, m.id DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	return details, nil
}

// Cancel moves an active membership to cancelled. Any other current status is an invalid transition.
func (r *repository) Cancel(ctx context.Context, id int) (*Membership, error) {
	m := &Membership{}
	err := r.db.GetContext(ctx, m, `
		UPDATE user_memberships
		SET status = 'cancelled', updated_at = NOW()
		WHERE id = $1 AND status = 'active'
		RETURNING `+membershipColumns, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrInvalidTransition
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}
