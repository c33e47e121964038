package promotion

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/FransiTsena/fitme-sub001/internal/apperr"
	"github.com/FransiTsena/fitme-sub001/internal/db"
	"github.com/FransiTsena/fitme-sub001/internal/trainer"
	"github.com/FransiTsena/fitme-sub001/internal/user"
)

var ErrPromotionNotFound = apperr.Wrap(apperr.ErrNotFound, "promotion not found")

const promotionColumns = `id, gym_id, owner_id, member_id, status, token_hash, expires_at, created_at, updated_at`

const hasPendingQuery = `
	SELECT EXISTS(
		SELECT 1
		FROM trainer_promotions
		WHERE gym_id = $1
		  AND member_id = $2
		  AND status = 'pending'
		  AND expires_at > $3
	)`

const hasOtherPendingQuery = `
	SELECT EXISTS(
		SELECT 1
		FROM trainer_promotions
		WHERE gym_id = $1
		  AND member_id = $2
		  AND status = 'pending'
		  AND expires_at > $3
		  AND id <> $4
	)`

// consumeQuery moves a live pending invitation to a terminal status. It matches at most once per
// token, which makes the token single-use even when two requests race.
const consumeQuery = `
	UPDATE trainer_promotions
	SET status = $2, updated_at = NOW()
	WHERE token_hash = $1
	  AND status = 'pending'
	  AND expires_at > $3
	RETURNING ` + promotionColumns

type repository struct {
	db       *sqlx.DB
	users    user.Repository
	trainers trainer.Repository
}

func NewRepository(db *sqlx.DB, users user.Repository, trainers trainer.Repository) Repository {
	return &repository{db: db, users: users, trainers: trainers}
}

func (r *repository) HasPending(ctx context.Context, gymID, memberID int, now time.Time) (bool, error) {
	return db.Exists(ctx, r.db, hasPendingQuery, gymID, memberID, now)
}

func lockKey(gymID, memberID int) string {
	return fmt.Sprintf("promotion:%d:%d", gymID, memberID)
}

func (r *repository) CreatePending(ctx context.Context, p *Promotion, now time.Time) error {
	return db.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := db.AdvisoryXactLock(ctx, tx, lockKey(p.GymID, p.MemberID)); err != nil {
			return err
		}

		pending, err := db.Exists(ctx, tx, hasPendingQuery, p.GymID, p.MemberID, now)
		if err != nil {
			return fmt.Errorf("check pending invitation: %w", err)
		}
		if pending {
			return apperr.ErrDuplicateInvitation
		}

		err = tx.QueryRowxContext(ctx, `
			INSERT INTO trainer_promotions (gym_id, owner_id, member_id, status, token_hash, expires_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING `+promotionColumns,
			p.GymID, p.OwnerID, p.MemberID, p.Status, p.TokenHash, p.ExpiresAt,
		).StructScan(p)
		if err != nil {
			return fmt.Errorf("insert promotion: %w", err)
		}
		return nil
	})
}

func (r *repository) GetByID(ctx context.Context, id int) (*Promotion, error) {
	p := &Promotion{}
	err := r.db.GetContext(ctx, p, `SELECT `+promotionColumns+` FROM trainer_promotions WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPromotionNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repository) ListByGym(ctx context.Context, gymID int) ([]PromotionView, error) {
	list := []PromotionView{}
	err := r.db.SelectContext(ctx, &list, `
		SELECT p.id, p.gym_id, p.owner_id, p.member_id, p.status, p.token_hash,
		       p.expires_at, p.created_at, p.updated_at,
		       u.name AS member_name,
		       u.email AS member_email
		FROM trainer_promotions p
		JOIN users u ON u.id = p.member_id
		WHERE p.gym_id = $1
		ORDER BY p.created_at DESC, p.id DESC`, gymID)
	if err != nil {
		return nil, err
	}
	return list, nil
}

func consume(ctx context.Context, q db.Querier, tokenHash string, status Status, now time.Time) (*Promotion, error) {
	p := &Promotion{}
	err := sqlx.GetContext(ctx, q, p, consumeQuery, tokenHash, status, now)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrInvalidOrExpiredToken
	}
	if err != nil {
		return nil, fmt.Errorf("consume invitation: %w", err)
	}
	return p, nil
}

// Accept consumes the token, promotes the member and creates the trainer profile in one
// transaction. Any failure leaves the invitation pending.
func (r *repository) Accept(ctx context.Context, tokenHash string, now time.Time) (*AcceptResult, error) {
	var res AcceptResult
	err := db.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		p, err := consume(ctx, tx, tokenHash, StatusAccepted, now)
		if err != nil {
			return err
		}

		u, err := r.users.FindByIDTx(ctx, tx, p.MemberID)
		if err != nil {
			return err
		}
		if u.Role != user.RoleMember {
			return ErrNotMember
		}

		if err := r.users.UpdateRoleTx(ctx, tx, u.ID, user.RoleTrainer); err != nil {
			return err
		}

		t, err := r.trainers.CreateTx(ctx, tx, u.ID, p.GymID)
		if err != nil {
			return err
		}

		res = AcceptResult{Promotion: p, Trainer: t}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *repository) Reject(ctx context.Context, tokenHash string, now time.Time) (*Promotion, error) {
	return consume(ctx, r.db, tokenHash, StatusRejected, now)
}

// RotateToken replaces the token and expiry of a pending invitation. It serializes with
// CreatePending on the same (gym, member) lock, so an expired invitation cannot be revived
// next to a newer live one.
func (r *repository) RotateToken(ctx context.Context, p *Promotion, tokenHash string, now, expiresAt time.Time) (*Promotion, error) {
	rotated := &Promotion{}
	err := db.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := db.AdvisoryXactLock(ctx, tx, lockKey(p.GymID, p.MemberID)); err != nil {
			return err
		}

		other, err := db.Exists(ctx, tx, hasOtherPendingQuery, p.GymID, p.MemberID, now, p.ID)
		if err != nil {
			return fmt.Errorf("check pending invitation: %w", err)
		}
		if other {
			return apperr.ErrDuplicateInvitation
		}

		err = tx.QueryRowxContext(ctx, `
			UPDATE trainer_promotions
			SET token_hash = $2, expires_at = $3, updated_at = NOW()
			WHERE id = $1 AND status = 'pending'
			RETURNING `+promotionColumns, p.ID, tokenHash, expiresAt).StructScan(rotated)
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.ErrInvalidTransition
		}
		if err != nil {
			return fmt.Errorf("rotate promotion token: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rotated, nil
}
