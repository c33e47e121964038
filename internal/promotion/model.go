package promotion

import (
	"time"

	"github.com/FransiTsena/fitme-sub001/internal/apperr"
	"github.com/FransiTsena/fitme-sub001/internal/trainer"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

var ErrNotMember = apperr.Wrap(apperr.ErrInvalidCandidate, "only members can be promoted to trainer")

// Promotion is an invitation from a gym owner to one of the gym's members. Only the hash of the
// token is persisted; Token carries the raw value between creation and notification.
type Promotion struct {
	ID        int       `db:"id" json:"id"`
	GymID     int       `db:"gym_id" json:"gym_id"`
	OwnerID   int       `db:"owner_id" json:"owner_id"`
	MemberID  int       `db:"member_id" json:"member_id"`
	Status    Status    `db:"status" json:"status"`
	TokenHash string    `db:"token_hash" json:"-"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`

	Token string `db:"-" json:"-"`
}

// IsExpired reports whether the invitation can no longer be used at now.
func (p *Promotion) IsExpired(now time.Time) bool {
	return !now.Before(p.ExpiresAt)
}

type PromotionView struct {
	Promotion
	MemberName  string `db:"member_name" json:"member_name"`
	MemberEmail string `db:"member_email" json:"member_email"`
	Expired     bool   `db:"-" json:"expired"`
}

type InviteRequest struct {
	MemberID int `json:"member_id" binding:"required,min=1"`
}

type TokenRequest struct {
	Token string `json:"token" binding:"required"`
}

type AcceptResult struct {
	Promotion *Promotion       `json:"promotion"`
	Trainer   *trainer.Trainer `json:"trainer"`
}
