package promotion

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/FransiTsena/fitme-sub001/internal/apperr"
	"github.com/FransiTsena/fitme-sub001/internal/auth"
	"github.com/FransiTsena/fitme-sub001/internal/events"
	"github.com/FransiTsena/fitme-sub001/internal/gym"
	"github.com/FransiTsena/fitme-sub001/internal/logger"
	"github.com/FransiTsena/fitme-sub001/internal/metrics"
	"github.com/FransiTsena/fitme-sub001/internal/user"
)

type UserLookup interface {
	FindByID(ctx context.Context, id int) (*user.User, error)
}

type Notifier interface {
	SendTrainerInvitation(ctx context.Context, to, name, gymName, link string, expiresAt time.Time) error
}

type Service interface {
	InviteMember(ctx context.Context, ownerID, gymID, memberID int) (*Promotion, error)
	AcceptInvitation(ctx context.Context, token string) (*AcceptResult, error)
	RejectInvitation(ctx context.Context, token string) (*Promotion, error)
	ResendInvitation(ctx context.Context, ownerID, promotionID int) (*Promotion, error)
	ListGymPromotions(ctx context.Context, ownerID, gymID int) ([]PromotionView, error)
}

// Options configures invitation tokens and links.
type Options struct {
	TTL        time.Duration
	AppBaseURL string
	Tokens     auth.TokenSource
}

type service struct {
	repo     Repository
	gyms     gym.Repository
	users    UserLookup
	notifier Notifier
	events   events.Publisher
	tokens   auth.TokenSource
	ttl      time.Duration
	baseURL  string
	now      func() time.Time
}

func NewService(repo Repository, gyms gym.Repository, users UserLookup, notifier Notifier, publisher events.Publisher, opts Options) Service {
	if opts.Tokens == nil {
		opts.Tokens = auth.NewRandomTokenSource()
	}
	if opts.TTL <= 0 {
		opts.TTL = 7 * 24 * time.Hour
	}
	return &service{
		repo:     repo,
		gyms:     gyms,
		users:    users,
		notifier: notifier,
		events:   publisher,
		tokens:   opts.Tokens,
		ttl:      opts.TTL,
		baseURL:  strings.TrimRight(opts.AppBaseURL, "/"),
		now:      time.Now,
	}
}

func (s *service) InviteMember(ctx context.Context, ownerID, gymID, memberID int) (*Promotion, error) {
	g, err := gym.RequireOwned(ctx, s.gyms, ownerID, gymID)
	if err != nil {
		return nil, err
	}

	member, err := s.users.FindByID(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("load member %d: %w", memberID, err)
	}
	if member.Role != user.RoleMember {
		return nil, ErrNotMember
	}

	now := s.now()
	pending, err := s.repo.HasPending(ctx, gymID, memberID, now)
	if err != nil {
		return nil, fmt.Errorf("check pending invitation: %w", err)
	}
	if pending {
		metrics.RecordInvitation("duplicate")
		return nil, apperr.ErrDuplicateInvitation
	}

	token, err := s.tokens.NewToken()
	if err != nil {
		return nil, fmt.Errorf("generate invitation token: %w", err)
	}

	p := &Promotion{
		GymID:     gymID,
		OwnerID:   ownerID,
		MemberID:  memberID,
		Status:    StatusPending,
		TokenHash: auth.HashToken(token),
		ExpiresAt: now.Add(s.ttl),
		Token:     token,
	}
	if err := s.repo.CreatePending(ctx, p, now); err != nil {
		if errors.Is(err, apperr.ErrDuplicateInvitation) {
			metrics.RecordInvitation("duplicate")
			return nil, err
		}
		return nil, fmt.Errorf("create invitation: %w", err)
	}

	metrics.RecordInvitation("invited")
	logger.Info("trainer invitation created", "promotion_id", p.ID, "gym_id", gymID, "member_id", memberID)

	events.Emit(ctx, s.events, events.TrainerInvited, map[string]any{
		"promotion_id": p.ID,
		"gym_id":       gymID,
		"member_id":    memberID,
		"expires_at":   p.ExpiresAt,
	})
	s.notify(ctx, member, g.Name, p)

	return p, nil
}

func (s *service) AcceptInvitation(ctx context.Context, token string) (*AcceptResult, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, apperr.ErrInvalidOrExpiredToken
	}

	res, err := s.repo.Accept(ctx, auth.HashToken(token), s.now())
	if err != nil {
		if errors.Is(err, apperr.ErrInvalidOrExpiredToken) {
			metrics.RecordInvitation("invalid_token")
		}
		return nil, err
	}

	metrics.RecordInvitation("accepted")
	logger.Info("member promoted to trainer", "promotion_id", res.Promotion.ID, "user_id", res.Promotion.MemberID,
		"trainer_id", res.Trainer.ID, "gym_id", res.Promotion.GymID)

	events.Emit(ctx, s.events, events.TrainerPromoted, map[string]any{
		"promotion_id": res.Promotion.ID,
		"gym_id":       res.Promotion.GymID,
		"user_id":      res.Promotion.MemberID,
		"trainer_id":   res.Trainer.ID,
	})

	return res, nil
}

func (s *service) RejectInvitation(ctx context.Context, token string) (*Promotion, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, apperr.ErrInvalidOrExpiredToken
	}

	p, err := s.repo.Reject(ctx, auth.HashToken(token), s.now())
	if err != nil {
		if errors.Is(err, apperr.ErrInvalidOrExpiredToken) {
			metrics.RecordInvitation("invalid_token")
		}
		return nil, err
	}

	metrics.RecordInvitation("rejected")
	events.Emit(ctx, s.events, events.InvitationRejected, map[string]any{
		"promotion_id": p.ID,
		"gym_id":       p.GymID,
		"member_id":    p.MemberID,
	})

	return p, nil
}

// ResendInvitation issues a new token for a pending invitation; the previous link stops working.
func (s *service) ResendInvitation(ctx context.Context, ownerID, promotionID int) (*Promotion, error) {
	p, err := s.repo.GetByID(ctx, promotionID)
	if err != nil {
		return nil, err
	}

	g, err := gym.RequireOwned(ctx, s.gyms, ownerID, p.GymID)
	if err != nil {
		return nil, err
	}
	if p.Status != StatusPending {
		return nil, apperr.ErrInvalidTransition
	}

	member, err := s.users.FindByID(ctx, p.MemberID)
	if err != nil {
		return nil, fmt.Errorf("load member %d: %w", p.MemberID, err)
	}

	token, err := s.tokens.NewToken()
	if err != nil {
		return nil, fmt.Errorf("generate invitation token: %w", err)
	}

	now := s.now()
	rotated, err := s.repo.RotateToken(ctx, p, auth.HashToken(token), now, now.Add(s.ttl))
	if err != nil {
		if errors.Is(err, apperr.ErrDuplicateInvitation) {
			metrics.RecordInvitation("duplicate")
		}
		return nil, err
	}
	rotated.Token = token

	metrics.RecordInvitation("resent")
	s.notify(ctx, member, g.Name, rotated)

	return rotated, nil
}

func (s *service) ListGymPromotions(ctx context.Context, ownerID, gymID int) ([]PromotionView, error) {
	if _, err := gym.RequireOwned(ctx, s.gyms, ownerID, gymID); err != nil {
		return nil, err
	}

	list, err := s.repo.ListByGym(ctx, gymID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	for i := range list {
		list[i].Expired = list[i].Status == StatusPending && list[i].IsExpired(now)
	}
	return list, nil
}

func (s *service) acceptLink(token string) string {
	return s.baseURL + "/promotions/accept?token=" + url.QueryEscape(token)
}

func (s *service) notify(ctx context.Context, member *user.User, gymName string, p *Promotion) {
	if s.notifier == nil {
		return
	}
	err := s.notifier.SendTrainerInvitation(ctx, member.Email, member.Name, gymName, s.acceptLink(p.Token), p.ExpiresAt)
	if err != nil {
		metrics.RecordNotificationFailure("email")
		logger.WithError(err).Warn("failed to queue invitation email", "promotion_id", p.ID)
	}
}
