package membership

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/FransiTsena/fitme-sub001/internal/apperr"
	"github.com/FransiTsena/fitme-sub001/internal/events"
	"github.com/FransiTsena/fitme-sub001/internal/gym"
	"github.com/FransiTsena/fitme-sub001/internal/logger"
	"github.com/FransiTsena/fitme-sub001/internal/metrics"
	"github.com/FransiTsena/fitme-sub001/internal/payment"
	"github.com/FransiTsena/fitme-sub001/internal/plan"
	"github.com/FransiTsena/fitme-sub001/internal/user"
)

type PlanLookup interface {
	GetByID(ctx context.Context, id int) (*plan.Plan, error)
}

type UserLookup interface {
	FindByID(ctx context.Context, id int) (*user.User, error)
}

type GymLookup interface {
	GetGymByID(ctx context.Context, id int) (*gym.Gym, error)
}

type Notifier interface {
	SendMembershipConfirmation(ctx context.Context, to, name, planTitle, gymName string, endDate time.Time) error
}

type Service interface {
	PurchaseMembership(ctx context.Context, userID, planID int) (*PurchaseResult, error)
	GetUserMemberships(ctx context.Context, userID int) ([]MembershipDetails, error)
	CancelMembership(ctx context.Context, userID, membershipID int) (*Membership, error)
	HasActiveMembership(ctx context.Context, userID, gymID int) (bool, error)
}

type service struct {
	repo     Repository
	plans    PlanLookup
	users    UserLookup
	gyms     GymLookup
	notifier Notifier
	events   events.Publisher
	currency string
	now      func() time.Time
}

func NewService(repo Repository, plans PlanLookup, users UserLookup, gyms GymLookup, notifier Notifier, publisher events.Publisher, currency string) Service {
	return &service{
		repo:     repo,
		plans:    plans,
		users:    users,
		gyms:     gyms,
		notifier: notifier,
		events:   publisher,
		currency: currency,
		now:      time.Now,
	}
}

func (s *service) PurchaseMembership(ctx context.Context, userID, planID int) (*PurchaseResult, error) {
	p, err := s.plans.GetByID(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("load plan %d: %w", planID, err)
	}
	if !p.IsActive {
		return nil, apperr.ErrInactivePlan
	}

	now := s.now()

	active, err := s.repo.HasActive(ctx, userID, p.GymID, now)
	if err != nil {
		return nil, fmt.Errorf("check active membership: %w", err)
	}
	if active {
		metrics.RecordMembershipPurchase("duplicate")
		return nil, apperr.ErrDuplicateActiveMembership
	}

	m := &Membership{
		UserID:    userID,
		GymID:     p.GymID,
		PlanID:    p.ID,
		StartDate: now,
		EndDate:   EndDate(now, p.DurationInDays),
		Status:    StatusActive,
	}
	pay := payment.NewCompleted(userID, p.PriceCents, s.currency, payment.TypeMembership)

	if err := s.repo.CreateWithPayment(ctx, m, pay, now); err != nil {
		if errors.Is(err, apperr.ErrDuplicateActiveMembership) {
			metrics.RecordMembershipPurchase("duplicate")
			return nil, err
		}
		metrics.RecordMembershipPurchase("failed")
		return nil, fmt.Errorf("purchase membership: %w", err)
	}

	metrics.RecordMembershipPurchase("purchased")
	logger.Info("membership purchased", "membership_id", m.ID, "user_id", userID, "gym_id", m.GymID, "plan_id", p.ID)

	events.Emit(ctx, s.events, events.MembershipPurchased, map[string]any{
		"membership_id": m.ID,
		"user_id":       userID,
		"gym_id":        m.GymID,
		"plan_id":       p.ID,
		"payment_id":    pay.ID,
		"end_date":      m.EndDate,
	})
	s.notifyPurchase(ctx, m, p)

	return &PurchaseResult{Membership: m, Payment: pay}, nil
}

func (s *service) notifyPurchase(ctx context.Context, m *Membership, p *plan.Plan) {
	if s.notifier == nil {
		return
	}

	u, err := s.users.FindByID(ctx, m.UserID)
	if err != nil {
		logger.WithError(err).Warn("membership confirmation skipped", "membership_id", m.ID)
		return
	}
	g, err := s.gyms.GetGymByID(ctx, m.GymID)
	if err != nil {
		logger.WithError(err).Warn("membership confirmation skipped", "membership_id", m.ID)
		return
	}

	if err := s.notifier.SendMembershipConfirmation(ctx, u.Email, u.Name, p.Title, g.Name, m.EndDate); err != nil {
		metrics.RecordNotificationFailure("email")
		logger.WithError(err).Warn("failed to queue membership confirmation", "membership_id", m.ID)
	}
}

func (s *service) GetUserMemberships(ctx context.Context, userID int) ([]MembershipDetails, error) {
	list, err := s.repo.ListByUserWithDetails(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	for i := range list {
		list[i].IsCurrent = list[i].Current(now)
	}
	return list, nil
}

func (s *service) CancelMembership(ctx context.Context, userID, membershipID int) (*Membership, error) {
	m, err := s.repo.GetByID(ctx, membershipID)
	if err != nil {
		return nil, err
	}
	if m.UserID != userID {
		return nil, apperr.ErrUnauthorized
	}

	cancelled, err := s.repo.Cancel(ctx, membershipID)
	if err != nil {
		return nil, err
	}

	metrics.RecordMembershipCancellation()
	events.Emit(ctx, s.events, events.MembershipCancelled, map[string]any{
		"membership_id": cancelled.ID,
		"user_id":       userID,
		"gym_id":        cancelled.GymID,
	})
	return cancelled, nil
}

func (s *service) HasActiveMembership(ctx context.Context, userID, gymID int) (bool, error) {
	return s.repo.HasActive(ctx, userID, gymID, s.now())
}
