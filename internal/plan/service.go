package plan

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/FransiTsena/fitme-sub001/internal/apperr"
	"github.com/FransiTsena/fitme-sub001/internal/gym"
)

var (
	ErrInvalidDuration = apperr.Wrap(apperr.ErrValidation, "duration_in_days must be greater than zero")
	ErrInvalidPrice    = apperr.Wrap(apperr.ErrValidation, "price must not be negative")
	ErrEmptyTitle      = apperr.Wrap(apperr.ErrValidation, "title is required")
)

type Service interface {
	CreatePlan(ctx context.Context, ownerID, gymID int, req CreatePlanRequest) (*Plan, error)
	ListActivePlans(ctx context.Context, gymID int) ([]Plan, error)
	GetPlan(ctx context.Context, planID int) (*Plan, error)
	UpdatePlan(ctx context.Context, planID int, req UpdatePlanRequest) (*Plan, error)
	SetPlanActive(ctx context.Context, planID int, active bool) (*Plan, error)
}

type service struct {
	repo Repository
	gyms gym.Repository
}

func NewService(repo Repository, gyms gym.Repository) Service {
	return &service{repo: repo, gyms: gyms}
}

// CreatePlan reports a gym owned by someone else as not found, so owners cannot probe other gyms.
func (s *service) CreatePlan(ctx context.Context, ownerID, gymID int, req CreatePlanRequest) (*Plan, error) {
	if _, err := gym.RequireOwned(ctx, s.gyms, ownerID, gymID); err != nil {
		if errors.Is(err, apperr.ErrUnauthorized) {
			return nil, fmt.Errorf("gym %d: %w", gymID, gym.ErrGymNotFound)
		}
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if err := validate(&title, &req.DurationInDays, &req.PriceCents); err != nil {
		return nil, err
	}

	p := &Plan{
		GymID:          gymID,
		OwnerID:        ownerID,
		Title:          title,
		Description:    req.Description,
		DurationInDays: req.DurationInDays,
		PriceCents:     req.PriceCents,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create plan: %w", err)
	}
	return p, nil
}

func (s *service) ListActivePlans(ctx context.Context, gymID int) ([]Plan, error) {
	return s.repo.ListActiveByGym(ctx, gymID)
}

func (s *service) GetPlan(ctx context.Context, planID int) (*Plan, error) {
	return s.repo.GetByID(ctx, planID)
}

func (s *service) UpdatePlan(ctx context.Context, planID int, req UpdatePlanRequest) (*Plan, error) {
	if req.Title != nil {
		t := strings.TrimSpace(*req.Title)
		req.Title = &t
	}
	if err := validate(req.Title, req.DurationInDays, req.PriceCents); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, planID, req)
}

func (s *service) SetPlanActive(ctx context.Context, planID int, active bool) (*Plan, error) {
	return s.repo.SetActive(ctx, planID, active)
}

// validate checks whichever fields are present.
func validate(title *string, durationInDays *int, priceCents *int64) error {
	if title != nil && *title == "" {
		return ErrEmptyTitle
	}
	if durationInDays != nil && *durationInDays <= 0 {
		return ErrInvalidDuration
	}
	if priceCents != nil && *priceCents < 0 {
		return ErrInvalidPrice
	}
	return nil
}
