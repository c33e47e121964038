package training

import (
	"context"
	"fmt"
	"strings"

	"github.com/FransiTsena/fitme-sub001/internal/apperr"
	"github.com/FransiTsena/fitme-sub001/internal/trainer"
)

var (
	ErrInvalidDuration = apperr.Wrap(apperr.ErrValidation, "duration_minutes must be greater than zero")
	ErrInvalidPrice    = apperr.Wrap(apperr.ErrValidation, "price must not be negative")
	ErrEmptyTitle      = apperr.Wrap(apperr.ErrValidation, "title is required")
)

type Service interface {
	CreateSession(ctx context.Context, trainerUserID int, req CreateSessionRequest) (*Session, error)
	ListActiveSessions(ctx context.Context, gymID int) ([]Session, error)
	ListTrainerSessions(ctx context.Context, trainerID int) ([]Session, error)
	GetSession(ctx context.Context, sessionID int) (*Session, error)
	UpdateSession(ctx context.Context, sessionID int, req UpdateSessionRequest) (*Session, error)
	SetSessionActive(ctx context.Context, sessionID int, active bool) (*Session, error)
}

type service struct {
	repo     Repository
	trainers trainer.Repository
}

func NewService(repo Repository, trainers trainer.Repository) Service {
	return &service{repo: repo, trainers: trainers}
}

func (s *service) CreateSession(ctx context.Context, trainerUserID int, req CreateSessionRequest) (*Session, error) {
	t, err := trainer.RequireActive(ctx, s.trainers, trainerUserID)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if err := validate(&title, &req.DurationMinutes, &req.PriceCents); err != nil {
		return nil, err
	}

	sess := &Session{
		TrainerID:       t.ID,
		GymID:           t.GymID,
		Title:           title,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		PriceCents:      req.PriceCents,
	}
	if err := s.repo.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return sess, nil
}

func (s *service) ListActiveSessions(ctx context.Context, gymID int) ([]Session, error) {
	return s.repo.ListActiveByGym(ctx, gymID)
}

func (s *service) ListTrainerSessions(ctx context.Context, trainerID int) ([]Session, error) {
	return s.repo.ListByTrainer(ctx, trainerID)
}

func (s *service) GetSession(ctx context.Context, sessionID int) (*Session, error) {
	return s.repo.GetByID(ctx, sessionID)
}

func (s *service) UpdateSession(ctx context.Context, sessionID int, req UpdateSessionRequest) (*Session, error) {
	if req.Title != nil {
		t := strings.TrimSpace(*req.Title)
		req.Title = &t
	}
	if err := validate(req.Title, req.DurationMinutes, req.PriceCents); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, sessionID, req)
}

func (s *service) SetSessionActive(ctx context.Context, sessionID int, active bool) (*Session, error) {
	return s.repo.SetActive(ctx, sessionID, active)
}

func validate(title *string, durationMinutes *int, priceCents *int64) error {
	if title != nil && *title == "" {
		return ErrEmptyTitle
	}
	if durationMinutes != nil && *durationMinutes <= 0 {
		return ErrInvalidDuration
	}
	if priceCents != nil && *priceCents < 0 {
		return ErrInvalidPrice
	}
	return nil
}
