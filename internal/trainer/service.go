package trainer

import (
	"context"

	"github.com/FransiTsena/fitme-sub001/internal/apperr"
)

var ErrInactiveTrainer = apperr.Wrap(apperr.ErrInactiveEntity, "trainer profile is inactive")

type Service interface {
	GetProfile(ctx context.Context, userID int) (*Trainer, error)
	GetByID(ctx context.Context, id int) (*Trainer, error)
	ListGymTrainers(ctx context.Context, gymID int) ([]Trainer, error)
	UpdateProfile(ctx context.Context, userID int, req UpdateProfileRequest) (*Trainer, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetProfile(ctx context.Context, userID int) (*Trainer, error) {
	return s.repo.GetByUserID(ctx, userID)
}

func (s *service) GetByID(ctx context.Context, id int) (*Trainer, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListGymTrainers(ctx context.Context, gymID int) ([]Trainer, error) {
	return s.repo.ListByGym(ctx, gymID)
}

func (s *service) UpdateProfile(ctx context.Context, userID int, req UpdateProfileRequest) (*Trainer, error) {
	t, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.repo.UpdateProfile(ctx, t.ID, req.Specialization, req.Bio)
}

// RequireActive resolves the caller's profile, failing when it is missing or deactivated.
func RequireActive(ctx context.Context, repo Repository, userID int) (*Trainer, error) {
	t, err := repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !t.IsActive {
		return nil, ErrInactiveTrainer
	}
	return t, nil
}
