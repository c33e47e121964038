package gym

import (
	"context"
	"fmt"

	"github.com/FransiTsena/fitme-sub001/internal/apperr"
)

var (
	ErrGymNotFound = apperr.Wrap(apperr.ErrNotFound, "gym not found")
	ErrNotGymOwner = apperr.Wrap(apperr.ErrUnauthorized, "gym belongs to another owner")
)

type Service interface {
	CreateGym(ctx context.Context, ownerID int, req CreateGymRequest) (*Gym, error)
	GetAllGyms(ctx context.Context) ([]Gym, error)
	GetGymByID(ctx context.Context, id int) (*Gym, error)
	ListOwnerGyms(ctx context.Context, ownerID int) ([]Gym, error)
	RequireOwnedGym(ctx context.Context, ownerID, gymID int) (*Gym, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
	}
}

func (s *service) CreateGym(ctx context.Context, ownerID int, req CreateGymRequest) (*Gym, error) {
	return s.repo.CreateGym(ctx, ownerID, req.Name, req.Location)
}

func (s *service) GetAllGyms(ctx context.Context) ([]Gym, error) {
	return s.repo.GetAllGyms(ctx)
}

func (s *service) GetGymByID(ctx context.Context, id int) (*Gym, error) {
	return s.repo.GetGymByID(ctx, id)
}

func (s *service) ListOwnerGyms(ctx context.Context, ownerID int) ([]Gym, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// RequireOwnedGym loads the gym and fails with ErrNotGymOwner unless ownerID owns it.
func (s *service) RequireOwnedGym(ctx context.Context, ownerID, gymID int) (*Gym, error) {
	return RequireOwned(ctx, s.repo, ownerID, gymID)
}

// RequireOwned is the ownership check shared by the plan, promotion and analytics services.
func RequireOwned(ctx context.Context, repo Repository, ownerID, gymID int) (*Gym, error) {
	g, err := repo.GetGymByID(ctx, gymID)
	if err != nil {
		return nil, fmt.Errorf("load gym %d: %w", gymID, err)
	}
	if g.OwnerID != ownerID {
		return nil, ErrNotGymOwner
	}
	return g, nil
}
