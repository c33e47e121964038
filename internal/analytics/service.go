package analytics

import (
	"context"
	"strings"
	"time"

	"github.com/FransiTsena/fitme-sub001/internal/gym"
	"github.com/FransiTsena/fitme-sub001/internal/trainer"
)

type TrainerLookup interface {
	GetByUserID(ctx context.Context, userID int) (*trainer.Trainer, error)
}

type Service interface {
	GymStats(ctx context.Context, ownerID, gymID int) (*GymStats, error)
	TrainerStats(ctx context.Context, trainerUserID int) (*TrainerStats, error)
	BookingsByDay(ctx context.Context, ownerID, gymID int, from, to string) ([]DayBookings, error)
}

type service struct {
	repo     Repository
	gyms     gym.Repository
	trainers TrainerLookup
	now      func() time.Time
}

func NewService(repo Repository, gyms gym.Repository, trainers TrainerLookup) Service {
	return &service{repo: repo, gyms: gyms, trainers: trainers, now: time.Now}
}

func (s *service) GymStats(ctx context.Context, ownerID, gymID int) (*GymStats, error) {
	if _, err := gym.RequireOwned(ctx, s.gyms, ownerID, gymID); err != nil {
		return nil, err
	}
	return s.repo.GymStats(ctx, gymID, s.now())
}

func (s *service) TrainerStats(ctx context.Context, trainerUserID int) (*TrainerStats, error) {
	t, err := s.trainers.GetByUserID(ctx, trainerUserID)
	if err != nil {
		return nil, err
	}
	return s.repo.TrainerStats(ctx, t.ID, s.today())
}

// BookingsByDay defaults to the 30 days ending today when a bound is omitted.
func (s *service) BookingsByDay(ctx context.Context, ownerID, gymID int, from, to string) ([]DayBookings, error) {
	if _, err := gym.RequireOwned(ctx, s.gyms, ownerID, gymID); err != nil {
		return nil, err
	}

	start, end, err := s.window(from, to)
	if err != nil {
		return nil, err
	}
	return s.repo.BookingsByDay(ctx, gymID, start, end)
}

func (s *service) today() time.Time {
	y, m, d := s.now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *service) window(from, to string) (time.Time, time.Time, error) {
	end := s.today()
	if strings.TrimSpace(to) != "" {
		d, err := time.ParseInLocation(dateLayout, strings.TrimSpace(to), time.UTC)
		if err != nil {
			return time.Time{}, time.Time{}, ErrInvalidRange
		}
		end = d
	}

	start := end.AddDate(0, 0, -(defaultWindowDays - 1))
	if strings.TrimSpace(from) != "" {
		d, err := time.ParseInLocation(dateLayout, strings.TrimSpace(from), time.UTC)
		if err != nil {
			return time.Time{}, time.Time{}, ErrInvalidRange
		}
		start = d
	}

	if start.After(end) {
		return time.Time{}, time.Time{}, ErrInvalidRange
	}
	if end.Sub(start) > maxWindowDays*24*time.Hour {
		return time.Time{}, time.Time{}, ErrRangeTooWide
	}
	return start, end, nil
}
