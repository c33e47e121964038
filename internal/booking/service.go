package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/FransiTsena/fitme-sub001/internal/apperr"
	"github.com/FransiTsena/fitme-sub001/internal/events"
	"github.com/FransiTsena/fitme-sub001/internal/logger"
	"github.com/FransiTsena/fitme-sub001/internal/metrics"
	"github.com/FransiTsena/fitme-sub001/internal/payment"
	"github.com/FransiTsena/fitme-sub001/internal/trainer"
	"github.com/FransiTsena/fitme-sub001/internal/training"
	"github.com/FransiTsena/fitme-sub001/internal/user"
)

type SessionLookup interface {
	GetByID(ctx context.Context, id int) (*training.Session, error)
}

type TrainerLookup interface {
	GetByID(ctx context.Context, id int) (*trainer.Trainer, error)
	GetByUserID(ctx context.Context, userID int) (*trainer.Trainer, error)
}

// MembershipChecker answers whether a user may use a gym at a point in time.
type MembershipChecker interface {
	HasActive(ctx context.Context, userID, gymID int, now time.Time) (bool, error)
}

type UserLookup interface {
	FindByID(ctx context.Context, id int) (*user.User, error)
}

type Notifier interface {
	SendBookingConfirmation(ctx context.Context, to, name, sessionTitle string, scheduledDate time.Time, timeSlot string) error
	SendBookingCancellation(ctx context.Context, to, name, sessionTitle string, scheduledDate time.Time, timeSlot string) error
}

type Service interface {
	BookSession(ctx context.Context, userID, sessionID int, req BookSessionRequest) (*BookResult, error)
	UpdateBookingStatus(ctx context.Context, bookingID int, status Status, actingUserID int) (*Booking, error)
	GetUserBookings(ctx context.Context, userID int) ([]BookingWithDetails, error)
	GetTrainerBookings(ctx context.Context, trainerUserID int) ([]BookingWithDetails, error)
}

type service struct {
	repo        Repository
	sessions    SessionLookup
	trainers    TrainerLookup
	memberships MembershipChecker
	users       UserLookup
	notifier    Notifier
	events      events.Publisher
	currency    string
	now         func() time.Time
}

func NewService(
	repo Repository,
	sessions SessionLookup,
	trainers TrainerLookup,
	memberships MembershipChecker,
	users UserLookup,
	notifier Notifier,
	publisher events.Publisher,
	currency string,
) Service {
	return &service{
		repo:        repo,
		sessions:    sessions,
		trainers:    trainers,
		memberships: memberships,
		users:       users,
		notifier:    notifier,
		events:      publisher,
		currency:    currency,
		now:         time.Now,
	}
}

func (s *service) BookSession(ctx context.Context, userID, sessionID int, req BookSessionRequest) (*BookResult, error) {
	sess, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session %d: %w", sessionID, err)
	}
	if !sess.IsActive {
		return nil, apperr.ErrInactiveSession
	}

	active, err := s.memberships.HasActive(ctx, userID, sess.GymID, s.now())
	if err != nil {
		return nil, fmt.Errorf("check membership: %w", err)
	}
	if !active {
		return nil, apperr.ErrMembershipRequired
	}

	date, err := ParseScheduledDate(req.ScheduledDate)
	if err != nil {
		return nil, err
	}
	slot, err := NormalizeTimeSlot(req.TimeSlot)
	if err != nil {
		return nil, err
	}

	taken, err := s.repo.SlotTaken(ctx, sess.TrainerID, date, slot)
	if err != nil {
		return nil, fmt.Errorf("check slot: %w", err)
	}
	if taken {
		metrics.RecordBookingConflict("precheck")
		return nil, apperr.ErrSlotUnavailable
	}

	b := &Booking{
		SessionID:     sess.ID,
		TrainerID:     sess.TrainerID,
		MemberID:      userID,
		GymID:         sess.GymID,
		ScheduledDate: date,
		TimeSlot:      slot,
		Status:        StatusBooked,
	}
	pay := payment.NewCompleted(userID, sess.PriceCents, s.currency, payment.TypeSession)

	if err := s.repo.CreateWithPayment(ctx, b, pay); err != nil {
		if errors.Is(err, apperr.ErrSlotUnavailable) {
			metrics.RecordBookingConflict("unique_index")
			return nil, err
		}
		return nil, fmt.Errorf("book session: %w", err)
	}

	metrics.RecordBooking(string(StatusBooked))
	logger.Info("session booked", "booking_id", b.ID, "session_id", sess.ID, "trainer_id", sess.TrainerID,
		"member_id", userID, "date", date.Format(dateLayout), "slot", slot)

	events.Emit(ctx, s.events, events.BookingCreated, map[string]any{
		"booking_id":     b.ID,
		"session_id":     b.SessionID,
		"trainer_id":     b.TrainerID,
		"member_id":      b.MemberID,
		"gym_id":         b.GymID,
		"scheduled_date": date.Format(dateLayout),
		"time_slot":      slot,
	})
	s.notify(ctx, b, sess.Title, true)

	return &BookResult{Booking: b, Payment: pay}, nil
}

// UpdateBookingStatus lets the member or the session's trainer cancel; only the trainer completes.
func (s *service) UpdateBookingStatus(ctx context.Context, bookingID int, status Status, actingUserID int) (*Booking, error) {
	if status != StatusCompleted && status != StatusCancelled {
		return nil, ErrInvalidStatus
	}

	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	t, err := s.trainers.GetByID(ctx, b.TrainerID)
	if err != nil {
		return nil, fmt.Errorf("load trainer %d: %w", b.TrainerID, err)
	}
	isTrainer := t.UserID == actingUserID
	isMember := b.MemberID == actingUserID

	if !isTrainer && !isMember {
		return nil, apperr.ErrUnauthorized
	}
	if status == StatusCompleted && !isTrainer {
		return nil, ErrTrainerOnlyDone
	}

	updated, err := s.repo.UpdateStatus(ctx, bookingID, status)
	if err != nil {
		return nil, err
	}

	metrics.RecordBooking(string(status))
	key := events.BookingCompleted
	if status == StatusCancelled {
		key = events.BookingCancelled
	}
	events.Emit(ctx, s.events, key, map[string]any{
		"booking_id": updated.ID,
		"trainer_id": updated.TrainerID,
		"member_id":  updated.MemberID,
		"acted_by":   actingUserID,
	})
	if status == StatusCancelled {
		if sess, err := s.sessions.GetByID(ctx, updated.SessionID); err == nil {
			s.notify(ctx, updated, sess.Title, false)
		}
	}

	return updated, nil
}

func (s *service) notify(ctx context.Context, b *Booking, sessionTitle string, confirmed bool) {
	if s.notifier == nil {
		return
	}

	u, err := s.users.FindByID(ctx, b.MemberID)
	if err != nil {
		logger.WithError(err).Warn("booking notification skipped", "booking_id", b.ID)
		return
	}

	if confirmed {
		err = s.notifier.SendBookingConfirmation(ctx, u.Email, u.Name, sessionTitle, b.ScheduledDate, b.TimeSlot)
	} else {
		err = s.notifier.SendBookingCancellation(ctx, u.Email, u.Name, sessionTitle, b.ScheduledDate, b.TimeSlot)
	}
	if err != nil {
		metrics.RecordNotificationFailure("email")
		logger.WithError(err).Warn("failed to queue booking email", "booking_id", b.ID)
	}
}

func (s *service) GetUserBookings(ctx context.Context, userID int) ([]BookingWithDetails, error) {
	return s.repo.ListByMember(ctx, userID)
}

func (s *service) GetTrainerBookings(ctx context.Context, trainerUserID int) ([]BookingWithDetails, error) {
	t, err := s.trainers.GetByUserID(ctx, trainerUserID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByTrainer(ctx, t.ID)
}
