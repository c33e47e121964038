package promotion

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FransiTsena/fitme-sub001/internal/apperr"
	"github.com/FransiTsena/fitme-sub001/internal/auth"
	"github.com/FransiTsena/fitme-sub001/internal/events"
	"github.com/FransiTsena/fitme-sub001/internal/gym"
	"github.com/FransiTsena/fitme-sub001/internal/trainer"
	"github.com/FransiTsena/fitme-sub001/internal/user"
)

// memRepository keeps promotions, user roles and trainer profiles in memory and mirrors the
// conditional updates of the SQL repository.
type memRepository struct {
	promotions []Promotion
	users      map[int]*user.User
	trainers   []trainer.Trainer
}

func newMemRepository() *memRepository {
	return &memRepository{users: map[int]*user.User{
		7:  {ID: 7, Name: "Mimi", Email: "mimi@example.com", Role: user.RoleMember},
		8:  {ID: 8, Name: "Abel", Email: "abel@example.com", Role: user.RoleMember},
		30: {ID: 30, Name: "Coach", Email: "coach@example.com", Role: user.RoleTrainer},
		9:  {ID: 9, Name: "Owner", Email: "owner@example.com", Role: user.RoleOwner},
	}}
}

func (r *memRepository) FindByID(_ context.Context, id int) (*user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memRepository) HasPending(_ context.Context, gymID, memberID int, now time.Time) (bool, error) {
	for i := range r.promotions {
		p := r.promotions[i]
		if p.GymID == gymID && p.MemberID == memberID && p.Status == StatusPending && !p.IsExpired(now) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memRepository) CreatePending(ctx context.Context, p *Promotion, now time.Time) error {
	if pending, _ := r.HasPending(ctx, p.GymID, p.MemberID, now); pending {
		return apperr.ErrDuplicateInvitation
	}
	p.ID = len(r.promotions) + 1
	stored := *p
	stored.Token = ""
	r.promotions = append(r.promotions, stored)
	return nil
}

func (r *memRepository) GetByID(_ context.Context, id int) (*Promotion, error) {
	for i := range r.promotions {
		if r.promotions[i].ID == id {
			p := r.promotions[i]
			return &p, nil
		}
	}
	return nil, ErrPromotionNotFound
}

func (r *memRepository) ListByGym(_ context.Context, gymID int) ([]PromotionView, error) {
	var out []PromotionView
	for _, p := range r.promotions {
		if p.GymID == gymID {
			out = append(out, PromotionView{Promotion: p, MemberName: r.users[p.MemberID].Name})
		}
	}
	return out, nil
}

func (r *memRepository) consume(tokenHash string, status Status, now time.Time) (*Promotion, error) {
	for i := range r.promotions {
		p := &r.promotions[i]
		if p.TokenHash == tokenHash && p.Status == StatusPending && !p.IsExpired(now) {
			p.Status = status
			cp := *p
			return &cp, nil
		}
	}
	return nil, apperr.ErrInvalidOrExpiredToken
}

func (r *memRepository) Accept(_ context.Context, tokenHash string, now time.Time) (*AcceptResult, error) {
	for i := range r.promotions {
		p := &r.promotions[i]
		if p.TokenHash != tokenHash || p.Status != StatusPending || p.IsExpired(now) {
			continue
		}
		u, ok := r.users[p.MemberID]
		if !ok {
			return nil, user.ErrUserNotFound
		}
		if u.Role != user.RoleMember {
			return nil, ErrNotMember
		}
		p.Status = StatusAccepted
		u.Role = user.RoleTrainer
		t := trainer.Trainer{ID: len(r.trainers) + 1, UserID: u.ID, GymID: p.GymID, IsActive: true}
		r.trainers = append(r.trainers, t)
		cp := *p
		return &AcceptResult{Promotion: &cp, Trainer: &t}, nil
	}
	return nil, apperr.ErrInvalidOrExpiredToken
}

func (r *memRepository) Reject(_ context.Context, tokenHash string, now time.Time) (*Promotion, error) {
	return r.consume(tokenHash, StatusRejected, now)
}

func (r *memRepository) RotateToken(_ context.Context, target *Promotion, tokenHash string, now, expiresAt time.Time) (*Promotion, error) {
	for _, p := range r.promotions {
		if p.ID != target.ID && p.GymID == target.GymID && p.MemberID == target.MemberID &&
			p.Status == StatusPending && !p.IsExpired(now) {
			return nil, apperr.ErrDuplicateInvitation
		}
	}
	for i := range r.promotions {
		p := &r.promotions[i]
		if p.ID == target.ID && p.Status == StatusPending {
			p.TokenHash = tokenHash
			p.ExpiresAt = expiresAt
			cp := *p
			return &cp, nil
		}
	}
	return nil, apperr.ErrInvalidTransition
}

type stubGyms struct{}

func (stubGyms) CreateGym(context.Context, int, string, string) (*gym.Gym, error) {
	return nil, errors.New("not implemented")
}

func (stubGyms) GetAllGyms(context.Context) ([]gym.Gym, error) { return nil, nil }

func (stubGyms) ListByOwner(context.Context, int) ([]gym.Gym, error) { return nil, nil }

func (stubGyms) GetGymByID(_ context.Context, id int) (*gym.Gym, error) {
	switch id {
	case 1:
		return &gym.Gym{ID: 1, OwnerID: 9, Name: "Fit Bole"}, nil
	case 2:
		return &gym.Gym{ID: 2, OwnerID: 10, Name: "Kazanchis Gym"}, nil
	}
	return nil, gym.ErrGymNotFound
}

// seqTokens hands out tok-1, tok-2, ...
type seqTokens struct{ n int }

func (s *seqTokens) NewToken() (string, error) {
	s.n++
	return fmt.Sprintf("tok-%d", s.n), nil
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) SendTrainerInvitation(ctx context.Context, to, name, gymName, link string, expiresAt time.Time) error {
	return m.Called(ctx, to, name, gymName, link, expiresAt).Error(0)
}

var t0 = time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)

const weekTTL = 7 * 24 * time.Hour

func newTestService(repo *memRepository, notifier Notifier, clock *time.Time) *service {
	svc := NewService(repo, stubGyms{}, repo, notifier, events.Noop{}, Options{
		TTL:        weekTTL,
		AppBaseURL: "https://fitme.app/",
		Tokens:     &seqTokens{},
	}).(*service)
	svc.now = func() time.Time { return *clock }
	return svc
}

func TestInviteMember_NotifiesWithLink(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepository()
	clock := t0
	notifier := &mockNotifier{}
	notifier.On("SendTrainerInvitation", mock.Anything, "mimi@example.com", "Mimi", "Fit Bole",
		"https://fitme.app/promotions/accept?token=tok-1", t0.Add(weekTTL)).Return(nil).Once()

	svc := newTestService(repo, notifier, &clock)

	p, err := svc.InviteMember(ctx, 9, 1, 7)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, p.Status)
	assert.Equal(t, t0.Add(weekTTL), p.ExpiresAt)
	assert.Equal(t, auth.HashToken("tok-1"), p.TokenHash)
	assert.Empty(t, repo.promotions[0].Token, "raw token must not be stored")
	notifier.AssertExpectations(t)
}

func TestInviteMember_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		ownerID  int
		gymID    int
		memberID int
		want     error
	}{
		{"unknown gym", 9, 99, 7, apperr.ErrNotFound},
		{"gym of another owner", 9, 2, 7, apperr.ErrUnauthorized},
		{"unknown user", 9, 1, 404, apperr.ErrNotFound},
		{"already a trainer", 9, 1, 30, apperr.ErrInvalidCandidate},
		{"owner is not a candidate", 9, 1, 9, apperr.ErrInvalidCandidate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := t0
			repo := newMemRepository()
			svc := newTestService(repo, nil, &clock)

			_, err := svc.InviteMember(context.Background(), tt.ownerID, tt.gymID, tt.memberID)
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, repo.promotions)
		})
	}
}

func TestInviteMember_DuplicateUntilExpired(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepository()
	clock := t0
	svc := newTestService(repo, nil, &clock)

	_, err := svc.InviteMember(ctx, 9, 1, 7)
	require.NoError(t, err)

	_, err = svc.InviteMember(ctx, 9, 1, 7)
	assert.ErrorIs(t, err, apperr.ErrDuplicateInvitation)

	// a different member is unaffected
	_, err = svc.InviteMember(ctx, 9, 1, 8)
	require.NoError(t, err)

	clock = t0.Add(weekTTL)
	_, err = svc.InviteMember(ctx, 9, 1, 7)
	require.NoError(t, err)
	assert.Len(t, repo.promotions, 3)
}

func TestAcceptInvitation_PromotesOnce(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepository()
	clock := t0
	svc := newTestService(repo, nil, &clock)

	_, err := svc.InviteMember(ctx, 9, 1, 7)
	require.NoError(t, err)

	clock = t0.Add(24 * time.Hour)
	res, err := svc.AcceptInvitation(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, res.Promotion.Status)
	assert.Equal(t, 7, res.Trainer.UserID)
	assert.Equal(t, 1, res.Trainer.GymID)
	assert.True(t, res.Trainer.IsActive)
	assert.Equal(t, user.RoleTrainer, repo.users[7].Role)

	_, err = svc.AcceptInvitation(ctx, "tok-1")
	assert.ErrorIs(t, err, apperr.ErrInvalidOrExpiredToken)
	assert.Len(t, repo.trainers, 1)
}

func TestAcceptInvitation_InvalidTokens(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepository()
	clock := t0
	svc := newTestService(repo, nil, &clock)

	_, err := svc.InviteMember(ctx, 9, 1, 7)
	require.NoError(t, err)

	_, err = svc.AcceptInvitation(ctx, "")
	assert.ErrorIs(t, err, apperr.ErrInvalidOrExpiredToken)

	_, err = svc.AcceptInvitation(ctx, "tok-unknown")
	assert.ErrorIs(t, err, apperr.ErrInvalidOrExpiredToken)

	clock = t0.Add(weekTTL)
	_, err = svc.AcceptInvitation(ctx, "tok-1")
	assert.ErrorIs(t, err, apperr.ErrInvalidOrExpiredToken)
	assert.Equal(t, user.RoleMember, repo.users[7].Role)
}

func TestRejectInvitation(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepository()
	clock := t0
	svc := newTestService(repo, nil, &clock)

	_, err := svc.InviteMember(ctx, 9, 1, 7)
	require.NoError(t, err)

	p, err := svc.RejectInvitation(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, p.Status)

	_, err = svc.AcceptInvitation(ctx, "tok-1")
	assert.ErrorIs(t, err, apperr.ErrInvalidOrExpiredToken)
	assert.Equal(t, user.RoleMember, repo.users[7].Role)

	// rejection ends the pending invitation, so the owner may ask again
	_, err = svc.InviteMember(ctx, 9, 1, 7)
	require.NoError(t, err)
}

func TestResendInvitation_RotatesToken(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepository()
	clock := t0
	notifier := &mockNotifier{}
	notifier.On("SendTrainerInvitation", mock.Anything, "mimi@example.com", "Mimi", "Fit Bole", mock.Anything, mock.Anything).Return(nil)
	svc := newTestService(repo, notifier, &clock)

	p, err := svc.InviteMember(ctx, 9, 1, 7)
	require.NoError(t, err)

	clock = t0.Add(6 * 24 * time.Hour)
	_, err = svc.ResendInvitation(ctx, 10, p.ID)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	rotated, err := svc.ResendInvitation(ctx, 9, p.ID)
	require.NoError(t, err)
	assert.Equal(t, clock.Add(weekTTL), rotated.ExpiresAt)
	notifier.AssertCalled(t, "SendTrainerInvitation", mock.Anything, "mimi@example.com", "Mimi", "Fit Bole",
		"https://fitme.app/promotions/accept?token=tok-2", clock.Add(weekTTL))

	_, err = svc.AcceptInvitation(ctx, "tok-1")
	assert.ErrorIs(t, err, apperr.ErrInvalidOrExpiredToken)

	_, err = svc.AcceptInvitation(ctx, "tok-2")
	require.NoError(t, err)

	_, err = svc.ResendInvitation(ctx, 9, p.ID)
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition)
}

func TestResendInvitation_ExpiredBehindNewerInvitation(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepository()
	clock := t0
	svc := newTestService(repo, nil, &clock)

	first, err := svc.InviteMember(ctx, 9, 1, 7)
	require.NoError(t, err)

	clock = t0.Add(8 * 24 * time.Hour)
	_, err = svc.InviteMember(ctx, 9, 1, 7)
	require.NoError(t, err)

	_, err = svc.ResendInvitation(ctx, 9, first.ID)
	assert.ErrorIs(t, err, apperr.ErrDuplicateInvitation)

	live := 0
	for _, p := range repo.promotions {
		if p.GymID == 1 && p.MemberID == 7 && p.Status == StatusPending && !p.IsExpired(clock) {
			live++
		}
	}
	assert.Equal(t, 1, live)

	_, err = svc.AcceptInvitation(ctx, "tok-1")
	assert.ErrorIs(t, err, apperr.ErrInvalidOrExpiredToken)
}

func TestResendInvitation_ExpiredWithoutNewerInvitation(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepository()
	clock := t0
	svc := newTestService(repo, nil, &clock)

	first, err := svc.InviteMember(ctx, 9, 1, 7)
	require.NoError(t, err)

	clock = t0.Add(8 * 24 * time.Hour)
	rotated, err := svc.ResendInvitation(ctx, 9, first.ID)
	require.NoError(t, err)
	assert.Equal(t, clock.Add(weekTTL), rotated.ExpiresAt)

	_, err = svc.AcceptInvitation(ctx, "tok-2")
	require.NoError(t, err)
}

func TestInviteMember_NotificationFailureKeepsInvitation(t *testing.T) {
	repo := newMemRepository()
	clock := t0
	notifier := &mockNotifier{}
	notifier.On("SendTrainerInvitation", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("smtp down"))
	svc := newTestService(repo, notifier, &clock)

	_, err := svc.InviteMember(context.Background(), 9, 1, 7)
	require.NoError(t, err)
	assert.Len(t, repo.promotions, 1)
}

func TestListGymPromotions_ExpiredFlag(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepository()
	clock := t0
	svc := newTestService(repo, nil, &clock)

	_, err := svc.InviteMember(ctx, 9, 1, 7)
	require.NoError(t, err)
	clock = t0.Add(3 * 24 * time.Hour)
	_, err = svc.InviteMember(ctx, 9, 1, 8)
	require.NoError(t, err)

	clock = t0.Add(8 * 24 * time.Hour)
	list, err := svc.ListGymPromotions(ctx, 9, 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.True(t, list[0].Expired)
	assert.False(t, list[1].Expired)

	_, err = svc.ListGymPromotions(ctx, 10, 1)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestIsExpired(t *testing.T) {
	p := &Promotion{ExpiresAt: t0}
	assert.False(t, p.IsExpired(t0.Add(-time.Second)))
	assert.True(t, p.IsExpired(t0))
	assert.True(t, p.IsExpired(t0.Add(time.Second)))
}
