package promotion

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FransiTsena/fitme-sub001/internal/apperr"
	"github.com/FransiTsena/fitme-sub001/internal/trainer"
	"github.com/FransiTsena/fitme-sub001/internal/user"
)

var (
	promotionRowColumns = []string{"id", "gym_id", "owner_id", "member_id", "status", "token_hash", "expires_at", "created_at", "updated_at"}
	userRowColumns      = []string{"id", "name", "email", "password_hash", "role", "created_at"}
	trainerRowColumns   = []string{"id", "user_id", "gym_id", "specialization", "bio", "rating_average", "rating_count", "is_active", "created_at"}
)

func setupPromotionMock(t *testing.T) (Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	t.Cleanup(func() { sqlxDB.Close() })

	return NewRepository(sqlxDB, user.NewRepository(sqlxDB), trainer.NewRepository(sqlxDB)), mock
}

func pendingRow(hash string) *sqlmock.Rows {
	return sqlmock.NewRows(promotionRowColumns).
		AddRow(1, 1, 9, 7, "accepted", hash, t0.Add(weekTTL), t0, t0)
}

func TestCreatePending_Commits(t *testing.T) {
	repo, mock := setupPromotionMock(t)
	p := &Promotion{GymID: 1, OwnerID: 9, MemberID: 7, Status: StatusPending, TokenHash: "h1", ExpiresAt: t0.Add(weekTTL)}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("pg_advisory_xact_lock")).
		WithArgs("promotion:1:7").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("FROM trainer_promotions")).
		WithArgs(1, 7, t0).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO trainer_promotions")).
		WithArgs(1, 9, 7, StatusPending, "h1", t0.Add(weekTTL)).
		WillReturnRows(sqlmock.NewRows(promotionRowColumns).
			AddRow(5, 1, 9, 7, "pending", "h1", t0.Add(weekTTL), t0, t0))
	mock.ExpectCommit()

	require.NoError(t, repo.CreatePending(context.Background(), p, t0))
	assert.Equal(t, 5, p.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePending_DuplicateUnderLock(t *testing.T) {
	repo, mock := setupPromotionMock(t)
	p := &Promotion{GymID: 1, OwnerID: 9, MemberID: 7, Status: StatusPending, TokenHash: "h1", ExpiresAt: t0.Add(weekTTL)}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("pg_advisory_xact_lock")).
		WithArgs("promotion:1:7").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("FROM trainer_promotions")).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	err := repo.CreatePending(context.Background(), p, t0)
	assert.ErrorIs(t, err, apperr.ErrDuplicateInvitation)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccept_Commits(t *testing.T) {
	repo, mock := setupPromotionMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE trainer_promotions")).
		WithArgs("h1", StatusAccepted, t0).
		WillReturnRows(pendingRow("h1"))
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1")).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows(userRowColumns).AddRow(7, "Mimi", "mimi@example.com", "x", "member", t0))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET role = $1")).
		WithArgs(user.RoleTrainer, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO trainers")).
		WithArgs(7, 1).
		WillReturnRows(sqlmock.NewRows(trainerRowColumns).AddRow(3, 7, 1, "{}", nil, 0, 0, true, t0))
	mock.ExpectCommit()

	res, err := repo.Accept(context.Background(), "h1", t0)
	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, res.Promotion.Status)
	assert.Equal(t, 3, res.Trainer.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccept_UsedOrExpiredToken(t *testing.T) {
	repo, mock := setupPromotionMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("AND expires_at > $3")).
		WithArgs("h1", StatusAccepted, t0).
		WillReturnRows(sqlmock.NewRows(promotionRowColumns))
	mock.ExpectRollback()

	_, err := repo.Accept(context.Background(), "h1", t0)
	assert.ErrorIs(t, err, apperr.ErrInvalidOrExpiredToken)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccept_MissingMemberRollsBack(t *testing.T) {
	repo, mock := setupPromotionMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE trainer_promotions")).
		WillReturnRows(pendingRow("h1"))
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1")).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows(userRowColumns))
	mock.ExpectRollback()

	_, err := repo.Accept(context.Background(), "h1", t0)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccept_ExistingProfileRollsBack(t *testing.T) {
	repo, mock := setupPromotionMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE trainer_promotions")).
		WillReturnRows(pendingRow("h1"))
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1")).
		WillReturnRows(sqlmock.NewRows(userRowColumns).AddRow(7, "Mimi", "mimi@example.com", "x", "member", t0))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET role = $1")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO trainers")).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "trainers_user_id_key"})
	mock.ExpectRollback()

	_, err := repo.Accept(context.Background(), "h1", t0)
	assert.ErrorIs(t, err, apperr.ErrInvalidCandidate)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRotateToken_Commits(t *testing.T) {
	repo, mock := setupPromotionMock(t)
	now := t0.Add(8 * 24 * time.Hour)
	p := &Promotion{ID: 5, GymID: 1, MemberID: 7, Status: StatusPending}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("pg_advisory_xact_lock")).
		WithArgs("promotion:1:7").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("AND id <> $4")).
		WithArgs(1, 7, now, 5).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1 AND status = 'pending'")).
		WithArgs(5, "h2", now.Add(weekTTL)).
		WillReturnRows(sqlmock.NewRows(promotionRowColumns).
			AddRow(5, 1, 9, 7, "pending", "h2", now.Add(weekTTL), t0, now))
	mock.ExpectCommit()

	rotated, err := repo.RotateToken(context.Background(), p, "h2", now, now.Add(weekTTL))
	require.NoError(t, err)
	assert.Equal(t, "h2", rotated.TokenHash)
	assert.Equal(t, now.Add(weekTTL), rotated.ExpiresAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRotateToken_OtherLivePendingUnderLock(t *testing.T) {
	repo, mock := setupPromotionMock(t)
	now := t0.Add(8 * 24 * time.Hour)
	p := &Promotion{ID: 5, GymID: 1, MemberID: 7, Status: StatusPending}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("pg_advisory_xact_lock")).
		WithArgs("promotion:1:7").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("AND id <> $4")).
		WithArgs(1, 7, now, 5).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	_, err := repo.RotateToken(context.Background(), p, "h2", now, now.Add(weekTTL))
	assert.ErrorIs(t, err, apperr.ErrDuplicateInvitation)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRotateToken_NotPending(t *testing.T) {
	repo, mock := setupPromotionMock(t)
	p := &Promotion{ID: 5, GymID: 1, MemberID: 7}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("pg_advisory_xact_lock")).
		WithArgs("promotion:1:7").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("AND id <> $4")).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1 AND status = 'pending'")).
		WithArgs(5, "h2", t0.Add(weekTTL)).
		WillReturnRows(sqlmock.NewRows(promotionRowColumns))
	mock.ExpectRollback()

	_, err := repo.RotateToken(context.Background(), p, "h2", t0, t0.Add(weekTTL))
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition)
	require.NoError(t, mock.ExpectationsWereMet())
}
