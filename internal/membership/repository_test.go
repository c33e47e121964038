package membership

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FransiTsena/fitme-sub001/internal/apperr"
	"github.com/FransiTsena/fitme-sub001/internal/payment"
)

var (
	membershipRowColumns = []string{"id", "user_id", "gym_id", "plan_id", "payment_id", "start_date", "end_date", "status", "created_at", "updated_at"}
	paymentRowColumns    = []string{"id", "user_id", "amount_cents", "currency", "status", "method", "type", "reference", "created_at"}
)

func setupMembershipMock(t *testing.T) (Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	t.Cleanup(func() { sqlxDB.Close() })

	return NewRepository(sqlxDB, payment.NewRepository(sqlxDB)), mock
}

func newPurchase() (*Membership, *payment.Payment) {
	m := &Membership{
		UserID:    7,
		GymID:     1,
		PlanID:    1,
		StartDate: t0,
		EndDate:   EndDate(t0, 30),
		Status:    StatusActive,
	}
	return m, payment.NewCompleted(7, 150000, "ETB", payment.TypeMembership)
}

func TestCreateWithPayment_Commits(t *testing.T) {
	repo, mock := setupMembershipMock(t)
	m, p := newPurchase()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SELECT pg_advisory_xact_lock(hashtext($1))")).
		WithArgs("membership:7:1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("FROM user_memberships")).
		WithArgs(7, 1, t0).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO payments")).
		WillReturnRows(sqlmock.NewRows(paymentRowColumns).
			AddRow(100, 7, 150000, "ETB", "completed", "manual", "membership", p.Reference, t0))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO user_memberships")).
		WithArgs(7, 1, 1, 100, t0, EndDate(t0, 30), StatusActive).
		WillReturnRows(sqlmock.NewRows(membershipRowColumns).
			AddRow(1, 7, 1, 1, 100, t0, EndDate(t0, 30), "active", t0, t0))
	mock.ExpectCommit()

	err := repo.CreateWithPayment(context.Background(), m, p, t0)
	require.NoError(t, err)
	assert.Equal(t, 1, m.ID)
	assert.Equal(t, 100, m.PaymentID)
	assert.Equal(t, 100, p.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithPayment_DuplicateUnderLockRollsBack(t *testing.T) {
	repo, mock := setupMembershipMock(t)
	m, p := newPurchase()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("pg_advisory_xact_lock")).
		WithArgs("membership:7:1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("FROM user_memberships")).
		WithArgs(7, 1, t0).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	err := repo.CreateWithPayment(context.Background(), m, p, t0)
	assert.ErrorIs(t, err, apperr.ErrDuplicateActiveMembership)
	assert.Zero(t, p.ID, "no payment may be written for a rejected purchase")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithPayment_MembershipInsertFailureRollsBackPayment(t *testing.T) {
	repo, mock := setupMembershipMock(t)
	m, p := newPurchase()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("pg_advisory_xact_lock")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("FROM user_memberships")).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO payments")).
		WillReturnRows(sqlmock.NewRows(paymentRowColumns).
			AddRow(100, 7, 150000, "ETB", "completed", "manual", "membership", p.Reference, t0))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO user_memberships")).
		WillReturnError(errors.New("foreign key violation"))
	mock.ExpectRollback()

	err := repo.CreateWithPayment(context.Background(), m, p, t0)
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHasActive(t *testing.T) {
	repo, mock := setupMembershipMock(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("AND end_date > $3")).
		WithArgs(7, 1, now).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := repo.HasActive(context.Background(), 7, 1, now)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestListByUserWithDetails(t *testing.T) {
	repo, mock := setupMembershipMock(t)

	cols := append(append([]string{}, membershipRowColumns...), "plan_title", "gym_name")
	mock.ExpectQuery(regexp.QuoteMeta("JOIN membership_plans p ON p.id = m.plan_id")).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(2, 7, 1, 1, 101, t0, EndDate(t0, 30), "active", t0, t0, "Monthly", "Fit Bole"))

	list, err := repo.ListByUserWithDetails(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Monthly", list[0].PlanTitle)
	assert.Equal(t, "Fit Bole", list[0].GymName)
	assert.Equal(t, 101, list[0].PaymentID)
}

func TestCancel_OnlyFromActive(t *testing.T) {
	repo, mock := setupMembershipMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1 AND status = 'active'")).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows(membershipRowColumns))

	_, err := repo.Cancel(context.Background(), 5)
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition)
}
