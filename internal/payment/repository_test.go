package payment

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var paymentColumns = []string{"id", "user_id", "amount_cents", "currency", "status", "method", "type", "reference", "created_at"}

func setupPaymentMock(t *testing.T) (Repository, sqlmock.Sqlmock, *sqlx.DB) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	t.Cleanup(func() { sqlxDB.Close() })

	return NewRepository(sqlxDB), mock, sqlxDB
}

func TestNewCompleted(t *testing.T) {
	p := NewCompleted(7, 150000, "ETB", TypeMembership)

	assert.Equal(t, StatusCompleted, p.Status)
	assert.Equal(t, MethodManual, p.Method)
	_, err := uuid.Parse(p.Reference)
	assert.NoError(t, err)
	assert.NotEqual(t, p.Reference, NewCompleted(7, 150000, "ETB", TypeMembership).Reference)
}

func TestCreateTx(t *testing.T) {
	repo, mock, db := setupPaymentMock(t)
	ctx := context.Background()
	now := time.Now()

	p := NewCompleted(7, 50000, "ETB", TypeSession)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO payments")).
		WithArgs(7, int64(50000), "ETB", StatusCompleted, MethodManual, TypeSession, p.Reference).
		WillReturnRows(sqlmock.NewRows(paymentColumns).
			AddRow(31, 7, 50000, "ETB", "completed", "manual", "session", p.Reference, now))
	mock.ExpectCommit()

	tx, err := db.BeginTxx(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, repo.CreateTx(ctx, tx, p))
	require.NoError(t, tx.Commit())

	assert.Equal(t, 31, p.ID)
	assert.Equal(t, now, p.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListByUserDefaultsLimit(t *testing.T) {
	repo, mock, _ := setupPaymentMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM payments")).
		WithArgs(7, 50, 0).
		WillReturnRows(sqlmock.NewRows(paymentColumns))

	payments, err := repo.ListByUser(context.Background(), 7, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, payments)
	require.NoError(t, mock.ExpectationsWereMet())
}
