package plan

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var planRowColumns = []string{"id", "gym_id", "owner_id", "title", "description", "duration_in_days", "price_cents", "is_active", "created_at", "updated_at"}

func setupPlanMock(t *testing.T) (Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	t.Cleanup(func() { sqlxDB.Close() })

	return NewRepository(sqlxDB), mock
}

func TestListActiveByGym(t *testing.T) {
	repo, mock := setupPlanMock(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE gym_id = $1 AND is_active = TRUE")).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(planRowColumns).
			AddRow(2, 1, 9, "Quarterly", nil, 90, 400000, true, now, now).
			AddRow(1, 1, 9, "Monthly", "Full access", 30, 150000, true, now, now))

	plans, err := repo.ListActiveByGym(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, plans, 2)
	assert.Nil(t, plans[0].Description)
	assert.Equal(t, "Full access", *plans[1].Description)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_NilFieldsKeepCurrentValues(t *testing.T) {
	repo, mock := setupPlanMock(t)
	now := time.Now()
	title := "Monthly Plus"

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE membership_plans")).
		WithArgs(1, title, nil, nil, nil).
		WillReturnRows(sqlmock.NewRows(planRowColumns).
			AddRow(1, 1, 9, title, nil, 30, 150000, true, now, now))

	p, err := repo.Update(context.Background(), 1, UpdatePlanRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, 30, p.DurationInDays)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSetActive_NotFound(t *testing.T) {
	repo, mock := setupPlanMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SET is_active = $2")).
		WithArgs(5, false).
		WillReturnRows(sqlmock.NewRows(planRowColumns))

	_, err := repo.SetActive(context.Background(), 5, false)
	assert.ErrorIs(t, err, ErrPlanNotFound)
}
