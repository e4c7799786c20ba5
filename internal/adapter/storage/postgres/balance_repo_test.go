package postgres

import (
	"context"
	"testing"
	"time"

	"digital-asset-gateway/internal/core/domain"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBalance(userID uuid.UUID) *domain.RewardBalance {
	return &domain.RewardBalance{
		UserID:    userID,
		Available: decimal.NewFromInt(150),
		Locked:    decimal.NewFromInt(40),
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
		UpdatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
}

func balanceColumnNames() []string {
	return []string{"user_id", "available", "locked", "created_at", "updated_at"}
}

func balanceRow(b *domain.RewardBalance) *pgxmock.Rows {
	return pgxmock.NewRows(balanceColumnNames()).AddRow(
		b.UserID, b.Available.String(), b.Locked.String(), b.CreatedAt, b.UpdatedAt,
	)
}

func TestBalanceRepo_GetByUserID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewBalanceRepo(mock)
	b := newTestBalance(uuid.New())

	mock.ExpectQuery("SELECT .+ FROM reward_balances WHERE user_id").
		WithArgs(b.UserID).
		WillReturnRows(balanceRow(b))

	result, err := repo.GetByUserID(context.Background(), b.UserID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.Available.Equal(decimal.NewFromInt(150)))
	assert.True(t, result.Locked.Equal(decimal.NewFromInt(40)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBalanceRepo_GetByUserID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewBalanceRepo(mock)
	userID := uuid.New()

	mock.ExpectQuery("SELECT .+ FROM reward_balances WHERE user_id").
		WithArgs(userID).
		WillReturnRows(pgxmock.NewRows(balanceColumnNames()))

	result, err := repo.GetByUserID(context.Background(), userID)
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBalanceRepo_GetByUserIDForUpdate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewBalanceRepo(mock)
	b := newTestBalance(uuid.New())

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .+ FROM reward_balances WHERE user_id .+ FOR UPDATE").
		WithArgs(b.UserID).
		WillReturnRows(balanceRow(b))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	result, err := repo.GetByUserIDForUpdate(context.Background(), tx, b.UserID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, b.UserID, result.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBalanceRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewBalanceRepo(mock)
	b := newTestBalance(uuid.New())

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO reward_balances").
		WithArgs(b.UserID, b.Available.String(), b.Locked.String(), b.CreatedAt, b.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.Create(context.Background(), tx, b)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBalanceRepo_UpdateBuckets(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewBalanceRepo(mock)
	userID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE reward_balances SET available").
		WithArgs("200", "0", userID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.UpdateBuckets(context.Background(), tx, userID, decimal.NewFromInt(200), decimal.Zero)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
