package book

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"fenrir/internal/common"
)

func TestReserveMovesFreeToLocked(t *testing.T) {
	b := New()
	user := uuid.New()
	b.AddFunds(user, common.USD, 1000)

	require := assert.New(t)
	require.NoError(b.Reserve(user, common.USD, 400))

	free, locked := b.Balance(user, common.USD)
	require.Equal(uint64(600), free)
	require.Equal(uint64(400), locked)
}

func TestReserveInsufficientFreeBalance(t *testing.T) {
	b := New()
	user := uuid.New()
	b.AddFunds(user, common.USD, 100)

	err := b.Reserve(user, common.USD, 200)
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	free, locked := b.Balance(user, common.USD)
	assert.Equal(t, uint64(100), free)
	assert.Equal(t, uint64(0), locked)
}

func TestReleaseLockedRefundsFree(t *testing.T) {
	b := New()
	user := uuid.New()
	b.AddFunds(user, common.BTC, 500)
	assert.NoError(t, b.Reserve(user, common.BTC, 500))

	b.ReleaseLocked(user, common.BTC, 500)

	free, locked := b.Balance(user, common.BTC)
	assert.Equal(t, uint64(500), free)
	assert.Equal(t, uint64(0), locked)
}

func TestConsumeLockedUnderflowPanics(t *testing.T) {
	b := New()
	user := uuid.New()
	assert.Panics(t, func() {
		b.ConsumeLocked(user, common.USD, 1)
	})
}

func TestDebitInsufficientFreeBalance(t *testing.T) {
	b := New()
	user := uuid.New()
	err := b.Debit(user, common.USD, 1)
	assert.ErrorIs(t, err, ErrInsufficientBalance)
}
