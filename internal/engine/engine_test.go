package engine

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fenrir/internal/common"
)

// newRunningEngine starts an engine's command loop and returns its producer
// handle plus a cancel func to stop it at test teardown.
func newRunningEngine(t *testing.T) (chan<- Command, context.CancelFunc) {
	t.Helper()
	eng := New()
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		_ = eng.Run(ctx)
	}()
	t.Cleanup(cancel)
	return eng.Commands(), cancel
}

func send(t *testing.T, commands chan<- Command, cmd Command, reply chan Response) Response {
	t.Helper()
	commands <- cmd
	select {
	case resp := <-reply:
		return resp
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for engine reply")
		return nil
	}
}

func TestAddFundsThenGetBalance(t *testing.T) {
	commands, _ := newRunningEngine(t)
	user := uuid.New()
	reply := make(chan Response, 1)

	resp := send(t, commands, AddFunds{UserID: user, Currency: common.USD, Amount: 1000, Reply: reply}, reply)
	added, ok := resp.(FundsAdded)
	require.True(t, ok, "expected FundsAdded, got %T", resp)
	assert.Equal(t, uint64(1000), added.NewBalance)

	resp = send(t, commands, GetBalance{UserID: user, Reply: reply}, reply)
	bal, ok := resp.(BalanceReport)
	require.True(t, ok, "expected BalanceReport, got %T", resp)
	assert.Equal(t, uint64(1000), bal.Free[common.USD])
	assert.Equal(t, uint64(0), bal.Locked[common.USD])
}

func TestAddFundsRejectsInvalidCurrency(t *testing.T) {
	commands, _ := newRunningEngine(t)
	reply := make(chan Response, 1)

	resp := send(t, commands, AddFunds{UserID: uuid.New(), Currency: "EUR", Amount: 10, Reply: reply}, reply)
	_, ok := resp.(Error)
	assert.True(t, ok, "expected Error, got %T", resp)
}

func TestPlaceLimitWithoutFundsIsRejected(t *testing.T) {
	commands, _ := newRunningEngine(t)
	reply := make(chan Response, 1)

	resp := send(t, commands, PlaceLimit{
		UserID: uuid.New(), Side: common.Buy,
		Price: common.PriceFromFloat(50000), Qty: common.QuantityFromFloat(1),
		Reply: reply,
	}, reply)
	_, ok := resp.(Error)
	assert.True(t, ok, "expected Error, got %T", resp)
}

func TestCancelUnknownOrderReportsNotFound(t *testing.T) {
	commands, _ := newRunningEngine(t)
	reply := make(chan Response, 1)

	resp := send(t, commands, Cancel{UserID: uuid.New(), OrderID: uuid.New(), Reply: reply}, reply)
	_, ok := resp.(Error)
	assert.True(t, ok, "expected Error, got %T", resp)
}

func TestPlaceLimitThenMatchReportsStatus(t *testing.T) {
	commands, _ := newRunningEngine(t)
	seller, buyer := uuid.New(), uuid.New()
	reply := make(chan Response, 1)

	send(t, commands, AddFunds{UserID: seller, Currency: common.BTC, Amount: common.QuantityFromFloat(1).Raw(), Reply: reply}, reply)
	send(t, commands, AddFunds{UserID: buyer, Currency: common.USD, Amount: common.TradeValue(common.PriceFromFloat(50000), common.QuantityFromFloat(1)), Reply: reply}, reply)

	resp := send(t, commands, PlaceLimit{
		UserID: seller, Side: common.Sell,
		Price: common.PriceFromFloat(50000), Qty: common.QuantityFromFloat(1),
		Reply: reply,
	}, reply)
	placed, ok := resp.(OrderPlaced)
	require.True(t, ok, "expected OrderPlaced, got %T", resp)
	assert.Equal(t, StatusAddedToBook, placed.Status)

	resp = send(t, commands, PlaceLimit{
		UserID: buyer, Side: common.Buy,
		Price: common.PriceFromFloat(50000), Qty: common.QuantityFromFloat(1),
		Reply: reply,
	}, reply)
	placed, ok = resp.(OrderPlaced)
	require.True(t, ok, "expected OrderPlaced, got %T", resp)
	assert.Equal(t, StatusMatched, placed.Status)
	assert.Len(t, placed.Trades, 1)
}
