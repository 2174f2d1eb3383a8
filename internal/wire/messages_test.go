package wire

import (
	"encoding/binary"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fenrir/internal/common"
)

func buildLimitOrderFrame(userID uuid.UUID, side common.OrderSide, price, qty string) []byte {
	buf := make([]byte, 2+16+1+2+len(price)+2+len(qty))
	binary.BigEndian.PutUint16(buf[0:2], uint16(NewLimitOrder))
	copy(buf[2:18], userID[:])
	buf[18] = byte(side)
	offset := 19
	binary.BigEndian.PutUint16(buf[offset:offset+2], uint16(len(price)))
	offset += 2
	copy(buf[offset:], price)
	offset += len(price)
	binary.BigEndian.PutUint16(buf[offset:offset+2], uint16(len(qty)))
	offset += 2
	copy(buf[offset:], qty)
	return buf
}

func TestParseNewLimitOrder(t *testing.T) {
	userID := uuid.New()
	frame := buildLimitOrderFrame(userID, common.Buy, "50000.25", "1.5")

	msg, err := Parse(frame)
	require.NoError(t, err)

	limit, ok := msg.(NewLimitOrderMessage)
	require.True(t, ok)
	assert.Equal(t, userID, limit.UserID)
	assert.Equal(t, common.Buy, limit.Side)
	assert.Equal(t, "50000.25", limit.Price)
	assert.Equal(t, "1.5", limit.Qty)
}

func TestParseTruncatedFrameIsTooShort(t *testing.T) {
	frame := buildLimitOrderFrame(uuid.New(), common.Buy, "50000", "1")
	_, err := Parse(frame[:len(frame)-2])
	assert.ErrorIs(t, err, ErrMessageTooShort)
}

func TestParseUnknownTypeIsInvalid(t *testing.T) {
	buf := make([]byte, 2)
	binary.BigEndian.PutUint16(buf, 999)
	_, err := Parse(buf)
	assert.ErrorIs(t, err, ErrInvalidMessageType)
}

func TestParsePriceRejectsNegative(t *testing.T) {
	_, err := ParsePrice("-1")
	assert.Error(t, err)
}

func TestParsePriceRoundsToScale(t *testing.T) {
	p, err := ParsePrice("50000.123456789")
	require.NoError(t, err)
	assert.Equal(t, uint64(50_000_123_457), p.Raw())
}

func TestFormatAmountRoundTrip(t *testing.T) {
	amount, err := ParseAmount("12.5", common.BTC)
	require.NoError(t, err)

	formatted, err := decimal.NewFromString(FormatAmount(amount, common.BTC))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromFloat(12.5).Equal(formatted))
}
