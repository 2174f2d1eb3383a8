package wire

import (
	"encoding/binary"
	"errors"

	"github.com/google/uuid"

	"fenrir/internal/common"
)

var (
	ErrInvalidMessageType = errors.New("wire: invalid message type")
	ErrMessageTooShort    = errors.New("wire: message too short")
)

// MessageType tags the binary frame, generalized from the teacher's
// net/messages.go MessageType enum to the engine's full command set and
// shorn of the teacher's now out-of-scope AssetType/Ticker fields (single
// instrument, per spec.md's explicit scope).
type MessageType uint16

const (
	Heartbeat MessageType = iota
	NewLimitOrder
	NewMarketOrder
	CancelOrder
	GetDepth
	GetBalance
	AddFunds
	LogBook
)

const headerLen = 2

// Message is any parsed wire frame.
type Message interface {
	Type() MessageType
}

// Parse reads the 2-byte type header and dispatches to the matching body
// parser, exactly as the teacher's parseMessage does.
func Parse(buf []byte) (Message, error) {
	if len(buf) < headerLen {
		return nil, ErrMessageTooShort
	}
	typeOf := MessageType(binary.BigEndian.Uint16(buf[0:2]))
	body := buf[headerLen:]
	switch typeOf {
	case Heartbeat:
		return HeartbeatMessage{}, nil
	case NewLimitOrder:
		return parseNewLimitOrder(body)
	case NewMarketOrder:
		return parseNewMarketOrder(body)
	case CancelOrder:
		return parseCancelOrder(body)
	case GetDepth:
		return parseGetDepth(body)
	case GetBalance:
		return parseGetBalance(body)
	case AddFunds:
		return parseAddFunds(body)
	case LogBook:
		return LogBookMessage{}, nil
	default:
		return nil, ErrInvalidMessageType
	}
}

// HeartbeatMessage carries no payload; it exists purely to keep a
// long-lived TCP session from being reaped as idle.
type HeartbeatMessage struct{}

func (HeartbeatMessage) Type() MessageType { return Heartbeat }

// NewLimitOrderMessage: UserID(16) + Side(1) + price/qty as length-prefixed
// decimal strings, so wire values are parsed through ParsePrice/
// ParseQuantity rather than carried as raw floats (the teacher's
// LimitPrice float64 field is exactly the representation spec.md's numerics
// design forbids inside the engine).
type NewLimitOrderMessage struct {
	UserID uuid.UUID
	Side   common.OrderSide
	Price  string
	Qty    string
}

func (NewLimitOrderMessage) Type() MessageType { return NewLimitOrder }

func parseNewLimitOrder(buf []byte) (NewLimitOrderMessage, error) {
	if len(buf) < 16+1+2 {
		return NewLimitOrderMessage{}, ErrMessageTooShort
	}
	var m NewLimitOrderMessage
	id, err := uuid.FromBytes(buf[0:16])
	if err != nil {
		return NewLimitOrderMessage{}, err
	}
	m.UserID = id
	m.Side = common.OrderSide(buf[16])
	offset := 17

	priceLen := int(binary.BigEndian.Uint16(buf[offset : offset+2]))
	offset += 2
	if len(buf) < offset+priceLen+2 {
		return NewLimitOrderMessage{}, ErrMessageTooShort
	}
	m.Price = string(buf[offset : offset+priceLen])
	offset += priceLen

	qtyLen := int(binary.BigEndian.Uint16(buf[offset : offset+2]))
	offset += 2
	if len(buf) < offset+qtyLen {
		return NewLimitOrderMessage{}, ErrMessageTooShort
	}
	m.Qty = string(buf[offset : offset+qtyLen])
	return m, nil
}

// NewMarketOrderMessage: UserID(16) + Side(1) + qty as a length-prefixed
// decimal string.
type NewMarketOrderMessage struct {
	UserID uuid.UUID
	Side   common.OrderSide
	Qty    string
}

func (NewMarketOrderMessage) Type() MessageType { return NewMarketOrder }

func parseNewMarketOrder(buf []byte) (NewMarketOrderMessage, error) {
	if len(buf) < 16+1+2 {
		return NewMarketOrderMessage{}, ErrMessageTooShort
	}
	var m NewMarketOrderMessage
	id, err := uuid.FromBytes(buf[0:16])
	if err != nil {
		return NewMarketOrderMessage{}, err
	}
	m.UserID = id
	m.Side = common.OrderSide(buf[16])
	offset := 17

	qtyLen := int(binary.BigEndian.Uint16(buf[offset : offset+2]))
	offset += 2
	if len(buf) < offset+qtyLen {
		return NewMarketOrderMessage{}, ErrMessageTooShort
	}
	m.Qty = string(buf[offset : offset+qtyLen])
	return m, nil
}

// CancelOrderMessage: UserID(16) + OrderID(16), unlike the teacher's
// CancelOrderMessage, which carried only the order id and asked the engine
// to trust the caller's identity implicitly.
type CancelOrderMessage struct {
	UserID  uuid.UUID
	OrderID uuid.UUID
}

func (CancelOrderMessage) Type() MessageType { return CancelOrder }

func parseCancelOrder(buf []byte) (CancelOrderMessage, error) {
	if len(buf) < 32 {
		return CancelOrderMessage{}, ErrMessageTooShort
	}
	userID, err := uuid.FromBytes(buf[0:16])
	if err != nil {
		return CancelOrderMessage{}, err
	}
	orderID, err := uuid.FromBytes(buf[16:32])
	if err != nil {
		return CancelOrderMessage{}, err
	}
	return CancelOrderMessage{UserID: userID, OrderID: orderID}, nil
}

// GetDepthMessage: N(4, signed, BigEndian).
type GetDepthMessage struct {
	N int32
}

func (GetDepthMessage) Type() MessageType { return GetDepth }

func parseGetDepth(buf []byte) (GetDepthMessage, error) {
	if len(buf) < 4 {
		return GetDepthMessage{}, ErrMessageTooShort
	}
	return GetDepthMessage{N: int32(binary.BigEndian.Uint32(buf[0:4]))}, nil
}

// GetBalanceMessage: UserID(16).
type GetBalanceMessage struct {
	UserID uuid.UUID
}

func (GetBalanceMessage) Type() MessageType { return GetBalance }

func parseGetBalance(buf []byte) (GetBalanceMessage, error) {
	if len(buf) < 16 {
		return GetBalanceMessage{}, ErrMessageTooShort
	}
	id, err := uuid.FromBytes(buf[0:16])
	if err != nil {
		return GetBalanceMessage{}, err
	}
	return GetBalanceMessage{UserID: id}, nil
}

// AddFundsMessage: UserID(16) + Currency(3, ASCII "USD"/"BTC") + Amount as a
// length-prefixed decimal string.
type AddFundsMessage struct {
	UserID   uuid.UUID
	Currency common.Currency
	Amount   string
}

func (AddFundsMessage) Type() MessageType { return AddFunds }

func parseAddFunds(buf []byte) (AddFundsMessage, error) {
	if len(buf) < 16+3+2 {
		return AddFundsMessage{}, ErrMessageTooShort
	}
	id, err := uuid.FromBytes(buf[0:16])
	if err != nil {
		return AddFundsMessage{}, err
	}
	ccy := common.Currency(buf[16:19])
	offset := 19

	amountLen := int(binary.BigEndian.Uint16(buf[offset : offset+2]))
	offset += 2
	if len(buf) < offset+amountLen {
		return AddFundsMessage{}, ErrMessageTooShort
	}
	return AddFundsMessage{UserID: id, Currency: ccy, Amount: string(buf[offset : offset+amountLen])}, nil
}

// LogBookMessage carries no payload; it asks the engine for a depth
// snapshot at info level. Kept from the teacher's wire protocol as a debug
// command (see SPEC_FULL.md's COMMAND/RESPONSE PROTOCOL).
type LogBookMessage struct{}

func (LogBookMessage) Type() MessageType { return LogBook }
