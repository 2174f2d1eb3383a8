package net

import (
	"fmt"
	"strings"

	"fenrir/internal/engine"
	"fenrir/internal/wire"
)

// encodeResponse renders an engine.Response as a newline-terminated text
// line. spec.md's External Interfaces section only specifies the
// command/response variants, not a canonical wire reply encoding, so this
// follows the teacher's own Report.Serialize in spirit (fixed shape per
// message kind) while staying human-inspectable, which keeps cmd/client's
// rendering logic trivial.
func encodeResponse(resp engine.Response) []byte {
	var b strings.Builder
	switch r := resp.(type) {
	case engine.OrderPlaced:
		fmt.Fprintf(&b, "ORDER_PLACED order_id=%s status=%q trades=%d\n", r.OrderID, r.Status, len(r.Trades))
		for _, t := range r.Trades {
			fmt.Fprintf(&b, "  trade id=%s price=%s qty=%s maker=%s taker=%s\n",
				t.ID, t.Price.String(), t.Quantity.String(), t.MakerOrderID, t.TakerOrderID)
		}
	case engine.OrderCancelled:
		fmt.Fprintf(&b, "ORDER_CANCELLED order_id=%s success=%t\n", r.OrderID, r.Success)
	case engine.OrderBookDepth:
		fmt.Fprintf(&b, "DEPTH bids=%d asks=%d\n", len(r.Bids), len(r.Asks))
		for _, lvl := range r.Bids {
			fmt.Fprintf(&b, "  bid price=%s qty=%s\n", lvl.Price.String(), lvl.Volume.String())
		}
		for _, lvl := range r.Asks {
			fmt.Fprintf(&b, "  ask price=%s qty=%s\n", lvl.Price.String(), lvl.Volume.String())
		}
	case engine.BalanceReport:
		fmt.Fprintf(&b, "BALANCE user=%s\n", r.UserID)
		for ccy, free := range r.Free {
			fmt.Fprintf(&b, "  %s free=%s locked=%s\n", ccy, wire.FormatAmount(free, ccy), wire.FormatAmount(r.Locked[ccy], ccy))
		}
	case engine.FundsAdded:
		fmt.Fprintf(&b, "FUNDS_ADDED user=%s currency=%s new_balance=%s\n",
			r.UserID, r.Currency, wire.FormatAmount(r.NewBalance, r.Currency))
	case engine.Acknowledged:
		b.WriteString("ACK\n")
	case engine.Error:
		fmt.Fprintf(&b, "ERROR %s\n", r.Message)
	default:
		b.WriteString("ERROR unknown response\n")
	}
	return []byte(b.String())
}

func encodeError(err error) []byte {
	return []byte(fmt.Sprintf("ERROR %s\n", err.Error()))
}
