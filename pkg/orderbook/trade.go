package orderbook

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Trade is one fill between an aggressive order and a single resting order.
// Price is always the resting (maker) order's price.
type Trade struct {
	ID           uint64
	Price        float64
	Size         int64
	MakerOrderID uint64
	TakerOrderID uint64
	TakerSide    Side
	CreatedAt    time.Time
}

func (t Trade) Notional() decimal.Decimal {
	return decimal.NewFromFloat(t.Price).Mul(decimal.NewFromInt(t.Size))
}

func (t Trade) String() string {
	return fmt.Sprintf("Trade id %d, price %v, size %d", t.ID, t.Price, t.Size)
}

// SubmitResult describes the outcome of a successful submission. A resting
// order without trades was placed passively; an order that is not resting
// was filled completely by Trades.
type SubmitResult struct {
	OrderID uint64
	Resting bool
	Trades  []Trade
}

func (r SubmitResult) Filled() bool {
	return !r.Resting
}

func (r SubmitResult) MatchedSize() int64 {
	var total int64
	for _, t := range r.Trades {
		total += t.Size
	}
	return total
}
