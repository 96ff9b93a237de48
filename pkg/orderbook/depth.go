package orderbook

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type Level struct {
	Price  float64
	Size   int64
	Orders int
}

// Depth is a read-only snapshot of the best levels of both sides. Bids are
// ordered highest first and asks lowest first.
type Depth struct {
	Bids []Level
	Asks []Level
}

// String renders the snapshot as a price ladder with asks above bids, both
// from the highest price down.
func (d Depth) String() string {
	var sb strings.Builder
	sb.WriteString("Bid Qty   Price   Ask Qty\n")
	sb.WriteString("--------+-------+--------\n")

	for i := len(d.Asks) - 1; i >= 0; i-- {
		ask := d.Asks[i]
		fmt.Fprintf(&sb, "%11s%s   %5d\n", "", formatPrice(ask.Price), ask.Size)
	}
	for _, bid := range d.Bids {
		fmt.Fprintf(&sb, "%7d    %s\n", bid.Size, formatPrice(bid.Price))
	}
	return sb.String()
}

func formatPrice(price float64) string {
	return decimal.NewFromFloat(price).StringFixed(2)
}
