// file: pkg/orderbook/orderbook.go

package orderbook

import (
	"fmt"
	"math"
	"time"

	"github.com/joripage/orderbook-lite/pkg/sequence"
)

const (
	DefaultEpsilon     = 1e-7
	DefaultDepthLevels = 5
)

type Config struct {
	// Epsilon is the tolerance used when deciding whether two prices cross.
	// It never applies to level lookup, which uses exact price keys. Zero
	// means DefaultEpsilon; use WithEpsilon(0) for exact comparison.
	Epsilon float64 `yaml:"epsilon"`
	// DepthLevels is the number of levels per side in a depth snapshot. Zero
	// means DefaultDepthLevels.
	DepthLevels int `yaml:"depth_levels"`
}

func DefaultConfig() *Config {
	return &Config{
		Epsilon:     DefaultEpsilon,
		DepthLevels: DefaultDepthLevels,
	}
}

type Option func(*OrderBook)

// Validate rejects an epsilon that is NaN, infinite or negative and a
// negative depth.
func (c *Config) Validate() error {
	if math.IsNaN(c.Epsilon) || math.IsInf(c.Epsilon, 0) || c.Epsilon < 0 {
		return fmt.Errorf("%w: epsilon must be a finite value >= 0, got %v", ErrInvalidConfig, c.Epsilon)
	}
	if c.DepthLevels < 0 {
		return fmt.Errorf("%w: depth_levels must be >= 0, got %d", ErrInvalidConfig, c.DepthLevels)
	}
	return nil
}

// ApplyDefaults replaces zero fields with their defaults.
func (c *Config) ApplyDefaults() {
	if c.Epsilon == 0 {
		c.Epsilon = DefaultEpsilon
	}
	if c.DepthLevels == 0 {
		c.DepthLevels = DefaultDepthLevels
	}
}

func WithEpsilon(epsilon float64) Option {
	return func(ob *OrderBook) {
		ob.epsilon = epsilon
	}
}

// WithConfig applies cfg, leaving the default epsilon in place when
// cfg.Epsilon is zero. cfg must pass Validate.
func WithConfig(cfg *Config) Option {
	return func(ob *OrderBook) {
		if cfg != nil && cfg.Epsilon != 0 {
			ob.epsilon = cfg.Epsilon
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(ob *OrderBook) {
		ob.now = now
	}
}

type restingRef struct {
	side  Side
	price float64
}

// OrderBook is a single-instrument limit order book with price-time
// priority. It is single-writer: callers that share a book across
// goroutines must serialise access themselves.
type OrderBook struct {
	bids *ladder
	asks *ladder

	// lookup holds exactly the resting orders.
	lookup map[uint64]restingRef

	ids     IDGenerator
	epsilon float64
	now     func() time.Time
}

func NewOrderBook(ids IDGenerator, opts ...Option) *OrderBook {
	ob := &OrderBook{
		bids:    newLadder(BID),
		asks:    newLadder(ASK),
		lookup:  make(map[uint64]restingRef),
		ids:     ids,
		epsilon: DefaultEpsilon,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(ob)
	}
	return ob
}

// Submit validates order and then either rests it or matches it against the
// opposite side, resting any remainder. The book stamps CreatedAt with its
// clock, keeps order and decrements its Size as it fills; callers must not
// modify it afterwards.
func (ob *OrderBook) Submit(order *Order) (SubmitResult, error) {
	if err := ob.validate(order); err != nil {
		return SubmitResult{}, err
	}
	order.CreatedAt = ob.now()

	if ob.isPassive(order) {
		ob.rest(order)
		return SubmitResult{OrderID: order.ID, Resting: true}, nil
	}

	trades := ob.match(order)
	if order.Size == 0 {
		return SubmitResult{OrderID: order.ID, Trades: trades}, nil
	}

	ob.rest(order)
	return SubmitResult{OrderID: order.ID, Resting: true, Trades: trades}, nil
}

// Cancel removes a resting order.
func (ob *OrderBook) Cancel(orderID uint64) error {
	ref, ok := ob.lookup[orderID]
	if !ok {
		return fmt.Errorf("%w: id=%d", ErrOrderNotFound, orderID)
	}

	delete(ob.lookup, orderID)
	if !ob.ladder(ref.side).remove(ref.price, orderID) {
		return fmt.Errorf("%w: id=%d not queued at %v", ErrOrderNotFound, orderID, ref.price)
	}
	return nil
}

func (ob *OrderBook) validate(order *Order) error {
	if order == nil {
		return fmt.Errorf("%w: nil order", ErrInvalidOrder)
	}
	if !order.Side.valid() {
		return fmt.Errorf("%w: side=%q", ErrInvalidOrder, order.Side)
	}
	if order.Size <= 0 {
		return fmt.Errorf("%w: size=%d", ErrInvalidOrder, order.Size)
	}
	if math.IsNaN(order.Price) || math.IsInf(order.Price, 0) || order.Price <= 0 {
		return fmt.Errorf("%w: price=%v", ErrInvalidOrder, order.Price)
	}
	if _, ok := ob.lookup[order.ID]; ok {
		return fmt.Errorf("%w: id=%d", ErrDuplicateOrder, order.ID)
	}
	return nil
}

func (ob *OrderBook) isPassive(order *Order) bool {
	if order.Side == BID {
		bestAsk, ok := ob.asks.best()
		return !ok || order.Price < bestAsk-ob.epsilon
	}

	bestBid, ok := ob.bids.best()
	return !ok || order.Price > bestBid+ob.epsilon
}

// isDeeper reports whether a counter-side level at price lies beyond the
// limit of order.
func (ob *OrderBook) isDeeper(price float64, order *Order) bool {
	if order.Side == BID {
		return price-ob.epsilon > order.Price
	}
	return price+ob.epsilon < order.Price
}

func (ob *OrderBook) rest(order *Order) {
	ob.lookup[order.ID] = restingRef{side: order.Side, price: order.Price}
	ob.ladder(order.Side).push(order)
}

func (ob *OrderBook) match(order *Order) []Trade {
	var trades []Trade
	counter := ob.ladder(order.Side.Opposite())

	for order.Size > 0 {
		price, ok := counter.best()
		if !ok || ob.isDeeper(price, order) {
			break
		}

		q := counter.level(price)
		for i := 0; i < q.Len() && order.Size > 0; i++ {
			resting := q.At(i)
			qty := min(resting.Size, order.Size)
			resting.Size -= qty
			order.Size -= qty
			trades = append(trades, ob.newTrade(price, qty, resting, order))
		}

		// fills consume the queue from the front, so filled orders form a prefix
		for q.Len() > 0 && q.Front().Size == 0 {
			delete(ob.lookup, q.PopFront().ID)
		}
		if q.Len() > 0 {
			break
		}
		counter.dropLevel(price)
	}

	return trades
}

func (ob *OrderBook) newTrade(price float64, qty int64, maker, taker *Order) Trade {
	return Trade{
		ID:           ob.ids.Next(sequence.Trade),
		Price:        price,
		Size:         qty,
		MakerOrderID: maker.ID,
		TakerOrderID: taker.ID,
		TakerSide:    taker.Side,
		CreatedAt:    ob.now(),
	}
}

func (ob *OrderBook) ladder(side Side) *ladder {
	if side == BID {
		return ob.bids
	}
	return ob.asks
}

func (ob *OrderBook) BestBid() (float64, bool) {
	return ob.bids.best()
}

// BestBidSize is the total remaining size resting at the best bid.
func (ob *OrderBook) BestBidSize() (int64, bool) {
	return ob.bids.bestSize()
}

func (ob *OrderBook) BestAsk() (float64, bool) {
	return ob.asks.best()
}

func (ob *OrderBook) BestAskSize() (int64, bool) {
	return ob.asks.bestSize()
}

// Len returns the number of resting orders.
func (ob *OrderBook) Len() int {
	return len(ob.lookup)
}

// Order returns a copy of a resting order.
func (ob *OrderBook) Order(orderID uint64) (Order, bool) {
	ref, ok := ob.lookup[orderID]
	if !ok {
		return Order{}, false
	}

	q := ob.ladder(ref.side).level(ref.price)
	if q == nil {
		return Order{}, false
	}
	i := q.Index(func(o *Order) bool { return o.ID == orderID })
	if i < 0 {
		return Order{}, false
	}
	return *q.At(i), true
}

// Depth returns up to levels aggregated price levels per side, best first.
func (ob *OrderBook) Depth(levels int) Depth {
	return Depth{
		Bids: ob.bids.top(levels),
		Asks: ob.asks.top(levels),
	}
}
