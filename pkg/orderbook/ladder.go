package orderbook

import (
	"container/heap"

	"github.com/gammazero/deque"
)

// ladder holds the resting orders of one side, keyed by exact price. Every
// level queue is non-empty and ordered by arrival.
type ladder struct {
	side   Side
	levels map[float64]*deque.Deque[*Order]
	prices *PriceHeap
}

func newLadder(side Side) *ladder {
	less := func(i, j float64) bool { return i < j } // asks: lowest first
	if side == BID {
		less = func(i, j float64) bool { return i > j }
	}

	return &ladder{
		side:   side,
		levels: make(map[float64]*deque.Deque[*Order]),
		prices: NewPriceHeap(less),
	}
}

func (l *ladder) best() (float64, bool) {
	return l.prices.Peek()
}

func (l *ladder) level(price float64) *deque.Deque[*Order] {
	return l.levels[price]
}

func (l *ladder) push(order *Order) {
	q := l.levels[order.Price]
	if q == nil {
		q = &deque.Deque[*Order]{}
		l.levels[order.Price] = q
		heap.Push(l.prices, order.Price)
	}
	q.PushBack(order)
}

func (l *ladder) dropLevel(price float64) {
	delete(l.levels, price)
	l.prices.Remove(price)
}

// remove takes the order with id out of the level at price.
func (l *ladder) remove(price float64, id uint64) bool {
	q := l.levels[price]
	if q == nil {
		return false
	}

	i := q.Index(func(o *Order) bool { return o.ID == id })
	if i < 0 {
		return false
	}
	q.Remove(i)

	if q.Len() == 0 {
		l.dropLevel(price)
	}
	return true
}

func levelSize(q *deque.Deque[*Order]) int64 {
	var total int64
	for i := 0; i < q.Len(); i++ {
		total += q.At(i).Size
	}
	return total
}

func (l *ladder) bestSize() (int64, bool) {
	price, ok := l.best()
	if !ok {
		return 0, false
	}
	return levelSize(l.levels[price]), true
}

// top returns up to n aggregated levels, best first.
func (l *ladder) top(n int) []Level {
	prices := l.prices.Top(n)
	levels := make([]Level, 0, len(prices))
	for _, price := range prices {
		q := l.levels[price]
		levels = append(levels, Level{
			Price:  price,
			Size:   levelSize(q),
			Orders: q.Len(),
		})
	}
	return levels
}
