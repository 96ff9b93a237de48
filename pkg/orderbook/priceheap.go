package orderbook

import (
	"container/heap"
	"slices"
)

// PriceHeap implements heap.Interface over distinct prices. index tracks the
// slot of every price so a level can be dropped from the middle of the heap.
type PriceHeap struct {
	prices []float64
	less   func(i, j float64) bool
	index  map[float64]int
}

func NewPriceHeap(less func(i, j float64) bool) *PriceHeap {
	return &PriceHeap{
		prices: []float64{},
		less:   less,
		index:  make(map[float64]int),
	}
}

func (h PriceHeap) Len() int {
	return len(h.prices)
}

func (h PriceHeap) Less(i, j int) bool {
	return h.less(h.prices[i], h.prices[j])
}

func (h PriceHeap) Swap(i, j int) {
	h.prices[i], h.prices[j] = h.prices[j], h.prices[i]
	h.index[h.prices[i]] = i
	h.index[h.prices[j]] = j
}

func (h *PriceHeap) Push(x any) {
	price := x.(float64)
	if _, ok := h.index[price]; !ok {
		h.index[price] = len(h.prices)
		h.prices = append(h.prices, price)
	}
}

func (h *PriceHeap) Pop() any {
	n := len(h.prices)
	price := h.prices[n-1]
	h.prices = h.prices[:n-1]
	delete(h.index, price)
	return price
}

func (h *PriceHeap) Peek() (float64, bool) {
	if len(h.prices) == 0 {
		return 0, false
	}
	return h.prices[0], true
}

func (h *PriceHeap) Contains(price float64) bool {
	_, ok := h.index[price]
	return ok
}

// Remove drops price from the heap, reporting whether it was present.
func (h *PriceHeap) Remove(price float64) bool {
	i, ok := h.index[price]
	if !ok {
		return false
	}
	heap.Remove(h, i)
	return true
}

// Top returns up to n prices, best first.
func (h *PriceHeap) Top(n int) []float64 {
	sorted := slices.Clone(h.prices)
	slices.SortFunc(sorted, func(a, b float64) int {
		switch {
		case h.less(a, b):
			return -1
		case h.less(b, a):
			return 1
		}
		return 0
	})
	n = max(n, 0)
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}
