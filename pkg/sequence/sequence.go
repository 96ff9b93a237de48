package sequence

import (
	"fmt"
	"sync/atomic"
)

type Kind int

const (
	Client Kind = iota
	Order
	Trade

	numKinds
)

func (k Kind) String() string {
	switch k {
	case Client:
		return "client"
	case Order:
		return "order"
	case Trade:
		return "trade"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Sequence hands out ids per kind, starting from 0. Each kind has its own
// counter so an order id and a trade id may share a value.
type Sequence struct {
	counters [numKinds]atomic.Uint64
}

func New() *Sequence {
	return &Sequence{}
}

// Next returns the next id for kind. It panics on an unknown kind.
func (s *Sequence) Next(kind Kind) uint64 {
	if kind < 0 || kind >= numKinds {
		panic(fmt.Sprintf("sequence: unknown %s", kind))
	}
	return s.counters[kind].Add(1) - 1
}
