package sequence

import (
	"sync"
	"testing"
)

func TestNextStartsAtZero(t *testing.T) {
	s := New()

	for want := uint64(0); want < 5; want++ {
		if got := s.Next(Order); got != want {
			t.Fatalf("expected order id %d, got %d", want, got)
		}
	}
}

func TestKindsAreIndependent(t *testing.T) {
	s := New()

	s.Next(Order)
	s.Next(Order)
	s.Next(Trade)

	if got := s.Next(Client); got != 0 {
		t.Errorf("expected first client id 0, got %d", got)
	}
	if got := s.Next(Trade); got != 1 {
		t.Errorf("expected second trade id 1, got %d", got)
	}
	if got := s.Next(Order); got != 2 {
		t.Errorf("expected third order id 2, got %d", got)
	}
}

func TestConcurrentNextNeverRepeats(t *testing.T) {
	s := New()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = make(map[uint64]bool)
	)
	n := 100
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids := make([]uint64, 0, 100)
			for range 100 {
				ids = append(ids, s.Next(Trade))
			}
			mu.Lock()
			defer mu.Unlock()
			for _, id := range ids {
				if seen[id] {
					t.Errorf("id %d handed out twice", id)
				}
				seen[id] = true
			}
		}()
	}
	wg.Wait()

	if len(seen) != n*100 {
		t.Errorf("expected %d distinct ids, got %d", n*100, len(seen))
	}
}

func TestUnknownKindPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for unknown kind")
		}
	}()
	New().Next(Kind(42))
}
