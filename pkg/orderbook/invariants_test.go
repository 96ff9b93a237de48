package orderbook

type fataler interface {
	Helper()
	Fatalf(format string, args ...any)
}

// checkInvariants walks both ladders and fails t when the book structure is
// inconsistent.
func checkInvariants(t fataler, ob *OrderBook) {
	t.Helper()

	resting := 0
	for _, l := range []*ladder{ob.bids, ob.asks} {
		if l.prices.Len() != len(l.levels) {
			t.Fatalf("%s: %d heap prices but %d levels", l.side, l.prices.Len(), len(l.levels))
		}

		for price, q := range l.levels {
			if !l.prices.Contains(price) {
				t.Fatalf("%s: level %v missing from heap", l.side, price)
			}
			if q.Len() == 0 {
				t.Fatalf("%s: empty level at %v", l.side, price)
			}

			var lastID uint64
			for i := 0; i < q.Len(); i++ {
				o := q.At(i)
				if o.Size <= 0 {
					t.Fatalf("%s: order %d resting with size %d", l.side, o.ID, o.Size)
				}
				if o.Side != l.side || o.Price != price {
					t.Fatalf("%s: order %+v queued at wrong level %v", l.side, o, price)
				}
				if i > 0 && o.ID <= lastID {
					t.Fatalf("%s: level %v out of arrival order", l.side, price)
				}
				lastID = o.ID

				ref, ok := ob.lookup[o.ID]
				if !ok || ref.side != l.side || ref.price != price {
					t.Fatalf("%s: lookup for order %d is %+v (found=%v)", l.side, o.ID, ref, ok)
				}
				resting++
			}
		}
	}

	if resting != len(ob.lookup) {
		t.Fatalf("lookup holds %d ids but %d orders rest", len(ob.lookup), resting)
	}

	bid, hasBid := ob.BestBid()
	ask, hasAsk := ob.BestAsk()
	if hasBid && hasAsk && !(bid+ob.epsilon < ask) {
		t.Fatalf("crossed book: bid %v ask %v", bid, ask)
	}

	for _, l := range []*ladder{ob.bids, ob.asks} {
		best, ok := l.best()
		if !ok {
			continue
		}
		for price := range l.levels {
			if (l.side == BID && price > best) || (l.side == ASK && price < best) {
				t.Fatalf("%s: best %v but level %v is better", l.side, best, price)
			}
		}
		size, _ := l.bestSize()
		if size != levelSize(l.levels[best]) {
			t.Fatalf("%s: best size %d does not match level", l.side, size)
		}
	}
}
