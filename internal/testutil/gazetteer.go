package testutil

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/roach88/yearspans/internal/gazetteer"
	"github.com/roach88/yearspans/internal/span"
)

// FakeGazetteer answers lookups from a fixed label -> [min, max] map and
// counts calls. Labels are compared by gazetteer.Key; authority is ignored.
//
// Block, when set, is waited on before every answer. Closing it releases
// all waiting lookups. Lookups also return early when their context ends.
//
// Thread-safety: safe for concurrent use.
type FakeGazetteer struct {
	Periods map[string][2]int
	Block   chan struct{}
	Err     error

	calls atomic.Int64
	mu    sync.Mutex
	seen  []string
}

// NewFakeGazetteer creates a fake over periods.
func NewFakeGazetteer(periods map[string][2]int) *FakeGazetteer {
	keyed := make(map[string][2]int, len(periods))
	for label, years := range periods {
		keyed[gazetteer.Key(label)] = years
	}
	return &FakeGazetteer{Periods: keyed}
}

// Lookup implements gazetteer.Gazetteer.
func (f *FakeGazetteer) Lookup(ctx context.Context, label, _ string) (span.YearSpan, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.seen = append(f.seen, label)
	f.mu.Unlock()

	if f.Block != nil {
		select {
		case <-f.Block:
		case <-ctx.Done():
			return span.Unresolved(), ctx.Err()
		}
	}
	if f.Err != nil {
		return span.Unresolved(), f.Err
	}
	years, ok := f.Periods[gazetteer.Key(label)]
	if !ok {
		return span.Unresolved(), gazetteer.ErrNotFound
	}
	return span.New(years[0], years[1]), nil
}

// Calls returns the number of lookups made.
func (f *FakeGazetteer) Calls() int {
	return int(f.calls.Load())
}

// Labels returns every label looked up, in call order.
func (f *FakeGazetteer) Labels() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.seen...)
}
