package gazetteer

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/roach88/yearspans/internal/span"
)

// Memo caches another gazetteer's answers. Found periods and not-found
// answers are cached; other errors are not. Concurrent lookups of the same
// label and authority share one call to the underlying gazetteer.
//
// The shared call keeps the first caller's context values but not its
// cancellation, so one caller timing out does not fail the others. Each
// caller stops waiting when its own context ends.
type Memo struct {
	next  Gazetteer
	opts  options
	group singleflight.Group
	mu    sync.RWMutex
	cache map[memoKey]memoEntry
}

type memoKey struct {
	label     string
	authority string
}

type memoEntry struct {
	span  span.YearSpan
	found bool
}

// NewMemo wraps next.
func NewMemo(next Gazetteer, opts ...Option) *Memo {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Memo{
		next:  next,
		opts:  o,
		cache: make(map[memoKey]memoEntry),
	}
}

// Lookup implements Gazetteer.
func (m *Memo) Lookup(ctx context.Context, label, authority string) (span.YearSpan, error) {
	key := memoKey{label: Key(label), authority: authority}
	if e, ok := m.cached(key); ok {
		return e.result(label, authority)
	}

	if err := ctx.Err(); err != nil {
		return span.Unresolved(), err
	}

	ch := m.group.DoChan(key.label+"\x00"+key.authority, func() (any, error) {
		if e, ok := m.cached(key); ok {
			return e, nil
		}
		s, err := m.next.Lookup(context.WithoutCancel(ctx), label, authority)
		if err != nil && !IsNotFound(err) {
			return nil, err
		}
		e := memoEntry{span: s, found: err == nil}
		m.mu.Lock()
		m.cache[key] = e
		m.mu.Unlock()
		return e, nil
	})

	select {
	case <-ctx.Done():
		return span.Unresolved(), ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return span.Unresolved(), r.Err
		}
		if r.Shared {
			m.opts.logger.Debug("gazetteer lookup shared",
				"label", label,
				"authority", authority,
			)
		}
		return r.Val.(memoEntry).result(label, authority)
	}
}

// Len returns the number of cached answers.
func (m *Memo) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.cache)
}

func (m *Memo) cached(key memoKey) (memoEntry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.cache[key]
	return e, ok
}

func (e memoEntry) result(label, authority string) (span.YearSpan, error) {
	if !e.found {
		return span.Unresolved(), notFound(label, authority)
	}
	return e.span, nil
}
