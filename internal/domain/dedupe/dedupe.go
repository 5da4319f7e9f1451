// Package dedupe suppresses repeated generation jobs. Identical
// name+seed+reputation inputs always produce the same league, so a batch only
// needs to build each fingerprint once.
package dedupe

import (
	"container/list"
	"context"
	"sync"
)

const defaultMaxSize = 10_000

// Deduper records job fingerprints for at-most-once generation.
type Deduper interface {
	// SeenAndRecord reports whether fp was already recorded, recording it if not.
	SeenAndRecord(ctx context.Context, fp string) bool
	// Claim records fp as owned by owner. When fp is already recorded it
	// returns the earlier owner and true instead.
	Claim(ctx context.Context, fp, owner string) (string, bool)
	// Unrecord forgets fp so a job that was accepted but never ran can be
	// submitted again.
	Unrecord(ctx context.Context, fp string)
	Size() int64
}

// inMemoryDeduper keeps fingerprints in insertion order. When bounded, the
// oldest fingerprint is evicted first.
type inMemoryDeduper struct {
	mu      sync.Mutex
	seen    map[string]*list.Element
	order   *list.List
	maxSize int // <= 0 means unbounded
}

// NewInMemoryDeduper creates a deduper; bounded to 10k fingerprints unless
// WithMaxSize says otherwise.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{
		seen:    make(map[string]*list.Element),
		order:   list.New(),
		maxSize: defaultMaxSize,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

type entry struct {
	fp    string
	owner string
}

func (d *inMemoryDeduper) SeenAndRecord(ctx context.Context, fp string) bool {
	_, seen := d.Claim(ctx, fp, "")
	return seen
}

func (d *inMemoryDeduper) Claim(_ context.Context, fp, owner string) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if e, ok := d.seen[fp]; ok {
		return e.Value.(entry).owner, true
	}
	if d.maxSize > 0 && d.order.Len() >= d.maxSize {
		oldest := d.order.Front()
		d.order.Remove(oldest)
		delete(d.seen, oldest.Value.(entry).fp)
	}
	d.seen[fp] = d.order.PushBack(entry{fp: fp, owner: owner})
	return owner, false
}

func (d *inMemoryDeduper) Unrecord(_ context.Context, fp string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if e, ok := d.seen[fp]; ok {
		d.order.Remove(e)
		delete(d.seen, fp)
	}
}

func (d *inMemoryDeduper) Size() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return int64(d.order.Len())
}
