package itemstore

import (
	"context"
	"time"

	"clubconnect/internal/metrics"
)

type instrumented struct {
	next Store
}

// WithMetrics records count, outcome and latency of every call made to next.
func WithMetrics(next Store) Store {
	return &instrumented{next: next}
}

func observe(collection, op string, start time.Time, err error) {
	metrics.StoreOperations.WithLabelValues(collection, op, metrics.Outcome(err)).Inc()
	metrics.StoreDuration.WithLabelValues(collection, op).Observe(time.Since(start).Seconds())
}

func (s *instrumented) Put(ctx context.Context, collection string, key Key, item Item) error {
	start := time.Now()
	err := s.next.Put(ctx, collection, key, item)
	observe(collection, "put", start, err)
	return err
}

func (s *instrumented) Get(ctx context.Context, collection string, key Key) (Item, bool, error) {
	start := time.Now()
	item, ok, err := s.next.Get(ctx, collection, key)
	observe(collection, "get", start, err)
	return item, ok, err
}

func (s *instrumented) Delete(ctx context.Context, collection string, key Key) error {
	start := time.Now()
	err := s.next.Delete(ctx, collection, key)
	observe(collection, "delete", start, err)
	return err
}

func (s *instrumented) ScanAll(ctx context.Context, collection string) ([]Item, error) {
	start := time.Now()
	items, err := s.next.ScanAll(ctx, collection)
	observe(collection, "scan", start, err)
	return items, err
}
