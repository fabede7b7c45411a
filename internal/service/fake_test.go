package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"clubconnect/internal/itemstore"
	"clubconnect/internal/repo"
)

// ------------------------
// Fake Item Store
// ------------------------

// FakeStore delegates to an in-memory store unless a Func override is set.
type FakeStore struct {
	mem   *itemstore.MemoryStore
	trace []string

	PutFunc    func(ctx context.Context, collection string, key itemstore.Key, item itemstore.Item) error
	GetFunc    func(ctx context.Context, collection string, key itemstore.Key) (itemstore.Item, bool, error)
	DeleteFunc func(ctx context.Context, collection string, key itemstore.Key) error
}

func NewFakeStore() *FakeStore {
	return &FakeStore{mem: itemstore.NewMemoryStore()}
}

func (f *FakeStore) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeStore) Put(ctx context.Context, collection string, key itemstore.Key, item itemstore.Item) error {
	f.record("Put " + collection)
	if f.PutFunc != nil {
		return f.PutFunc(ctx, collection, key, item)
	}
	return f.mem.Put(ctx, collection, key, item)
}

func (f *FakeStore) Get(ctx context.Context, collection string, key itemstore.Key) (itemstore.Item, bool, error) {
	f.record("Get " + collection)
	if f.GetFunc != nil {
		return f.GetFunc(ctx, collection, key)
	}
	return f.mem.Get(ctx, collection, key)
}

func (f *FakeStore) Delete(ctx context.Context, collection string, key itemstore.Key) error {
	f.record("Delete " + collection)
	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, collection, key)
	}
	return f.mem.Delete(ctx, collection, key)
}

func (f *FakeStore) ScanAll(ctx context.Context, collection string) ([]itemstore.Item, error) {
	f.record("Scan " + collection)
	return f.mem.ScanAll(ctx, collection)
}

func (f *FakeStore) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeStore) ResetTrace() {
	f.trace = nil
}

var _ itemstore.Store = (*FakeStore)(nil)

func newTestServices(t *testing.T) (*ClubService, *EventService, *FakeStore) {
	t.Helper()
	store := NewFakeStore()
	log := zerolog.Nop()
	r, err := repo.NewRepository(store, &log)
	require.NoError(t, err)
	clubs, events := New(r, &log)
	return clubs, events, store
}
