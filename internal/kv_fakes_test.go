package internal

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// slowKV delays every call so interleavings between concurrent
// read-modify-write cycles become likely
type slowKV struct {
	KVStore
	delay time.Duration
}

func (s *slowKV) Get(ctx context.Context, key string) (string, bool, error) {
	time.Sleep(s.delay)
	return s.KVStore.Get(ctx, key)
}

func (s *slowKV) Set(ctx context.Context, key, value string) error {
	time.Sleep(s.delay)
	return s.KVStore.Set(ctx, key, value)
}

// failingKV reads through to an inner store but refuses writes
type failingKV struct {
	KVStore
	writes atomic.Int32
}

var errDiskFull = errors.New("disk full")

func (f *failingKV) Set(ctx context.Context, key, value string) error {
	f.writes.Add(1)
	return &PersistenceError{Key: key, Op: "set", Err: errDiskFull}
}

// unreadableKV fails every read and remembers writes
type unreadableKV struct {
	mu     sync.Mutex
	values map[string]string
	writes atomic.Int32
}

func (u *unreadableKV) Get(ctx context.Context, key string) (string, bool, error) {
	return "", false, &PersistenceError{Key: key, Op: "get", Err: errors.New("i/o error")}
}

func (u *unreadableKV) Set(ctx context.Context, key, value string) error {
	u.writes.Add(1)
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.values == nil {
		u.values = make(map[string]string)
	}
	u.values[key] = value
	return nil
}

// flakyKV fails the first failures reads and then reads through
type flakyKV struct {
	KVStore
	failures atomic.Int32
}

func newFlakyKV(inner KVStore, failures int) *flakyKV {
	f := &flakyKV{KVStore: inner}
	f.failures.Store(int32(failures))
	return f
}

func (f *flakyKV) Get(ctx context.Context, key string) (string, bool, error) {
	if f.failures.Add(-1) >= 0 {
		return "", false, &PersistenceError{Key: key, Op: "get", Err: errors.New("database is locked")}
	}
	return f.KVStore.Get(ctx, key)
}

// memKV is a map-backed store with no background goroutines
type memKV struct {
	mu     sync.Mutex
	values map[string]string
}

func newMemKV() *memKV {
	return &memKV{values: make(map[string]string)}
}

func (m *memKV) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memKV) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
