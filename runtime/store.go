// Package runtime provides in-memory implementations of the services the
// keeper consumes: the core KV store and event services plus the bank, epoch,
// and farm collaborators. They back the standalone engine and every test in
// this repo; embedding the keeper in a real app replaces them wholesale.
package runtime

import (
	"context"
	"errors"
	"sort"
	"sync"

	"cosmossdk.io/core/store"
)

// MemKVStoreService is an in-memory core store service. Every OpenKVStore
// call returns the same backing store.
type MemKVStoreService struct {
	store *MemKV
}

var _ store.KVStoreService = (*MemKVStoreService)(nil)

// NewKVStoreService returns a store service over a fresh in-memory store.
func NewKVStoreService() *MemKVStoreService {
	return &MemKVStoreService{store: NewMemKV()}
}

// OpenKVStore returns the backing store.
func (s *MemKVStoreService) OpenKVStore(_ context.Context) store.KVStore {
	return s.store
}

// MemKV is an ordered in-memory KV store implementing the core store
// interface. Iterators snapshot the keys in range at creation time, so writes
// during iteration never disturb a live iterator.
type MemKV struct {
	mu   sync.RWMutex
	data map[string][]byte
}

var _ store.KVStore = (*MemKV)(nil)

// NewMemKV returns an empty store.
func NewMemKV() *MemKV {
	return &MemKV{data: make(map[string][]byte)}
}

// Get fetches a value by key, nil if absent.
func (s *MemKV) Get(key []byte) ([]byte, error) {
	if len(key) == 0 {
		return nil, errors.New("key is empty")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.data[string(key)]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Has reports whether a key exists.
func (s *MemKV) Has(key []byte) (bool, error) {
	if len(key) == 0 {
		return false, errors.New("key is empty")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.data[string(key)]
	return ok, nil
}

// Set stores a value under key.
func (s *MemKV) Set(key, value []byte) error {
	if len(key) == 0 {
		return errors.New("key is empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]byte, len(value))
	copy(stored, value)
	s.data[string(key)] = stored
	return nil
}

// Delete removes a key. Deleting an absent key is a no-op.
func (s *MemKV) Delete(key []byte) error {
	if len(key) == 0 {
		return errors.New("key is empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, string(key))
	return nil
}

// Iterator returns an ascending iterator over [start, end). A nil start
// iterates from the first key, a nil end through the last.
func (s *MemKV) Iterator(start, end []byte) (store.Iterator, error) {
	return s.newIterator(start, end, false), nil
}

// ReverseIterator returns a descending iterator over [start, end).
func (s *MemKV) ReverseIterator(start, end []byte) (store.Iterator, error) {
	return s.newIterator(start, end, true), nil
}

func (s *MemKV) newIterator(start, end []byte, reverse bool) *memIterator {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		if start != nil && k < string(start) {
			continue
		}
		if end != nil && k >= string(end) {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if reverse {
		for i, j := 0, len(keys)-1; i < j; i, j = i+1, j-1 {
			keys[i], keys[j] = keys[j], keys[i]
		}
	}

	values := make([][]byte, len(keys))
	for i, k := range keys {
		value := s.data[k]
		values[i] = make([]byte, len(value))
		copy(values[i], value)
	}

	return &memIterator{start: start, end: end, keys: keys, values: values}
}

type memIterator struct {
	start  []byte
	end    []byte
	keys   []string
	values [][]byte
	pos    int
	closed bool
}

var _ store.Iterator = (*memIterator)(nil)

func (it *memIterator) Domain() ([]byte, []byte) { return it.start, it.end }

func (it *memIterator) Valid() bool {
	return !it.closed && it.pos < len(it.keys)
}

func (it *memIterator) Next() {
	it.pos++
}

func (it *memIterator) Key() []byte {
	return []byte(it.keys[it.pos])
}

func (it *memIterator) Value() []byte {
	return it.values[it.pos]
}

func (it *memIterator) Error() error {
	if !it.Valid() {
		return errors.New("iterator is invalid")
	}
	return nil
}

func (it *memIterator) Close() error {
	it.closed = true
	return nil
}
