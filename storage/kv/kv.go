// Package kv implements the durable client storage the session lives in.
package kv

import (
	"sync"

	"github.com/trezcool/masomo-portal/core"
	"github.com/trezcool/masomo-portal/core/session"
)

// ErrNotFound is returned by Get and Delete for absent keys.
var ErrNotFound = session.ErrKeyNotFound

// Store is a session.Store that can be closed.
type Store interface {
	session.Store
	Close() error
}

// Open returns the store configured by conf: in-memory in tests, badger otherwise.
func Open(conf *core.Config, logger core.Logger) (Store, error) {
	if conf.Storage.InMemory {
		return NewMemStore(), nil
	}
	return NewBadgerStore(conf.Storage.Dir, logger)
}

// MemStore keeps values in a map. It does not survive restarts.
type MemStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

var _ Store = (*MemStore)(nil)

func NewMemStore() *MemStore {
	return &MemStore{data: make(map[string][]byte)}
}

func (s *MemStore) Get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), val...), nil
}

func (s *MemStore) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append([]byte(nil), value...)
	return nil
}

func (s *MemStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[key]; !ok {
		return ErrNotFound
	}
	delete(s.data, key)
	return nil
}

func (s *MemStore) Close() error {
	return nil
}
