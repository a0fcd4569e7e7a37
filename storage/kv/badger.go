package kv

import (
	"fmt"

	"github.com/dgraph-io/badger/v3"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-portal/core"
)

// BadgerStore persists values in an embedded badger database.
type BadgerStore struct {
	db *badger.DB
}

var _ Store = (*BadgerStore)(nil)

type badgerOptions struct {
	inMemory bool
}

// BadgerOption tunes NewBadgerStore.
type BadgerOption func(*badgerOptions)

// WithInMemory opens badger without touching the disk.
func WithInMemory() BadgerOption {
	return func(o *badgerOptions) { o.inMemory = true }
}

// NewBadgerStore opens (creating if needed) the badger database under dir.
func NewBadgerStore(dir string, logger core.Logger, opts ...BadgerOption) (*BadgerStore, error) {
	var o badgerOptions
	for _, opt := range opts {
		opt(&o)
	}

	bopts := badger.DefaultOptions(dir)
	if o.inMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	} else if dir == "" {
		return nil, errors.New("badger: dir is required")
	}
	bopts.Logger = nil
	if logger != nil {
		bopts.Logger = &badgerLogger{logger: logger}
	}
	bopts.NumVersionsToKeep = 1

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, errors.Wrap(err, "badger: open db")
	}
	return &BadgerStore{db: db}, nil
}

func (s *BadgerStore) Get(key string) ([]byte, error) {
	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrNotFound
			}
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (s *BadgerStore) Set(key string, value []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
}

func (s *BadgerStore) Delete(key string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get([]byte(key)); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrNotFound
			}
			return err
		}
		return txn.Delete([]byte(key))
	})
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// badgerLogger adapts core.Logger to badger's Logger interface.
type badgerLogger struct {
	logger core.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}
