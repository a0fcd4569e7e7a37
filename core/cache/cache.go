// Package cache implements the client query cache: deduplicated fetches, per-entry tags
// and tag-based invalidation.
package cache

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"

	"github.com/trezcool/masomo-portal/core"
)

var ErrClosed = errors.New("cache: closed")

// State of a query.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateSuccess
	StateError
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return "idle"
	}
}

// Retention decides what happens to an entry once its last subscriber is gone.
type Retention int

const (
	// RetainUntilInvalidated keeps the entry until one of its tags is invalidated.
	RetainUntilInvalidated Retention = iota
	// DropWhenUnused removes the entry as soon as it has no subscribers.
	DropWhenUnused
)

// FetchFunc performs the request behind a query.
type FetchFunc func(ctx context.Context) ([]byte, error)

// QueryDef describes a query: its key, how to fetch it and which tags its result carries.
type QueryDef struct {
	Key       Key
	Fetch     FetchFunc
	Tags      func(body []byte) []Tag
	Retention Retention
}

// Snapshot is a copy of an entry's state. Data must not be modified.
type Snapshot struct {
	State State
	Data  []byte
	Err   error
	Tags  []Tag
}

type entry struct {
	def     QueryDef
	state   State
	data    []byte
	err     error
	tags    []Tag
	fresh   bool
	fetchID uint64 // awaited fetch, 0 when none
	subs    map[*Subscription]struct{}
}

func (e *entry) snapshot() Snapshot {
	return Snapshot{State: e.state, Data: e.data, Err: e.err, Tags: append([]Tag(nil), e.tags...)}
}

// Option configures a Cache.
type Option func(*Cache)

func WithMetrics(m *Metrics) Option {
	return func(c *Cache) { c.metrics = m }
}

func WithLogger(l core.Logger) Option {
	return func(c *Cache) { c.logger = l }
}

// Cache is safe for concurrent use.
// Fetches run on the cache's own context, so a waiter giving up never aborts a shared request.
type Cache struct {
	mu      sync.Mutex
	entries map[Key]*entry
	group   singleflight.Group
	nextID  uint64
	closed  bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	metrics *Metrics
	logger  core.Logger
}

func New(opts ...Option) *Cache {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Cache{
		entries: make(map[Key]*entry),
		ctx:     ctx,
		cancel:  cancel,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.metrics == nil {
		c.metrics = NewMetrics(nil)
	}
	return c
}

// Subscribe mounts a subscriber on def's entry, fetching it unless a fresh result is cached
// or an identical fetch is already in flight.
func (c *Cache) Subscribe(def QueryDef) *Subscription {
	sub := &Subscription{
		c:       c,
		key:     def.Key,
		updates: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		sub.closed = true
		close(sub.done)
		return sub
	}

	e, ok := c.entries[def.Key]
	if !ok {
		e = &entry{subs: make(map[*Subscription]struct{})}
		c.add(def.Key, e)
	}
	e.def = def
	e.subs[sub] = struct{}{}
	sub.e = e

	switch {
	case e.fresh:
		c.metrics.Hits.Inc()
	case e.fetchID != 0:
		c.metrics.Misses.Inc()
		c.metrics.Joins.Inc()
	default:
		c.metrics.Misses.Inc()
		c.fetch(e)
	}
	sub.last = e.snapshot()
	return sub
}

// Query subscribes, waits for the result and unsubscribes.
func (c *Cache) Query(ctx context.Context, def QueryDef) ([]byte, error) {
	sub := c.Subscribe(def)
	defer sub.Close()

	snap, err := sub.Wait(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Data, nil
}

// Invalidate marks every entry carrying a tag matched by tags as stale.
// Entries with subscribers refetch; the others are dropped. It returns the number of entries hit.
func (c *Cache) Invalidate(tags ...Tag) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	var n int
	for key, e := range c.entries {
		if !matchesAny(tags, e.tags) {
			continue
		}
		n++
		c.metrics.Invalidated.Inc()

		if len(e.subs) == 0 {
			c.remove(key)
			continue
		}
		c.group.Forget(key.String())
		e.fresh = false
		c.fetch(e)
	}
	return n
}

// Lookup reports whether key holds a fresh result, without fetching.
func (c *Cache) Lookup(key Key) (Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return Snapshot{}, false
	}
	return e.snapshot(), e.fresh && e.state == StateSuccess
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Reset drops every entry. Mounted subscriptions still receive the outcome of their
// in-flight fetch, but nothing of theirs is cached anymore.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.entries {
		c.group.Forget(key.String())
		c.remove(key)
	}
}

// Close drops every entry, closes every subscription and waits for in-flight fetches to return.
func (c *Cache) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	for key, e := range c.entries {
		for sub := range e.subs {
			sub.closeLocked()
		}
		e.subs = nil
		c.remove(key)
	}
	c.cancel()
	c.mu.Unlock()

	c.wg.Wait()
}

func (c *Cache) add(key Key, e *entry) {
	c.entries[key] = e
	c.metrics.Entries.Inc()
}

func (c *Cache) remove(key Key) {
	delete(c.entries, key)
	c.metrics.Entries.Dec()
}

// fetch starts a new fetch for e, superseding any awaited one. c.mu must be held.
func (c *Cache) fetch(e *entry) {
	c.nextID++
	id := c.nextID
	e.fetchID = id
	e.state = StateLoading
	c.notify(e)

	def := e.def
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		var leader bool
		v, err, _ := c.group.Do(def.Key.String(), func() (interface{}, error) {
			leader = true
			c.metrics.Fetches.Inc()
			return def.Fetch(c.ctx)
		})
		if !leader {
			c.metrics.Joins.Inc()
		}
		body, _ := v.([]byte)
		c.complete(e, id, body, err)
	}()
}

func (c *Cache) complete(e *entry, id uint64, body []byte, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e.fetchID != id {
		return // superseded
	}
	e.fetchID = 0

	if err != nil {
		e.state = StateError
		e.err = err
		e.fresh = false
		if c.logger != nil {
			c.logger.Debug("cache: fetch "+e.def.Key.String()+" failed", err)
		}
	} else {
		e.state = StateSuccess
		e.data = body
		e.err = nil
		e.fresh = true
		e.tags = nil
		if e.def.Tags != nil {
			e.tags = e.def.Tags(body)
		}
	}
	c.notify(e)
}

// notify pushes e's state to its subscribers. c.mu must be held.
func (c *Cache) notify(e *entry) {
	snap := e.snapshot()
	for sub := range e.subs {
		sub.last = snap
		select {
		case sub.updates <- struct{}{}:
		default:
		}
	}
}

// Subscription is a mounted consumer of a cache entry. It is meant for a single consumer goroutine.
type Subscription struct {
	c       *Cache
	key     Key
	e       *entry
	last    Snapshot
	closed  bool
	updates chan struct{}
	done    chan struct{}
}

// State returns the latest snapshot delivered to s.
func (s *Subscription) State() Snapshot {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	return s.last
}

// Updates receives a value whenever the state of s changes.
func (s *Subscription) Updates() <-chan struct{} {
	return s.updates
}

// Wait blocks until the entry settles (success or error), s is closed or ctx is done.
func (s *Subscription) Wait(ctx context.Context) (Snapshot, error) {
	for {
		s.c.mu.Lock()
		snap, closed := s.last, s.closed
		s.c.mu.Unlock()

		if closed {
			return snap, ErrClosed
		}
		switch snap.State {
		case StateSuccess:
			return snap, nil
		case StateError:
			return snap, snap.Err
		}

		select {
		case <-s.updates:
		case <-s.done:
		case <-ctx.Done():
			return snap, ctx.Err()
		}
	}
}

// Refetch forces a new request for the entry of s.
// An entry dropped by Reset is cached again.
func (s *Subscription) Refetch() {
	c := s.c
	c.mu.Lock()
	defer c.mu.Unlock()

	if s.closed {
		return
	}
	switch cur, ok := c.entries[s.key]; {
	case !ok:
		c.add(s.key, s.e)
	case cur != s.e:
		delete(s.e.subs, s)
		cur.subs[s] = struct{}{}
		s.e = cur
	}
	c.group.Forget(s.key.String())
	s.e.fresh = false
	c.fetch(s.e)
}

// Close unmounts s. Results arriving afterwards are not delivered to it.
func (s *Subscription) Close() {
	c := s.c
	c.mu.Lock()
	defer c.mu.Unlock()

	if s.closed {
		return
	}
	s.closeLocked()

	e := s.e
	delete(e.subs, s)
	if len(e.subs) == 0 && e.def.Retention == DropWhenUnused && c.entries[s.key] == e {
		c.remove(s.key)
	}
}

func (s *Subscription) closeLocked() {
	s.closed = true
	close(s.done)
}
