package lmsapi

import (
	"context"
	"net/url"

	"github.com/trezcool/masomo-portal/core/cache"
)

// Tag types
const (
	TagUser           = "User"
	TagCourse         = "Course"
	TagModule         = "Module"
	TagEnrollment     = "Enrollment"
	TagProgress       = "Progress"
	TagSpecialization = "Specialization"
	TagAdmin          = "Admin"
)

// userParam is added to the cache key of session-scoped queries; it is never sent.
const userParam = "_user"

// Query is a mounted, typed query. Close it once its result is no longer needed.
type Query[T any] struct {
	sub    *cache.Subscription
	decode func([]byte) (T, error)
}

// Wait blocks until the query settles and decodes its result.
func (q *Query[T]) Wait(ctx context.Context) (T, error) {
	snap, err := q.sub.Wait(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	return q.decode(snap.Data)
}

func (q *Query[T]) State() cache.State {
	return q.sub.State().State
}

// Updates receives a value whenever the state of the query changes.
func (q *Query[T]) Updates() <-chan struct{} {
	return q.sub.Updates()
}

func (q *Query[T]) Refetch() {
	q.sub.Refetch()
}

func (q *Query[T]) Close() {
	q.sub.Close()
}

// Fetch waits for q once and closes it.
func Fetch[T any](ctx context.Context, q *Query[T]) (T, error) {
	defer q.Close()
	return q.Wait(ctx)
}

// queryDef describes a cached GET.
type queryDef struct {
	path      string
	query     url.Values // sent to the API
	scope     url.Values // extra key parameters, not sent
	field     string     // response field holding the result
	tags      func(body []byte) []cache.Tag
	retention cache.Retention
}

func (d queryDef) key() cache.Key {
	params := url.Values{}
	for k, v := range d.query {
		params[k] = v
	}
	for k, v := range d.scope {
		params[k] = v
	}
	return cache.NewKey(d.path, params)
}

func subscribe[T any](c *Client, d queryDef) *Query[T] {
	req := request{method: "GET", path: d.path, query: d.query}
	sub := c.cache.Subscribe(cache.QueryDef{
		Key:       d.key(),
		Fetch:     func(ctx context.Context) ([]byte, error) { return c.send(ctx, req) },
		Tags:      d.tags,
		Retention: d.retention,
	})
	return &Query[T]{
		sub: sub,
		decode: func(body []byte) (T, error) {
			var v T
			err := decodeField(body, d.field, &v)
			return v, err
		},
	}
}

func staticTags(tags ...cache.Tag) func([]byte) []cache.Tag {
	return func([]byte) []cache.Tag { return tags }
}

// listTags tags a list result with base plus one tag per record, built from its id.
func listTags[T any](field string, base cache.Tag, recordTag func(T) cache.Tag) func([]byte) []cache.Tag {
	return func(body []byte) []cache.Tag {
		tags := []cache.Tag{base}
		var records []T
		if err := decodeField(body, field, &records); err != nil {
			return tags
		}
		for _, r := range records {
			tags = append(tags, recordTag(r))
		}
		return tags
	}
}

// mutate sends req and, on success only, invalidates tags.
func (c *Client) mutate(ctx context.Context, req request, field string, out interface{}, tags ...cache.Tag) error {
	if err := c.call(ctx, req, field, out); err != nil {
		return err
	}
	if len(tags) > 0 {
		n := c.cache.Invalidate(tags...)
		c.logger.Debug("api: invalidated cache entries", map[string]interface{}{"path": req.path, "entries": n})
	}
	return nil
}

func values(kv ...string) url.Values {
	v := url.Values{}
	for i := 0; i+1 < len(kv); i += 2 {
		if kv[i+1] != "" {
			v.Set(kv[i], kv[i+1])
		}
	}
	return v
}
