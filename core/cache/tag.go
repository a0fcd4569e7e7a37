package cache

import (
	"net/url"
	"strings"
)

// ListID is the conventional id of a tag covering a whole list.
const ListID = "LIST"

// Tag labels cached data. An empty ID stands for the whole Type.
type Tag struct {
	Type string
	ID   string
}

// TypeTag returns the tag covering every entity of type typ.
func TypeTag(typ string) Tag {
	return Tag{Type: typ}
}

func (t Tag) String() string {
	if t.ID == "" {
		return t.Type
	}
	return t.Type + ":" + t.ID
}

// Matches reports whether invalidating t invalidates data tagged with other:
// a type-only tag matches every tag of its type, otherwise the tags must be equal.
func (t Tag) Matches(other Tag) bool {
	return t.Type == other.Type && (t.ID == "" || t.ID == other.ID)
}

func matchesAny(patterns, tags []Tag) bool {
	for _, p := range patterns {
		for _, t := range tags {
			if p.Matches(t) {
				return true
			}
		}
	}
	return false
}

// Key identifies a cached request: the endpoint and its serialized parameters.
type Key struct {
	Endpoint string
	Params   string
}

// NewKey serializes params as a query string sorted by key.
func NewKey(endpoint string, params url.Values) Key {
	return Key{Endpoint: endpoint, Params: params.Encode()}
}

func (k Key) String() string {
	if k.Params == "" {
		return k.Endpoint
	}
	var b strings.Builder
	b.WriteString(k.Endpoint)
	b.WriteByte('?')
	b.WriteString(k.Params)
	return b.String()
}
