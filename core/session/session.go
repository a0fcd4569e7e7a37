// Package session keeps the auth session (bearer token and signed-in user) in durable client storage.
package session

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"
)

// storage keys
const (
	TokenKey = "auth-token"
	UserKey  = "auth-user"
)

var (
	ErrNoSession   = errors.New("no active session")
	ErrKeyNotFound = errors.New("key not found")
)

// Store is the durable key-value storage the session lives in.
// Get must return ErrKeyNotFound (or an error caused by it) for absent keys.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
}

type Session struct {
	Token string
	User  User
}

// Expired reports whether the token is a JWT whose exp claim is in the past.
// Opaque tokens never expire on the client.
func (s Session) Expired(now time.Time) bool {
	claims := jwt.StandardClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(s.Token, &claims); err != nil {
		return false
	}
	return claims.ExpiresAt != 0 && now.Unix() > claims.ExpiresAt
}

// Manager loads, saves and clears the session.
// The store is read on every call so that writes from another process are seen.
type Manager struct {
	mu    sync.Mutex
	store Store
}

func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// Load returns the stored session, or ErrNoSession when no token is stored.
func (m *Manager) Load() (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	tok, err := m.store.Get(TokenKey)
	if err != nil {
		if errors.Cause(err) == ErrKeyNotFound {
			return Session{}, ErrNoSession
		}
		return Session{}, errors.Wrap(err, "reading token")
	}
	if len(tok) == 0 {
		return Session{}, ErrNoSession
	}

	sess := Session{Token: string(tok)}
	raw, err := m.store.Get(UserKey)
	switch {
	case err == nil:
		if err := json.Unmarshal(raw, &sess.User); err != nil {
			return Session{}, errors.Wrap(err, "decoding user")
		}
	case errors.Cause(err) != ErrKeyNotFound:
		return Session{}, errors.Wrap(err, "reading user")
	}
	return sess, nil
}

// Save stores sess, replacing any previous session.
func (m *Manager) Save(sess Session) error {
	if sess.Token == "" {
		return errors.New("session token is empty")
	}
	raw, err := json.Marshal(sess.User)
	if err != nil {
		return errors.Wrap(err, "encoding user")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Set(TokenKey, []byte(sess.Token)); err != nil {
		return errors.Wrap(err, "writing token")
	}
	if err := m.store.Set(UserKey, raw); err != nil {
		return errors.Wrap(err, "writing user")
	}
	return nil
}

// Clear erases both keys. Clearing an absent session is not an error.
func (m *Manager) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, key := range []string{TokenKey, UserKey} {
		if err := m.store.Delete(key); err != nil && errors.Cause(err) != ErrKeyNotFound {
			return errors.Wrapf(err, "deleting %s", key)
		}
	}
	return nil
}

// Current returns the stored session, if any.
func (m *Manager) Current() (Session, bool) {
	sess, err := m.Load()
	if err != nil {
		return Session{}, false
	}
	return sess, true
}

// Token returns the stored bearer token, or "".
func (m *Manager) Token() string {
	sess, _ := m.Current()
	return sess.Token
}

// UserID returns the id of the signed-in user, or "".
func (m *Manager) UserID() string {
	sess, _ := m.Current()
	return sess.User.UserID
}
