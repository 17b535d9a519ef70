// Package session owns the mapping from shopping session ids to carts. The
// cart engine assumes exclusive access per operation sequence; this registry
// is the composing layer that adds the mutual exclusion when the engine is
// exposed to concurrent HTTP callers.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"

	"github.com/kiranalabs/kirana-voice-backend/internal/cart"
	pkgerrors "github.com/kiranalabs/kirana-voice-backend/pkg/errors"
)

// SnapshotStore persists cart snapshots across process restarts. It is
// optional; a nil store keeps sessions purely in memory.
type SnapshotStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	SessionCartKey(sessionID string) string
}

// sessionEntry pairs a cart with its own lock. A nil cart marks an entry
// whose snapshot has not been loaded yet.
type sessionEntry struct {
	mu   sync.Mutex
	cart *cart.Cart
}

// Manager is a registry of per-session carts. Each session carries its own
// mutex, so a slow snapshot on one cart never blocks operations on another;
// the registry mutex guards only the map itself.
type Manager struct {
	mu        sync.Mutex
	entries   map[string]*sessionEntry
	snapshots SnapshotStore
	ttl       time.Duration
}

// NewManager constructs a session manager. snapshots may be nil.
func NewManager(snapshots SnapshotStore, ttl time.Duration) *Manager {
	return &Manager{
		entries:   make(map[string]*sessionEntry),
		snapshots: snapshots,
		ttl:       ttl,
	}
}

// Create opens a new session with an empty cart and returns its id.
func (m *Manager) Create(ctx context.Context) (string, error) {
	sessionID := uuid.NewString()
	entry := &sessionEntry{cart: cart.New()}

	m.mu.Lock()
	m.entries[sessionID] = entry
	m.mu.Unlock()

	entry.mu.Lock()
	defer entry.mu.Unlock()
	if err := m.persist(ctx, sessionID, entry.cart); err != nil {
		return "", err
	}
	return sessionID, nil
}

// Reset ends the session and discards its cart.
func (m *Manager) Reset(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	_, ok := m.entries[sessionID]
	delete(m.entries, sessionID)
	m.mu.Unlock()

	if m.snapshots != nil {
		if err := m.snapshots.Del(ctx, m.snapshots.SessionCartKey(sessionID)); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "dropping cart snapshot")
		}
		// a snapshot may exist even when the in-memory entry is gone
		return nil
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "no such session").
			WithDetails(map[string]any{"session_id": sessionID})
	}
	return nil
}

// WithCart runs fn with the session's cart under that session's lock, so any
// sequence of ledger operations inside fn appears atomic to other callers of
// the same session. Mutations are snapshotted to the optional store after fn
// succeeds.
func (m *Manager) WithCart(ctx context.Context, sessionID string, fn func(c *cart.Cart) error) error {
	if strings.TrimSpace(sessionID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}

	m.mu.Lock()
	entry, ok := m.entries[sessionID]
	if !ok {
		entry = &sessionEntry{}
		m.entries[sessionID] = entry
	}
	m.mu.Unlock()

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.cart == nil {
		restored, err := m.restore(ctx, sessionID)
		if err != nil {
			m.mu.Lock()
			if m.entries[sessionID] == entry {
				delete(m.entries, sessionID)
			}
			m.mu.Unlock()
			return err
		}
		entry.cart = restored
	}

	if err := fn(entry.cart); err != nil {
		return err
	}
	return m.persist(ctx, sessionID, entry.cart)
}

// persist writes the cart snapshot when a snapshot store is configured.
func (m *Manager) persist(ctx context.Context, sessionID string, c *cart.Cart) error {
	if m.snapshots == nil {
		return nil
	}
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding cart snapshot: %w", err)
	}
	key := m.snapshots.SessionCartKey(sessionID)
	if err := m.snapshots.Set(ctx, key, string(data), m.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "storing cart snapshot").
			WithDetails(map[string]any{"session_id": sessionID})
	}
	return nil
}

// restore rehydrates a cart from the snapshot store, if any.
func (m *Manager) restore(ctx context.Context, sessionID string) (*cart.Cart, error) {
	if m.snapshots == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no such session").
			WithDetails(map[string]any{"session_id": sessionID})
	}

	raw, err := m.snapshots.Get(ctx, m.snapshots.SessionCartKey(sessionID))
	if err != nil {
		if err == redislib.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no such session").
				WithDetails(map[string]any{"session_id": sessionID})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading cart snapshot")
	}

	c := cart.New()
	if err := json.Unmarshal([]byte(raw), c); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decoding cart snapshot")
	}
	return c, nil
}
