package session

import (
	"context"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/kiranalabs/kirana-voice-backend/internal/cart"
	"github.com/kiranalabs/kirana-voice-backend/internal/catalog"
	pkgerrors "github.com/kiranalabs/kirana-voice-backend/pkg/errors"
)

func testItem() catalog.Item {
	return catalog.Item{
		ID:        "milk_1l",
		Name:      "Milk 1L",
		Category:  "dairy",
		UnitPrice: decimal.RequireFromString("68.0"),
		Unit:      "bottle",
	}
}

func TestManagerMemoryOnlyLifecycle(t *testing.T) {
	ctx := context.Background()
	m := NewManager(nil, time.Hour)

	sessionID, err := m.Create(ctx)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if sessionID == "" {
		t.Fatal("expected a session id")
	}

	err = m.WithCart(ctx, sessionID, func(c *cart.Cart) error {
		_, err := c.Add(testItem(), 2, "")
		return err
	})
	if err != nil {
		t.Fatalf("with cart: %v", err)
	}

	err = m.WithCart(ctx, sessionID, func(c *cart.Cart) error {
		if c.Len() != 1 {
			t.Fatalf("expected 1 line, got %d", c.Len())
		}
		return nil
	})
	if err != nil {
		t.Fatalf("with cart: %v", err)
	}

	if err := m.Reset(ctx, sessionID); err != nil {
		t.Fatalf("reset: %v", err)
	}
	err = m.WithCart(ctx, sessionID, func(c *cart.Cart) error { return nil })
	if !pkgerrors.Is(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found after reset, got %v", err)
	}
}

func TestManagerUnknownSession(t *testing.T) {
	ctx := context.Background()
	m := NewManager(nil, time.Hour)

	err := m.WithCart(ctx, "does-not-exist", func(c *cart.Cart) error { return nil })
	if !pkgerrors.Is(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	err = m.WithCart(ctx, "  ", func(c *cart.Cart) error { return nil })
	if !pkgerrors.Is(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error for blank id, got %v", err)
	}

	if err := m.Reset(ctx, "does-not-exist"); !pkgerrors.Is(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found on reset, got %v", err)
	}
}

func TestManagerRestoresFromSnapshot(t *testing.T) {
	ctx := context.Background()
	store := newStubSnapshots()

	m := NewManager(store, time.Hour)
	sessionID, err := m.Create(ctx)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	err = m.WithCart(ctx, sessionID, func(c *cart.Cart) error {
		_, err := c.Add(testItem(), 3, "cold ones")
		return err
	})
	if err != nil {
		t.Fatalf("with cart: %v", err)
	}

	// a fresh manager simulates a process restart
	restarted := NewManager(store, time.Hour)
	err = restarted.WithCart(ctx, sessionID, func(c *cart.Cart) error {
		if c.Len() != 1 {
			t.Fatalf("expected restored line, got %d lines", c.Len())
		}
		if c.Lines[0].Quantity != 3 || c.Lines[0].Notes != "cold ones" {
			t.Fatalf("unexpected restored line %+v", c.Lines[0])
		}
		return nil
	})
	if err != nil {
		t.Fatalf("with cart after restart: %v", err)
	}

	if err := restarted.Reset(ctx, sessionID); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if _, ok := store.data["kirana:session:cart:"+sessionID]; ok {
		t.Fatal("reset should drop the snapshot")
	}
}

func TestManagerSkipsPersistOnFailedOp(t *testing.T) {
	ctx := context.Background()
	store := newStubSnapshots()

	m := NewManager(store, time.Hour)
	sessionID, err := m.Create(ctx)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	setsBefore := store.sets

	err = m.WithCart(ctx, sessionID, func(c *cart.Cart) error {
		_, err := c.Add(testItem(), 0, "")
		return err
	})
	if !pkgerrors.Is(err, pkgerrors.CodeInvalidQuantity) {
		t.Fatalf("expected invalid quantity, got %v", err)
	}
	if store.sets != setsBefore {
		t.Fatal("failed operation must not snapshot the cart")
	}
}

func TestManagerSessionsDoNotBlockEachOther(t *testing.T) {
	ctx := context.Background()
	m := NewManager(newStubSnapshots(), time.Hour)

	first, err := m.Create(ctx)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := m.Create(ctx)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	entered := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_ = m.WithCart(ctx, first, func(c *cart.Cart) error {
			close(entered)
			<-release
			return nil
		})
	}()
	<-entered

	// the first session's operation is still in flight; the second
	// session must not wait for it
	done := make(chan error, 1)
	go func() {
		done <- m.WithCart(ctx, second, func(c *cart.Cart) error {
			_, err := c.Add(testItem(), 1, "")
			return err
		})
	}()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("with cart on second session: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("operation on one session blocked another session")
	}
	close(release)
}

type stubSnapshots struct {
	data map[string]string
	sets int
}

func newStubSnapshots() *stubSnapshots {
	return &stubSnapshots{data: make(map[string]string)}
}

func (s *stubSnapshots) Set(_ context.Context, key string, value any, _ time.Duration) error {
	s.sets++
	s.data[key] = value.(string)
	return nil
}

func (s *stubSnapshots) Get(_ context.Context, key string) (string, error) {
	v, ok := s.data[key]
	if !ok {
		return "", redislib.Nil
	}
	return v, nil
}

func (s *stubSnapshots) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(s.data, key)
	}
	return nil
}

func (s *stubSnapshots) SessionCartKey(sessionID string) string {
	return "kirana:session:cart:" + sessionID
}
