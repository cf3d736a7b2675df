package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/esociety/society-api/internal/core/domain"
)

func newTestStore(t *testing.T, ttl time.Duration) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSessionStore(client, "test-secret", ttl), mr
}

var testAccount = &domain.Account{
	ID:       "acc-1",
	Email:    "alice@example.com",
	Username: "alice",
	Role:     domain.RoleResident,
}

func TestSessionStore_RoundTrip(t *testing.T) {
	store, mr := newTestStore(t, time.Hour)
	ctx := context.Background()

	session, err := store.Create(ctx, testAccount)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if session.Token == "" || session.ID == "" {
		t.Fatalf("expected token and id, got %+v", session)
	}
	if !mr.Exists("session:" + session.ID) {
		t.Fatalf("expected session key in redis")
	}
	if ttl := mr.TTL("session:" + session.ID); ttl != time.Hour {
		t.Fatalf("expected 1h TTL, got %v", ttl)
	}

	got, err := store.Get(ctx, session.Token)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.AccountID != "acc-1" || got.Role != domain.RoleResident || got.Username != "alice" || got.Token != session.Token {
		t.Fatalf("unexpected session: %+v", got)
	}
}

func TestSessionStore_Expiry(t *testing.T) {
	store, mr := newTestStore(t, time.Minute)
	ctx := context.Background()

	session, err := store.Create(ctx, testAccount)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	mr.FastForward(2 * time.Minute)

	if _, err := store.Get(ctx, session.Token); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound after TTL, got %v", err)
	}
}

func TestSessionStore_Delete(t *testing.T) {
	store, mr := newTestStore(t, time.Hour)
	ctx := context.Background()

	session, _ := store.Create(ctx, testAccount)
	if err := store.Delete(ctx, session.Token); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if mr.Exists("session:" + session.ID) {
		t.Fatalf("expected session key to be removed")
	}
	if _, err := store.Get(ctx, session.Token); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if err := store.Delete(ctx, "garbage"); err != nil {
		t.Fatalf("expected unparseable token to be ignored, got %v", err)
	}
}

func TestSessionStore_RejectsForeignTokens(t *testing.T) {
	store, mr := newTestStore(t, time.Hour)
	ctx := context.Background()

	session, _ := store.Create(ctx, testAccount)

	other := NewSessionStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "other-secret", time.Hour)
	if _, err := other.Get(ctx, session.Token); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected token signed with another secret to be rejected, got %v", err)
	}
	if _, err := store.Get(ctx, session.Token+"x"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected tampered token to be rejected, got %v", err)
	}
	if _, err := store.Get(ctx, ""); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected empty token to be rejected, got %v", err)
	}
}

func TestSessionStore_ExpiredTokenRejected(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)
	ctx := context.Background()

	session, _ := store.Create(ctx, testAccount)
	store.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	if _, err := store.Get(ctx, session.Token); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected expired token to be rejected, got %v", err)
	}
}
