package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) (*IdempotencyStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewIdempotencyStore(client), mr
}

func TestIdempotencyStore_LookupMissing(t *testing.T) {
	store, _ := newTestStore(t)

	_, found, err := store.Lookup(context.Background(), "actor", "k1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Fatalf("expected no entry")
	}
}

func TestIdempotencyStore_RememberThenLookup(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	if err := store.Remember(ctx, "actor", "k1", "post-1"); err != nil {
		t.Fatalf("remember: %v", err)
	}

	postID, found, err := store.Lookup(ctx, "actor", "k1")
	if err != nil || !found || postID != "post-1" {
		t.Fatalf("expected post-1, got %q found=%v err=%v", postID, found, err)
	}
	if ttl := mr.TTL("idem:actor:k1"); ttl != idempotencyTTL {
		t.Fatalf("expected ttl %v, got %v", idempotencyTTL, ttl)
	}
}

func TestIdempotencyStore_FirstWriteWins(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	_ = store.Remember(ctx, "actor", "k1", "post-1")
	_ = store.Remember(ctx, "actor", "k1", "post-2")

	postID, _, _ := store.Lookup(ctx, "actor", "k1")
	if postID != "post-1" {
		t.Fatalf("expected first post to win, got %q", postID)
	}
}

func TestIdempotencyStore_ScopedPerActor(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	_ = store.Remember(ctx, "alice", "k1", "post-1")

	if _, found, _ := store.Lookup(ctx, "bob", "k1"); found {
		t.Fatalf("key must not leak across actors")
	}
}

func TestIdempotencyStore_Expires(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	_ = store.Remember(ctx, "actor", "k1", "post-1")
	mr.FastForward(idempotencyTTL + time.Second)

	if _, found, _ := store.Lookup(ctx, "actor", "k1"); found {
		t.Fatalf("expected entry to expire")
	}
}

func TestIdempotencyStore_BackendDown(t *testing.T) {
	store, mr := newTestStore(t)
	mr.Close()

	if _, _, err := store.Lookup(context.Background(), "actor", "k1"); err == nil {
		t.Fatalf("expected error when redis is unavailable")
	}
}

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := Connect(context.Background(), Config{Addr: mr.Addr()})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	_ = client.Close()
}

func TestPinger(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	ping := Pinger(client)
	if err := ping(context.Background()); err != nil {
		t.Fatalf("expected healthy ping, got %v", err)
	}

	mr.Close()
	if err := ping(context.Background()); err == nil {
		t.Fatalf("expected ping to fail once redis is gone")
	}
}
