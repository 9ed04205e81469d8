package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestStore_GetOrLoad_CachesValue(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	calls := 0
	loader := func(context.Context) (any, error) {
		calls++
		return map[string]int64{"24/25": 61627}, nil
	}

	for i := 0; i < 3; i++ {
		v, err := store.GetOrLoad(context.Background(), "seasons:EPL", loader)
		if err != nil {
			t.Fatalf("GetOrLoad: %v", err)
		}
		seasons, ok := v.(map[string]int64)
		if !ok || seasons["24/25"] != 61627 {
			t.Fatalf("unexpected value %v", v)
		}
	}
	if calls != 1 {
		t.Fatalf("loader calls = %d, want 1", calls)
	}
}

func TestStore_GetOrLoad_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	calls := 0
	loader := func(context.Context) (any, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("upstream down")
		}
		return "ok", nil
	}

	if _, err := store.GetOrLoad(context.Background(), "k", loader); err == nil {
		t.Fatalf("expected first load to fail")
	}
	v, err := store.GetOrLoad(context.Background(), "k", loader)
	if err != nil {
		t.Fatalf("GetOrLoad: %v", err)
	}
	if v != "ok" {
		t.Fatalf("value = %v", v)
	}
	if calls != 2 {
		t.Fatalf("loader calls = %d, want 2", calls)
	}
}

func TestStore_ExpiresEntries(t *testing.T) {
	t.Parallel()

	store := NewStore(10 * time.Millisecond)
	store.Set("k", 1)
	if _, ok := store.Get("k"); !ok {
		t.Fatalf("expected fresh entry to be present")
	}

	time.Sleep(20 * time.Millisecond)
	if _, ok := store.Get("k"); ok {
		t.Fatalf("expected entry to expire")
	}
}

func TestStore_ZeroTTLNeverExpires(t *testing.T) {
	t.Parallel()

	store := NewStore(0)
	store.Set("k", "v")
	if v, ok := store.Get("k"); !ok || v != "v" {
		t.Fatalf("expected entry to persist without ttl")
	}
}

func TestStore_EmptyKeyBypassesCache(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	store.Set("", "ignored")
	if _, ok := store.Get(""); ok {
		t.Fatalf("empty key must never be stored")
	}

	calls := 0
	loader := func(context.Context) (any, error) {
		calls++
		return "fresh", nil
	}
	for i := 0; i < 2; i++ {
		if _, err := store.GetOrLoad(context.Background(), "", loader); err != nil {
			t.Fatalf("GetOrLoad: %v", err)
		}
	}
	if calls != 2 {
		t.Fatalf("loader calls = %d, want 2", calls)
	}
}
