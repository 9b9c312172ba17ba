package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/rushteam/foodrank/core"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	defer m.Close()

	if _, err := m.Get(ctx, "missing"); !core.IsNotFound(err) {
		t.Errorf("Get(missing) error = %v, want NOT_FOUND", err)
	}

	value := []byte("store_id,store_name\n1,A\n")
	if err := m.Set(ctx, "ds:1:stores", value); err != nil {
		t.Fatal(err)
	}
	value[0] = 'X' // 写入后修改原切片不影响快照

	got, err := m.Get(ctx, "ds:1:stores")
	if err != nil {
		t.Fatal(err)
	}
	if got[0] != 's' {
		t.Errorf("stored snapshot was mutated: %q", got)
	}

	if err := m.BatchSet(ctx, map[string][]byte{"a": []byte("1"), "b": []byte("2")}); err != nil {
		t.Fatal(err)
	}
	batch, err := m.BatchGet(ctx, []string{"a", "b", "c"})
	if err != nil {
		t.Fatal(err)
	}
	if len(batch) != 2 || string(batch["a"]) != "1" {
		t.Errorf("BatchGet() = %v", batch)
	}

	if err := m.Delete(ctx, "a"); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Get(ctx, "a"); !core.IsNotFound(err) {
		t.Errorf("Get after Delete error = %v", err)
	}
}

func TestMemoryStore_TTLExpired(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	_ = m.Set(ctx, "k", []byte("v"), 60)
	m.data["k"].expire = m.data["k"].expire.Add(-120 * 1e9)

	if _, err := m.Get(ctx, "k"); !core.IsNotFound(err) {
		t.Errorf("expired key error = %v, want NOT_FOUND", err)
	}
}

func newTestRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	r, err := NewRedisStore(mr.Addr(), 0)
	if err != nil {
		t.Fatalf("NewRedisStore() error = %v", err)
	}
	t.Cleanup(func() { _ = r.Close() })
	return r, mr
}

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	r, mr := newTestRedis(t)

	if _, err := r.Get(ctx, "foodrank:missing"); !core.IsNotFound(err) {
		t.Errorf("Get(missing) error = %v, want NOT_FOUND", err)
	}

	if err := r.Set(ctx, "foodrank:test", []byte("v"), 10); err != nil {
		t.Fatal(err)
	}
	got, err := r.Get(ctx, "foodrank:test")
	if err != nil || string(got) != "v" {
		t.Errorf("Get() = %q, %v", got, err)
	}

	mr.FastForward(11 * time.Second)
	if _, err := r.Get(ctx, "foodrank:test"); !core.IsNotFound(err) {
		t.Errorf("expired key error = %v, want NOT_FOUND", err)
	}

	_ = r.Set(ctx, "foodrank:del", []byte("x"))
	_ = r.Delete(ctx, "foodrank:del")
	if _, err := r.Get(ctx, "foodrank:del"); !core.IsNotFound(err) {
		t.Errorf("Get after Delete error = %v", err)
	}
}

func TestRedisStore_Batch(t *testing.T) {
	ctx := context.Background()
	r, mr := newTestRedis(t)

	kvs := map[string][]byte{
		"ds:1:stores":    []byte("store_id\n1\n"),
		"ds:1:customers": []byte("customer_id\n7\n"),
	}
	if err := r.BatchSet(ctx, kvs, 60); err != nil {
		t.Fatalf("BatchSet() error = %v", err)
	}
	if ttl := mr.TTL("ds:1:stores"); ttl != 60*time.Second {
		t.Errorf("TTL = %v, want 60s", ttl)
	}

	batch, err := r.BatchGet(ctx, []string{"ds:1:stores", "ds:1:customers", "ds:1:absent"})
	if err != nil {
		t.Fatal(err)
	}
	if len(batch) != 2 || string(batch["ds:1:customers"]) != "customer_id\n7\n" {
		t.Errorf("BatchGet() = %q", batch)
	}
	if empty, err := r.BatchGet(ctx, nil); err != nil || len(empty) != 0 {
		t.Errorf("BatchGet(nil) = %v, %v", empty, err)
	}
}

func TestNewRedisStore_Unavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	if _, err := NewRedisStore(addr, 0); !core.IsUnavailable(err) {
		t.Errorf("error = %v, want UNAVAILABLE", err)
	}
}
