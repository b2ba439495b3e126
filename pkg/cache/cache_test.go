package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func testCacheRoundTrip(t *testing.T, c Cache) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := c.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("Get(missing) = ok=%v err=%v, want miss", ok, err)
	}

	if err := c.Set(ctx, "k", []byte("svg bytes"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, ok, err := c.Get(ctx, "k")
	if err != nil || !ok || string(data) != "svg bytes" {
		t.Fatalf("Get(k) = %q ok=%v err=%v", data, ok, err)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Fatal("key survived Delete")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete of missing key: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	testCacheRoundTrip(t, c)
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close()
	testCacheRoundTrip(t, c)
}

func TestFileCacheExpiry(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), -time.Second); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Fatal("expired entry returned as hit")
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), -time.Second); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Fatal("expired entry returned as hit")
	}
}

func TestNullCache(t *testing.T) {
	c := NewNullCache()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Fatal("null cache stored a value")
	}
}

func TestFetch(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close()
	ctx := context.Background()

	if _, err := Fetch(ctx, c, "missing"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Fetch(missing) error = %v, want ErrCacheMiss", err)
	}

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	data, err := Fetch(ctx, c, "k")
	if err != nil || string(data) != "v" {
		t.Fatalf("Fetch(k) = %q, %v", data, err)
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	a := k.Key("logo", "seqs.fasta", 40.0)
	b := k.Key("logo", "seqs.fasta", 40.0)
	if a != b {
		t.Errorf("same parts gave different keys: %q vs %q", a, b)
	}
	if c := k.Key("logo", "seqs.fasta", 41.0); c == a {
		t.Error("different parts gave the same key")
	}
	if len(a) != len("render:")+64 {
		t.Errorf("unexpected key shape: %q", a)
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "session:42:")

	key := scoped.Key("structure", "HHH")
	want := "session:42:" + inner.Key("structure", "HHH")
	if key != want {
		t.Errorf("scoped key = %q, want %q", key, want)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	scoped := NewScopedKeyer(nil, "p:")
	if got := scoped.Key("x"); got != "p:"+NewDefaultKeyer().Key("x") {
		t.Errorf("nil inner should use default keyer, got %q", got)
	}
}
