package cache

import (
	"context"
	"errors"
	"net"
	"os"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()

	if err := c.Set(ctx, "projects:file:a.toml", []byte("catalog"), time.Hour); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if data, hit, err := c.Get(ctx, "projects:file:a.toml"); err != nil || hit || data != nil {
		t.Errorf("Get() = %q, %v, %v, want a miss", data, hit, err)
	}
	if err := c.Delete(ctx, "projects:file:a.toml"); err != nil {
		t.Errorf("Delete() error: %v", err)
	}
	if n, err := c.Clear(ctx, ""); err != nil || n != 0 {
		t.Errorf("Clear() = %d, %v, want 0, nil", n, err)
	}
}

func TestHash(t *testing.T) {
	catalog := []byte(`[{"id":"a"}]`)
	h := Hash(catalog)
	if h != Hash(catalog) {
		t.Error("Hash() is not deterministic")
	}
	if h == Hash([]byte(`[{"id":"b"}]`)) {
		t.Error("different catalogs share a hash")
	}
	if len(h) != 64 {
		t.Errorf("len(Hash()) = %d, want 64", len(h))
	}

	tests := []struct {
		n    int
		want int
	}{
		{12, 12},
		{0, 64},
		{-1, 64},
		{100, 64},
	}
	for _, tt := range tests {
		got := ShortHash(catalog, tt.n)
		if len(got) != tt.want || !strings.HasPrefix(h, got) {
			t.Errorf("ShortHash(%d) = %q, want the first %d chars of %q", tt.n, got, tt.want, h)
		}
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	if got := k.ProjectsKey("file", "projects.toml"); got != "projects:file:projects.toml" {
		t.Errorf("ProjectsKey unexpected: %s", got)
	}

	// PageKey should include options in hash
	pk1 := k.PageKey("catalog", PageKeyOpts{Focus: 1, Format: "html"})
	pk2 := k.PageKey("catalog", PageKeyOpts{Focus: 2, Format: "html"})
	if pk1 == pk2 {
		t.Error("Different focus should produce different page keys")
	}
	pk3 := k.PageKey("other", PageKeyOpts{Focus: 1, Format: "html"})
	if pk1 == pk3 {
		t.Error("Different catalogs should produce different page keys")
	}
	if pk1 != k.PageKey("catalog", PageKeyOpts{Focus: 1, Format: "html"}) {
		t.Error("PageKey should be deterministic")
	}

	dk1 := k.DetailKey("catalog", "p1", 0)
	dk2 := k.DetailKey("catalog", "p1", 1)
	if dk1 == dk2 {
		t.Error("Different images should produce different detail keys")
	}
	if !strings.HasPrefix(dk1, "detail:") {
		t.Errorf("DetailKey should start with detail: got %s", dk1)
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "site:a:")

	// All keys should be prefixed
	if got := scoped.ProjectsKey("sqlite", "p.db"); got != "site:a:projects:sqlite:p.db" {
		t.Errorf("ScopedKeyer ProjectsKey unexpected: %s", got)
	}

	pageKey := scoped.PageKey("h", PageKeyOpts{})
	if !strings.HasPrefix(pageKey, "site:a:page:") {
		t.Errorf("ScopedKeyer PageKey should be prefixed: %s", pageKey)
	}

	detailKey := scoped.DetailKey("h", "p1", 0)
	if detailKey != "site:a:"+inner.DetailKey("h", "p1", 0) {
		t.Errorf("ScopedKeyer DetailKey should be prefixed: %s", detailKey)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	// Should use DefaultKeyer when inner is nil
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.ProjectsKey("static", "seed")
	if key != "prefix:projects:static:seed" {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "missing"); err != nil || hit {
		t.Fatalf("Get(missing) = hit %v, err %v", hit, err)
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || !hit || string(data) != "value" {
		t.Fatalf("Get(key) = %q, %v, %v", data, hit, err)
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("Get after Delete should miss")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete of missing key should succeed: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Nanosecond); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("expired entry should miss")
	}

	// Zero ttl never expires
	if err := c.Set(ctx, "forever", []byte("v"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "forever"); !hit {
		t.Error("zero ttl entry should hit")
	}
}

func TestNewRedisCacheRequiresAddr(t *testing.T) {
	if _, err := NewRedisCache(context.Background(), RedisOptions{}); err == nil {
		t.Error("NewRedisCache without address should fail")
	}
}

func TestRedisKey(t *testing.T) {
	if got := redisKey("portfolio:", "page:abc"); got != "portfolio:page:abc" {
		t.Errorf("redisKey = %q", got)
	}
	if got := redisKey("", "k"); got != "k" {
		t.Errorf("redisKey without prefix = %q", got)
	}
}

func TestClassifyRedisErr(t *testing.T) {
	if classifyRedisErr(nil) != nil {
		t.Error("nil should stay nil")
	}

	netErr := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
	err := classifyRedisErr(netErr)
	if !IsRetryable(err) {
		t.Error("network errors should be retryable")
	}
	if !errors.Is(err, ErrNetwork) {
		t.Error("network errors should wrap ErrNetwork")
	}

	plain := errors.New("WRONGTYPE")
	if got := classifyRedisErr(plain); got != plain || IsRetryable(got) {
		t.Errorf("server errors should pass through: %v", got)
	}
}

func TestRetryableError(t *testing.T) {
	// Retryable(nil) returns nil
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	// Non-nil error is wrapped
	err := Retryable(ErrNetwork)
	if err == nil {
		t.Fatal("Retryable should return wrapped error")
	}
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}

	// Error message is preserved
	if err.Error() != ErrNetwork.Error() {
		t.Errorf("Error message should be preserved: %s", err.Error())
	}

	// Non-wrapped errors are not retryable
	if IsRetryable(ErrNotFound) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()

	// Success on first try
	calls := 0
	err := RetryWithBackoff(ctx, func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Errorf("Should succeed: %v", err)
	}
	if calls != 1 {
		t.Errorf("Should call once: %d", calls)
	}

	// Non-retryable error stops immediately
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return ErrNotFound
	})
	if err != ErrNotFound {
		t.Errorf("Should return non-retryable error: %v", err)
	}
	if calls != 1 {
		t.Errorf("Should not retry non-retryable error: %d", calls)
	}

	// Retryable error triggers retries
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(ErrNetwork)
		}
		return nil
	})
	if err != nil {
		t.Errorf("Should succeed after retry: %v", err)
	}
	if calls != 2 {
		t.Errorf("Should retry once: %d", calls)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(ErrNetwork)
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	keyer := NewScopedKeyer(NewDefaultKeyer(), "site:aaa:")
	other := NewScopedKeyer(NewDefaultKeyer(), "site:bbb:")
	keys := []string{
		"projects:file:a.toml",
		keyer.PageKey("h", PageKeyOpts{Focus: 0, Format: "html"}),
		keyer.PageKey("h", PageKeyOpts{Focus: 1, Format: "html"}),
		keyer.DetailKey("h", "p1", 0),
		other.PageKey("h", PageKeyOpts{Focus: 0, Format: "html"}),
	}
	for _, k := range keys {
		if err := c.Set(ctx, k, []byte("v"), 0); err != nil {
			t.Fatalf("Set(%q) error: %v", k, err)
		}
	}

	n, err := c.Clear(ctx, "site:aaa:")
	if err != nil || n != 3 {
		t.Fatalf("Clear(site:aaa:) = %d, %v, want 3", n, err)
	}
	if _, hit, _ := c.Get(ctx, keys[1]); hit {
		t.Error("scoped page survived Clear")
	}
	for _, k := range []string{keys[0], keys[4]} {
		if _, hit, _ := c.Get(ctx, k); !hit {
			t.Errorf("Clear removed unrelated key %q", k)
		}
	}

	if n, err := c.Clear(ctx, ""); err != nil || n != 2 {
		t.Errorf("Clear(\"\") = %d, %v, want 2", n, err)
	}
	entries, err := os.ReadDir(c.Dir())
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("cache dir not pruned: %d entries left", len(entries))
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(c.path("k"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("Get(corrupt) = %v, %v, want a miss", hit, err)
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Error("corrupt entry was not removed")
	}
}

func TestGlobEscape(t *testing.T) {
	tests := []struct{ in, want string }{
		{"site:abc:", "site:abc:"},
		{"a*b", `a\*b`},
		{"q?[x]", `q\?\[x\]`},
		{`back\slash`, `back\\slash`},
	}
	for _, tt := range tests {
		if got := globEscape(tt.in); got != tt.want {
			t.Errorf("globEscape(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
