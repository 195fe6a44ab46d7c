package cache

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	if _, hit, _ := c.Get(ctx, "missing"); hit {
		t.Error("Get on empty cache should miss")
	}

	if err := c.Set(ctx, "key", []byte("png bytes"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || !hit {
		t.Fatalf("Get after Set: hit=%v err=%v", hit, err)
	}
	if string(data) != "png bytes" {
		t.Errorf("Get = %q, want %q", data, "png bytes")
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("Get after Delete should miss")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete of missing key should not error: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}

	if err := c.Set(ctx, "short", []byte("x"), time.Nanosecond); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	if _, hit, _ := c.Get(ctx, "short"); hit {
		t.Error("expired entry should miss")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	if err := c.Set(ctx, "key", []byte("x"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if err := os.WriteFile(c.path("key"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	_, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Errorf("corrupt entry should be a miss, not an error: %v", err)
	}
	if hit {
		t.Error("corrupt entry should miss")
	}
}

func TestFileCacheForeignEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}

	if err := c.Set(ctx, "render:png:a", []byte("a"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	// Move the entry under another key's file name.
	if err := os.MkdirAll(filepath.Dir(c.path("render:png:b")), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.Rename(c.path("render:png:a"), c.path("render:png:b")); err != nil {
		t.Fatal(err)
	}

	if _, hit, _ := c.Get(ctx, "render:png:b"); hit {
		t.Error("entry stored under a different key should miss")
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "cache")
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}

	for _, key := range []string{"render:png:a", "render:svg:a", "render:png:b"} {
		if err := c.Set(ctx, key, []byte(key), 0); err != nil {
			t.Fatalf("Set(%s) error: %v", key, err)
		}
	}

	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear removed %d entries, want 3", n)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("cache dir should be gone after Clear, stat err = %v", err)
	}

	if n, err := c.Clear(); err != nil || n != 0 {
		t.Errorf("Clear on a removed dir = %d, %v; want 0, nil", n, err)
	}
	if err := c.Set(ctx, "render:png:a", []byte("again"), 0); err != nil {
		t.Errorf("Set after Clear should recreate the directory: %v", err)
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestRenderKey(t *testing.T) {
	dot := "digraph G { a -> b; }"

	k1 := RenderKey(dot, "png", "")
	k2 := RenderKey(dot, "svg", "")
	k3 := RenderKey(dot+" ", "png", "")
	k4 := RenderKey(dot, "png", Hash([]byte("icon")))

	if k1 == k2 {
		t.Error("Different formats should produce different keys")
	}
	if k1 == k3 {
		t.Error("Different DOT should produce different keys")
	}
	if k1 == k4 {
		t.Error("Different assets should produce different keys")
	}
	if !strings.HasPrefix(k1, "render:png:") {
		t.Errorf("RenderKey unexpected prefix: %s", k1)
	}
	if RenderKey(dot, "png", "") != k1 {
		t.Error("RenderKey should be deterministic")
	}
}

func TestHashFiles(t *testing.T) {
	dir := t.TempDir()
	icon := filepath.Join(dir, "camera.png")
	if err := os.WriteFile(icon, []byte("v1"), 0644); err != nil {
		t.Fatal(err)
	}

	if h, err := HashFiles(nil); err != nil || h != "" {
		t.Errorf("HashFiles(nil) = %q, %v; want empty", h, err)
	}

	h1, err := HashFiles([]string{icon})
	if err != nil {
		t.Fatalf("HashFiles error: %v", err)
	}
	if again, _ := HashFiles([]string{icon}); again != h1 {
		t.Error("HashFiles should be deterministic")
	}

	if err := os.WriteFile(icon, []byte("v2"), 0644); err != nil {
		t.Fatal(err)
	}
	h2, err := HashFiles([]string{icon})
	if err != nil {
		t.Fatalf("HashFiles error: %v", err)
	}
	if h1 == h2 {
		t.Error("edited file should change the digest")
	}

	if _, err := HashFiles([]string{filepath.Join(dir, "missing.png")}); err == nil {
		t.Error("HashFiles should fail on a missing file")
	}
}
