package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func testCache(t *testing.T) (*ContentCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewContentCache(client, time.Minute), mr
}

func TestContentCacheGetSet(t *testing.T) {
	c, _ := testCache(t)
	ctx := context.Background()

	if got := c.Get(ctx, "article:hello"); got != nil {
		t.Errorf("Get on empty cache = %q, want nil", got)
	}

	c.Set(ctx, "article:hello", []byte(`{"title":"Hello"}`))

	got := c.Get(ctx, "article:hello")
	if string(got) != `{"title":"Hello"}` {
		t.Errorf("Get = %q", got)
	}
}

func TestContentCacheExpiry(t *testing.T) {
	c, mr := testCache(t)
	ctx := context.Background()

	c.Set(ctx, "article:hello", []byte("payload"))
	mr.FastForward(2 * time.Minute)

	if got := c.Get(ctx, "article:hello"); got != nil {
		t.Errorf("Get after TTL = %q, want nil", got)
	}
}

func TestContentCacheInvalidate(t *testing.T) {
	c, _ := testCache(t)
	ctx := context.Background()

	c.Set(ctx, "article:hello", []byte("a"))
	c.Set(ctx, "article:world", []byte("b"))

	c.Invalidate(ctx, "article:hello")

	if got := c.Get(ctx, "article:hello"); got != nil {
		t.Error("invalidated key still cached")
	}
	if got := c.Get(ctx, "article:world"); string(got) != "b" {
		t.Error("unrelated key evicted")
	}
}

func TestContentCacheInvalidateAll(t *testing.T) {
	c, _ := testCache(t)
	ctx := context.Background()

	c.Set(ctx, "article:one", []byte("1"))
	c.Set(ctx, "blog:two", []byte("2"))
	c.Set(ctx, "list:article:1", []byte("3"))

	c.InvalidateAll(ctx)

	for _, key := range []string{"article:one", "blog:two", "list:article:1"} {
		if got := c.Get(ctx, key); got != nil {
			t.Errorf("key %q survived InvalidateAll", key)
		}
	}
}

func TestKey(t *testing.T) {
	if got := Key("article", "hello-world"); got != "article:hello-world" {
		t.Errorf("Key = %q", got)
	}
	if got := Key("list", "blog", "2"); got != "list:blog:2" {
		t.Errorf("Key = %q", got)
	}
}
