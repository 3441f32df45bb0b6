package cache

import (
	"testing"
	"time"
)

type tokenRecord struct {
	Token string
	Scope []string
}

// fakeClock lets tests move time forward explicitly
type fakeClock struct {
	t time.Time
}

func (f *fakeClock) Now() time.Time          { return f.t }
func (f *fakeClock) Advance(d time.Duration) { f.t = f.t.Add(d) }

func newTestCache(ttl time.Duration) (*TTL, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)}
	c := New(ttl)
	c.SetClock(clock.Now)
	return c, clock
}

func TestSetGet(t *testing.T) {
	c, _ := newTestCache(time.Minute)

	if err := c.Set("tcg:token", "abc123"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	var token string
	hit, err := c.Get("tcg:token", &token)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !hit || token != "abc123" {
		t.Errorf("Get = (%v, %q); want (true, abc123)", hit, token)
	}
}

func TestMissingKey(t *testing.T) {
	c, _ := newTestCache(time.Minute)

	var token string
	hit, err := c.Get("nope", &token)
	if err != nil || hit {
		t.Errorf("missing key: hit=%v err=%v", hit, err)
	}
}

func TestExpiry(t *testing.T) {
	c, clock := newTestCache(30 * time.Minute)
	c.Set("k", 42)

	clock.Advance(29 * time.Minute)
	var v int
	if hit, _ := c.Get("k", &v); !hit || v != 42 {
		t.Errorf("entry should still be live before ttl, hit=%v v=%d", hit, v)
	}

	clock.Advance(2 * time.Minute)
	if hit, _ := c.Get("k", &v); hit {
		t.Error("entry should be expired after ttl")
	}
	if c.Len() != 0 {
		t.Errorf("expired entry should be removed on read, len=%d", c.Len())
	}
}

func TestSetRefreshesExpiry(t *testing.T) {
	c, clock := newTestCache(time.Minute)
	c.Set("k", "one")
	clock.Advance(50 * time.Second)
	c.Set("k", "two")
	clock.Advance(50 * time.Second)

	var v string
	if hit, _ := c.Get("k", &v); !hit || v != "two" {
		t.Errorf("re-set entry should live a full ttl, hit=%v v=%q", hit, v)
	}
}

func TestValuesAreCopies(t *testing.T) {
	c, _ := newTestCache(time.Minute)

	rec := tokenRecord{Token: "t", Scope: []string{"catalog"}}
	c.Set("rec", rec)
	rec.Scope[0] = "mutated"

	var got tokenRecord
	if hit, err := c.Get("rec", &got); !hit || err != nil {
		t.Fatalf("Get failed: hit=%v err=%v", hit, err)
	}
	if got.Scope[0] != "catalog" {
		t.Errorf("cached value should not see caller mutation, got %v", got.Scope)
	}
}

func TestDelete(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	c.Set("k", 1)
	c.Delete("k")

	var v int
	if hit, _ := c.Get("k", &v); hit {
		t.Error("deleted key should miss")
	}
}
