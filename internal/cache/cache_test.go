package cache

import (
	"testing"
	"time"
)

func TestSetGetDelete(t *testing.T) {
	c := New(time.Minute)
	defer c.Close()

	c.Set("k", "v", 0)
	if v, ok := c.Get("k"); !ok || v != "v" {
		t.Fatalf("Get = %v, %v; want v, true", v, ok)
	}

	c.Delete("k")
	if _, ok := c.Get("k"); ok {
		t.Fatal("deleted key still present")
	}
}

func TestExpiredEntryNotReturned(t *testing.T) {
	c := New(time.Minute)
	defer c.Close()

	c.Set("k", "v", time.Nanosecond)
	time.Sleep(time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Fatal("expired entry returned")
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	c := New(time.Minute)
	c.Close()
	c.Close()

	// The cache itself remains usable; only the sweeper is gone.
	c.Set("k", "v", 0)
	if _, ok := c.Get("k"); !ok {
		t.Fatal("cache unusable after Close")
	}
}
