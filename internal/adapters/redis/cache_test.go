package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	redisad "consumer_reviews/internal/adapters/redis"
	"consumer_reviews/internal/domain"
)

func TestCache_SetGetDel(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0, "reviews:")
	t.Cleanup(func() { _ = c.Close() })
	ctx := context.Background()

	var got domain.Company
	if ok, err := c.Get(ctx, "company:1", &got); ok || err != nil {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}

	if err := c.Set(ctx, "company:1", domain.Company{ID: 1, Name: "Company X"}, 60); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if !mr.Exists("reviews:company:1") {
		t.Fatalf("expected prefixed key in redis, keys=%v", mr.Keys())
	}

	ok, err := c.Get(ctx, "company:1", &got)
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if got.ID != 1 || got.Name != "Company X" {
		t.Fatalf("unexpected value: %+v", got)
	}

	if err := c.Del(ctx, "company:1"); err != nil {
		t.Fatalf("Del: %v", err)
	}
	if ok, _ := c.Get(ctx, "company:1", &got); ok {
		t.Fatalf("expected miss after Del")
	}
}

func TestCache_TTLExpires(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0, "")
	ctx := context.Background()

	if err := c.Set(ctx, "k", "v", 10); err != nil {
		t.Fatalf("Set: %v", err)
	}
	mr.FastForward(11 * time.Second)

	var s string
	if ok, _ := c.Get(ctx, "k", &s); ok {
		t.Fatalf("expected entry to expire")
	}
}

func TestCache_CorruptEntryIsDropped(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0, "")
	if err := mr.Set("company:2", "{not json"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	var got domain.Company
	ok, err := c.Get(context.Background(), "company:2", &got)
	if ok || err == nil {
		t.Fatalf("expected decode error, got ok=%v err=%v", ok, err)
	}
	if mr.Exists("company:2") {
		t.Fatalf("expected corrupt entry to be deleted")
	}
}
