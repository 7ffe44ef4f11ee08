package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	redisad "drivent_booking/internal/adapters/redis"
	"drivent_booking/internal/domain"
)

func TestCache_RoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	ctx := context.Background()

	var miss []domain.Hotel
	ok, err := c.Get(ctx, "hotels:all", &miss)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatal("expected miss on empty cache")
	}

	in := []domain.Hotel{{ID: 1, Name: "Driven Resort", Image: "img"}}
	if err := c.Set(ctx, "hotels:all", in, 60); err != nil {
		t.Fatalf("set: %v", err)
	}

	var out []domain.Hotel
	ok, err = c.Get(ctx, "hotels:all", &out)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok || len(out) != 1 || out[0].Name != "Driven Resort" {
		t.Fatalf("unexpected cached value: ok=%v %+v", ok, out)
	}
}

func TestCache_TTLExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	ctx := context.Background()

	if err := c.Set(ctx, "hotel:3:rooms", domain.HotelRooms{Hotel: domain.Hotel{ID: 3}}, 30); err != nil {
		t.Fatalf("set: %v", err)
	}
	mr.FastForward(31 * time.Second)

	var out domain.HotelRooms
	ok, err := c.Get(ctx, "hotel:3:rooms", &out)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatal("expected expired key to miss")
	}
}

func TestCache_Del(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	ctx := context.Background()

	if err := c.Set(ctx, "k", 1, 60); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := c.Del(ctx, "k"); err != nil {
		t.Fatalf("del: %v", err)
	}
	var n int
	ok, _ := c.Get(ctx, "k", &n)
	if ok {
		t.Fatal("expected deleted key to miss")
	}
}
