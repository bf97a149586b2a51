package service

import (
	"context"
	"testing"
	"time"

	"sharkpay/api/internal/infra/cache"
)

func TestLockerService(t *testing.T) {
	s := NewLockerService(cache.InitStorage())
	ctx := context.Background()

	release, ok, err := s.TryLock(ctx, "bill:m_1", time.Minute)
	if err != nil || !ok {
		t.Fatalf("first lock: ok=%v err=%v", ok, err)
	}

	if _, ok, _ := s.TryLock(ctx, "bill:m_1", time.Minute); ok {
		t.Fatal("second lock must fail while held")
	}
	if _, ok, _ := s.TryLock(ctx, "bill:m_2", time.Minute); !ok {
		t.Fatal("other keys are independent")
	}

	release()
	if _, ok, _ := s.TryLock(ctx, "bill:m_1", time.Minute); !ok {
		t.Fatal("lock must be free after release")
	}
}

func TestLockerExpires(t *testing.T) {
	s := NewLockerService(cache.InitStorage())
	ctx := context.Background()

	release, ok, _ := s.TryLock(ctx, "k", 20*time.Millisecond)
	if !ok {
		t.Fatal("expected lock")
	}
	time.Sleep(60 * time.Millisecond)

	release2, ok, _ := s.TryLock(ctx, "k", time.Minute)
	if !ok {
		t.Fatal("expired lock must be free")
	}

	// a stale release must not drop the new holder's lock
	release()
	if _, ok, _ := s.TryLock(ctx, "k", time.Minute); ok {
		t.Fatal("stale release removed the lock")
	}
	release2()
}

func TestCacheRateLimiter(t *testing.T) {
	s := NewCacheRateLimiter(cache.InitStorage(), 3, time.Minute)
	ctx := context.Background()

	for i := range 3 {
		if ok, _ := s.Allow(ctx, "token"); !ok {
			t.Fatalf("request %d must pass", i+1)
		}
	}
	if ok, _ := s.Allow(ctx, "token"); ok {
		t.Fatal("4th request must be limited")
	}
	if ok, _ := s.Allow(ctx, "other"); !ok {
		t.Fatal("keys are limited separately")
	}
}
