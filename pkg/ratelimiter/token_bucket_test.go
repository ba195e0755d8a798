package ratelimiter

import (
	"testing"
	"time"
)

func TestTokenBucketAllowsBurstUpToCapacity(t *testing.T) {
	tb := NewTokenBucket(0.001, 3)

	for i := 0; i < 3; i++ {
		if !tb.Allow() {
			t.Fatalf("call %d denied within capacity", i)
		}
	}
	if tb.Allow() {
		t.Fatal("call beyond capacity allowed")
	}
}

func TestTokenBucketRefills(t *testing.T) {
	tb := NewTokenBucket(100, 1)

	if !tb.Allow() {
		t.Fatal("first call denied")
	}
	if tb.Allow() {
		t.Fatal("empty bucket allowed a call")
	}

	time.Sleep(20 * time.Millisecond)

	if !tb.Allow() {
		t.Fatal("refilled bucket denied a call")
	}
}
