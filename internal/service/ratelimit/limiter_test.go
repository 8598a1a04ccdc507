package ratelimit

import "testing"

func TestLimiterBurstThenBlocks(t *testing.T) {
	l := New()
	for i := 0; i < 3; i++ {
		if !l.Allow("client", 3, 0) {
			t.Fatalf("request %d should pass", i)
		}
	}
	if l.Allow("client", 3, 0) {
		t.Fatalf("expected bucket to be empty")
	}
}

func TestLimiterKeysAreIndependent(t *testing.T) {
	l := New()
	if !l.Allow("a", 1, 0) {
		t.Fatalf("first key should pass")
	}
	if l.Allow("a", 1, 0) {
		t.Fatalf("first key should be exhausted")
	}
	if !l.Allow("b", 1, 0) {
		t.Fatalf("second key should be unaffected")
	}
}
