package rr

import (
	"sync/atomic"
	"testing"
)

func TestNext(t *testing.T) {
	var list atomic.Pointer[[]string]
	r := New(&list)

	if _, ok := r.Next(); ok {
		t.Fatal("nil list must be empty")
	}

	list.Store(&[]string{"a", "b", "c"})
	want := []string{"a", "b", "c", "a", "b"}
	for i, w := range want {
		got, ok := r.Next()
		if !ok || got != w {
			t.Fatalf("step %d: got %q, want %q", i, got, w)
		}
	}

	list.Store(&[]string{})
	if r.Len() != 0 {
		t.Fatalf("len %d", r.Len())
	}
	if _, ok := r.Next(); ok {
		t.Fatal("empty list returned a value")
	}
}
