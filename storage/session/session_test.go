package session

import (
	"context"
	"testing"

	"github.com/alexedwards/scs/v2"
)

func TestBoundStorage(t *testing.T) {
	sm := scs.New()
	s := New(sm)

	ctx1, err := sm.Load(context.Background(), "")
	if err != nil {
		t.Fatalf("loading first session: %v", err)
	}
	ctx2, err := sm.Load(context.Background(), "")
	if err != nil {
		t.Fatalf("loading second session: %v", err)
	}

	first := s.Bind(ctx1)
	second := s.Bind(ctx2)

	if err := first.Set("cart", `[{"id":1}]`); err != nil {
		t.Fatalf("set: %v", err)
	}

	v, ok, err := first.Get("cart")
	if err != nil || !ok || v != `[{"id":1}]` {
		t.Fatalf("expected stored value, got %q ok[%v] err[%v]", v, ok, err)
	}

	if _, ok, _ := second.Get("cart"); ok {
		t.Fatal("sessions must not share values")
	}

	if err := first.Remove("cart"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok, _ := first.Get("cart"); ok {
		t.Fatal("expected key to be removed")
	}
}
