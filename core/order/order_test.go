package order

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/irsalhamdi/storefront-cart/core/cart"
	"github.com/irsalhamdi/storefront-cart/storage/memory"
	"github.com/shopspring/decimal"
)

func TestCheckout(t *testing.T) {
	mem := memory.New(0)
	s, err := cart.Open(mem)
	if err != nil {
		t.Fatalf("opening cart: %v", err)
	}

	if _, err := checkout(s, time.Now()); err == nil {
		t.Fatal("expected an error for an empty cart")
	}

	s.AddItem(cart.ItemNew{ID: 1, Name: "A", Price: decimal.NewFromInt(50), OriginalPrice: decimal.NewFromInt(60)})
	s.AddItem(cart.ItemNew{ID: 1, Name: "A", Price: decimal.NewFromInt(50), OriginalPrice: decimal.NewFromInt(60)})
	items := s.Items()

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.FixedZone("IST", 19800))
	rcpt, err := checkout(s, now)
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	if _, err := uuid.Parse(rcpt.ID); err != nil {
		t.Fatalf("receipt id %q is not a uuid", rcpt.ID)
	}
	if rcpt.Status != Pending {
		t.Fatalf("expected status %s, got %s", Pending, rcpt.Status)
	}
	if !rcpt.PlacedAt.Equal(now) || rcpt.PlacedAt.Location() != time.UTC {
		t.Fatalf("expected placed at %s in UTC, got %s", now, rcpt.PlacedAt)
	}
	if diff := cmp.Diff(items, rcpt.Items); diff != "" {
		t.Fatalf("receipt items (-want +got):\n%s", diff)
	}
	if !rcpt.Totals.Total.Equal(decimal.NewFromInt(80)) {
		t.Fatalf("expected total 80, got %s", rcpt.Totals.Total)
	}

	if s.Len() != 0 {
		t.Fatalf("expected cart to be cleared, got %d lines", s.Len())
	}
	if v, _, _ := mem.Get(cart.DefaultKey); v != "[]" {
		t.Fatalf("expected cleared snapshot, got %s", v)
	}
}
