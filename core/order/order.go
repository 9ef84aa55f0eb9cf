package order

import (
	"time"

	"github.com/irsalhamdi/storefront-cart/core/cart"
)

type Status string

// Pending is the only status a receipt gets; no payment is taken.
const Pending Status = "pending"

// Receipt is the record handed back when a cart is checked out. Items and
// totals are captured at checkout time and do not follow later changes.
type Receipt struct {
	ID       string      `json:"id"`
	Status   Status      `json:"status"`
	Items    []cart.Item `json:"items"`
	Totals   cart.Totals `json:"totals"`
	PlacedAt time.Time   `json:"placedAt"`
}
