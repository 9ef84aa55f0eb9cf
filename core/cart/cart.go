package cart

import (
	"github.com/shopspring/decimal"
)

// Quantity bounds of a single line item.
const (
	MinQuantity = 1
	MaxQuantity = 10
)

// Item is one product's presence in the cart. ID is both the product id and
// the line key.
type Item struct {
	ID            int             `json:"id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	OriginalPrice decimal.Decimal `json:"originalPrice"`
	Quantity      int             `json:"quantity"`
	Image         string          `json:"image"`
}

// ItemNew describes a product being added; the cart decides the quantity.
type ItemNew struct {
	ID            int             `json:"id" validate:"required,gte=1"`
	Name          string          `json:"name" validate:"required"`
	Price         decimal.Decimal `json:"price"`
	OriginalPrice decimal.Decimal `json:"originalPrice"`
	Image         string          `json:"image"`
}

type QuantityUp struct {
	Quantity int `json:"quantity"`
}

type Totals struct {
	TotalItems int             `json:"totalItems"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Discount   decimal.Decimal `json:"discount"`
	Total      decimal.Decimal `json:"total"`
}

type Outcome string

const (
	Added              Outcome = "added"
	QuantityIncreased  Outcome = "quantity_increased"
	MaxQuantityReached Outcome = "max_quantity_reached"
	Removed            Outcome = "removed"
	NotFound           Outcome = "not_found"
	Rejected           Outcome = "rejected"
	QuantityUpdated    Outcome = "quantity_updated"
	Unchanged          Outcome = "unchanged"
	Cleared            Outcome = "cleared"
)

// Changed reports whether the outcome modified the cart.
func (o Outcome) Changed() bool {
	switch o {
	case Added, QuantityIncreased, Removed, QuantityUpdated, Cleared:
		return true
	}
	return false
}

// Result is what an operation did. Item is the affected line as it stands
// after the operation (or as it was, for Removed); it is zero when no line
// was involved.
type Result struct {
	Outcome Outcome
	Item    Item
}

// Cart is the in-memory list of line items in insertion order. It knows
// nothing about persistence; see Store.
type Cart struct {
	items []Item
}

// New returns a cart holding a copy of items, which must already satisfy
// the cart invariants.
func New(items []Item) *Cart {
	c := &Cart{items: make([]Item, len(items))}
	copy(c.items, items)
	return c
}

func (c *Cart) index(id int) int {
	for i, it := range c.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// Add inserts a new line with quantity 1 or bumps an existing line by one.
// An existing line keeps its captured name, prices and image.
func (c *Cart) Add(in ItemNew) Result {
	i := c.index(in.ID)
	if i < 0 {
		it := Item{
			ID:            in.ID,
			Name:          in.Name,
			Price:         in.Price,
			OriginalPrice: in.OriginalPrice,
			Quantity:      1,
			Image:         in.Image,
		}
		c.items = append(c.items, it)
		return Result{Outcome: Added, Item: it}
	}

	if c.items[i].Quantity+1 > MaxQuantity {
		return Result{Outcome: MaxQuantityReached, Item: c.items[i]}
	}

	c.items[i].Quantity++
	return Result{Outcome: QuantityIncreased, Item: c.items[i]}
}

func (c *Cart) Remove(id int) Result {
	i := c.index(id)
	if i < 0 {
		return Result{Outcome: NotFound}
	}

	it := c.items[i]
	c.items = append(c.items[:i:i], c.items[i+1:]...)
	return Result{Outcome: Removed, Item: it}
}

// UpdateQuantity sets the quantity of an existing line. Quantities outside
// [MinQuantity, MaxQuantity] are rejected before the line is looked up.
func (c *Cart) UpdateQuantity(id int, quantity int) Result {
	if quantity < MinQuantity || quantity > MaxQuantity {
		return Result{Outcome: Rejected}
	}

	i := c.index(id)
	if i < 0 {
		return Result{Outcome: NotFound}
	}

	if c.items[i].Quantity == quantity {
		return Result{Outcome: Unchanged, Item: c.items[i]}
	}

	c.items[i].Quantity = quantity
	return Result{Outcome: QuantityUpdated, Item: c.items[i]}
}

func (c *Cart) Clear() Result {
	c.items = nil
	return Result{Outcome: Cleared}
}

// Items returns a copy of the lines in insertion order, never nil.
func (c *Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Len() int { return len(c.items) }

// Totals derives the pricing summary from the current lines. A line priced
// above its original price contributes a negative discount.
func (c *Cart) Totals() Totals {
	t := Totals{
		Subtotal: decimal.Zero,
		Discount: decimal.Zero,
	}

	for _, it := range c.items {
		q := decimal.NewFromInt(int64(it.Quantity))

		t.TotalItems += it.Quantity
		t.Subtotal = t.Subtotal.Add(it.Price.Mul(q))
		t.Discount = t.Discount.Add(it.OriginalPrice.Sub(it.Price).Mul(q))
	}
	t.Total = t.Subtotal.Sub(t.Discount)

	return t
}
