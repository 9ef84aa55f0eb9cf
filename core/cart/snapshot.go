package cart

import (
	"encoding/json"
	"fmt"

	"github.com/irsalhamdi/storefront-cart/validate"
	"github.com/shopspring/decimal"
)

// snapshotItem is the persisted form of an Item. Prices are kept as JSON
// numbers rather than decimal's default quoted strings.
type snapshotItem struct {
	ID            int         `json:"id"`
	Name          string      `json:"name"`
	Price         json.Number `json:"price"`
	OriginalPrice json.Number `json:"originalPrice"`
	Quantity      int         `json:"quantity" validate:"gte=1,lte=10"`
	Image         string      `json:"image"`
}

// MarshalSnapshot encodes items as a JSON array, "[]" when empty.
func MarshalSnapshot(items []Item) ([]byte, error) {
	out := make([]snapshotItem, 0, len(items))
	for _, it := range items {
		out = append(out, snapshotItem{
			ID:            it.ID,
			Name:          it.Name,
			Price:         json.Number(it.Price.String()),
			OriginalPrice: json.Number(it.OriginalPrice.String()),
			Quantity:      it.Quantity,
			Image:         it.Image,
		})
	}

	b, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encoding cart snapshot: %w", err)
	}
	return b, nil
}

// UnmarshalSnapshot decodes a snapshot and rejects it when it breaks a cart
// invariant: repeated ids, quantities out of bounds or negative prices.
func UnmarshalSnapshot(data []byte) ([]Item, error) {
	var in []snapshotItem
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("decoding cart snapshot: %w", err)
	}

	seen := make(map[int]bool, len(in))
	items := make([]Item, 0, len(in))
	for i, si := range in {
		if seen[si.ID] {
			return nil, fmt.Errorf("line %d: duplicate id[%d]", i, si.ID)
		}
		seen[si.ID] = true

		if err := validate.Check(si); err != nil {
			return nil, fmt.Errorf("line %d: %w", i, err)
		}

		price, err := parsePrice(si.Price)
		if err != nil {
			return nil, fmt.Errorf("line %d: price: %w", i, err)
		}
		orig, err := parsePrice(si.OriginalPrice)
		if err != nil {
			return nil, fmt.Errorf("line %d: originalPrice: %w", i, err)
		}

		items = append(items, Item{
			ID:            si.ID,
			Name:          si.Name,
			Price:         price,
			OriginalPrice: orig,
			Quantity:      si.Quantity,
			Image:         si.Image,
		})
	}

	return items, nil
}

func parsePrice(n json.Number) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return decimal.Decimal{}, err
	}
	if d.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("negative amount %s", d)
	}
	return d, nil
}
