package cart

import (
	"encoding/json"
	"strconv"
)

// LineItem is one product variant in the cart. VariantID is the logical key;
// it falls back to the product id when no variant was selected.
type LineItem struct {
	VariantID string  `json:"variantId"`
	ProductID string  `json:"id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Color     string  `json:"color"`
	ImageURL  string  `json:"imageUrl"`
}

// rawLineItem tolerates the malformed shapes found in persisted carts:
// quantity as a string or null, price as a string, missing image.
type rawLineItem struct {
	VariantID string          `json:"variantId"`
	ProductID string          `json:"id"`
	Name      string          `json:"name"`
	UnitPrice json.RawMessage `json:"price"`
	Quantity  json.RawMessage `json:"quantity"`
	Color     string          `json:"color"`
	ImageURL  string          `json:"imageUrl"`
}

// UnmarshalJSON decodes defensively: an invalid or missing quantity becomes 1,
// an invalid or negative price becomes 0. It never returns an error for
// malformed field values, only for JSON that is not an object at all.
func (i *LineItem) UnmarshalJSON(data []byte) error {
	var raw rawLineItem
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	i.VariantID = raw.VariantID
	i.ProductID = raw.ProductID
	i.Name = raw.Name
	i.Color = raw.Color
	i.ImageURL = raw.ImageURL
	i.Quantity = coerceQuantity(raw.Quantity)
	i.UnitPrice = coercePrice(raw.UnitPrice)
	return nil
}

// coerceQuantity accepts only a JSON number; anything else (string, null,
// absent) repairs to 1, as does any value below 1.
func coerceQuantity(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 1
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 1
	}
	q := int(f)
	if q < 1 {
		return 1
	}
	return q
}

// coercePrice accepts a JSON number or a numeric string; anything else
// repairs to 0. Negative prices repair to 0 as well.
func coercePrice(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		if f < 0 {
			return 0
		}
		return f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if v, err := strconv.ParseFloat(s, 64); err == nil && v >= 0 {
			return v
		}
	}
	return 0
}

// normalize applies the repair rules to an already-decoded item.
func (i *LineItem) normalize(placeholderImage string) {
	if i.VariantID == "" {
		i.VariantID = i.ProductID
	}
	if i.Quantity < 1 {
		i.Quantity = 1
	}
	if i.UnitPrice < 0 {
		i.UnitPrice = 0
	}
	if i.Color == "" {
		i.Color = "N/A"
	}
	if i.ImageURL == "" {
		i.ImageURL = placeholderImage
	}
}

// Subtotal is the line's price contribution.
func (i LineItem) Subtotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}
