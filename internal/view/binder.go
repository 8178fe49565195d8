// Package view derives the render model for every cart-dependent UI surface
// (line list, totals, badge counters, checkout link) from cart snapshots.
package view

import (
	"sync"

	"github.com/mario443-has/tienda-lumiere-glamour/internal/cart"
	"github.com/mario443-has/tienda-lumiere-glamour/internal/currency"
	"github.com/mario443-has/tienda-lumiere-glamour/internal/whatsapp"
)

const emptyCartMessage = "Tu carrito está vacío."

// Line is one rendered cart row.
type Line struct {
	VariantID string `json:"variantId"`
	Name      string `json:"name"`
	Color     string `json:"color,omitempty"`
	ImageURL  string `json:"imageUrl"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
	Subtotal  string `json:"subtotal"`
}

// Model is everything the UI needs to repaint its cart surfaces.
type Model struct {
	Items        []Line `json:"items"`
	Count        int    `json:"count"`
	Total        string `json:"total"`
	WhatsAppURL  string `json:"whatsappUrl"`
	EmptyMessage string `json:"emptyMessage,omitempty"`
}

// Binder subscribes to a cart manager and keeps the current render model.
type Binder struct {
	mu        sync.Mutex
	formatter *whatsapp.Formatter
	current   Model
}

// Bind registers the binder on the manager and performs the first render from
// the manager's current (hydrated) state.
func Bind(m *cart.Manager, formatter *whatsapp.Formatter) *Binder {
	b := &Binder{formatter: formatter}
	m.OnChange(b.render)
	b.render(m.Items(), m.Totals())
	return b
}

// Current returns the most recently rendered model.
func (b *Binder) Current() Model {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

func (b *Binder) render(items []cart.LineItem, totals cart.Totals) {
	model := Model{
		Items: make([]Line, 0, len(items)),
		Count: totals.Items,
		Total: currency.Format(totals.Price),
	}

	for _, item := range items {
		line := Line{
			VariantID: item.VariantID,
			Name:      item.Name,
			ImageURL:  item.ImageURL,
			Quantity:  item.Quantity,
			UnitPrice: currency.Format(item.UnitPrice),
			Subtotal:  currency.Format(item.Subtotal()),
		}
		if item.Color != "" && item.Color != "N/A" {
			line.Color = item.Color
		}
		model.Items = append(model.Items, line)
	}

	if len(items) == 0 {
		model.EmptyMessage = emptyCartMessage
	}
	model.WhatsAppURL = b.formatter.Format(items, totals.Price)

	b.mu.Lock()
	b.current = model
	b.mu.Unlock()
}
