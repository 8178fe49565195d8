// Package whatsapp builds the checkout handoff link: a human-readable order
// summary URL-encoded into a wa.me deep link. No network calls happen here;
// the caller navigates to the returned URL.
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/mario443-has/tienda-lumiere-glamour/internal/cart"
	"github.com/mario443-has/tienda-lumiere-glamour/internal/currency"
)

// DefaultNumber is the destination used when no number is configured.
const DefaultNumber = "573007221200"

const (
	greeting = "¡Hola! Me gustaría comprar los siguientes productos:\n\n"
	closing  = "Por favor, confírmame la disponibilidad y el proceso de pago."
)

type Formatter struct {
	number string
}

func NewFormatter(number string) *Formatter {
	if number == "" {
		number = DefaultNumber
	}
	return &Formatter{number: number}
}

// Format builds the order summary for the given line items and grand total:
// sequential numbering, name, color annotation when a real color was chosen,
// quantity and formatted subtotal per line.
func (f *Formatter) Format(items []cart.LineItem, total float64) string {
	var b strings.Builder
	b.WriteString(greeting)

	for i, item := range items {
		fmt.Fprintf(&b, "%d. %s", i+1, item.Name)
		if item.Color != "" && item.Color != "N/A" {
			fmt.Fprintf(&b, " (Color: %s)", item.Color)
		}
		fmt.Fprintf(&b, " - Cantidad: %d - %s\n", item.Quantity, currency.Format(item.Subtotal()))
	}

	fmt.Fprintf(&b, "\nTotal estimado: %s\n", currency.Format(total))
	b.WriteString(closing)

	return "https://wa.me/" + f.number + "?text=" + encode(b.String())
}

// encode escapes like encodeURIComponent: spaces become %20, not "+".
func encode(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
