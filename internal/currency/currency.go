// Package currency renders prices the way the storefront displays them:
// Colombian pesos, no decimals, locale thousands grouping, a literal "$"
// prefix instead of the ISO currency symbol.
package currency

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.MustParse("es-CO"))

// Format rounds to the nearest whole peso and formats with grouping,
// e.g. 30000 -> "$ 30.000".
func Format(v float64) string {
	return "$ " + printer.Sprintf("%d", int64(math.Round(v)))
}
