// Package format concentra el formato de montos, cantidades y fechas que se muestran
// en reportes (PDF/Excel) y mensajes al usuario.
package format

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.LatinAmericanSpanish)

// Money formatea un monto en soles con separador de miles y 2 decimales. Ej: "S/ 1,234.50".
func Money(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return printer.Sprintf("S/ %.2f", f)
}

// Quantity formatea una cantidad sin ceros decimales sobrantes. Ej: 6.000 → "6", 2.50 → "2.5".
func Quantity(d decimal.Decimal) string {
	return d.String()
}

// Date formatea una fecha como dd/mm/aaaa.
func Date(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Format("02/01/2006")
}
