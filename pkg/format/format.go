// Package format presenta montos y fechas como los ve el usuario final (fr-FR, francos CFA).
package format

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Currency moneda de todos los montos (franco CFA de África occidental, sin decimales).
var Currency = currency.MustParseISO("XOF")

const currencySuffix = "F CFA"

var printer = message.NewPrinter(language.French)

// Amount formatea un monto en XOF: "89 900 F CFA". Se redondea a la unidad.
func Amount(d decimal.Decimal) string {
	return Integer(d.Round(0).IntPart()) + " " + currencySuffix
}

// Integer formatea un entero con separadores de miles franceses (espacios normales).
func Integer(n int64) string {
	s := printer.Sprint(number.Decimal(n))
	// CLDR usa espacio fino insecable; se normaliza para PDF y terminales.
	return strings.NewReplacer("\u202f", " ", "\u00a0", " ").Replace(s)
}

// Percent formatea un porcentaje con un decimal: "72,5 %".
func Percent(d decimal.Decimal) string {
	s := d.Round(1).StringFixed(1)
	return strings.Replace(s, ".", ",", 1) + " %"
}

// Date fecha corta francesa dd/mm/aaaa.
func Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}
