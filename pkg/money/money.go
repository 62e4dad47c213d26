// Package money handles monetary amounts as integer cents and formats
// them for pt-BR display.
package money

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

// FormatBRL renders an amount in cents as a Brazilian Real string,
// e.g. 110000 -> "R$ 1.100,00".
func FormatBRL(cents int64) string {
	return printer.Sprintf("R$ %v", number.Decimal(float64(cents)/100,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}

// ParsePrice converts free-form price input into cents. A comma is
// accepted as the decimal separator. Unparseable input yields zero.
// Rounding to cents happens exactly once, here.
func ParsePrice(input string) int64 {
	s := strings.TrimSpace(input)
	s = strings.ReplaceAll(s, ",", ".")

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int64(math.Round(f * 100))
}
