package analytics

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatMoney renders whole dollars with thousands separators: $12,345.
func FormatMoney(v float64) string {
	return printer.Sprintf("$%d", int64(math.Round(v)))
}
