package booking

import (
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter renders amounts for user-facing text. Locale and currency are
// passed in explicitly; nothing here reads ambient process state.
type Formatter struct {
	printer *message.Printer
	unit    currency.Unit
}

// NewFormatter builds a formatter for a BCP 47 locale and an ISO 4217 code.
// Unknown inputs fall back to en / KES, the catalog's working defaults.
func NewFormatter(locale, code string) Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		unit = currency.MustParseISO("KES")
	}
	return Formatter{printer: message.NewPrinter(tag), unit: unit}
}

// Format renders an amount in the formatter's currency, e.g. "KES 1138".
func (f Formatter) Format(amount int64) string {
	return f.printer.Sprintf("%v", f.unit.Amount(amount))
}
