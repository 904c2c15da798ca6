// Package format renders quote figures for display: currency with two
// decimals and counts with locale digit grouping.
package format

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultLocale is used when no locale, or an unparsable one, is given
const DefaultLocale = "en-US"

// Formatter formats numbers for one locale
type Formatter struct {
	tag     language.Tag
	printer *message.Printer
}

// New creates a formatter for a BCP 47 locale such as "en-US" or "de-DE"
func New(locale string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil || locale == "" {
		tag = language.MustParse(DefaultLocale)
	}
	return &Formatter{tag: tag, printer: message.NewPrinter(tag)}
}

// Locale returns the locale the formatter was built for
func (f *Formatter) Locale() string {
	return f.tag.String()
}

// Currency formats a dollar amount, e.g. "$1,234.50"
func (f *Formatter) Currency(v float64) string {
	v = math.Round(v*100) / 100
	if v == 0 {
		// drop negative zero
		v = 0
	}
	if v < 0 {
		return "-$" + f.printer.Sprintf("%.2f", -v)
	}
	return "$" + f.printer.Sprintf("%.2f", v)
}

// Count formats a whole number with digit grouping, e.g. "500,400"
func (f *Formatter) Count(v float64) string {
	return f.printer.Sprintf("%d", int64(math.Round(v)))
}

// Int is Count for integers
func (f *Formatter) Int(v int) string {
	return f.printer.Sprintf("%d", v)
}

// Percent formats a percentage with no decimals, e.g. "17%"
func (f *Formatter) Percent(v float64) string {
	return f.printer.Sprintf("%.0f%%", v)
}
