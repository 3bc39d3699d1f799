// Package format renders money and percentages for presentation. Output is
// pinned to a configured locale and never depends on the host environment.
package format

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Locale describes how amounts are written for one currency and region
type Locale struct {
	Name            string
	Currency        string
	Symbol          string
	SymbolSeparator string
	GroupSeparator  string
}

var (
	// SouthAfrica renders ZAR the way en-ZA does: "R 4 200" with no-break spaces
	SouthAfrica = Locale{
		Name:            "en-ZA",
		Currency:        "ZAR",
		Symbol:          "R",
		SymbolSeparator: "\u00a0",
		GroupSeparator:  "\u00a0",
	}

	UnitedStates = Locale{
		Name:           "en-US",
		Currency:       "USD",
		Symbol:         "$",
		GroupSeparator: ",",
	}
)

var locales = map[string]Locale{
	SouthAfrica.Name:  SouthAfrica,
	UnitedStates.Name: UnitedStates,
}

// LookupLocale returns the locale registered under name
func LookupLocale(name string) (Locale, error) {
	loc, ok := locales[name]
	if !ok {
		return Locale{}, fmt.Errorf("unsupported locale %q", name)
	}
	return loc, nil
}

// WithSymbol returns a copy of l using symbol
func (l Locale) WithSymbol(symbol string) Locale {
	if symbol != "" {
		l.Symbol = symbol
	}
	return l
}

// Formatter is immutable and safe for concurrent use
type Formatter struct {
	locale Locale
}

// New creates a formatter for locale
func New(locale Locale) *Formatter {
	return &Formatter{locale: locale}
}

// Default returns the en-ZA formatter
func Default() *Formatter {
	return New(SouthAfrica)
}

// Locale returns the locale used by the formatter
func (f *Formatter) Locale() Locale {
	return f.locale
}

// Currency rounds amount half-up to whole units and writes it with the
// locale's symbol and digit grouping. Negative amounts get a leading "-".
func (f *Formatter) Currency(amount decimal.Decimal) string {
	rounded := amount.Round(0)

	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}

	return sign + f.locale.Symbol + f.locale.SymbolSeparator + f.group(rounded.IntPart())
}

// Percent writes a whole percentage, "70%"
func (f *Formatter) Percent(percent int) string {
	return fmt.Sprintf("%d%%", percent)
}

// Ratio writes a fraction such as 0.8 as "80%"
func (f *Formatter) Ratio(ratio decimal.Decimal) string {
	return f.Percent(int(ratio.Mul(decimal.NewFromInt(100)).Round(0).IntPart()))
}

func (f *Formatter) group(n int64) string {
	grouped := humanize.Comma(n)
	if f.locale.GroupSeparator == "," {
		return grouped
	}
	return strings.ReplaceAll(grouped, ",", f.locale.GroupSeparator)
}
