package handlers

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Money formats amounts with digit grouping followed by the currency code.
type Money struct {
	Code    string
	printer *message.Printer
	sep     string
}

// NewMoney returns a formatter for code using English digit grouping.
func NewMoney(code string) *Money {
	return NewMoneyWithLocale(code, language.English)
}

// NewMoneyWithLocale returns a formatter for code using tag's grouping rules.
func NewMoneyWithLocale(code string, tag language.Tag) *Money {
	p := message.NewPrinter(tag)
	return &Money{Code: strings.ToUpper(code), printer: p, sep: decimalSeparator(p)}
}

// Format renders d like "1,500.5 IQD", rounded to two decimals.
// The whole part is grouped by the locale; the fraction is taken from the
// decimal itself so large amounts stay exact.
func (m *Money) Format(d decimal.Decimal) string {
	d = d.Round(2)
	whole := d.Truncate(0)

	s := m.printer.Sprint(number.Decimal(whole.IntPart()))
	if d.IsNegative() && whole.IsZero() {
		s = "-" + s
	}
	if frac := d.Sub(whole).Abs(); !frac.IsZero() {
		s += m.sep + strings.TrimPrefix(frac.String(), "0.")
	}

	if m.Code == "" {
		return s
	}
	return s + " " + m.Code
}

// decimalSeparator asks the printer how it writes 1.5 and keeps what sits
// between the digits.
func decimalSeparator(p *message.Printer) string {
	s := p.Sprint(number.Decimal(1.5))
	i, j := strings.Index(s, "1"), strings.LastIndex(s, "5")
	if i < 0 || j <= i+1 {
		return "."
	}
	return s[i+1 : j]
}
