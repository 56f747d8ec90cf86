package handlers

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var displayPrinters = map[string]*message.Printer{
	"en": message.NewPrinter(language.MustParse("en-IN")),
	"hi": message.NewPrinter(language.MustParse("hi-IN")),
}

// priceDisplay renders a rupee range with locale-aware digit grouping,
// e.g. "₹1,196 – ₹1,616" for en-IN.
func priceDisplay(locale string, low, high int) string {
	p, ok := displayPrinters[locale]
	if !ok {
		p = displayPrinters["en"]
	}
	return p.Sprintf("₹%v – ₹%v", number.Decimal(low), number.Decimal(high))
}
