package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// amountPattern matches money-like numerics, with optional thousands commas.
const amountPattern = `(\d{1,3}(?:,\d{3})*(?:\.\d+)?)`

// reCurrencyCode matches the fixed ISO-4217 set the extractors recognize.
var reCurrencyCode = regexp.MustCompile(`\b(INR|USD|EUR|GBP|JPY|AUD|CAD)\b`)

// findFirst tries patterns in order and returns the first submatch, trimmed.
// Pattern order is priority order; no scoring. Nil when nothing matches.
func findFirst(patterns []*regexp.Regexp, text string) *string {
	for _, p := range patterns {
		if m := p.FindStringSubmatch(text); m != nil {
			s := strings.TrimSpace(m[1])
			return &s
		}
	}
	return nil
}

// findAmount locates "label [CUR] 1,234.56" for each label pattern in order
// and parses the first hit as a float, commas stripped. Unparsable numerics
// leave the field absent rather than failing.
func findAmount(labelPatterns []*regexp.Regexp, text string) *float64 {
	for _, p := range labelPatterns {
		m := p.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		num := strings.ReplaceAll(m[len(m)-1], ",", "")
		v, err := strconv.ParseFloat(num, 64)
		if err != nil {
			continue
		}
		return &v
	}
	return nil
}

// amountLabel compiles a label into a findAmount pattern: the label, optional
// separators, an optional 3-letter currency code, then the amount.
func amountLabel(label string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + label + `[:\s]*(?:[A-Z]{3})?\s?` + amountPattern)
}

// findCurrency scans for the first recognized ISO currency code.
func findCurrency(text string) *string {
	if m := reCurrencyCode.FindStringSubmatch(text); m != nil {
		return &m[1]
	}
	return nil
}

func strPtr(s string) *string { return &s }
