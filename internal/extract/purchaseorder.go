package extract

import (
	"regexp"
	"strings"
)

var (
	rePONumber = regexp.MustCompile(`(?i)(PO|P\.O)\s*[:\-]?\s*(\w+)`)
	rePODate   = regexp.MustCompile(`(\d{2}[/\-]\d{2}[/\-]\d{4})|(\d{4}[/\-]\d{2}[/\-]\d{2})`)

	// One line item per "<description> <qty> <unit_price> <total>" run.
	// Unanchored: it matches anywhere, so numeric-looking prose can produce
	// false positives. Callers treat the result as a best-effort hint.
	rePOLineItem = regexp.MustCompile(`(?P<desc>[A-Za-z0-9 ,./-]+)\s+(?P<qty>\d+(?:\.\d+)?)\s+(?P<unit>\d+(?:\.\d+)?)\s+(?P<total>\d+(?:\.\d+)?)`)
)

// POExtractor pulls vendor, number, date and line items out of purchase-order
// text. Line-item values stay strings.
type POExtractor struct{}

func NewPOExtractor() *POExtractor { return &POExtractor{} }

func (e *POExtractor) Extract(text string) (Record, error) {
	rec := &PORecord{RawText: text, LineItems: []POLineItem{}}
	if text == "" {
		return rec, nil
	}

	// Vendor: first of the top lines that has at least one letter and
	// enough length to be a name.
	lines := strings.Split(text, "\n")
	top := lines
	if len(top) > 5 {
		top = top[:5]
	}
	for _, ln := range top {
		t := strings.TrimSpace(ln)
		if len(t) > 3 && strings.ContainsFunc(t, isLetter) {
			rec.Vendor = strPtr(t)
			break
		}
	}

	if m := rePONumber.FindStringSubmatch(text); m != nil {
		rec.PONumber = strPtr(strings.TrimSpace(m[2]))
	}

	// Whichever date style appears first in the text wins.
	if m := rePODate.FindString(text); m != "" {
		rec.Date = strPtr(m)
	}

	for _, m := range rePOLineItem.FindAllStringSubmatch(text, -1) {
		rec.LineItems = append(rec.LineItems, POLineItem{
			Description: strPtr(strings.TrimSpace(m[1])),
			Quantity:    strPtr(m[2]),
			UnitPrice:   strPtr(m[3]),
			TotalPrice:  strPtr(m[4]),
		})
	}

	return rec, nil
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
