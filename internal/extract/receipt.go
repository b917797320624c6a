package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/docuscan/docintake/internal/textnorm"
)

var (
	receiptDatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Date[:\s]*([0-9]{1,2}[-/][0-9]{1,2}[-/][0-9]{2,4})`),
		regexp.MustCompile(`([0-9]{1,2}[-/][0-9]{1,2}[-/][0-9]{2,4})`),
	}
	receiptTimePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Time[:\s]*([0-9]{1,2}:[0-9]{2}(?::[0-9]{2})?\s*(?:AM|PM)?)`),
		regexp.MustCompile(`(?i)([0-9]{1,2}:[0-9]{2}(?::[0-9]{2})?\s*(?:AM|PM)?)`),
	}
	paymentMethodPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Payment\s*Method[:\s]*([A-Za-z ]+)`),
		regexp.MustCompile(`(?i)\b(CASH|CARD|UPI|DEBIT|CREDIT)\b`),
	}
	// Captures an optional leading currency code together with the total.
	reReceiptTotal = regexp.MustCompile(`(?i)Total\s*(?:Amount)?[:\s]*([A-Z]{3})?\s?(\d{1,3}(?:,\d{3})*(?:\.\d+)?)`)
)

// ReceiptExtractor pulls labeled fields out of point-of-sale receipt text.
// Items are left empty, same reserved gap as invoice line items.
type ReceiptExtractor struct{}

func NewReceiptExtractor() *ReceiptExtractor { return &ReceiptExtractor{} }

func (e *ReceiptExtractor) Extract(text string) (Record, error) {
	rec := &ReceiptRecord{RawText: text, Items: []ReceiptItem{}}
	if text == "" {
		return rec, nil
	}

	if lines := textnorm.Lines(text); len(lines) > 0 {
		rec.MerchantName = strPtr(lines[0])
	}

	rec.ReceiptDate = findFirst(receiptDatePatterns, text)
	rec.ReceiptTime = findFirst(receiptTimePatterns, text)
	rec.PaymentMethod = findFirst(paymentMethodPatterns, text)

	// Total amount and, when present in the same match, its currency code.
	if m := reReceiptTotal.FindStringSubmatch(text); m != nil {
		if cur := strings.TrimSpace(m[1]); cur != "" {
			rec.Currency = strPtr(strings.ToUpper(cur))
		}
		num := strings.ReplaceAll(m[2], ",", "")
		if v, err := strconv.ParseFloat(num, 64); err == nil {
			rec.TotalAmount = &v
		}
	}
	if rec.Currency == nil {
		rec.Currency = findCurrency(text)
	}

	return rec, nil
}
