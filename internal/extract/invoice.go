package extract

import (
	"regexp"
	"strings"

	"github.com/docuscan/docintake/internal/textnorm"
)

var (
	invoiceNumberPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Invoice\s*No\.?\s*[:#]\s*(\S+)`),
		regexp.MustCompile(`(?i)Invoice\s*Number\s*[:#]\s*(\S+)`),
		regexp.MustCompile(`(?i)INV\s*[:#]\s*(\S+)`),
	}
	invoiceDatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Invoice\s*Date\s*:\s*([^\n]+)`),
		regexp.MustCompile(`(?i)Date\s*:\s*([^\n]+)`),
	}
	dueDatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Due\s*Date\s*:\s*([^\n]+)`),
		regexp.MustCompile(`(?i)Payment\s*Due\s*:\s*([^\n]+)`),
	}
	subtotalLabels = []*regexp.Regexp{
		amountLabel(`Sub\s*Total`),
		amountLabel(`Subtotal`),
	}
	taxLabels = []*regexp.Regexp{
		amountLabel(`Tax`),
		amountLabel(`GST`),
		amountLabel(`VAT`),
	}
	totalLabels = []*regexp.Regexp{
		amountLabel(`Total\s*Amount`),
		amountLabel(`Total\s*Due`),
		amountLabel(`Amount\s*Due`),
	}
	reBillTo = regexp.MustCompile(`(?i)Bill To|Billed To`)
)

// InvoiceExtractor pulls labeled fields and positional names out of invoice
// text. Line items are left empty: table-structure parsing is a known gap,
// reserved until a layout-aware OCR source is available.
type InvoiceExtractor struct{}

func NewInvoiceExtractor() *InvoiceExtractor { return &InvoiceExtractor{} }

func (e *InvoiceExtractor) Extract(text string) (Record, error) {
	rec := &InvoiceRecord{RawText: text, LineItems: []InvoiceItem{}}
	if text == "" {
		return rec, nil
	}

	rec.InvoiceNumber = findFirst(invoiceNumberPatterns, text)
	rec.InvoiceDate = findFirst(invoiceDatePatterns, text)
	rec.DueDate = findFirst(dueDatePatterns, text)

	lines := textnorm.Lines(text)

	// Vendor: first line in the top section that isn't the word "invoice"
	// itself and looks like a name (two or more words).
	top := lines
	if len(top) > 10 {
		top = top[:10]
	}
	for _, ln := range top {
		if strings.Contains(strings.ToLower(ln), "invoice") {
			continue
		}
		if len(strings.Fields(ln)) >= 2 {
			rec.VendorName = strPtr(ln)
			break
		}
	}

	// Customer: the line immediately following "Bill To".
	for i, ln := range lines {
		if reBillTo.MatchString(ln) {
			if i+1 < len(lines) {
				rec.CustomerName = strPtr(lines[i+1])
			}
			break
		}
	}

	rec.SubtotalAmount = findAmount(subtotalLabels, text)
	rec.TaxAmount = findAmount(taxLabels, text)
	rec.TotalAmount = findAmount(totalLabels, text)
	rec.Currency = findCurrency(text)

	return rec, nil
}
