// Package classify scores cleaned document text against per-type signals and
// returns a best-guess document type.
//
// Classification is an ordered rule table, first match wins. The order is
// load-bearing: the invoice and receipt keyword sets overlap ("subtotal"), so
// invoice is checked first. Confidence values are fixed per-rule constants
// reflecting rule specificity, not learned probabilities.
package classify

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/docuscan/docintake/constants"
)

// Result is the outcome of classifying one document.
type Result struct {
	Type       constants.DocType `json:"document_type"`
	Confidence float32           `json:"confidence"`
	// Alternatives lists the runner-up types whose rules would also have
	// matched, in rule-priority order. Empty when nothing else matched.
	Alternatives []constants.DocType `json:"alternatives,omitempty"`
}

type rule struct {
	docType    constants.DocType
	confidence float32
	match      func(text, lower string) bool
}

var (
	rePricePattern = regexp.MustCompile(`\d{1,3}\.\d{2}`)

	invoiceKeywords = []string{"invoice", "bill to", "qty", "subtotal", "gst", "total amount"}
	receiptKeywords = []string{"subtotal", "store", "cash", "pos", "thank you"}
	idKeywords      = []string{"date of birth", "dob", "id no", "blood group"}
)

func containsAny(lower string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// ruleTable is evaluated top to bottom; the first matching rule decides the
// type. Keep the order in sync with the confidence constants above each rule.
var ruleTable = []rule{
	{
		docType:    constants.Invoice,
		confidence: 0.90,
		match: func(_, lower string) bool {
			return containsAny(lower, invoiceKeywords)
		},
	},
	{
		docType:    constants.Receipt,
		confidence: 0.85,
		match: func(_, lower string) bool {
			return containsAny(lower, receiptKeywords)
		},
	},
	{
		docType:    constants.Notes,
		confidence: 0.70,
		match: func(text, _ string) bool {
			return len(strings.Fields(text)) > 80 && !rePricePattern.MatchString(text)
		},
	},
	{
		docType:    constants.PurchaseOrder,
		confidence: 0.88,
		match: func(_, lower string) bool {
			return strings.Contains(lower, "purchase order") || strings.Contains(lower, "po no")
		},
	},
	{
		docType:    constants.IDCard,
		confidence: 0.80,
		match: func(_, lower string) bool {
			return containsAny(lower, idKeywords)
		},
	},
}

// unknownConfidence is reported when no rule matches.
const unknownConfidence = 0.40

// Classifier evaluates the rule table. It holds no mutable state; a single
// instance is safe for concurrent use.
type Classifier struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{logger: logger}
}

// Classify returns the first matching rule's type and confidence, plus the
// runner-up types collected from the remaining rules. Unmatched text yields
// Unknown rather than an error.
func (c *Classifier) Classify(text string) Result {
	lower := strings.ToLower(text)

	winner := -1
	for i, r := range ruleTable {
		if r.match(text, lower) {
			winner = i
			break
		}
	}

	if winner < 0 {
		c.logger.Debug("classify.unmatched", "text_len", len(text))
		return Result{Type: constants.Unknown, Confidence: unknownConfidence}
	}

	res := Result{
		Type:       ruleTable[winner].docType,
		Confidence: ruleTable[winner].confidence,
	}
	for i, r := range ruleTable {
		if i == winner {
			continue
		}
		if r.match(text, lower) {
			res.Alternatives = append(res.Alternatives, r.docType)
		}
	}

	c.logger.Debug("classify.matched",
		"type", res.Type,
		"confidence", res.Confidence,
		"alternatives", len(res.Alternatives),
	)
	return res
}
