package constants

import (
	"strings"
)

// DocType is the canonical document type produced by classification.
type DocType string

const (
	Invoice       DocType = "invoice"
	Receipt       DocType = "receipt"
	PurchaseOrder DocType = "purchase_order"
	IDCard        DocType = "id_card"
	Notes         DocType = "notes"
	Unknown       DocType = "unknown"
)

// allDocTypes excludes Unknown: it is a classifier outcome, not a type a
// caller may request or an extractor is registered under.
var allDocTypes = []DocType{
	Invoice,
	Receipt,
	PurchaseOrder,
	IDCard,
	Notes,
}

func AsStringSlice() []string {
	result := make([]string, len(allDocTypes))
	for i, dt := range allDocTypes {
		result[i] = string(dt)
	}
	return result
}

// Canonicalize maps a caller-supplied type string onto a canonical DocType.
// Returns false when the input is empty or not recognized.
func Canonicalize(input string) (DocType, bool) {
	if input == "" {
		return Unknown, false
	}

	normalized := strings.ToLower(strings.TrimSpace(input))
	normalized = strings.ReplaceAll(normalized, "-", "_")
	normalized = strings.ReplaceAll(normalized, " ", "_")

	// synonyms map
	synonyms := map[string]DocType{
		"bill":          Invoice,
		"invoices":      Invoice,
		"po":            PurchaseOrder,
		"purchaseorder": PurchaseOrder,
		"id":            IDCard,
		"identity":      IDCard,
		"id_document":   IDCard,
		"note":          Notes,
		"memo":          Notes,
	}

	if dt, ok := synonyms[normalized]; ok {
		return dt, true
	}

	for _, dt := range allDocTypes {
		if normalized == string(dt) {
			return dt, true
		}
	}

	return Unknown, false
}
