package classify

import (
	"strings"
	"testing"

	"github.com/docuscan/docintake/constants"
)

func TestClassifyEmpty(t *testing.T) {
	c := New(nil)
	got := c.Classify("")
	if got.Type != constants.Unknown {
		t.Errorf("type = %v, want unknown", got.Type)
	}
	if got.Confidence != 0.40 {
		t.Errorf("confidence = %v, want 0.40", got.Confidence)
	}
	if len(got.Alternatives) != 0 {
		t.Errorf("alternatives = %v, want empty", got.Alternatives)
	}
}

func TestClassifyRules(t *testing.T) {
	cases := []struct {
		name string
		text string
		want constants.DocType
		conf float32
	}{
		{"invoice keyword", "INVOICE\nBill To: ACME Corp", constants.Invoice, 0.90},
		{"receipt keyword", "SUPERMART\nThank you for shopping", constants.Receipt, 0.85},
		{"purchase order", "PURCHASE ORDER\nPO No: 7781", constants.PurchaseOrder, 0.88},
		{"id card", "Name: Jane Roe\nDate of Birth: 01/02/1990", constants.IDCard, 0.80},
		{"unmatched", "hello world", constants.Unknown, 0.40},
	}
	c := New(nil)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := c.Classify(tc.text)
			if got.Type != tc.want {
				t.Errorf("type = %v, want %v", got.Type, tc.want)
			}
			if got.Confidence != tc.conf {
				t.Errorf("confidence = %v, want %v", got.Confidence, tc.conf)
			}
		})
	}
}

func TestClassifyNotesRule(t *testing.T) {
	c := New(nil)

	long := strings.Repeat("meeting word ", 50) // >80 words, no price pattern
	got := c.Classify(long)
	if got.Type != constants.Notes {
		t.Fatalf("type = %v, want notes", got.Type)
	}
	if got.Confidence != 0.70 {
		t.Errorf("confidence = %v, want 0.70", got.Confidence)
	}

	// The same length of text with a price-like token must not be notes.
	withPrice := long + " 12.50"
	if got := c.Classify(withPrice); got.Type == constants.Notes {
		t.Error("price-bearing text classified as notes")
	}
}

// Rule order, not keyword count, decides: text with both an invoice and a
// receipt keyword is an invoice.
func TestClassifyPriorityOrder(t *testing.T) {
	c := New(nil)
	got := c.Classify("Invoice #1 Subtotal: 10.00")
	if got.Type != constants.Invoice {
		t.Fatalf("type = %v, want invoice", got.Type)
	}
	// "subtotal" also satisfies the receipt rule, so it must show up as a
	// runner-up.
	foundReceipt := false
	for _, alt := range got.Alternatives {
		if alt == constants.Receipt {
			foundReceipt = true
		}
		if alt == constants.Invoice {
			t.Error("winner repeated in alternatives")
		}
	}
	if !foundReceipt {
		t.Errorf("alternatives = %v, want receipt included", got.Alternatives)
	}
}

func TestClassifyCaseInsensitive(t *testing.T) {
	c := New(nil)
	if got := c.Classify("iNvOiCe"); got.Type != constants.Invoice {
		t.Errorf("type = %v, want invoice", got.Type)
	}
}

func TestClassifyAlternativesOrdered(t *testing.T) {
	c := New(nil)
	// invoice wins; receipt ("store") and id_card ("dob") would also match.
	got := c.Classify("Invoice from the store, DOB: 01/01/1990")
	if got.Type != constants.Invoice {
		t.Fatalf("type = %v, want invoice", got.Type)
	}
	want := []constants.DocType{constants.Receipt, constants.IDCard}
	if len(got.Alternatives) != len(want) {
		t.Fatalf("alternatives = %v, want %v", got.Alternatives, want)
	}
	for i := range want {
		if got.Alternatives[i] != want[i] {
			t.Errorf("alternatives[%d] = %v, want %v", i, got.Alternatives[i], want[i])
		}
	}
}
