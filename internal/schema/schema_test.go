package schema

import (
	"encoding/json"
	"testing"

	"github.com/docuscan/docintake/constants"
	"github.com/docuscan/docintake/internal/extract"
)

func TestValidateExtractedRecords(t *testing.T) {
	cases := []struct {
		name string
		dt   constants.DocType
		ex   extract.Extractor
		text string
	}{
		{"invoice", constants.Invoice, extract.NewInvoiceExtractor(), "Invoice No: 42\nSub Total: 10.00"},
		{"receipt", constants.Receipt, extract.NewReceiptExtractor(), "SUPERMART\nTotal: 12.00"},
		{"purchase order", constants.PurchaseOrder, extract.NewPOExtractor(), "PO: 7\nWidget A 10 5.00 50.00"},
		{"id card", constants.IDCard, extract.NewIDExtractor(), "Passport\nName: Jane Roe"},
		{"notes", constants.Notes, extract.NewNotesExtractor(), "Title\nSome sentence."},
		{"empty invoice", constants.Invoice, extract.NewInvoiceExtractor(), ""},
		{"empty notes", constants.Notes, extract.NewNotesExtractor(), ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, err := tc.ex.Extract(tc.text)
			if err != nil {
				t.Fatal(err)
			}
			data, err := json.Marshal(rec)
			if err != nil {
				t.Fatal(err)
			}
			if err := Validate(tc.dt, data); err != nil {
				t.Errorf("record failed its schema: %v\nrecord: %s", err, data)
			}
		})
	}
}

func TestValidateRejectsWrongShape(t *testing.T) {
	if err := Validate(constants.Invoice, []byte(`{"raw_text": 42, "line_items": []}`)); err == nil {
		t.Error("numeric raw_text should fail validation")
	}
	if err := Validate(constants.Invoice, []byte(`{"line_items": []}`)); err == nil {
		t.Error("missing raw_text should fail validation")
	}
	if err := Validate(constants.IDCard, []byte(`{"raw_text":"x","id_type":"voter_id"}`)); err == nil {
		t.Error("unknown id_type should fail validation")
	}
	if err := Validate(constants.Notes, []byte(`{"raw_text":"x","key_points":[],"extra":true}`)); err == nil {
		t.Error("unknown key should fail validation")
	}
}
