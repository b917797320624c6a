package extract

import (
	"testing"
)

const samplePO = `Initech Industrial Supplies
PURCHASE ORDER
PO: 88231
Date: 15/06/2024
Widget A 10 5.00 50.00
Widget B 2 12.50 25.00`

func TestPOExtract(t *testing.T) {
	rec, err := NewPOExtractor().Extract(samplePO)
	if err != nil {
		t.Fatal(err)
	}
	po := rec.(*PORecord)

	checkStr(t, "vendor", po.Vendor, "Initech Industrial Supplies")
	checkStr(t, "po_number", po.PONumber, "88231")
	checkStr(t, "date", po.Date, "15/06/2024")
	if po.RawText != samplePO {
		t.Error("raw_text must equal the input text")
	}
	if len(po.LineItems) != 2 {
		t.Fatalf("line_items = %d, want 2", len(po.LineItems))
	}
	checkStr(t, "line_items[1].description", po.LineItems[1].Description, "Widget B")
	checkStr(t, "line_items[1].quantity", po.LineItems[1].Quantity, "2")
	checkStr(t, "line_items[1].unit_price", po.LineItems[1].UnitPrice, "12.50")
	checkStr(t, "line_items[1].total_price", po.LineItems[1].TotalPrice, "25.00")
}

func TestPOLineItemSingle(t *testing.T) {
	rec, _ := NewPOExtractor().Extract("Widget A 10 5.00 50.00")
	po := rec.(*PORecord)
	if len(po.LineItems) != 1 {
		t.Fatalf("line_items = %d, want 1", len(po.LineItems))
	}
	item := po.LineItems[0]
	checkStr(t, "description", item.Description, "Widget A")
	checkStr(t, "quantity", item.Quantity, "10")
	checkStr(t, "unit_price", item.UnitPrice, "5.00")
	checkStr(t, "total_price", item.TotalPrice, "50.00")
}

func TestPOExtractEmpty(t *testing.T) {
	rec, err := NewPOExtractor().Extract("")
	if err != nil {
		t.Fatal(err)
	}
	po := rec.(*PORecord)
	if po.Vendor != nil || po.PONumber != nil || po.Date != nil {
		t.Error("fields must be absent for empty input")
	}
	if len(po.LineItems) != 0 || po.RawText != "" {
		t.Error("empty input must yield empty line items and raw text")
	}
}

func TestPODateStyles(t *testing.T) {
	rec, _ := NewPOExtractor().Extract("Purchase Order\nDelivery 2024-06-15 confirmed")
	po := rec.(*PORecord)
	checkStr(t, "date", po.Date, "2024-06-15")
}

func TestPONumberDottedPrefix(t *testing.T) {
	rec, _ := NewPOExtractor().Extract("P.O - 7781")
	po := rec.(*PORecord)
	checkStr(t, "po_number", po.PONumber, "7781")
}
