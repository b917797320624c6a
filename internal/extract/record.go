// Package extract turns cleaned document text into typed, structured records.
//
// Each document type has its own extractor; all of them share the same
// labeled-field technique: an ordered list of case-insensitive patterns is
// tried against the text and the first captured group wins. A pattern that
// does not match produces an absent field, never an error. Extractors hold no
// mutable state and are safe for concurrent use.
package extract

import (
	"github.com/docuscan/docintake/constants"
)

// Record is the tagged union over extractor outputs. Callers switch on
// DocumentType to serialize or persist the concrete variant.
type Record interface {
	DocumentType() constants.DocType
}

// Extractor maps cleaned text to a typed record. Empty input yields a record
// with every optional field absent and RawText == "".
type Extractor interface {
	Extract(text string) (Record, error)
}

// InvoiceItem is one invoice line item. All fields optional.
type InvoiceItem struct {
	Description *string  `json:"description,omitempty"`
	Quantity    *float64 `json:"quantity,omitempty"`
	UnitPrice   *float64 `json:"unit_price,omitempty"`
	TotalPrice  *float64 `json:"total_price,omitempty"`
}

// InvoiceRecord is the structured form of an invoice.
type InvoiceRecord struct {
	InvoiceNumber  *string       `json:"invoice_number,omitempty"`
	InvoiceDate    *string       `json:"invoice_date,omitempty"`
	DueDate        *string       `json:"due_date,omitempty"`
	VendorName     *string       `json:"vendor_name,omitempty"`
	CustomerName   *string       `json:"customer_name,omitempty"`
	SubtotalAmount *float64      `json:"subtotal_amount,omitempty"`
	TaxAmount      *float64      `json:"tax_amount,omitempty"`
	TotalAmount    *float64      `json:"total_amount,omitempty"`
	Currency       *string       `json:"currency,omitempty"`
	LineItems      []InvoiceItem `json:"line_items"`
	RawText        string        `json:"raw_text"`
}

func (*InvoiceRecord) DocumentType() constants.DocType { return constants.Invoice }

// ReceiptItem is one receipt line item. All fields optional.
type ReceiptItem struct {
	Description *string  `json:"description,omitempty"`
	Quantity    *float64 `json:"quantity,omitempty"`
	UnitPrice   *float64 `json:"unit_price,omitempty"`
	TotalPrice  *float64 `json:"total_price,omitempty"`
}

// ReceiptRecord is the structured form of a point-of-sale receipt.
type ReceiptRecord struct {
	MerchantName  *string       `json:"merchant_name,omitempty"`
	ReceiptDate   *string       `json:"receipt_date,omitempty"`
	ReceiptTime   *string       `json:"receipt_time,omitempty"`
	PaymentMethod *string       `json:"payment_method,omitempty"`
	TotalAmount   *float64      `json:"total_amount,omitempty"`
	Currency      *string       `json:"currency,omitempty"`
	Items         []ReceiptItem `json:"items"`
	RawText       string        `json:"raw_text"`
}

func (*ReceiptRecord) DocumentType() constants.DocType { return constants.Receipt }

// POLineItem is one purchase-order line item. Values stay strings:
// purchase orders are intentionally less strictly typed than invoices.
type POLineItem struct {
	Description *string `json:"description,omitempty"`
	Quantity    *string `json:"quantity,omitempty"`
	UnitPrice   *string `json:"unit_price,omitempty"`
	TotalPrice  *string `json:"total_price,omitempty"`
}

// PORecord is the structured form of a purchase order.
type PORecord struct {
	Vendor    *string      `json:"vendor,omitempty"`
	PONumber  *string      `json:"po_number,omitempty"`
	Date      *string      `json:"date,omitempty"`
	LineItems []POLineItem `json:"line_items"`
	RawText   string       `json:"raw_text"`
}

func (*PORecord) DocumentType() constants.DocType { return constants.PurchaseOrder }

// IDRecord is the structured form of an identity document.
type IDRecord struct {
	IDType      constants.IDType `json:"id_type"`
	FullName    *string          `json:"full_name,omitempty"`
	IDNumber    *string          `json:"id_number,omitempty"`
	DateOfBirth *string          `json:"date_of_birth,omitempty"`
	IssueDate   *string          `json:"issue_date,omitempty"`
	ExpiryDate  *string          `json:"expiry_date,omitempty"`
	Address     *string          `json:"address,omitempty"`
	RawText     string           `json:"raw_text"`
}

func (*IDRecord) DocumentType() constants.DocType { return constants.IDCard }

// NotesRecord is the structured form of free-text notes. The notes extractor
// is the pipeline's safe fallback: it never fails on any string input.
type NotesRecord struct {
	Title     *string  `json:"title,omitempty"`
	Summary   string   `json:"summary,omitempty"`
	KeyPoints []string `json:"key_points"`
	RawText   string   `json:"raw_text"`
}

func (*NotesRecord) DocumentType() constants.DocType { return constants.Notes }
