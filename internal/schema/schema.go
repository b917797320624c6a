// Package schema defines a JSON-Schema per extraction record variant and
// validates serialized records against them before they reach the sink.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/docuscan/docintake/constants"
)

// ForType returns the JSON-Schema (draft 2020-12 subset) for one record
// variant as a generic map.
func ForType(dt constants.DocType) map[string]any {
	switch dt {
	case constants.Invoice:
		return objectSchema(map[string]any{
			"invoice_number":  stringProp(),
			"invoice_date":    stringProp(),
			"due_date":        stringProp(),
			"vendor_name":     stringProp(),
			"customer_name":   stringProp(),
			"subtotal_amount": numberProp(),
			"tax_amount":      numberProp(),
			"total_amount":    numberProp(),
			"currency":        map[string]any{"type": "string", "minLength": 3, "maxLength": 3},
			"line_items":      arrayOf(lineItemSchema(numberProp())),
			"raw_text":        stringProp(),
		}, "raw_text", "line_items")
	case constants.Receipt:
		return objectSchema(map[string]any{
			"merchant_name":  stringProp(),
			"receipt_date":   stringProp(),
			"receipt_time":   stringProp(),
			"payment_method": stringProp(),
			"total_amount":   numberProp(),
			"currency":       map[string]any{"type": "string", "minLength": 3, "maxLength": 3},
			"items":          arrayOf(lineItemSchema(numberProp())),
			"raw_text":       stringProp(),
		}, "raw_text", "items")
	case constants.PurchaseOrder:
		return objectSchema(map[string]any{
			"vendor":     stringProp(),
			"po_number":  stringProp(),
			"date":       stringProp(),
			"line_items": arrayOf(lineItemSchema(stringProp())),
			"raw_text":   stringProp(),
		}, "raw_text", "line_items")
	case constants.IDCard:
		return objectSchema(map[string]any{
			"id_type": map[string]any{
				"type": "string",
				"enum": []string{"passport", "driving_license", "aadhaar", "pan_card", "unknown"},
			},
			"full_name":     stringProp(),
			"id_number":     stringProp(),
			"date_of_birth": stringProp(),
			"issue_date":    stringProp(),
			"expiry_date":   stringProp(),
			"address":       stringProp(),
			"raw_text":      stringProp(),
		}, "raw_text", "id_type")
	default:
		// Notes doubles as the schema for fallback extractions.
		return objectSchema(map[string]any{
			"title":      stringProp(),
			"summary":    stringProp(),
			"key_points": arrayOf(stringProp()),
			"raw_text":   stringProp(),
		}, "raw_text", "key_points")
	}
}

// Validate checks a serialized record against the variant's schema.
func Validate(dt constants.DocType, data []byte) error {
	b, err := json.Marshal(ForType(dt))
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	s, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := s.Validate(v); err != nil {
		return fmt.Errorf("record does not match schema: %w", err)
	}
	return nil
}

func stringProp() map[string]any {
	return map[string]any{"type": "string"}
}

func numberProp() map[string]any {
	return map[string]any{"type": "number"}
}

func arrayOf(items map[string]any) map[string]any {
	return map[string]any{"type": "array", "items": items}
}

func lineItemSchema(amount map[string]any) map[string]any {
	return objectSchema(map[string]any{
		"description": stringProp(),
		"quantity":    amount,
		"unit_price":  amount,
		"total_price": amount,
	})
}

func objectSchema(props map[string]any, required ...string) map[string]any {
	s := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}
