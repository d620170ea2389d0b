package ledger

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// BuildLedgerJSONSchema returns a JSON-Schema (draft 2020-12 subset) for the
// persisted ledger file as a generic map. Used locally at load time to report
// structural drift before the lenient migration path takes over.
func BuildLedgerJSONSchema() map[string]any {
	lineItem := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"description": map[string]any{"type": "string"},
			"spec":        map[string]any{"type": "string"},
			"unit":        map[string]any{"type": "string"},
			"quantity":    map[string]any{"type": "string"},
			"unitPrice":   map[string]any{"type": "string"},
			"amount":      decimalProp(),
			"taxRate":     map[string]any{"type": "string"},
			"taxAmount":   decimalProp(),
			"lineTotal":   decimalProp(),
		},
		"required": []string{"amount", "taxAmount", "lineTotal"},
	}

	record := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"invoiceNumber":              map[string]any{"type": "string", "minLength": 1},
			"issueDate":                  map[string]any{"type": "string"},
			"buyerName":                  map[string]any{"type": "string"},
			"buyerTaxId":                 map[string]any{"type": "string"},
			"sellerName":                 map[string]any{"type": "string"},
			"sellerTaxId":                map[string]any{"type": "string"},
			"isSelfProducedAgricultural": map[string]any{"type": "boolean"},
			"remarks":                    map[string]any{"type": "string"},
			"sourceFileName":             map[string]any{"type": "string"},
			"processedTimestamp":         map[string]any{"type": "string"},
			"lineItems": map[string]any{
				"type":  "array",
				"items": lineItem,
			},
		},
		"required": []string{"invoiceNumber"},
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": record,
	}
}

// Legacy pre-lineItems records carry amounts either as numbers or as
// two-decimal strings, so both are admitted.
func decimalProp() map[string]any {
	return map[string]any{
		"anyOf": []any{
			map[string]any{"type": "number"},
			map[string]any{"type": "string", "pattern": `^-?\d+(\.\d{1,2})?$`},
		},
	}
}

// ValidateLedgerJSON validates raw ledger bytes against the ledger schema.
func ValidateLedgerJSON(data []byte) error {
	b, err := json.Marshal(BuildLedgerJSONSchema())
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("ledger.schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("ledger.schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("ledger does not match schema: %w", err)
	}
	return nil
}
