package importer

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// FieldMapping declares, per logical customer field, the ordered candidate
// column names to read from a spreadsheet row. The first candidate that is
// present and non-empty wins; when none match the field is an empty string.
type FieldMapping struct {
	Code      []string `json:"code"`
	TaxID     []string `json:"tax_id"`
	Recipient []string `json:"recipient"`
	Address   []string `json:"address"`
	Notes     []string `json:"notes"`
}

// DefaultMapping recognizes both the localized and the canonical column names
// of the customer spreadsheets in circulation. When no notes column exists, a
// phone column is repurposed as notes.
func DefaultMapping() FieldMapping {
	return FieldMapping{
		Code:      []string{"客戶代碼", "customer_code"},
		TaxID:     []string{"統編", "tax_id"},
		Recipient: []string{"收貨人", "recipient"},
		Address:   []string{"地址", "address"},
		Notes:     []string{"備註", "notes", "電話", "phone"},
	}
}

const mappingSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "code":      { "$ref": "#/$defs/chain" },
    "tax_id":    { "$ref": "#/$defs/chain" },
    "recipient": { "$ref": "#/$defs/chain" },
    "address":   { "$ref": "#/$defs/chain" },
    "notes":     { "$ref": "#/$defs/chain" }
  },
  "required": ["code", "tax_id", "recipient", "address", "notes"],
  "additionalProperties": false,
  "$defs": {
    "chain": {
      "type": "array",
      "minItems": 1,
      "items": { "type": "string", "minLength": 1 }
    }
  }
}`

var compiledMappingSchema = jsonschema.MustCompileString("mapping.schema.json", mappingSchema)

// LoadMapping reads a JSON field-mapping document, validating it against the
// embedded schema before use so a bad config fails at startup rather than
// mid-import.
func LoadMapping(r io.Reader) (FieldMapping, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return FieldMapping{}, fmt.Errorf("read mapping: %w", err)
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return FieldMapping{}, fmt.Errorf("parse mapping: %w", err)
	}
	if err := compiledMappingSchema.Validate(doc); err != nil {
		return FieldMapping{}, fmt.Errorf("invalid mapping: %w", err)
	}

	var m FieldMapping
	if err := json.Unmarshal(raw, &m); err != nil {
		return FieldMapping{}, fmt.Errorf("decode mapping: %w", err)
	}
	return m, nil
}

func pick(row RowMap, candidates []string) string {
	for _, key := range candidates {
		if v, ok := row[key]; ok {
			if v = strings.TrimSpace(v); v != "" {
				return v
			}
		}
	}
	return ""
}
