// Package mapper resolves raw form submissions against the live form
// schema. Payload keys are unstable numeric identifiers; the schema is
// the only source of meaning, so extra or malicious payload keys are
// ignored by construction.
package mapper

import (
	"strings"

	"github.com/creolweb/jobintake/internal/domain"
)

// Map builds a FieldMap from a submission payload and its form schema.
// Parameters:
//   - payload: raw field-ID-indexed submission values.
//   - schema: ordered field descriptors of the live form definition.
// Returns:
//   - domain.FieldMap: stable-name-indexed values; fields missing from
//     the payload map to a zero value, never an error.
func Map(payload domain.SubmissionPayload, schema domain.FormSchema) domain.FieldMap {
	out := make(domain.FieldMap, len(schema))

	for _, field := range schema {
		name := strings.TrimSpace(field.InputName)
		if name == "" {
			continue
		}

		raw := payload[field.ID]

		// Later-declared fields sharing an input name win.
		if field.Type == domain.FieldTypeMultiSelect {
			out[name] = domain.MappedValue{Selected: selectedOptions(raw)}
		} else {
			out[name] = domain.MappedValue{Text: raw.Scalar}
		}
	}

	return out
}

// selectedOptions keeps the ordered subset of option IDs whose raw
// value is truthy. Option order follows the payload, which mirrors the
// form's declaration order.
func selectedOptions(v domain.FieldValue) []string {
	var selected []string
	for _, opt := range v.Options {
		if Truthy(opt.Value) {
			selected = append(selected, opt.ID)
		}
	}
	return selected
}

// falsyValues is the enumerated accepted-false set. Everything outside
// it, including "yes" in any case and checkbox markers, counts as true.
var falsyValues = map[string]struct{}{
	"":      {},
	"no":    {},
	"false": {},
	"0":     {},
}

// Truthy normalizes the heterogeneous boolean encodings forms produce:
// checkbox presence, "yes"/"no" strings, "1"/"0", "true"/"false".
// Parameters:
//   - raw: raw field value.
// Returns:
//   - bool: false only for members of the accepted-false set.
func Truthy(raw string) bool {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	_, falsy := falsyValues[normalized]
	return !falsy
}
