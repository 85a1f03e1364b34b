package domain

// Field types a form schema can declare. Anything other than
// FieldTypeMultiSelect is treated as a scalar.
const (
	FieldTypeText        = "text"
	FieldTypeRichText    = "richtext"
	FieldTypeURL         = "url"
	FieldTypeCheckbox    = "checkbox"
	FieldTypeMultiSelect = "multiselect"
	FieldTypeNumber      = "number"
)

// FieldOption is one selectable option of a multi-select field as it
// arrives in the payload: the option's identifier plus its raw value
// (empty when the option was not ticked).
type FieldOption struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// FieldValue is the raw value of one payload field. Scalar fields use
// Scalar; multi-select fields carry their options in declaration order.
type FieldValue struct {
	Scalar  string        `json:"value,omitempty"`
	Options []FieldOption `json:"options,omitempty"`
}

// IsZero reports whether the value is entirely empty.
func (v FieldValue) IsZero() bool {
	return v.Scalar == "" && len(v.Options) == 0
}

// SubmissionPayload is the raw form entry: field identifier to raw
// value. Identifiers are numeric/positional and unstable across form
// versions, so nothing downstream of the mapper touches them.
type SubmissionPayload map[string]FieldValue

// FieldDescriptor describes one field of the live form definition.
// InputName is the stable name the mapper resolves against; fields
// without one are unreachable.
type FieldDescriptor struct {
	ID        string `json:"id"`
	InputName string `json:"input_name"`
	Type      string `json:"type"`
}

// FormSchema is the ordered list of field descriptors delivered
// alongside each submission.
type FormSchema []FieldDescriptor

// MappedValue is a resolved field value keyed by stable input name.
// Scalar fields populate Text; multi-select fields populate Selected
// with the ordered identifiers of the ticked options.
type MappedValue struct {
	Text     string
	Selected []string
}

// FieldMap is the output of the field mapper: stable input name to
// resolved value. Duplicate input names resolve last-write-wins.
type FieldMap map[string]MappedValue

// Get returns the value for name, or a zero MappedValue when absent.
// A missing field is a mapping gap, not an error; defaults are applied
// downstream.
func (m FieldMap) Get(name string) MappedValue {
	return m[name]
}

// Stable input names used by the job submission form.
const (
	FieldTitle       = "job_title"
	FieldCompany     = "company"
	FieldLocation    = "location"
	FieldJobType     = "job_type"
	FieldDescription = "description"
	FieldApplyLink   = "apply_link"
	FieldContact     = "contact"
	FieldIsAffiliate = "is_affiliate"
	FieldDuration    = "duration"
)
