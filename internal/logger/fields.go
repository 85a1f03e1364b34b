package logger

// Fields is an alias for map[string]interface{} for convenience.
type Fields map[string]interface{}

// Standard tracing fields, propagated through the call chain.
const (
	// FieldRequestID is the HTTP request ID (UUID)
	FieldRequestID = "request_id"

	// FieldRecordID is the persisted job record ID
	FieldRecordID = "record_id"

	// FieldSweepID identifies one retention sweep run
	FieldSweepID = "sweep_id"

	// FieldFormID is the source form identifier
	FieldFormID = "form_id"

	// FieldComponent is the component/module name
	FieldComponent = "component"
)

// Standard metric fields used for aggregation and alerting.
const (
	// FieldDurationMs is the execution duration in milliseconds
	FieldDurationMs = "duration_ms"

	// FieldStatus is the operation status
	FieldStatus = "status"

	// FieldCount is a generic count field
	FieldCount = "count"
)
