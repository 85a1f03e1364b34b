package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/creolweb/jobintake/internal/domain"
	"github.com/creolweb/jobintake/internal/logger"
	"github.com/creolweb/jobintake/internal/service"
)

// SubmissionHandler is the intake channel: it receives one completed
// form instance per request and drives the submission pipeline.
type SubmissionHandler struct {
	submissions *service.SubmissionService
	formID      string
}

// NewSubmissionHandler creates a new submission handler.
// Parameters:
//   - submissions: submission pipeline service.
//   - formID: only submissions from this form are processed; empty
//     accepts all forms.
// Returns:
//   - *SubmissionHandler: initialized handler.
func NewSubmissionHandler(submissions *service.SubmissionService, formID string) *SubmissionHandler {
	return &SubmissionHandler{
		submissions: submissions,
		formID:      formID,
	}
}

type fieldOptionRequest struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

type fieldValueRequest struct {
	Value   string               `json:"value"`
	Options []fieldOptionRequest `json:"options"`
}

type fieldDescriptorRequest struct {
	ID        string `json:"id" binding:"required"`
	InputName string `json:"input_name"`
	Type      string `json:"type"`
}

type submissionRequest struct {
	FormID string                       `json:"form_id"`
	Schema []fieldDescriptorRequest     `json:"schema" binding:"required"`
	Entry  map[string]fieldValueRequest `json:"entry" binding:"required"`
}

// Create handles POST /api/v1/submissions. The intake event is
// fire-and-forget: once the payload parses, the response is 202 even
// when processing fails, and failures surface only in diagnostics.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *SubmissionHandler) Create(c *gin.Context) {
	var req submissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid submission payload: " + err.Error(),
		})
		return
	}

	ctx := c.Request.Context()

	if h.formID != "" && req.FormID != h.formID {
		logger.CtxDebug(ctx, "Ignoring submission for unhandled form %q", req.FormID)
		c.JSON(http.StatusAccepted, gin.H{"status": "ignored"})
		return
	}

	payload, schema := req.toDomain()

	rec, err := h.submissions.Process(ctx, payload, schema)
	if err != nil {
		// The submitter never sees an error page for a failed
		// submission; it simply produces no listing.
		logger.CtxError(ctx, "Submission processing failed: %v", err)
		c.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status":    "accepted",
		"record_id": rec.ID,
	})
}

func (r *submissionRequest) toDomain() (domain.SubmissionPayload, domain.FormSchema) {
	payload := make(domain.SubmissionPayload, len(r.Entry))
	for id, v := range r.Entry {
		fv := domain.FieldValue{Scalar: v.Value}
		for _, opt := range v.Options {
			fv.Options = append(fv.Options, domain.FieldOption{ID: opt.ID, Value: opt.Value})
		}
		payload[id] = fv
	}

	schema := make(domain.FormSchema, 0, len(r.Schema))
	for _, f := range r.Schema {
		schema = append(schema, domain.FieldDescriptor{
			ID:        f.ID,
			InputName: f.InputName,
			Type:      f.Type,
		})
	}
	return payload, schema
}
