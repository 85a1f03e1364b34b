package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/creolweb/jobintake/internal/domain"
	"github.com/creolweb/jobintake/internal/service"
)

// JobHandler exposes the moderation surface: listing, inspecting,
// publishing, and deleting job records.
type JobHandler struct {
	submissions *service.SubmissionService
	sweeper     *service.Sweeper
}

// NewJobHandler creates a new job handler.
// Parameters:
//   - submissions: record lifecycle service.
//   - sweeper: retention sweeper, used by the manual sweep trigger.
// Returns:
//   - *JobHandler: initialized handler.
func NewJobHandler(submissions *service.SubmissionService, sweeper *service.Sweeper) *JobHandler {
	return &JobHandler{
		submissions: submissions,
		sweeper:     sweeper,
	}
}

// List handles GET /api/v1/jobs?status=pending|published&category=<id>.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *JobHandler) List(c *gin.Context) {
	status := domain.JobStatus(c.DefaultQuery("status", string(domain.JobStatusPending)))
	if status != domain.JobStatusPending && status != domain.JobStatusPublished {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status filter"})
		return
	}

	recs, err := h.submissions.ListRecords(c.Request.Context(), status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list records: " + err.Error()})
		return
	}

	if categoryID := c.Query("category"); categoryID != "" {
		filtered := make([]domain.JobRecord, 0, len(recs))
		for _, rec := range recs {
			if rec.CategoryID == categoryID {
				filtered = append(filtered, rec)
			}
		}
		recs = filtered
	}

	c.JSON(http.StatusOK, gin.H{"jobs": recs, "count": len(recs)})
}

// Get handles GET /api/v1/jobs/:id, returning the record with its
// metadata map.
func (h *JobHandler) Get(c *gin.Context) {
	rec, meta, err := h.submissions.GetRecord(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load record: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"job": rec, "metadata": meta})
}

// Publish handles POST /api/v1/jobs/:id/publish. This is the
// moderation transition; only published records are eligible for
// retention expiry.
func (h *JobHandler) Publish(c *gin.Context) {
	err := h.submissions.Publish(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to publish record: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": string(domain.JobStatusPublished)})
}

// Delete handles DELETE /api/v1/jobs/:id (hard delete, record plus
// metadata).
func (h *JobHandler) Delete(c *gin.Context) {
	if err := h.submissions.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete record: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// Stats handles GET /api/v1/stats.
func (h *JobHandler) Stats(c *gin.Context) {
	stats, err := h.submissions.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Categories handles GET /api/v1/categories.
func (h *JobHandler) Categories(c *gin.Context) {
	cats, err := h.submissions.Categories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list categories: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": cats})
}

// Sweep handles POST /api/v1/sweep, triggering one retention pass
// outside the scheduled cadence.
func (h *JobHandler) Sweep(c *gin.Context) {
	stats := h.sweeper.Sweep(c.Request.Context())
	c.JSON(http.StatusOK, stats)
}
