package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fitcoach/app"
	"fitcoach/domain/core"
	"fitcoach/internal/logging"
	"fitcoach/internal/progress"
	"fitcoach/models"
	"fitcoach/ports"
)

// ProgressHandler handles weigh-in tracking and goal projection
type ProgressHandler struct {
	service  *app.AssessmentService
	weighIns ports.WeighInRepository
	log      *logging.Logger
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(service *app.AssessmentService, weighIns ports.WeighInRepository, log *logging.Logger) *ProgressHandler {
	return &ProgressHandler{service: service, weighIns: weighIns, log: log}
}

// WeighInRequest is one progress check-in submission.
type WeighInRequest struct {
	WeightKG   float64    `json:"weight_kg"`
	RecordedAt *time.Time `json:"recorded_at,omitempty"`
}

// AddWeighIn records a check-in against a stored assessment
func (h *ProgressHandler) AddWeighIn(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid assessment ID"})
		return
	}

	var req WeighInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.WeightKG <= 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "weight_kg must be positive"})
		return
	}

	// The assessment must exist before check-ins attach to it.
	if _, err := h.service.GetAssessment(c.Request.Context(), id); err != nil {
		h.renderError(c, err)
		return
	}

	recordedAt := time.Now().UTC()
	if req.RecordedAt != nil {
		recordedAt = req.RecordedAt.UTC()
	}

	w := &models.WeighIn{
		ID:           core.NewUUID(),
		AssessmentID: id,
		WeightKG:     req.WeightKG,
		RecordedAt:   recordedAt,
	}
	if err := h.weighIns.Add(c.Request.Context(), w); err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, w)
}

// ListWeighIns returns all check-ins for an assessment, oldest first
func (h *ProgressHandler) ListWeighIns(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid assessment ID"})
		return
	}

	list, err := h.weighIns.ListByAssessment(c.Request.Context(), id)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"weigh_ins": list})
}

// Projection fits the recorded trend and projects goal completion
func (h *ProgressHandler) Projection(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid assessment ID"})
		return
	}

	a, err := h.service.GetAssessment(c.Request.Context(), id)
	if err != nil {
		h.renderError(c, err)
		return
	}

	list, err := h.weighIns.ListByAssessment(c.Request.Context(), id)
	if err != nil {
		h.renderError(c, err)
		return
	}

	checkIns := make([]progress.CheckIn, len(list))
	for i, w := range list {
		checkIns[i] = progress.CheckIn{RecordedAt: w.RecordedAt, WeightKG: w.WeightKG}
	}

	summary, err := progress.Summarize(checkIns)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	projection, err := progress.Project(checkIns, a.Quiz.TargetWeightKG)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"summary":    summary,
		"projection": projection,
	})
}

func (h *ProgressHandler) renderError(c *gin.Context, err error) {
	switch {
	case core.IsNotFoundError(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case core.IsValidationError(err):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		h.log.Errorw("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
