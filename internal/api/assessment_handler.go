package api

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fitcoach/app"
	"fitcoach/domain/core"
	"fitcoach/domain/quiz"
	"fitcoach/internal/logging"
	"fitcoach/models"
)

// AssessmentHandler handles assessment requests
type AssessmentHandler struct {
	service  *app.AssessmentService
	workout  *app.WorkoutService
	exporter ExcelExporter
	log      *logging.Logger
}

// ExcelExporter streams an assessment workbook. Satisfied by the excel
// adapter; an interface here keeps the handler testable without excelize.
type ExcelExporter interface {
	WriteTo(w io.Writer, a *models.Assessment) error
}

// NewAssessmentHandler creates a new assessment handler
func NewAssessmentHandler(service *app.AssessmentService, workout *app.WorkoutService, exporter ExcelExporter, log *logging.Logger) *AssessmentHandler {
	return &AssessmentHandler{service: service, workout: workout, exporter: exporter, log: log}
}

// CreateRequest is the assessment submission payload.
type CreateRequest struct {
	Quiz           quiz.Data `json:"quiz"`
	IncludeWorkout bool      `json:"include_workout"`
}

// CreateResponse pairs the stored assessment with the optional workout draft.
type CreateResponse struct {
	Assessment *models.Assessment `json:"assessment"`
	Workout    *app.WorkoutResult `json:"workout,omitempty"`
}

// Create runs a full assessment for one quiz submission
func (h *AssessmentHandler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if req.IncludeWorkout && h.workout != nil {
		a, workout, err := h.service.RunWithWorkout(c.Request.Context(), req.Quiz)
		if err != nil {
			h.renderError(c, err)
			return
		}
		c.JSON(http.StatusCreated, CreateResponse{Assessment: a, Workout: workout})
		return
	}

	a, err := h.service.Run(c.Request.Context(), req.Quiz)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, CreateResponse{Assessment: a})
}

// Figures runs the deterministic core only, with no model call
func (h *AssessmentHandler) Figures(c *gin.Context) {
	var q quiz.Data
	if err := c.ShouldBindJSON(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	numbers, timeline, err := h.service.ComputeFigures(q)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"numbers": numbers, "timeline": timeline})
}

// Get returns a stored assessment by ID
func (h *AssessmentHandler) Get(c *gin.Context) {
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
	c.JSON(http.StatusOK, a)
}

// ListRecent returns the newest assessments
func (h *AssessmentHandler) ListRecent(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		if _, err := fmt.Sscanf(raw, "%d", &limit); err != nil || limit <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
	}

	list, err := h.service.ListRecent(c.Request.Context(), limit)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"assessments": list})
}

// AssignRequest asks for a trainer draw outside a full assessment run.
type AssignRequest struct {
	AssessmentID string    `json:"assessment_id"`
	Goal         quiz.Goal `json:"goal"`
}

// AssignTrainer performs the weighted trainer draw for a goal
func (h *AssessmentHandler) AssignTrainer(c *gin.Context) {
	if h.workout == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "trainer assignment is not enabled"})
		return
	}

	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	assigned, err := h.workout.AssignTrainer(c.Request.Context(), req.AssessmentID, req.Goal)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trainer": assigned})
}

// Export streams a stored assessment as an xlsx workbook
func (h *AssessmentHandler) Export(c *gin.Context) {
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

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="assessment-%s.xlsx"`, id))
	if err := h.exporter.WriteTo(c.Writer, a); err != nil {
		h.log.Errorw("streaming workbook failed", "assessment_id", id, "error", err)
	}
}

func (h *AssessmentHandler) renderError(c *gin.Context, err error) {
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
