package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hydrorag/src/core/evaluation"
)

// RunQuality godoc
// @Summary Run the answer quality evaluation for a session
// @Tags evaluations
// @Param sessionId path string true "Session ID"
// @Produce json
// @Success 200 {object} evaluation.QualityRun
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /evaluations/{sessionId}/quality [post]
func (h *Handler) RunQuality(c *gin.Context) {
	run, err := h.coordinator.RunQuality(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		sendError(c, http.StatusInternalServerError, err)
		return
	}
	sendJSON(c, http.StatusOK, run)
}

// RunRisk godoc
// @Summary Run the risk probes for a session
// @Tags evaluations
// @Param sessionId path string true "Session ID"
// @Produce json
// @Success 200 {object} evaluation.RiskReport
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /evaluations/{sessionId}/risk [post]
func (h *Handler) RunRisk(c *gin.Context) {
	report, err := h.coordinator.RunRisk(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		sendError(c, http.StatusInternalServerError, err)
		return
	}
	sendJSON(c, http.StatusOK, report)
}

// RunComprehensive godoc
// @Summary Run both evaluation engines and report system health
// @Tags evaluations
// @Param sessionId path string true "Session ID"
// @Produce json
// @Success 200 {object} evaluation.Report
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /evaluations/{sessionId}/comprehensive [post]
func (h *Handler) RunComprehensive(c *gin.Context) {
	report, err := h.coordinator.RunComprehensive(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		sendError(c, http.StatusInternalServerError, err)
		return
	}
	sendJSON(c, http.StatusOK, report)
}

type DatasetResponse struct {
	Questions  []evaluation.Question `json:"questions"`
	Statistics evaluation.Statistics `json:"statistics"`
}

// GetDataset godoc
// @Summary Inspect the built-in evaluation question catalog
// @Tags evaluations
// @Param search query string false "Filter questions by term"
// @Produce json
// @Success 200 {object} DatasetResponse
// @Router /evaluations/dataset [get]
func (h *Handler) GetDataset(c *gin.Context) {
	questions := evaluation.Questions()
	if term := strings.TrimSpace(c.Query("search")); term != "" {
		questions = evaluation.SearchQuestions(term)
	}

	sendJSON(c, http.StatusOK, DatasetResponse{
		Questions:  questions,
		Statistics: evaluation.DatasetStatistics(),
	})
}
