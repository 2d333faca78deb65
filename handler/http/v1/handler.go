package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hydrorag/src/core/documents"
	"hydrorag/src/core/evaluation"
	"hydrorag/src/core/qa"
	"hydrorag/src/core/workflow"
)

type Handler struct {
	qaService   *qa.Service
	coordinator *evaluation.Coordinator
	checks      map[string]HealthCheck
}

func NewHandler(qaService *qa.Service, coordinator *evaluation.Coordinator) *Handler {
	return &Handler{
		qaService:   qaService,
		coordinator: coordinator,
	}
}

// RegisterRoutes registers all v1 API routes
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	v1 := r.Group("/api/v1")

	// Document routes
	v1.POST("/documents", h.UploadDocument)
	v1.DELETE("/documents/:sessionId", h.CloseSession)

	// Question routes
	v1.POST("/questions", h.AskQuestion)

	// Evaluation routes
	v1.POST("/evaluations/:sessionId/quality", h.RunQuality)
	v1.POST("/evaluations/:sessionId/risk", h.RunRisk)
	v1.POST("/evaluations/:sessionId/comprehensive", h.RunComprehensive)
	v1.GET("/evaluations/dataset", h.GetDataset)

	// System routes
	v1.GET("/health", h.CheckHealth)
}

// Common error response structure
type ErrorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func sendError(c *gin.Context, status int, err error) {
	code := "INTERNAL_ERROR"

	var validationErr *workflow.ValidationError
	var unsupportedErr *documents.ErrUnsupportedExtension
	switch {
	case errors.Is(err, qa.ErrSessionNotFound):
		code = "SESSION_NOT_FOUND"
		status = http.StatusNotFound
	case errors.As(err, &validationErr):
		code = "INVALID_QUESTION"
		status = http.StatusBadRequest
	case errors.As(err, &unsupportedErr):
		code = "UNSUPPORTED_FILE_TYPE"
		status = http.StatusBadRequest
	}

	c.JSON(status, ErrorResponse{
		Code:    code,
		Message: err.Error(),
	})
}

func sendJSON(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}
