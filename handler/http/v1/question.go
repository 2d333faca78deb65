package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type AskRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Question  string `json:"question"`
}

// AskQuestion godoc
// @Summary Ask a question against a session's document
// @Tags questions
// @Accept json
// @Param request body AskRequest true "Question request"
// @Produce json
// @Success 200 {object} workflow.State
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /questions [post]
func (h *Handler) AskQuestion(c *gin.Context) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, err)
		return
	}

	state, err := h.qaService.Ask(c.Request.Context(), req.SessionID, req.Question)
	if err != nil {
		sendError(c, http.StatusInternalServerError, err)
		return
	}

	sendJSON(c, http.StatusOK, state)
}
