package v1

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

type UploadResponse struct {
	SessionID  string `json:"session_id"`
	Source     string `json:"source"`
	ChunkCount int    `json:"chunk_count"`
	Reused     bool   `json:"reused"`
}

// UploadDocument godoc
// @Summary Index a document and open a question session over it
// @Tags documents
// @Accept multipart/form-data
// @Param file formData file true "Document file"
// @Produce json
// @Success 201 {object} UploadResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /documents [post]
func (h *Handler) UploadDocument(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		sendError(c, http.StatusBadRequest, fmt.Errorf("file upload required: %w", err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		sendError(c, http.StatusInternalServerError, fmt.Errorf("failed to read file: %w", err))
		return
	}

	sess, reused, err := h.qaService.UploadDocument(c.Request.Context(), header.Filename, data)
	if err != nil {
		sendError(c, http.StatusInternalServerError, err)
		return
	}

	status := http.StatusCreated
	if reused {
		status = http.StatusOK
	}
	sendJSON(c, status, UploadResponse{
		SessionID:  sess.ID,
		Source:     sess.Index.Source,
		ChunkCount: sess.Index.ChunkCount,
		Reused:     reused,
	})
}

// CloseSession godoc
// @Summary Close a session and drop its vector index
// @Tags documents
// @Param sessionId path string true "Session ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /documents/{sessionId} [delete]
func (h *Handler) CloseSession(c *gin.Context) {
	if err := h.qaService.CloseSession(c.Request.Context(), c.Param("sessionId")); err != nil {
		sendError(c, http.StatusInternalServerError, err)
		return
	}
	c.Status(http.StatusNoContent)
}
