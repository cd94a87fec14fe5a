// Package apihandlers implements the HTTP API surface over the
// classification pipeline.
package apihandlers

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"docsort/internal/app"
	"docsort/internal/fileingest"
)

// APIHandler holds the application the handlers operate on.
type APIHandler struct {
	app *app.App
}

// NewAPIHandler creates the handler set for an application instance.
func NewAPIHandler(a *app.App) *APIHandler {
	return &APIHandler{app: a}
}

// ClassifyResponse is the JSON reply for a classified upload.
type ClassifyResponse struct {
	Filename   string  `json:"filename"`
	Category   string  `json:"category"`
	Identifier *string `json:"identifier"`
}

// ClassifyHandler accepts a multipart upload under "file", classifies it,
// and returns the category and any extracted identifier. The upload is
// processed from a temp file and not placed into the category tree.
func (h *APIHandler) ClassifyHandler(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart field 'file' is required"})
		return
	}

	tmpDir, err := os.MkdirTemp("", "docsort-classify-*")
	if err != nil {
		log.Errorf("create temp dir for upload: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to stage upload"})
		return
	}
	defer os.RemoveAll(tmpDir)

	name := fileingest.NormalizeFilename(filepath.Base(fileHeader.Filename))
	tmpPath := filepath.Join(tmpDir, name)
	if err := c.SaveUploadedFile(fileHeader, tmpPath); err != nil {
		log.Errorf("save upload %s: %v", name, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to stage upload"})
		return
	}

	category, id, err := h.app.DocumentService.ProcessDocument(c.Request.Context(), tmpPath)
	if err != nil {
		log.Warnf("classify %s: %v", name, err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	resp := ClassifyResponse{Filename: name, Category: string(category)}
	if id != nil {
		resp.Identifier = &id.Value
	}
	c.JSON(http.StatusOK, resp)
}

// ListRunsHandler returns recent batch runs from history.
func (h *APIHandler) ListRunsHandler(c *gin.Context) {
	if h.app.History == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "run history is disabled"})
		return
	}
	runs, err := h.app.History.ListRuns(c.Request.Context(), 20)
	if err != nil {
		log.Errorf("list runs: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load run history"})
		return
	}
	c.JSON(http.StatusOK, runs)
}
