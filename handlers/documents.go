package handlers

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"glamsalon/services/retrieval"
	"glamsalon/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DocumentHandler ingests business documents into the retrieval index.
type DocumentHandler struct {
	retrieval *retrieval.RetrievalService
}

func NewDocumentHandler(svc *retrieval.RetrievalService) *DocumentHandler {
	return &DocumentHandler{retrieval: svc}
}

// UploadDocuments accepts multipart text/markdown files, chunks and indexes
// their contents, and persists the updated index.
func (h *DocumentHandler) UploadDocuments(c *gin.Context) {
	logger := utils.GetLogger()

	form, err := c.MultipartForm()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid upload", err.Error())
		return
	}
	files := form.File["documents"]
	if len(files) == 0 {
		utils.JSONError(c, http.StatusBadRequest, "Invalid upload", "no documents provided")
		return
	}

	totalChunks := 0
	for _, fh := range files {
		ext := strings.ToLower(filepath.Ext(fh.Filename))
		if ext != ".txt" && ext != ".md" {
			utils.JSONError(c, http.StatusBadRequest, "Unsupported document type",
				fh.Filename+" (only .txt and .md are accepted)")
			return
		}

		f, err := fh.Open()
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "Failed to read document", err.Error())
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "Failed to read document", err.Error())
			return
		}

		chunks, err := h.retrieval.IngestDocument(c.Request.Context(), string(data))
		if err != nil {
			logger.Error("document ingestion failed", zap.String("file", fh.Filename), zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to ingest document", err.Error())
			return
		}
		totalChunks += chunks
	}

	c.JSON(http.StatusOK, gin.H{
		"documents": len(files),
		"chunks":    totalChunks,
	})
}
