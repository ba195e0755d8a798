// Package api wires the HTTP surface: the upload and query endpoints and
// the middleware in front of them.
package api

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"tradebot/internal/apperr"
	"tradebot/internal/models"
	"tradebot/pkg/logger"
)

// uploadMessage is returned by POST /upload on success, including the
// empty-upload case.
const uploadMessage = "Files successfully processed and stored."

// Overall deadlines per request. Individual external calls carry their own
// shorter timeouts underneath.
const (
	uploadTimeout = 5 * time.Minute
	queryTimeout  = 2 * time.Minute
)

// Ingestor feeds uploaded files into the document index.
type Ingestor interface {
	Run(ctx context.Context, paths []string) error
}

// Answerer produces the answer to one question.
type Answerer interface {
	Run(ctx context.Context, question string) (string, error)
}

// Handler serves the HTTP endpoints.
type Handler struct {
	ingestor Ingestor
	answerer Answerer
	log      *logger.Logger
}

// NewHandler creates the Handler over the ingestion and agent entry points.
func NewHandler(ingestor Ingestor, answerer Answerer, log *logger.Logger) *Handler {
	return &Handler{ingestor: ingestor, answerer: answerer, log: log}
}

// Upload handles POST /upload. It accepts a multipart form whose "files"
// field carries zero or more documents, saves each to a temporary file so
// the loaders can work from a path, and runs the ingestion pipeline over
// them. An empty upload succeeds without touching the index.
func (h *Handler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid multipart form: " + err.Error()})
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusOK, models.UploadResponse{Message: uploadMessage})
		return
	}

	paths := make([]string, 0, len(files))
	defer func() {
		for _, p := range paths {
			os.Remove(p)
		}
	}()

	for _, fh := range files {
		path, err := saveTemp(fh)
		if err != nil {
			h.log.WithError(err).Error("Failed to save uploaded file")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save uploaded file"})
			return
		}
		paths = append(paths, path)
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), uploadTimeout)
	defer cancel()
	if err := h.ingestor.Run(ctx, paths); err != nil {
		h.fail(c, err, "Document ingestion failed")
		return
	}

	c.JSON(http.StatusOK, models.UploadResponse{Message: uploadMessage})
}

// Query handles POST /query. The body must carry a non-empty question;
// the reply is the agent's final text answer.
func (h *Handler) Query(c *gin.Context) {
	var req models.QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "question is required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), queryTimeout)
	defer cancel()

	answer, err := h.answerer.Run(ctx, req.Question)
	if err != nil {
		h.fail(c, err, "Query failed")
		return
	}

	c.JSON(http.StatusOK, models.AnswerResponse{Answer: answer})
}

// fail logs the full error and replies with the client-safe message and
// the status matching its kind.
func (h *Handler) fail(c *gin.Context, err error, logMsg string) {
	h.log.WithError(err).Error(logMsg)

	status := http.StatusInternalServerError
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		status = http.StatusBadRequest
	case apperr.KindUpstream:
		status = http.StatusBadGateway
	}
	c.JSON(status, gin.H{"error": apperr.Public(err)})
}

// saveTemp writes the uploaded file to a temporary path that keeps the
// original extension, so the loader dispatch can recognize the format.
func saveTemp(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.CreateTemp("", "upload-*"+filepath.Ext(fh.Filename))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", err
	}
	return dst.Name(), nil
}
