package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"analyse-juridique/service"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FileHandler classifies judgments uploaded as text files
type FileHandler struct {
	analysisService *service.AnalysisService
	logger          *zap.Logger
	maxFileSize     int64
}

// NewFileHandler creates a new file handler
func NewFileHandler(analysisService *service.AnalysisService, logger *zap.Logger) *FileHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileHandler{
		analysisService: analysisService,
		logger:          logger,
		maxFileSize:     1024 * 1024, // 1MB
	}
}

// ClassifyFile handles POST /api/classify/file
func (h *FileHandler) ClassifyFile(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_FILE",
				"message": "File is required",
			},
		})
		return
	}

	// Validate file size
	if fileHeader.Size > h.maxFileSize {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FILE_TOO_LARGE",
				"message": fmt.Sprintf("File size exceeds maximum of %d bytes", h.maxFileSize),
			},
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FILE_OPEN_ERROR",
				"message": err.Error(),
			},
		})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxFileSize))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FILE_READ_ERROR",
				"message": err.Error(),
			},
		})
		return
	}

	// The declared Content-Type is not trusted, sniff the bytes
	mt := mimetype.Detect(data)
	if !isPlainText(mt) || !utf8.Valid(data) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_FILE",
				"message": fmt.Sprintf("Expected a UTF-8 text file, got %s", mt.String()),
			},
		})
		return
	}

	labels := c.PostForm("labels")
	if strings.TrimSpace(labels) == "" {
		labels = service.DefaultLabels
	}

	h.logger.Debug("Classifying uploaded judgment",
		zap.String("filename", fileHeader.Filename),
		zap.Int("size", len(data)))

	result, err := h.analysisService.Analyze(c.Request.Context(), service.AnalyzeRequest{
		Text:      string(data),
		RawLabels: labels,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondClassification(c, result)
}

// isPlainText accepts text/plain and its children, such as text/csv for
// judgments whose lines happen to carry the same number of commas
func isPlainText(mt *mimetype.MIME) bool {
	for m := mt; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}
