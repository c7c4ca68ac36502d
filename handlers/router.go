package handlers

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter wires the routes of the analysis page
func NewRouter(analysisHandler *AnalysisHandler, fileHandler *FileHandler, tmpl *template.Template, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(logger))
	r.SetHTMLTemplate(tmpl)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	r.GET("/", analysisHandler.Index)
	r.POST("/analyse", analysisHandler.Analyze)

	api := r.Group("/api")
	{
		api.POST("/classify", analysisHandler.Classify)
		api.POST("/classify/file", fileHandler.ClassifyFile)
	}

	return r
}
