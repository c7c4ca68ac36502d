package handlers

import (
	"errors"
	"html/template"
	"math/rand/v2"
	"net/http"
	"time"

	"analyse-juridique/service"
	"analyse-juridique/view"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AnalysisHandler handles the analysis page and its JSON mirror
type AnalysisHandler struct {
	analysisService *service.AnalysisService
	logo            template.URL
	logger          *zap.Logger
	newRand         func() *rand.Rand
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(analysisService *service.AnalysisService, logo template.URL, logger *zap.Logger) *AnalysisHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalysisHandler{
		analysisService: analysisService,
		logo:            logo,
		logger:          logger,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64()))
		},
	}
}

// Index handles GET /
func (h *AnalysisHandler) Index(c *gin.Context) {
	page := view.NewPage(h.logo, service.DefaultLabels, h.newRand())
	c.HTML(http.StatusOK, view.TemplateName, page)
}

// Analyze handles POST /analyse
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	page := view.NewPage(h.logo, c.PostForm("etiquettes"), h.newRand())
	page.Text = c.PostForm("texte")

	result, err := h.analysisService.Analyze(c.Request.Context(), service.AnalyzeRequest{
		Text:      page.Text,
		RawLabels: page.Labels,
	})
	if err != nil {
		// Empty fields mean the action never ran: show the form again
		if errors.Is(err, service.ErrEmptyText) || errors.Is(err, service.ErrEmptyLabels) {
			c.HTML(http.StatusOK, view.TemplateName, page)
			return
		}
		status, _ := errorStatus(err)
		page.Error = errorMessage(err)
		c.HTML(status, view.TemplateName, page)
		return
	}

	resultView, err := view.BuildResultView(result.Result)
	if err != nil {
		page.Error = errorMessage(err)
		c.HTML(http.StatusBadGateway, view.TemplateName, page)
		return
	}
	page.Result = resultView

	c.HTML(http.StatusOK, view.TemplateName, page)
}

// ClassifyRequest represents the request body for POST /api/classify
type ClassifyRequest struct {
	Text   string `json:"text"`
	Labels string `json:"labels"` // Comma-separated, as typed in the form
}

// Classify handles POST /api/classify
func (h *AnalysisHandler) Classify(c *gin.Context) {
	var req ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	result, err := h.analysisService.Analyze(c.Request.Context(), service.AnalyzeRequest{
		Text:      req.Text,
		RawLabels: req.Labels,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondClassification(c, result)
}

// respondError writes the JSON error envelope for a failed analysis
func respondError(c *gin.Context, err error) {
	status, code := errorStatus(err)
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": err.Error(),
		},
	})
}

// respondClassification writes the JSON success envelope
func respondClassification(c *gin.Context, result *service.AnalyzeResult) {
	dominant, _ := result.Result.Dominant()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"id":       result.Result.ID,
			"backend":  result.Result.Backend,
			"model":    result.Result.Model,
			"labels":   result.Labels,
			"dominant": dominant,
			"tier":     view.TierFor(view.Percent(dominant.Score)).Name,
			"scores":   result.Result.Scores,
		},
	})
}

// errorStatus maps service errors to an HTTP status and error code
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrEmptyText):
		return http.StatusBadRequest, "EMPTY_TEXT"
	case errors.Is(err, service.ErrEmptyLabels):
		return http.StatusBadRequest, "EMPTY_LABELS"
	case errors.Is(err, service.ErrMalformedLabels):
		return http.StatusBadRequest, "MALFORMED_LABELS"
	case errors.Is(err, service.ErrClassifierUnavailable):
		return http.StatusBadGateway, "CLASSIFIER_UNAVAILABLE"
	default:
		return http.StatusInternalServerError, "ANALYSIS_FAILED"
	}
}

// errorMessage is the text shown in the page for a failed analysis
func errorMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrMalformedLabels):
		return "La liste des branches du droit contient une étiquette vide (virgule en trop ?) : " + err.Error()
	case errors.Is(err, service.ErrClassifierUnavailable):
		return "Le modèle de classification est indisponible, réessayez plus tard. (" + err.Error() + ")"
	default:
		return "L'analyse a échoué : " + err.Error()
	}
}
