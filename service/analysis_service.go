package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"analyse-juridique/classifier"
	"analyse-juridique/models"

	"go.uber.org/zap"
)

var (
	ErrEmptyText             = errors.New("judgment text is empty")
	ErrEmptyLabels           = errors.New("label list is empty")
	ErrMalformedLabels       = errors.New("label list contains an empty label")
	ErrClassifierUnavailable = errors.New("classifier unavailable")
)

// AnalysisService runs the zero-shot classification of a judgment
type AnalysisService struct {
	classifier classifier.Classifier
	timeout    time.Duration
	logger     *zap.Logger
}

// AnalysisServiceOption is a functional option for AnalysisService
type AnalysisServiceOption func(*AnalysisService)

// WithClassifier sets the classifier backend
func WithClassifier(c classifier.Classifier) AnalysisServiceOption {
	return func(s *AnalysisService) {
		s.classifier = c
	}
}

// WithTimeout bounds each classification call
func WithTimeout(d time.Duration) AnalysisServiceOption {
	return func(s *AnalysisService) {
		s.timeout = d
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) AnalysisServiceOption {
	return func(s *AnalysisService) {
		s.logger = logger
	}
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(opts ...AnalysisServiceOption) *AnalysisService {
	s := &AnalysisService{}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s
}

// AnalyzeRequest represents a request to classify a judgment
type AnalyzeRequest struct {
	Text      string
	RawLabels string
}

// AnalyzeResult represents the result of classifying a judgment
type AnalyzeResult struct {
	Labels models.LabelSet
	Result *models.ClassificationResult
}

// Analyze validates the inputs, splits the labels and calls the classifier.
// Input errors are returned before any call is made.
func (s *AnalysisService) Analyze(ctx context.Context, req AnalyzeRequest) (*AnalyzeResult, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, ErrEmptyText
	}
	if strings.TrimSpace(req.RawLabels) == "" {
		return nil, ErrEmptyLabels
	}

	labels := SplitLabels(req.RawLabels)
	if positions := labels.EmptyPositions(); len(positions) > 0 {
		return nil, fmt.Errorf("%w at position %s", ErrMalformedLabels, joinPositions(positions))
	}

	if s.classifier == nil {
		return nil, errors.New("classifier not set")
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	result, err := s.classifier.Classify(ctx, req.Text, labels)
	if err != nil {
		s.logger.Error("Classification failed",
			zap.String("backend", s.classifier.Name()),
			zap.Int("labels", len(labels)),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrClassifierUnavailable, err)
	}
	if result == nil || len(result.Scores) == 0 {
		return nil, fmt.Errorf("%w: classifier returned no scores", ErrClassifierUnavailable)
	}

	dominant, _ := result.Dominant()
	s.logger.Info("Classification completed",
		zap.String("id", result.ID.String()),
		zap.String("backend", result.Backend),
		zap.Int("labels", len(labels)),
		zap.Int("text_length", len(req.Text)),
		zap.String("dominant", dominant.Label),
		zap.Float64("score", dominant.Score),
		zap.Duration("elapsed", time.Since(start)))

	return &AnalyzeResult{
		Labels: labels,
		Result: result,
	}, nil
}

func joinPositions(positions []int) string {
	parts := make([]string, len(positions))
	for i, p := range positions {
		parts[i] = fmt.Sprintf("%d", p)
	}
	return strings.Join(parts, ", ")
}
