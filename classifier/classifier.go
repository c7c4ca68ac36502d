// Package classifier wraps the external zero-shot classification models.
// The models are black boxes: each backend sends the text and candidate
// labels to a hosted model and maps its answer to a ranked result.
package classifier

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"analyse-juridique/config"
	"analyse-juridique/models"

	"go.uber.org/zap"
)

// Classifier ranks candidate labels by how well they describe a text
type Classifier interface {
	// Name identifies the backend in logs and API responses
	Name() string

	// Classify returns one score per label, sorted descending
	Classify(ctx context.Context, text string, labels []string) (*models.ClassificationResult, error)
}

// ErrMalformedResponse is returned when a model answer cannot be mapped to scores
var ErrMalformedResponse = errors.New("malformed classifier response")

// APIError is returned when a model endpoint answers with a non-success status
type APIError struct {
	Backend    string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s API error: %d", e.Backend, e.StatusCode)
	}
	return fmt.Sprintf("%s API error: %d - %s", e.Backend, e.StatusCode, e.Message)
}

// Temporary reports whether the request may succeed if sent again.
// Hosted models answer 503 while they are loading.
func (e *APIError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

// New creates the classifier selected by the configuration
func New(ctx context.Context, cfg config.ClassifierConfig, logger *zap.Logger) (Classifier, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Backend {
	case config.BackendHuggingFace:
		return NewHuggingFaceClassifier(cfg, logger), nil
	case config.BackendGemini:
		return NewGeminiClassifier(ctx, cfg, logger)
	case config.BackendOpenAI:
		return NewOpenAIClassifier(cfg, logger), nil
	default:
		return nil, fmt.Errorf("unknown classifier backend: %s", cfg.Backend)
	}
}

func attemptsOrDefault(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

func timeoutOrDefault(d time.Duration) time.Duration {
	if d <= 0 {
		return 120 * time.Second
	}
	return d
}
