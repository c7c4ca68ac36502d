package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"analyse-juridique/config"
	"analyse-juridique/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const huggingFaceBaseURL = "https://router.huggingface.co/hf-inference/models"

// HuggingFaceClassifier calls a zero-shot pipeline (an NLI model such as
// facebook/bart-large-mnli) through the Hugging Face Inference API
type HuggingFaceClassifier struct {
	baseURL     string
	model       string
	token       string
	maxAttempts int
	httpClient  *http.Client
	logger      *zap.Logger
}

// NewHuggingFaceClassifier creates a new Hugging Face classifier
func NewHuggingFaceClassifier(cfg config.ClassifierConfig, logger *zap.Logger) *HuggingFaceClassifier {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = huggingFaceBaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &HuggingFaceClassifier{
		baseURL:     strings.TrimRight(baseURL, "/"),
		model:       cfg.Model,
		token:       cfg.APIKey,
		maxAttempts: attemptsOrDefault(cfg.MaxAttempts),
		httpClient:  &http.Client{Timeout: timeoutOrDefault(cfg.Timeout)},
		logger:      logger,
	}
}

// Name returns the backend name
func (c *HuggingFaceClassifier) Name() string {
	return config.BackendHuggingFace
}

type zeroShotRequest struct {
	Inputs     string             `json:"inputs"`
	Parameters zeroShotParameters `json:"parameters"`
}

type zeroShotParameters struct {
	CandidateLabels []string `json:"candidate_labels"`
	MultiLabel      bool     `json:"multi_label"`
}

// zeroShotResponse is the pipeline answer of the classic Inference API
type zeroShotResponse struct {
	Sequence string    `json:"sequence"`
	Labels   []string  `json:"labels"`
	Scores   []float64 `json:"scores"`
}

type huggingFaceError struct {
	Error         string  `json:"error"`
	EstimatedTime float64 `json:"estimated_time,omitempty"`
}

// Classify sends the text and labels to the hosted pipeline
func (c *HuggingFaceClassifier) Classify(ctx context.Context, text string, labels []string) (*models.ClassificationResult, error) {
	jsonData, err := json.Marshal(zeroShotRequest{
		Inputs: text,
		Parameters: zeroShotParameters{
			CandidateLabels: labels,
			MultiLabel:      false,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	var body []byte
	err = withRetry(ctx, c.maxAttempts, c.Name(), c.logger, func() error {
		body, err = c.post(ctx, jsonData)
		return err
	})
	if err != nil {
		return nil, err
	}

	scores, err := parseZeroShotResponse(body)
	if err != nil {
		return nil, err
	}
	if len(scores) != len(labels) {
		return nil, fmt.Errorf("%w: expected %d scores, got %d", ErrMalformedResponse, len(labels), len(scores))
	}

	return &models.ClassificationResult{
		ID:       uuid.New(),
		Sequence: text,
		Backend:  c.Name(),
		Model:    c.model,
		Scores:   scores,
	}, nil
}

func (c *HuggingFaceClassifier) post(ctx context.Context, jsonData []byte) ([]byte, error) {
	url := c.baseURL + "/" + c.model
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{Backend: c.Name(), StatusCode: resp.StatusCode}
		var hfErr huggingFaceError
		if json.Unmarshal(body, &hfErr) == nil && hfErr.Error != "" {
			apiErr.Message = hfErr.Error
		} else {
			apiErr.Message = strings.TrimSpace(string(body))
		}
		return nil, apiErr
	}

	return body, nil
}

// parseZeroShotResponse accepts both the pipeline object
// {"sequence","labels","scores"} and the router's [{"label","score"}] list.
// Order is kept as returned: the pipeline already sorts descending.
func parseZeroShotResponse(body []byte) ([]models.LabelScore, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrMalformedResponse)
	}

	if trimmed[0] == '[' {
		var list []models.LabelScore
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		if len(list) == 0 {
			return nil, fmt.Errorf("%w: no scores", ErrMalformedResponse)
		}
		return list, nil
	}

	var resp zeroShotResponse
	if err := json.Unmarshal(trimmed, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(resp.Labels) == 0 || len(resp.Labels) != len(resp.Scores) {
		return nil, fmt.Errorf("%w: %d labels for %d scores", ErrMalformedResponse, len(resp.Labels), len(resp.Scores))
	}

	scores := make([]models.LabelScore, len(resp.Labels))
	for i := range resp.Labels {
		scores[i] = models.LabelScore{Label: resp.Labels[i], Score: resp.Scores[i]}
	}
	return scores, nil
}
