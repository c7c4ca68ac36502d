package classifier

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"analyse-juridique/config"
	"analyse-juridique/models"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// GeminiClassifier asks a Gemini model for one score per label and
// normalizes the answer into a zero-shot distribution
type GeminiClassifier struct {
	client      *genai.Client
	model       string
	maxAttempts int
	logger      *zap.Logger
	generate    generateFunc
}

// generateFunc sends one prompt to the model
type generateFunc func(ctx context.Context, prompt string) (*genai.GenerateContentResponse, error)

// NewGeminiClassifier creates a new Gemini classifier
func NewGeminiClassifier(ctx context.Context, cfg config.ClassifierConfig, logger *zap.Logger) (*GeminiClassifier, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.APIKey == "" {
		logger.Warn("GEMINI_API_KEY not set")
	}

	opts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithEndpoint(cfg.BaseURL))
	}

	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	c := &GeminiClassifier{
		client:      client,
		model:       cfg.Model,
		maxAttempts: attemptsOrDefault(cfg.MaxAttempts),
		logger:      logger,
	}
	c.generate = c.generateContent
	return c, nil
}

// Name returns the backend name
func (c *GeminiClassifier) Name() string {
	return config.BackendGemini
}

// Close releases the underlying client
func (c *GeminiClassifier) Close() error {
	return c.client.Close()
}

// generateContent asks for a JSON answer matching scoresSchema
func (c *GeminiClassifier) generateContent(ctx context.Context, prompt string) (*genai.GenerateContentResponse, error) {
	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(0)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = scoresSchema()
	return model.GenerateContent(ctx, genai.Text(prompt))
}

// Classify scores each label with the generative model
func (c *GeminiClassifier) Classify(ctx context.Context, text string, labels []string) (*models.ClassificationResult, error) {
	prompt := buildPrompt(text, labels)

	var raw string
	err := withRetry(ctx, c.maxAttempts, c.Name(), c.logger, func() error {
		resp, err := c.generate(ctx, prompt)
		if err != nil {
			return mapGeminiError(err)
		}
		raw, err = responseText(resp)
		return err
	})
	if err != nil {
		return nil, err
	}

	scores, err := parseLLMScores(raw, labels)
	if err != nil {
		return nil, err
	}

	return &models.ClassificationResult{
		ID:       uuid.New(),
		Sequence: text,
		Backend:  c.Name(),
		Model:    c.model,
		Scores:   normalizeScores(scores),
	}, nil
}

func scoresSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"scores": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"label": {Type: genai.TypeString},
						"score": {Type: genai.TypeNumber},
					},
					Required: []string{"label", "score"},
				},
			},
		},
		Required: []string{"scores"},
	}
}

// responseText concatenates the text parts of every candidate
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != genai.BlockReasonUnspecified {
		return "", fmt.Errorf("%w: prompt blocked: %s", ErrMalformedResponse, resp.PromptFeedback.BlockReason)
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates", ErrMalformedResponse)
	}

	var b strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				b.WriteString(string(t))
			}
		}
	}

	if b.Len() == 0 {
		return "", fmt.Errorf("%w: empty content", ErrMalformedResponse)
	}
	return b.String(), nil
}

func mapGeminiError(err error) error {
	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		return &APIError{Backend: config.BackendGemini, StatusCode: gErr.Code, Message: gErr.Message}
	}
	return err
}
