package classifier

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"analyse-juridique/config"
	"analyse-juridique/models"

	"github.com/google/uuid"
	openai "github.com/openai/openai-go/v3"
	oaoption "github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
	"go.uber.org/zap"
)

const openAISystemPrompt = "You classify legal texts. You only answer with JSON."

// OpenAIClassifier asks an OpenAI chat model for one score per label
type OpenAIClassifier struct {
	client      openai.Client
	model       string
	maxAttempts int
	logger      *zap.Logger
}

// NewOpenAIClassifier creates a new OpenAI classifier
func NewOpenAIClassifier(cfg config.ClassifierConfig, logger *zap.Logger) *OpenAIClassifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.APIKey == "" {
		logger.Warn("OPENAI_API_KEY not set")
	}

	// Retries are handled by withRetry
	opts := []oaoption.RequestOption{
		oaoption.WithAPIKey(cfg.APIKey),
		oaoption.WithMaxRetries(0),
		oaoption.WithHTTPClient(&http.Client{Timeout: timeoutOrDefault(cfg.Timeout)}),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, oaoption.WithBaseURL(cfg.BaseURL))
	}

	return &OpenAIClassifier{
		client:      openai.NewClient(opts...),
		model:       cfg.Model,
		maxAttempts: attemptsOrDefault(cfg.MaxAttempts),
		logger:      logger,
	}
}

// Name returns the backend name
func (c *OpenAIClassifier) Name() string {
	return config.BackendOpenAI
}

// Classify scores each label with the chat model
func (c *OpenAIClassifier) Classify(ctx context.Context, text string, labels []string) (*models.ClassificationResult, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(openAISystemPrompt),
			openai.UserMessage(buildPrompt(text, labels)),
		},
		Temperature: openai.Float(0),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	}

	var raw string
	err := withRetry(ctx, c.maxAttempts, c.Name(), c.logger, func() error {
		completion, err := c.client.Chat.Completions.New(ctx, params)
		if err != nil {
			return mapOpenAIError(err)
		}
		if len(completion.Choices) == 0 {
			return fmt.Errorf("%w: no choices", ErrMalformedResponse)
		}
		raw = strings.TrimSpace(completion.Choices[0].Message.Content)
		if raw == "" {
			return fmt.Errorf("%w: empty content", ErrMalformedResponse)
		}
		return nil
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

func mapOpenAIError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return &APIError{Backend: config.BackendOpenAI, StatusCode: apiErr.StatusCode, Message: apiErr.Message}
	}
	return err
}
