package classifier

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"analyse-juridique/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPromptQuotesLabels(t *testing.T) {
	prompt := buildPrompt("Le salarié conteste son licenciement.", []string{"Droit social", `Droit "pénal"`})

	assert.Contains(t, prompt, `["Droit social", "Droit \"pénal\""]`)
	assert.Contains(t, prompt, "Le salarié conteste son licenciement.")
}

func TestParseLLMScores(t *testing.T) {
	raw := "```json\n{\"scores\":[{\"label\":\"droit civil\",\"score\":0.1},{\"label\":\"Droit pénal\",\"score\":0.9}]}\n```"

	scores, err := parseLLMScores(raw, []string{"Droit pénal", "Droit civil", "Droit fiscal"})
	require.NoError(t, err)

	assert.Equal(t, []models.LabelScore{
		{Label: "Droit pénal", Score: 0.9},
		{Label: "Droit civil", Score: 0.1},
		{Label: "Droit fiscal", Score: 0},
	}, scores)
}

func TestParseLLMScoresRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"", "no json here", `{"scores":[]}`, `{"scores": "high"}`} {
		_, err := parseLLMScores(raw, []string{"A"})
		assert.ErrorIs(t, err, ErrMalformedResponse, raw)
	}
}

func TestNormalizeScores(t *testing.T) {
	scores := normalizeScores([]models.LabelScore{
		{Label: "A", Score: 1},
		{Label: "B", Score: 3},
		{Label: "C", Score: 1},
	})

	require.Len(t, scores, 3)
	assert.Equal(t, "B", scores[0].Label)
	assert.InDelta(t, 0.6, scores[0].Score, 1e-9)
	// Ties keep request order
	assert.Equal(t, "A", scores[1].Label)
	assert.Equal(t, "C", scores[2].Label)

	var sum float64
	for _, s := range scores {
		sum += s.Score
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestNormalizeScoresAllZero(t *testing.T) {
	scores := normalizeScores([]models.LabelScore{{Label: "A"}, {Label: "B"}})
	assert.InDelta(t, 0.5, scores[0].Score, 1e-9)
	assert.InDelta(t, 0.5, scores[1].Score, 1e-9)
	assert.Empty(t, normalizeScores(nil))
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, isRetryable(errors.New("connection reset by peer")))
	assert.True(t, isRetryable(&APIError{StatusCode: 503}))
	assert.True(t, isRetryable(&APIError{StatusCode: 429}))
	assert.False(t, isRetryable(&APIError{StatusCode: 401}))
	assert.False(t, isRetryable(fmt.Errorf("wrapped: %w", context.DeadlineExceeded)))
	assert.False(t, isRetryable(fmt.Errorf("%w: bad json", ErrMalformedResponse)))
}
