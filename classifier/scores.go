package classifier

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"analyse-juridique/models"
)

// llmScores is the JSON shape requested from generative models
type llmScores struct {
	Scores []models.LabelScore `json:"scores"`
}

// buildPrompt asks a generative model to behave as a zero-shot classifier
func buildPrompt(text string, labels []string) string {
	quoted := make([]string, len(labels))
	for i, label := range labels {
		quoted[i] = strconv.Quote(label)
	}

	var b strings.Builder
	b.WriteString("You are a zero-shot text classifier for court decisions. ")
	b.WriteString("Score how strongly the text below belongs to each candidate legal domain. ")
	b.WriteString("Answer with JSON only, of the form {\"scores\":[{\"label\":\"...\",\"score\":0.0}]}, ")
	b.WriteString("with exactly one entry per candidate label, labels copied verbatim, scores between 0 and 1.\n\n")
	b.WriteString("Candidate labels: [")
	b.WriteString(strings.Join(quoted, ", "))
	b.WriteString("]\n\nText:\n\"\"\"\n")
	b.WriteString(text)
	b.WriteString("\n\"\"\"")
	return b.String()
}

// parseLLMScores extracts the JSON object from a model answer and maps it
// back onto the requested labels, in request order.
func parseLLMScores(raw string, labels []string) ([]models.LabelScore, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end < start {
		return nil, fmt.Errorf("%w: no JSON object in answer", ErrMalformedResponse)
	}

	var parsed llmScores
	if err := json.Unmarshal([]byte(raw[start:end+1]), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(parsed.Scores) == 0 {
		return nil, fmt.Errorf("%w: no scores in answer", ErrMalformedResponse)
	}

	byLabel := make(map[string]float64, len(parsed.Scores))
	for _, s := range parsed.Scores {
		byLabel[strings.ToLower(strings.TrimSpace(s.Label))] = s.Score
	}

	scores := make([]models.LabelScore, len(labels))
	for i, label := range labels {
		score := byLabel[strings.ToLower(strings.TrimSpace(label))]
		if score < 0 {
			score = 0
		}
		scores[i] = models.LabelScore{Label: label, Score: score}
	}
	return scores, nil
}

// normalizeScores rescales scores to sum to 1 and sorts them descending.
// Equal scores keep request order. All-zero scores become uniform.
func normalizeScores(scores []models.LabelScore) []models.LabelScore {
	out := make([]models.LabelScore, len(scores))
	copy(out, scores)
	if len(out) == 0 {
		return out
	}

	var sum float64
	for _, s := range out {
		sum += s.Score
	}
	for i := range out {
		if sum > 0 {
			out[i].Score /= sum
		} else {
			out[i].Score = 1 / float64(len(out))
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}
