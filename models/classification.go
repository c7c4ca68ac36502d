package models

import (
	"github.com/google/uuid"
)

// LabelSet is the ordered list of candidate labels derived from the raw
// comma-separated input. Order and duplicates are kept as typed.
type LabelSet []string

// EmptyPositions returns the 1-based positions of labels that are empty.
func (l LabelSet) EmptyPositions() []int {
	var positions []int
	for i, label := range l {
		if label == "" {
			positions = append(positions, i+1)
		}
	}
	return positions
}

// LabelScore is one candidate label with its association score in [0,1]
type LabelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// ClassificationResult represents the ranked output of a zero-shot classifier
type ClassificationResult struct {
	ID       uuid.UUID    `json:"id"`
	Sequence string       `json:"sequence"`
	Backend  string       `json:"backend"`
	Model    string       `json:"model"`
	Scores   []LabelScore `json:"scores"` // Descending by score
}

// Dominant returns the highest ranked label
func (r *ClassificationResult) Dominant() (LabelScore, bool) {
	if r == nil || len(r.Scores) == 0 {
		return LabelScore{}, false
	}
	return r.Scores[0], true
}

// Others returns every label after the dominant one, in classifier order
func (r *ClassificationResult) Others() []LabelScore {
	if r == nil || len(r.Scores) < 2 {
		return nil
	}
	return r.Scores[1:]
}
