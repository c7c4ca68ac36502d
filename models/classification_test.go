package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLabelSetEmptyPositions(t *testing.T) {
	assert.Nil(t, LabelSet{"A", "B"}.EmptyPositions())
	assert.Equal(t, []int{2, 4}, LabelSet{"A", "", "B", ""}.EmptyPositions())
}

func TestClassificationResultDominantAndOthers(t *testing.T) {
	result := &ClassificationResult{
		Scores: []LabelScore{
			{Label: "Droit pénal", Score: 0.7},
			{Label: "Droit social", Score: 0.2},
			{Label: "Droit civil", Score: 0.1},
		},
	}

	dominant, ok := result.Dominant()
	assert.True(t, ok)
	assert.Equal(t, "Droit pénal", dominant.Label)
	assert.Equal(t, result.Scores[1:], result.Others())

	var empty *ClassificationResult
	_, ok = empty.Dominant()
	assert.False(t, ok)
	assert.Nil(t, empty.Others())
	assert.Nil(t, (&ClassificationResult{Scores: result.Scores[:1]}).Others())
}
