package service

import (
	"context"

	"analyse-juridique/models"

	"github.com/google/uuid"
)

type fakeClassifier struct {
	scores []models.LabelScore
	err    error
	calls  int
	text   string
	labels []string
	ctx    context.Context
}

func (f *fakeClassifier) Name() string { return "fake" }

func (f *fakeClassifier) Classify(ctx context.Context, text string, labels []string) (*models.ClassificationResult, error) {
	f.calls++
	f.ctx = ctx
	f.text = text
	f.labels = labels
	if f.err != nil {
		return nil, f.err
	}
	return &models.ClassificationResult{
		ID:       uuid.New(),
		Sequence: text,
		Backend:  f.Name(),
		Scores:   f.scores,
	}, nil
}

// silentClassifier answers with neither a result nor an error
type silentClassifier struct{}

func (silentClassifier) Name() string { return "silent" }

func (silentClassifier) Classify(ctx context.Context, text string, labels []string) (*models.ClassificationResult, error) {
	return nil, nil
}
