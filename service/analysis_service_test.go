package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"analyse-juridique/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitLabels(t *testing.T) {
	assert.Equal(t, models.LabelSet{"A", "B", "C"}, SplitLabels("A, B ,C"))
	assert.Equal(t, models.LabelSet{"A", "", "B"}, SplitLabels("A,,B"))
	assert.Equal(t, models.LabelSet{"A", "A"}, SplitLabels("A,A"))
	assert.Equal(t, models.LabelSet{"Droit pénal", "Droit social", "Droit administratif", "Droit commercial"}, SplitLabels(DefaultLabels))
}

func TestAnalyzeCallsClassifierWithTrimmedLabels(t *testing.T) {
	fake := &fakeClassifier{scores: []models.LabelScore{
		{Label: "Droit pénal", Score: 0.92},
		{Label: "Droit civil", Score: 0.08},
	}}
	svc := NewAnalysisService(WithClassifier(fake), WithTimeout(time.Minute))

	res, err := svc.Analyze(context.Background(), AnalyzeRequest{
		Text:      "Le tribunal correctionnel condamne...",
		RawLabels: "Droit pénal, Droit civil",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, fake.calls)
	assert.Equal(t, "Le tribunal correctionnel condamne...", fake.text)
	assert.Equal(t, []string{"Droit pénal", "Droit civil"}, fake.labels)
	assert.Equal(t, models.LabelSet{"Droit pénal", "Droit civil"}, res.Labels)
	assert.Equal(t, fake.scores, res.Result.Scores)

	_, hasDeadline := fake.ctx.Deadline()
	assert.True(t, hasDeadline)
}

func TestAnalyzeRejectsEmptyInputsWithoutCallingClassifier(t *testing.T) {
	tests := []struct {
		name string
		req  AnalyzeRequest
		want error
	}{
		{"empty text", AnalyzeRequest{Text: "", RawLabels: "A"}, ErrEmptyText},
		{"blank text", AnalyzeRequest{Text: "  \n ", RawLabels: "A"}, ErrEmptyText},
		{"empty labels", AnalyzeRequest{Text: "jugement", RawLabels: " "}, ErrEmptyLabels},
		{"adjacent commas", AnalyzeRequest{Text: "jugement", RawLabels: "A,,B"}, ErrMalformedLabels},
		{"trailing comma", AnalyzeRequest{Text: "jugement", RawLabels: "A, B,"}, ErrMalformedLabels},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeClassifier{}
			svc := NewAnalysisService(WithClassifier(fake))

			_, err := svc.Analyze(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.want)
			assert.Zero(t, fake.calls)
		})
	}
}

func TestAnalyzeReportsEmptyLabelPositions(t *testing.T) {
	svc := NewAnalysisService(WithClassifier(&fakeClassifier{}))

	_, err := svc.Analyze(context.Background(), AnalyzeRequest{Text: "jugement", RawLabels: ",A,,B"})
	require.ErrorIs(t, err, ErrMalformedLabels)
	assert.Contains(t, err.Error(), "position 1, 3")
}

func TestAnalyzeWrapsClassifierFailures(t *testing.T) {
	fake := &fakeClassifier{err: errors.New("model unavailable")}
	svc := NewAnalysisService(WithClassifier(fake))

	_, err := svc.Analyze(context.Background(), AnalyzeRequest{Text: "jugement", RawLabels: "A, B"})
	require.ErrorIs(t, err, ErrClassifierUnavailable)
	assert.Contains(t, err.Error(), "model unavailable")
	assert.Equal(t, 1, fake.calls)

	svc = NewAnalysisService(WithClassifier(&fakeClassifier{}))
	_, err = svc.Analyze(context.Background(), AnalyzeRequest{Text: "jugement", RawLabels: "A"})
	assert.ErrorIs(t, err, ErrClassifierUnavailable)
}

func TestAnalyzeWithoutClassifier(t *testing.T) {
	_, err := NewAnalysisService().Analyze(context.Background(), AnalyzeRequest{Text: "jugement", RawLabels: "A"})
	assert.EqualError(t, err, "classifier not set")
}

func TestAnalyzeWithNilResult(t *testing.T) {
	svc := NewAnalysisService(WithClassifier(silentClassifier{}))

	var err error
	assert.NotPanics(t, func() {
		_, err = svc.Analyze(context.Background(), AnalyzeRequest{Text: "jugement", RawLabels: "A, B"})
	})
	assert.ErrorIs(t, err, ErrClassifierUnavailable)
}
