package view

import (
	"errors"
	"fmt"

	"analyse-juridique/models"
)

// ErrNoScores is returned when a result has nothing to display
var ErrNoScores = errors.New("classification result has no scores")

// ScoreLine is one rendered label with its bar
type ScoreLine struct {
	Label   string
	Percent string // "92.00"
	Width   string // CSS width, "92.00%"
	Color   string
	Text    string
}

// ResultView holds everything the results area displays
type ResultView struct {
	ID         string
	Backend    string
	Model      string
	Tier       Tier
	Dominant   ScoreLine
	Headline   string
	Conclusion string
	Others     []ScoreLine
}

// BuildResultView turns a ranked result into display lines. The first
// score is the dominant label; the others keep the classifier order.
func BuildResultView(result *models.ClassificationResult) (*ResultView, error) {
	dominant, ok := result.Dominant()
	if !ok {
		return nil, ErrNoScores
	}

	pct := Percent(dominant.Score)
	tier := TierFor(pct)
	formatted := FormatPercent(pct)

	v := &ResultView{
		ID:      result.ID.String(),
		Backend: result.Backend,
		Model:   result.Model,
		Tier:    tier,
		Dominant: ScoreLine{
			Label:   dominant.Label,
			Percent: formatted,
			Width:   formatted + "%",
			Color:   tier.BarColor,
			Text:    fmt.Sprintf("%s — %s%%", dominant.Label, formatted),
		},
		Conclusion: fmt.Sprintf("Ce texte relève majoritairement du %s (%s%%)", dominant.Label, formatted),
	}
	v.Headline = tier.Emoji + " " + v.Dominant.Text

	for _, s := range result.Others() {
		p := FormatPercent(Percent(s.Score))
		v.Others = append(v.Others, ScoreLine{
			Label:   s.Label,
			Percent: p,
			Width:   p + "%",
			Color:   NeutralBarColor,
			Text:    fmt.Sprintf("%s : %s%%", s.Label, p),
		})
	}

	return v, nil
}
