package view

import (
	"bytes"
	"html/template"
	"math/rand/v2"
	"testing"

	"analyse-juridique/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPickQuoteReturnsKnownQuote(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 20; i++ {
		assert.Contains(t, Quotes(), PickQuote(r))
	}
}

func TestPageRendersEmptyForm(t *testing.T) {
	tmpl, err := LoadTemplates()
	require.NoError(t, err)

	page := NewPage(template.URL("data:image/png;base64,AAAA"), "Droit pénal, Droit social", rand.New(rand.NewPCG(1, 2)))

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, TemplateName, page))
	html := buf.String()

	assert.Contains(t, html, `src="data:image/png;base64,AAAA"`)
	assert.Contains(t, html, "MASTER DROIT ET SÉCURITÉ NUMÉRIQUE")
	assert.Contains(t, html, "Citation du jour")
	assert.Contains(t, html, `value="Droit pénal, Droit social"`)
	assert.Contains(t, html, "Université Hassan 1er")
	assert.NotContains(t, html, `id="results"`)
}

func TestPageRendersResults(t *testing.T) {
	tmpl, err := LoadTemplates()
	require.NoError(t, err)

	result, err := BuildResultView(&models.ClassificationResult{
		Scores: []models.LabelScore{
			{Label: "Droit social", Score: 0.6},
			{Label: "Droit pénal", Score: 0.3},
			{Label: "Droit fiscal", Score: 0.1},
		},
	})
	require.NoError(t, err)

	page := NewPage("", "", rand.New(rand.NewPCG(3, 4)))
	page.Result = result

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, TemplateName, page))
	html := buf.String()

	assert.Contains(t, html, "🟠 Droit social — 60.00%")
	assert.Contains(t, html, `class="bar tier-orange" style="width:60.00%"`)
	assert.Contains(t, html, "Droit pénal : 30.00%")
	assert.Contains(t, html, "Droit fiscal : 10.00%")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("Droit pénal : ")), bytes.Index(buf.Bytes(), []byte("Droit fiscal : ")))
}
