// Package view renders the analysis page: layout, sidebar quote, form and
// the ranked results.
package view

import (
	"embed"
	"html/template"
	"math/rand/v2"
)

//go:embed templates/*.html
var templateFS embed.FS

// TemplateName is the name the page template is registered under
const TemplateName = "index.html"

const (
	PageTitle   = "Analyse Juridique IA"
	FooterLabel = "Université Hassan 1er – Analyse Juridique IA – © 2025 | "
)

// Page is the data passed to the page template
type Page struct {
	Title  string
	Footer string
	Logo   template.URL
	Quote  string
	Text   string
	Labels string
	Error  string
	Result *ResultView
}

// LoadTemplates parses the embedded page templates
func LoadTemplates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}

// NewPage returns the empty form with a fresh quote
func NewPage(logo template.URL, labels string, r *rand.Rand) Page {
	return Page{
		Title:  PageTitle,
		Footer: FooterLabel,
		Logo:   logo,
		Quote:  PickQuote(r),
		Labels: labels,
	}
}
