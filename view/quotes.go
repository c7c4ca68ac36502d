package view

import "math/rand/v2"

var quotes = []string{
	"⚖️ « Le droit est la plus puissante des écoles de l'imagination. » – Michel Foucault",
	"📚 « La justice sans la force est impuissante. » – Blaise Pascal",
	"🧠 « Un bon avocat connaît la loi. Un grand avocat connaît le juge. » – Auteur inconnu",
}

// Quotes returns the sidebar quotes
func Quotes() []string {
	out := make([]string, len(quotes))
	copy(out, quotes)
	return out
}

// PickQuote returns one quote chosen with r
func PickQuote(r *rand.Rand) string {
	return quotes[r.IntN(len(quotes))]
}
