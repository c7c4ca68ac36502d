package service

import (
	"strings"

	"analyse-juridique/models"
)

// DefaultLabels is the label list pre-filled in the form
const DefaultLabels = "Droit pénal, Droit social, Droit administratif, Droit commercial"

// SplitLabels splits a raw comma-separated string and trims each piece.
// Empty pieces are kept so callers can report them.
func SplitLabels(raw string) models.LabelSet {
	parts := strings.Split(raw, ",")
	labels := make(models.LabelSet, len(parts))
	for i, part := range parts {
		labels[i] = strings.TrimSpace(part)
	}
	return labels
}
