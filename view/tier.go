package view

import "strconv"

// Tier is the confidence band of the dominant label
type Tier struct {
	Name     string
	Emoji    string
	BarColor string
}

var (
	TierGreen  = Tier{Name: "green", Emoji: "🟢", BarColor: "#81c784"}
	TierOrange = Tier{Name: "orange", Emoji: "🟠", BarColor: "#ffb74d"}
	TierRed    = Tier{Name: "red", Emoji: "🔴", BarColor: "#e57373"}
)

// NeutralBarColor is used for every label after the dominant one
const NeutralBarColor = "#cccccc"

// TierFor maps a percentage to its tier. Bounds are strict: exactly 75
// is orange and exactly 50 is red.
func TierFor(percent float64) Tier {
	switch {
	case percent > 75:
		return TierGreen
	case percent > 50:
		return TierOrange
	default:
		return TierRed
	}
}

// Percent converts a [0,1] score to a percentage
func Percent(score float64) float64 {
	return score * 100
}

// FormatPercent renders a percentage with two decimals, without the sign
func FormatPercent(percent float64) string {
	return strconv.FormatFloat(percent, 'f', 2, 64)
}
