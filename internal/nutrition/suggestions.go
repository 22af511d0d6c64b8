package nutrition

import (
	"fmt"
	"math"
	"strconv"

	"github.com/Lixing-Zhang/nutribalance/internal/models"
)

// ReduceFactor is the upper edge of the tolerance band, relative to the threshold
const ReduceFactor = 1.2

// GenerateSuggestions compares totals against thresholds in table key order.
// Below the threshold yields an increase message, strictly above
// threshold*ReduceFactor yields a reduce message, anything in between is silent.
func GenerateSuggestions(totals models.NutrientTotals, thresholds models.Thresholds) []string {
	suggestions := make([]string, 0)

	for _, n := range models.TrackedNutrients {
		recommended, ok := thresholds[n]
		if !ok {
			continue
		}
		current := totals.Value(n)

		switch {
		case current < recommended:
			suggestions = append(suggestions, formatSuggestion("Increase", n, recommended, current))
		case current > recommended*ReduceFactor:
			suggestions = append(suggestions, formatSuggestion("Reduce", n, recommended, current))
		}
	}

	return suggestions
}

func formatSuggestion(verb string, n models.Nutrient, recommended, current float64) string {
	return fmt.Sprintf("%s %s intake (recommended: %s, current: %s)",
		verb,
		n,
		strconv.FormatFloat(recommended, 'f', -1, 64),
		strconv.FormatFloat(roundTenth(current), 'f', 1, 64),
	)
}

// ChartRows pairs each total with its threshold, intake rounded to one decimal
func ChartRows(totals models.NutrientTotals, thresholds models.Thresholds) []models.ChartRow {
	rows := make([]models.ChartRow, 0, len(thresholds))
	for _, n := range models.TrackedNutrients {
		recommended, ok := thresholds[n]
		if !ok {
			continue
		}
		rows = append(rows, models.ChartRow{
			Name:        n,
			Intake:      roundTenth(totals.Value(n)),
			Recommended: recommended,
		})
	}
	return rows
}

// roundTenth rounds to one decimal with ties away from zero, so messages and
// chart rows show the same intake
func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
