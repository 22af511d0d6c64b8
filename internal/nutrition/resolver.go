package nutrition

import "github.com/Lixing-Zhang/nutribalance/internal/models"

// ChildAgeLimit is the first age treated as adult
const ChildAgeLimit = 18

// ResolveGroup maps an age to its threshold column. Age is not validated here.
func ResolveGroup(age float64) models.AgeGroup {
	if age < ChildAgeLimit {
		return models.GroupChild
	}
	return models.GroupAdult
}

// ResolveThresholds selects the column for age from every tracked row of table
func ResolveThresholds(table models.RecommendationTable, age float64) models.Thresholds {
	group := ResolveGroup(age)

	resolved := make(models.Thresholds, len(models.TrackedNutrients))
	for _, n := range models.TrackedNutrients {
		row, ok := table[n]
		if !ok {
			continue
		}
		resolved[n] = row.For(group)
	}
	return resolved
}
