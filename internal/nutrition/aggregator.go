// Package nutrition turns meal entries, a food catalog and a threshold table
// into nutrient totals, per-age thresholds and suggestion text.
// Every function here is pure; callers own the data they pass in.
package nutrition

import "github.com/Lixing-Zhang/nutribalance/internal/models"

// ComputeTotals sums catalog nutrients scaled by portion for every meal entry.
// Entries are resolved by exact name against the first matching catalog item.
// Entries with no match contribute nothing.
func ComputeTotals(meals []models.MealEntry, catalog []models.FoodItem) models.NutrientTotals {
	var totals models.NutrientTotals

	for _, meal := range meals {
		item, ok := firstMatch(catalog, meal.Food)
		if !ok {
			continue
		}
		for _, n := range models.TrackedNutrients {
			totals.Add(n, item.Value(n)*meal.Portion)
		}
	}

	return totals
}

func firstMatch(catalog []models.FoodItem, name string) (models.FoodItem, bool) {
	for _, item := range catalog {
		if item.Name == name {
			return item, true
		}
	}
	return models.FoodItem{}, false
}
