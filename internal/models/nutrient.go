package models

// Nutrient is one of the tracked nutrient keys
type Nutrient string

const (
	Calories Nutrient = "calories"
	Protein  Nutrient = "protein"
	Fat      Nutrient = "fat"
	Carbs    Nutrient = "carbs"
	Fiber    Nutrient = "fiber"
	VitaminC Nutrient = "vitaminC"
)

// TrackedNutrients is the fixed key set in table order.
// Totals, thresholds and suggestions all iterate in this order.
var TrackedNutrients = []Nutrient{Calories, Protein, Fat, Carbs, Fiber, VitaminC}

// IsTracked reports whether n is one of the tracked keys
func IsTracked(n Nutrient) bool {
	for _, tracked := range TrackedNutrients {
		if n == tracked {
			return true
		}
	}
	return false
}

// NutrientTotals holds the aggregate intake for one analysis
type NutrientTotals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
	Carbs    float64 `json:"carbs"`
	Fiber    float64 `json:"fiber"`
	VitaminC float64 `json:"vitaminC"`
}

// Value returns the total for n, or 0 for an untracked key
func (t NutrientTotals) Value(n Nutrient) float64 {
	switch n {
	case Calories:
		return t.Calories
	case Protein:
		return t.Protein
	case Fat:
		return t.Fat
	case Carbs:
		return t.Carbs
	case Fiber:
		return t.Fiber
	case VitaminC:
		return t.VitaminC
	}
	return 0
}

// Add increases the total for n by amount
func (t *NutrientTotals) Add(n Nutrient, amount float64) {
	switch n {
	case Calories:
		t.Calories += amount
	case Protein:
		t.Protein += amount
	case Fat:
		t.Fat += amount
	case Carbs:
		t.Carbs += amount
	case Fiber:
		t.Fiber += amount
	case VitaminC:
		t.VitaminC += amount
	}
}
