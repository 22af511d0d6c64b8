package models

// FoodItem is a catalog entry. Nutrient values are amounts per one
// portion unit; the unit itself is not defined, a portion is a bare multiplier.
type FoodItem struct {
	Name     string  `json:"name" yaml:"name"`
	Calories float64 `json:"calories" yaml:"calories"`
	Protein  float64 `json:"protein" yaml:"protein"`
	Fat      float64 `json:"fat" yaml:"fat"`
	Carbs    float64 `json:"carbs" yaml:"carbs"`
	Fiber    float64 `json:"fiber" yaml:"fiber"`
	VitaminC float64 `json:"vitaminC" yaml:"vitaminC"`
}

// Value returns the per-portion amount of n
func (f FoodItem) Value(n Nutrient) float64 {
	switch n {
	case Calories:
		return f.Calories
	case Protein:
		return f.Protein
	case Fat:
		return f.Fat
	case Carbs:
		return f.Carbs
	case Fiber:
		return f.Fiber
	case VitaminC:
		return f.VitaminC
	}
	return 0
}

// SetValue sets the per-portion amount of n. Untracked keys are ignored.
func (f *FoodItem) SetValue(n Nutrient, v float64) {
	switch n {
	case Calories:
		f.Calories = v
	case Protein:
		f.Protein = v
	case Fat:
		f.Fat = v
	case Carbs:
		f.Carbs = v
	case Fiber:
		f.Fiber = v
	case VitaminC:
		f.VitaminC = v
	}
}

// MealEntry references a catalog food by name with a portion multiplier
type MealEntry struct {
	Food    string  `json:"food"`
	Portion float64 `json:"portion" validate:"gt=0"`
}
