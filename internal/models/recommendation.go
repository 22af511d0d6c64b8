package models

// AgeGroup selects which threshold column applies
type AgeGroup string

const (
	GroupChild AgeGroup = "child"
	GroupAdult AgeGroup = "adult"
)

// Threshold is the recommended daily amount per age group
type Threshold struct {
	Adult float64 `json:"adult" yaml:"adult"`
	Child float64 `json:"child" yaml:"child"`
}

// For returns the value for group g
func (t Threshold) For(g AgeGroup) float64 {
	if g == GroupChild {
		return t.Child
	}
	return t.Adult
}

// RecommendationTable maps every tracked nutrient to its thresholds
type RecommendationTable map[Nutrient]Threshold

// Clone returns an independent copy of the table
func (t RecommendationTable) Clone() RecommendationTable {
	out := make(RecommendationTable, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// Thresholds holds the resolved per-nutrient values for one age group
type Thresholds map[Nutrient]float64
