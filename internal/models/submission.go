package models

import "time"

// AnalysisRequest represents an incoming analysis form
type AnalysisRequest struct {
	Age      float64     `json:"age" validate:"required,gt=0"`
	Weight   float64     `json:"weight" validate:"required,gt=0"`
	Height   float64     `json:"height" validate:"required,gt=0"`
	Activity string      `json:"activity,omitempty"`
	Meals    []MealEntry `json:"meals" validate:"required,min=1,dive"`
}

// Submission is an immutable record of one completed analysis
type Submission struct {
	ID        string         `json:"id"`
	Age       float64        `json:"age"`
	Weight    float64        `json:"weight"`
	Height    float64        `json:"height"`
	Activity  string         `json:"activity"`
	Meals     []MealEntry    `json:"meals"`
	Nutrients NutrientTotals `json:"nutrients"`
	Date      time.Time      `json:"date"`
}

// ChartRow pairs intake and recommendation for one nutrient
type ChartRow struct {
	Name        Nutrient `json:"name"`
	Intake      float64  `json:"intake"`
	Recommended float64  `json:"recommended"`
}

// AnalysisResult is returned to the caller after an analysis
type AnalysisResult struct {
	Submission  Submission `json:"submission"`
	Group       AgeGroup   `json:"group"`
	Thresholds  Thresholds `json:"thresholds"`
	Suggestions []string   `json:"suggestions"`
	Chart       []ChartRow `json:"chart"`
}
