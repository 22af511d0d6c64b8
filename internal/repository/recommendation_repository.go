package repository

import (
	"github.com/cockroachdb/errors"

	"github.com/Lixing-Zhang/nutribalance/internal/models"
)

// RecommendationStore owns the threshold table. The key set is fixed at
// construction and only individual cells can change.
type RecommendationStore struct {
	table models.RecommendationTable
}

// NewRecommendationStore requires table to hold exactly the tracked nutrients
func NewRecommendationStore(table models.RecommendationTable) (*RecommendationStore, error) {
	if err := ValidateTable(table); err != nil {
		return nil, err
	}
	for _, n := range models.TrackedNutrients {
		row := table[n]
		if err := checkAmount(row.Adult); err != nil {
			return nil, errors.Wrapf(err, "nutrient %s adult", n)
		}
		if err := checkAmount(row.Child); err != nil {
			return nil, errors.Wrapf(err, "nutrient %s child", n)
		}
	}
	return &RecommendationStore{table: table.Clone()}, nil
}

// ValidateTable checks that table's key set is the tracked nutrient set
func ValidateTable(table models.RecommendationTable) error {
	if len(table) != len(models.TrackedNutrients) {
		return errors.Wrapf(ErrIncompleteTable, "got %d keys", len(table))
	}
	for _, n := range models.TrackedNutrients {
		if _, ok := table[n]; !ok {
			return errors.Wrapf(ErrIncompleteTable, "missing %s", n)
		}
	}
	return nil
}

// Table returns a copy of the current thresholds
func (s *RecommendationStore) Table() models.RecommendationTable {
	return s.table.Clone()
}

// EditThreshold sets one cell of the table
func (s *RecommendationStore) EditThreshold(nutrient models.Nutrient, group models.AgeGroup, value float64) (models.Threshold, error) {
	row, ok := s.table[nutrient]
	if !ok {
		return models.Threshold{}, errors.Wrapf(ErrUnknownNutrient, "nutrient %q", nutrient)
	}
	if err := checkAmount(value); err != nil {
		return models.Threshold{}, err
	}

	switch group {
	case models.GroupAdult:
		row.Adult = value
	case models.GroupChild:
		row.Child = value
	default:
		return models.Threshold{}, errors.Wrapf(ErrUnknownGroup, "group %q", group)
	}

	s.table[nutrient] = row
	return row, nil
}
