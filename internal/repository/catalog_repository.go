package repository

import (
	"math"

	"github.com/cockroachdb/errors"

	"github.com/Lixing-Zhang/nutribalance/internal/models"
)

// FieldName is the editable name attribute of a catalog item
const FieldName = "name"

// CatalogStore holds the mutable food catalog in insertion order.
// Names are not unique; lookups return the first match.
// It performs no locking: the owner serializes access.
type CatalogStore struct {
	items []models.FoodItem
}

// NewCatalogStore creates a catalog seeded with a copy of items
func NewCatalogStore(items []models.FoodItem) *CatalogStore {
	return &CatalogStore{items: cloneItems(items)}
}

// All returns a copy of the catalog
func (s *CatalogStore) All() []models.FoodItem {
	return cloneItems(s.items)
}

// Len returns the number of items
func (s *CatalogStore) Len() int {
	return len(s.items)
}

// Lookup returns the first item whose name equals name exactly
func (s *CatalogStore) Lookup(name string) (models.FoodItem, error) {
	for _, item := range s.items {
		if item.Name == name {
			return item, nil
		}
	}
	return models.FoodItem{}, errors.Wrapf(ErrFoodNotFound, "name %q", name)
}

// Add appends item. Zero values and an empty name are allowed.
func (s *CatalogStore) Add(item models.FoodItem) int {
	s.items = append(s.items, item)
	return len(s.items) - 1
}

// EditField replaces one attribute of the item at index.
// field is "name" (string value) or a tracked nutrient key (numeric value).
func (s *CatalogStore) EditField(index int, field string, value any) (models.FoodItem, error) {
	if err := s.checkIndex(index); err != nil {
		return models.FoodItem{}, err
	}
	item := s.items[index]

	if field == FieldName {
		name, ok := value.(string)
		if !ok {
			return models.FoodItem{}, errors.Wrapf(ErrInvalidValue, "field %q expects a string, got %T", field, value)
		}
		item.Name = name
		s.items[index] = item
		return item, nil
	}

	nutrient := models.Nutrient(field)
	if !models.IsTracked(nutrient) {
		return models.FoodItem{}, errors.Wrapf(ErrUnknownField, "field %q", field)
	}

	amount, err := toAmount(value)
	if err != nil {
		return models.FoodItem{}, errors.Wrapf(err, "field %q", field)
	}
	item.SetValue(nutrient, amount)
	s.items[index] = item
	return item, nil
}

// Remove deletes the item at index, shifting later items down
func (s *CatalogStore) Remove(index int) (models.FoodItem, error) {
	if err := s.checkIndex(index); err != nil {
		return models.FoodItem{}, err
	}
	removed := s.items[index]
	s.items = append(s.items[:index], s.items[index+1:]...)
	return removed, nil
}

// ReplaceAll discards the whole catalog, including admin edits and defaults,
// and installs a copy of items. Nothing from the previous catalog survives.
func (s *CatalogStore) ReplaceAll(items []models.FoodItem) {
	s.items = cloneItems(items)
}

// ValidateItem checks that every tracked amount of item is finite and
// non-negative. Callers run it before Add and ReplaceAll; EditField applies
// the same rule to the single field it changes.
func ValidateItem(item models.FoodItem) error {
	for _, n := range models.TrackedNutrients {
		if err := checkAmount(item.Value(n)); err != nil {
			return errors.Wrapf(err, "food %q, field %q", item.Name, n)
		}
	}
	return nil
}

func (s *CatalogStore) checkIndex(index int) error {
	if index < 0 || index >= len(s.items) {
		return errors.Wrapf(ErrIndexOutOfRange, "index %d, catalog size %d", index, len(s.items))
	}
	return nil
}

func toAmount(value any) (float64, error) {
	var amount float64
	switch v := value.(type) {
	case float64:
		amount = v
	case float32:
		amount = float64(v)
	case int:
		amount = float64(v)
	case int64:
		amount = float64(v)
	default:
		return 0, errors.Wrapf(ErrInvalidValue, "expected a number, got %T", value)
	}
	if err := checkAmount(amount); err != nil {
		return 0, err
	}
	return amount, nil
}

func checkAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return errors.Wrapf(ErrInvalidValue, "amount %v must be a finite non-negative number", amount)
	}
	return nil
}

func cloneItems(items []models.FoodItem) []models.FoodItem {
	out := make([]models.FoodItem, len(items))
	copy(out, items)
	return out
}
