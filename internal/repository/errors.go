package repository

import "github.com/cockroachdb/errors"

var (
	ErrFoodNotFound    = errors.New("food not found")
	ErrIndexOutOfRange = errors.New("catalog index out of range")
	ErrUnknownField    = errors.New("unknown food field")
	ErrInvalidValue    = errors.New("invalid field value")
	ErrUnknownNutrient = errors.New("unknown nutrient")
	ErrUnknownGroup    = errors.New("unknown age group")
	ErrIncompleteTable = errors.New("recommendation table must contain exactly the tracked nutrients")
)
