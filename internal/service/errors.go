package service

import "github.com/cockroachdb/errors"

var (
	ErrEmptyQuery   = errors.New("search query is required")
	ErrNoResults    = errors.New("no results found")
	ErrMissingInput = errors.New("age, weight, height and at least one meal are required")
	ErrInvalidInput = errors.New("invalid analysis input")
)
