package service

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"

	"github.com/Lixing-Zhang/nutribalance/internal/models"
	"github.com/Lixing-Zhang/nutribalance/internal/repository"
)

// FoodSearcher is the remote food lookup provider
type FoodSearcher interface {
	Search(ctx context.Context, query string) ([]models.FoodItem, error)
}

// CatalogService handles food catalog reads, admin edits and search
type CatalogService struct {
	ws       *Workspace
	searcher FoodSearcher
	log      *slog.Logger
}

// NewCatalogService creates a new catalog service. searcher may be nil,
// in which case every search reports no results.
func NewCatalogService(ws *Workspace, searcher FoodSearcher, log *slog.Logger) *CatalogService {
	return &CatalogService{
		ws:       ws,
		searcher: searcher,
		log:      log,
	}
}

// List returns the catalog in order
func (s *CatalogService) List(ctx context.Context) []models.FoodItem {
	var items []models.FoodItem
	s.ws.read(func(c *catalogStore, _ *recommendationStore, _ *submissionLedger) {
		items = c.All()
	})
	return items
}

// Lookup returns the first item named name
func (s *CatalogService) Lookup(ctx context.Context, name string) (models.FoodItem, error) {
	var (
		item models.FoodItem
		err  error
	)
	s.ws.read(func(c *catalogStore, _ *recommendationStore, _ *submissionLedger) {
		item, err = c.Lookup(name)
	})
	return item, err
}

// Add appends an item and returns its index
func (s *CatalogService) Add(ctx context.Context, item models.FoodItem) (int, error) {
	if err := repository.ValidateItem(item); err != nil {
		return 0, err
	}

	var (
		index int
		items []models.FoodItem
	)
	seq := s.ws.write(func(c *catalogStore, _ *recommendationStore, _ *submissionLedger) {
		index = c.Add(item)
		items = c.All()
	})
	s.ws.persistCatalog(ctx, seq, items)

	s.log.Info("food added", "index", index, "name", item.Name)
	return index, nil
}

// EditField changes one attribute of the item at index
func (s *CatalogService) EditField(ctx context.Context, index int, field string, value any) (models.FoodItem, error) {
	var (
		item  models.FoodItem
		items []models.FoodItem
		err   error
	)
	seq := s.ws.write(func(c *catalogStore, _ *recommendationStore, _ *submissionLedger) {
		item, err = c.EditField(index, field, value)
		if err == nil {
			items = c.All()
		}
	})
	if err != nil {
		return models.FoodItem{}, err
	}
	s.ws.persistCatalog(ctx, seq, items)

	s.log.Info("food edited", "index", index, "field", field)
	return item, nil
}

// Remove deletes the item at index
func (s *CatalogService) Remove(ctx context.Context, index int) (models.FoodItem, error) {
	var (
		removed models.FoodItem
		items   []models.FoodItem
		err     error
	)
	seq := s.ws.write(func(c *catalogStore, _ *recommendationStore, _ *submissionLedger) {
		removed, err = c.Remove(index)
		if err == nil {
			items = c.All()
		}
	})
	if err != nil {
		return models.FoodItem{}, err
	}
	s.ws.persistCatalog(ctx, seq, items)

	s.log.Info("food removed", "index", index, "name", removed.Name)
	return removed, nil
}

// ReplaceAll installs items as the whole catalog, discarding everything before.
// If any item is invalid nothing is replaced.
func (s *CatalogService) ReplaceAll(ctx context.Context, items []models.FoodItem) error {
	for i, item := range items {
		if err := repository.ValidateItem(item); err != nil {
			return errors.Wrapf(err, "item %d", i)
		}
	}

	var snapshot []models.FoodItem
	seq := s.ws.write(func(c *catalogStore, _ *recommendationStore, _ *submissionLedger) {
		c.ReplaceAll(items)
		snapshot = c.All()
	})
	s.ws.persistCatalog(ctx, seq, snapshot)

	s.log.Info("catalog replaced", "items", len(items))
	return nil
}

// Search queries the remote provider and, on a non-empty result, replaces the
// catalog with it. A provider failure, an empty result or a result holding an
// invalid item reports ErrNoResults and leaves the catalog unchanged.
func (s *CatalogService) Search(ctx context.Context, query string) ([]models.FoodItem, error) {
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if s.searcher == nil {
		return nil, errors.Wrap(ErrNoResults, "no food search provider configured")
	}

	results, err := s.searcher.Search(ctx, query)
	if err != nil {
		s.log.Warn("food search failed", "query", query, "error", err)
		return nil, errors.Wrapf(ErrNoResults, "query %q", query)
	}
	if len(results) == 0 {
		s.log.Info("food search returned no results", "query", query)
		return nil, errors.Wrapf(ErrNoResults, "query %q", query)
	}

	if err := s.ReplaceAll(ctx, results); err != nil {
		s.log.Warn("food search returned invalid items", "query", query, "error", err)
		return nil, errors.Wrapf(ErrNoResults, "query %q", query)
	}
	return results, nil
}
