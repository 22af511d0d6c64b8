// Package app assembles the stores, services and HTTP router shared by the
// server and the command line tool.
package app

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"

	"github.com/Lixing-Zhang/nutribalance/internal/models"
	"github.com/Lixing-Zhang/nutribalance/internal/repository"
	"github.com/Lixing-Zhang/nutribalance/internal/seed"
	"github.com/Lixing-Zhang/nutribalance/internal/service"
)

// SnapshotLoader reads a persisted blob. It reports false when none exists.
type SnapshotLoader interface {
	Load(ctx context.Context, key string, v any) (bool, error)
}

// State is the set of stores a workspace owns
type State struct {
	Catalog         *repository.CatalogStore
	Recommendations *repository.RecommendationStore
	Ledger          *repository.SubmissionLedger
}

// RestoreState builds the stores from persisted snapshots, falling back to
// defaults for any blob that was never saved. loader may be nil.
func RestoreState(ctx context.Context, loader SnapshotLoader, defaults seed.Data, log *slog.Logger) (*State, error) {
	foods := defaults.Foods
	table := defaults.Recommendations
	var records []models.Submission

	if loader != nil {
		if err := restore(ctx, loader, service.SnapshotCatalog, &foods, log); err != nil {
			return nil, err
		}
		if err := restore(ctx, loader, service.SnapshotRecommendations, &table, log); err != nil {
			return nil, err
		}
		if err := restore(ctx, loader, service.SnapshotSubmissions, &records, log); err != nil {
			return nil, err
		}
	}

	recs, err := repository.NewRecommendationStore(table)
	if err != nil {
		return nil, errors.Wrap(err, "restored recommendation table is invalid")
	}

	return &State{
		Catalog:         repository.NewCatalogStore(foods),
		Recommendations: recs,
		Ledger:          repository.NewSubmissionLedger(records),
	}, nil
}

func restore[T any](ctx context.Context, loader SnapshotLoader, key string, dst *T, log *slog.Logger) error {
	var loaded T
	found, err := loader.Load(ctx, key, &loaded)
	if err != nil {
		return err
	}
	if !found {
		log.Info("no saved snapshot, using defaults", "snapshot", key)
		return nil
	}
	*dst = loaded
	log.Info("snapshot restored", "snapshot", key)
	return nil
}
