package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Lixing-Zhang/nutribalance/internal/models"
	"github.com/Lixing-Zhang/nutribalance/internal/repository"
	"github.com/Lixing-Zhang/nutribalance/internal/seed"
	"github.com/Lixing-Zhang/nutribalance/pkg/logger"
)

// recordingPersister keeps the last blob saved per key
type recordingPersister struct {
	mu    sync.Mutex
	saved map[string]any
	calls int
	err   error
}

func (p *recordingPersister) Save(ctx context.Context, key string, v any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.saved == nil {
		p.saved = make(map[string]any)
	}
	p.calls++
	p.saved[key] = v
	return p.err
}

func newTestWorkspace(t *testing.T, persister Persister) *Workspace {
	t.Helper()

	data := seed.Defaults()
	recs, err := repository.NewRecommendationStore(data.Recommendations)
	require.NoError(t, err)

	return NewWorkspace(
		repository.NewCatalogStore(data.Foods),
		recs,
		repository.NewSubmissionLedger(nil),
		persister,
		logger.New("error"),
	)
}

func itemNames(items []models.FoodItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Name)
	}
	return out
}
