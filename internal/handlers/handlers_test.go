package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/Lixing-Zhang/nutribalance/internal/models"
	"github.com/Lixing-Zhang/nutribalance/internal/repository"
	"github.com/Lixing-Zhang/nutribalance/internal/seed"
	"github.com/Lixing-Zhang/nutribalance/internal/service"
	"github.com/Lixing-Zhang/nutribalance/pkg/logger"
)

// stubSearcher returns canned search results
type stubSearcher struct {
	results []models.FoodItem
	err     error
}

func (s stubSearcher) Search(ctx context.Context, query string) ([]models.FoodItem, error) {
	return s.results, s.err
}

type testServices struct {
	catalog         *service.CatalogService
	recommendations *service.RecommendationService
	analysis        *service.AnalysisService
}

func newTestServices(t *testing.T, searcher service.FoodSearcher) testServices {
	t.Helper()

	log := logger.New("error")
	data := seed.Defaults()
	recs, err := repository.NewRecommendationStore(data.Recommendations)
	if err != nil {
		t.Fatalf("NewRecommendationStore() error = %v", err)
	}

	ws := service.NewWorkspace(
		repository.NewCatalogStore(data.Foods),
		recs,
		repository.NewSubmissionLedger(nil),
		nil,
		log,
	)
	return testServices{
		catalog:         service.NewCatalogService(ws, searcher, log),
		recommendations: service.NewRecommendationService(ws, log),
		analysis:        service.NewAnalysisService(ws, nil, log),
	}
}

var errProviderDown = errors.New("provider down")
