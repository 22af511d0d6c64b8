package service

import (
	"context"
	"log/slog"

	"github.com/Lixing-Zhang/nutribalance/internal/models"
)

// RecommendationService handles the threshold table
type RecommendationService struct {
	ws  *Workspace
	log *slog.Logger
}

// NewRecommendationService creates a new recommendation service
func NewRecommendationService(ws *Workspace, log *slog.Logger) *RecommendationService {
	return &RecommendationService{
		ws:  ws,
		log: log,
	}
}

// Table returns a copy of the current thresholds
func (s *RecommendationService) Table(ctx context.Context) models.RecommendationTable {
	var table models.RecommendationTable
	s.ws.read(func(_ *catalogStore, r *recommendationStore, _ *submissionLedger) {
		table = r.Table()
	})
	return table
}

// EditThreshold sets the value of one nutrient for one age group
func (s *RecommendationService) EditThreshold(ctx context.Context, nutrient models.Nutrient, group models.AgeGroup, value float64) (models.Threshold, error) {
	var (
		row   models.Threshold
		table models.RecommendationTable
		err   error
	)
	seq := s.ws.write(func(_ *catalogStore, r *recommendationStore, _ *submissionLedger) {
		row, err = r.EditThreshold(nutrient, group, value)
		if err == nil {
			table = r.Table()
		}
	})
	if err != nil {
		return models.Threshold{}, err
	}
	s.ws.persistRecommendations(ctx, seq, table)

	s.log.Info("threshold edited", "nutrient", nutrient, "group", group, "value", value)
	return row, nil
}
