package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/Lixing-Zhang/nutribalance/internal/models"
	"github.com/Lixing-Zhang/nutribalance/internal/nutrition"
)

// DefaultActivity is recorded when the request leaves activity empty
const DefaultActivity = "sedentary"

// Publisher announces completed analyses
type Publisher interface {
	PublishSubmission(ctx context.Context, s models.Submission) error
}

// AnalysisService runs nutrient analyses and owns the submission log
type AnalysisService struct {
	ws        *Workspace
	publisher Publisher
	validate  *validator.Validate
	log       *slog.Logger
	now       func() time.Time
}

// NewAnalysisService creates a new analysis service. publisher may be nil.
func NewAnalysisService(ws *Workspace, publisher Publisher, log *slog.Logger) *AnalysisService {
	return &AnalysisService{
		ws:        ws,
		publisher: publisher,
		validate:  validator.New(),
		log:       log,
		now:       time.Now,
	}
}

// Analyze computes totals for req against the current catalog, compares them
// with the thresholds for the requester's age and appends a submission.
// Incomplete input is refused before anything is computed or recorded.
func (s *AnalysisService) Analyze(ctx context.Context, req models.AnalysisRequest) (*models.AnalysisResult, error) {
	if err := s.checkRequest(req); err != nil {
		return nil, err
	}

	activity := req.Activity
	if activity == "" {
		activity = DefaultActivity
	}
	meals := make([]models.MealEntry, len(req.Meals))
	copy(meals, req.Meals)

	var (
		submission models.Submission
		thresholds models.Thresholds
		records    []models.Submission
	)
	seq := s.ws.write(func(c *catalogStore, r *recommendationStore, l *submissionLedger) {
		totals := nutrition.ComputeTotals(meals, c.All())
		thresholds = nutrition.ResolveThresholds(r.Table(), req.Age)

		submission = models.Submission{
			ID:        uuid.New().String(),
			Age:       req.Age,
			Weight:    req.Weight,
			Height:    req.Height,
			Activity:  activity,
			Meals:     meals,
			Nutrients: totals,
			Date:      s.now().UTC(),
		}
		l.Append(submission)
		records = l.All()
	})
	s.ws.persistSubmissions(ctx, seq, records)

	result := &models.AnalysisResult{
		Submission:  submission,
		Group:       nutrition.ResolveGroup(req.Age),
		Thresholds:  thresholds,
		Suggestions: nutrition.GenerateSuggestions(submission.Nutrients, thresholds),
		Chart:       nutrition.ChartRows(submission.Nutrients, thresholds),
	}

	if s.publisher != nil {
		if err := s.publisher.PublishSubmission(ctx, submission); err != nil {
			s.log.Error("failed to publish submission", "submission_id", submission.ID, "error", err)
		}
	}

	s.log.Info("analysis completed",
		"submission_id", submission.ID,
		"meals", len(meals),
		"group", result.Group,
		"suggestions", len(result.Suggestions),
	)
	return result, nil
}

// Submissions returns the ledger in append order
func (s *AnalysisService) Submissions(ctx context.Context) []models.Submission {
	var records []models.Submission
	s.ws.read(func(_ *catalogStore, _ *recommendationStore, l *submissionLedger) {
		records = l.All()
	})
	return records
}

// ExportCSV renders the ledger as CSV; an empty ledger yields ""
func (s *AnalysisService) ExportCSV(ctx context.Context) string {
	var csv string
	s.ws.read(func(_ *catalogStore, _ *recommendationStore, l *submissionLedger) {
		csv = l.ToCSV()
	})
	return csv
}

func (s *AnalysisService) checkRequest(req models.AnalysisRequest) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errors.Wrap(ErrInvalidInput, err.Error())
	}
	for _, fe := range verrs {
		if fe.Tag() == "required" || (fe.Field() == "Meals" && fe.Tag() == "min") {
			return errors.Wrapf(ErrMissingInput, "field %s", fe.Field())
		}
	}
	return errors.Wrap(ErrInvalidInput, verrs.Error())
}
