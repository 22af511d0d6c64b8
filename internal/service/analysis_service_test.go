package service

import (
	"context"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lixing-Zhang/nutribalance/internal/models"
	"github.com/Lixing-Zhang/nutribalance/pkg/logger"
)

type recordingPublisher struct {
	published []models.Submission
	err       error
}

func (p *recordingPublisher) PublishSubmission(ctx context.Context, s models.Submission) error {
	p.published = append(p.published, s)
	return p.err
}

func newTestAnalysisService(t *testing.T, persister Persister, publisher Publisher) (*AnalysisService, *Workspace) {
	t.Helper()
	ws := newTestWorkspace(t, persister)
	svc := NewAnalysisService(ws, publisher, logger.New("error"))
	svc.now = func() time.Time { return time.Date(2026, 10, 17, 9, 0, 0, 0, time.FixedZone("CET", 3600)) }
	return svc, ws
}

func TestAnalysisService_Analyze(t *testing.T) {
	persister := &recordingPersister{}
	publisher := &recordingPublisher{}
	svc, _ := newTestAnalysisService(t, persister, publisher)

	result, err := svc.Analyze(context.Background(), models.AnalysisRequest{
		Age:    30,
		Weight: 70,
		Height: 175,
		Meals: []models.MealEntry{
			{Food: "Apple", Portion: 2},
			{Food: "Egg", Portion: 1},
		},
	})
	require.NoError(t, err)

	sub := result.Submission
	assert.NotEmpty(t, sub.ID)
	assert.Equal(t, DefaultActivity, sub.Activity)
	assert.Equal(t, time.Date(2026, 10, 17, 8, 0, 0, 0, time.UTC), sub.Date)
	assert.InDelta(t, 172, sub.Nutrients.Calories, 1e-9)
	assert.InDelta(t, 6.9, sub.Nutrients.Protein, 1e-9)

	assert.Equal(t, models.GroupAdult, result.Group)
	assert.Equal(t, 50.0, result.Thresholds[models.Protein])
	assert.Equal(t, []string{
		"Increase calories intake (recommended: 2000, current: 172.0)",
		"Increase protein intake (recommended: 50, current: 6.9)",
		"Increase fat intake (recommended: 70, current: 5.2)",
		"Increase carbs intake (recommended: 260, current: 28.6)",
		"Increase fiber intake (recommended: 30, current: 4.8)",
		"Increase vitaminC intake (recommended: 90, current: 9.2)",
	}, result.Suggestions)
	require.Len(t, result.Chart, 6)
	assert.Equal(t, models.ChartRow{Name: models.Protein, Intake: 6.9, Recommended: 50}, result.Chart[1])

	assert.Equal(t, []models.Submission{sub}, svc.Submissions(context.Background()))
	assert.Equal(t, []models.Submission{sub}, persister.saved[SnapshotSubmissions])
	assert.Equal(t, []models.Submission{sub}, publisher.published)
}

func TestAnalysisService_ChildThresholds(t *testing.T) {
	svc, _ := newTestAnalysisService(t, nil, nil)

	result, err := svc.Analyze(context.Background(), models.AnalysisRequest{
		Age: 17, Weight: 50, Height: 160, Activity: "active",
		Meals: []models.MealEntry{{Food: "Chicken Breast", Portion: 1.5}},
	})
	require.NoError(t, err)

	assert.Equal(t, models.GroupChild, result.Group)
	assert.Equal(t, 30.0, result.Thresholds[models.Protein])
	assert.Equal(t, "active", result.Submission.Activity)
	assert.Contains(t, result.Suggestions, "Reduce protein intake (recommended: 30, current: 46.5)")
}

func TestAnalysisService_UnknownFoodsStillRecorded(t *testing.T) {
	svc, _ := newTestAnalysisService(t, nil, nil)

	result, err := svc.Analyze(context.Background(), models.AnalysisRequest{
		Age: 40, Weight: 80, Height: 180,
		Meals: []models.MealEntry{{Food: "Durian", Portion: 1}},
	})
	require.NoError(t, err)

	assert.Equal(t, models.NutrientTotals{}, result.Submission.Nutrients)
	assert.Len(t, svc.Submissions(context.Background()), 1)
}

func TestAnalysisService_RefusesIncompleteInput(t *testing.T) {
	meals := []models.MealEntry{{Food: "Apple", Portion: 1}}

	tests := []struct {
		name    string
		req     models.AnalysisRequest
		wantErr error
	}{
		{name: "missing age", req: models.AnalysisRequest{Weight: 70, Height: 175, Meals: meals}, wantErr: ErrMissingInput},
		{name: "missing weight", req: models.AnalysisRequest{Age: 30, Height: 175, Meals: meals}, wantErr: ErrMissingInput},
		{name: "missing height", req: models.AnalysisRequest{Age: 30, Weight: 70, Meals: meals}, wantErr: ErrMissingInput},
		{name: "nil meals", req: models.AnalysisRequest{Age: 30, Weight: 70, Height: 175}, wantErr: ErrMissingInput},
		{name: "empty meals", req: models.AnalysisRequest{Age: 30, Weight: 70, Height: 175, Meals: []models.MealEntry{}}, wantErr: ErrMissingInput},
		{name: "negative age", req: models.AnalysisRequest{Age: -3, Weight: 70, Height: 175, Meals: meals}, wantErr: ErrInvalidInput},
		{
			name:    "zero portion",
			req:     models.AnalysisRequest{Age: 30, Weight: 70, Height: 175, Meals: []models.MealEntry{{Food: "Apple", Portion: 0}}},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			persister := &recordingPersister{}
			publisher := &recordingPublisher{}
			svc, _ := newTestAnalysisService(t, persister, publisher)

			result, err := svc.Analyze(context.Background(), tt.req)

			assert.Nil(t, result)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			assert.Empty(t, svc.Submissions(context.Background()))
			assert.Zero(t, persister.calls)
			assert.Empty(t, publisher.published)
		})
	}
}

func TestAnalysisService_PublishFailureIsNotFatal(t *testing.T) {
	svc, _ := newTestAnalysisService(t, nil, &recordingPublisher{err: errors.New("broker down")})

	_, err := svc.Analyze(context.Background(), models.AnalysisRequest{
		Age: 30, Weight: 70, Height: 175,
		Meals: []models.MealEntry{{Food: "Rice", Portion: 1}},
	})
	require.NoError(t, err)
	assert.Len(t, svc.Submissions(context.Background()), 1)
}

func TestAnalysisService_ExportCSV(t *testing.T) {
	svc, _ := newTestAnalysisService(t, nil, nil)
	ctx := context.Background()

	assert.Equal(t, "", svc.ExportCSV(ctx))

	_, err := svc.Analyze(ctx, models.AnalysisRequest{
		Age: 30, Weight: 70, Height: 175,
		Meals: []models.MealEntry{{Food: "Rice", Portion: 1}},
	})
	require.NoError(t, err)

	csv := svc.ExportCSV(ctx)
	assert.Contains(t, csv, "id,age,weight,height,activity,meals,nutrients,date\n")
	assert.Contains(t, csv, ",30,70,175,sedentary,[{Rice 1}],")
}

func TestAnalysisService_UsesCurrentCatalog(t *testing.T) {
	ctx := context.Background()
	svc, ws := newTestAnalysisService(t, nil, nil)
	catalog := NewCatalogService(ws, nil, logger.New("error"))

	_, err := catalog.EditField(ctx, 0, "calories", 100.0)
	require.NoError(t, err)

	result, err := svc.Analyze(ctx, models.AnalysisRequest{
		Age: 30, Weight: 70, Height: 175,
		Meals: []models.MealEntry{{Food: "Apple", Portion: 2}},
	})
	require.NoError(t, err)
	assert.InDelta(t, 200, result.Submission.Nutrients.Calories, 1e-9)
}
