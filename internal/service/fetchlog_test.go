package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/pageza/mealplan/backend/internal/errors"
	"github.com/pageza/mealplan/backend/internal/model"
	"github.com/pageza/mealplan/backend/internal/testhelpers"
)

func TestFetchLogServiceRecent(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := NewFetchLogService(db)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := range 5 {
		entry := &model.FetchLog{
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			Provider:  "edamam",
			Category:  fmt.Sprintf("c%d", i),
			Status:    model.FetchOK,
		}
		require.NoError(t, svc.Record(ctx, entry))
	}

	entries, err := svc.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "c4", entries[0].Category)
	assert.Equal(t, "c3", entries[1].Category)

	entries, err = svc.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 5)
}

func TestFetchLogServiceRecordDatabaseError(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	err = NewFetchLogService(db).Record(context.Background(), &model.FetchLog{Provider: "edamam", Status: model.FetchOK})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeDatabase, apperrors.TypeOf(err))
}

type recorderFunc func(ctx context.Context, entry *model.FetchLog) error

func (f recorderFunc) Record(ctx context.Context, entry *model.FetchLog) error { return f(ctx, entry) }

func TestRecordingProvider(t *testing.T) {
	var recorded []*model.FetchLog
	recorder := recorderFunc(func(_ context.Context, entry *model.FetchLog) error {
		recorded = append(recorded, entry)
		return nil
	})
	provider := &stubProvider{
		results: map[model.MealCategory][]model.RecipeCandidate{model.Lunch: titled("l", 3)},
		errs:    map[model.MealCategory]error{model.Dinner: apperrors.NewNetworkError(context.DeadlineExceeded, "stub")},
	}
	rp := NewRecordingProvider(provider, recorder)
	ctx := context.Background()

	got, err := rp.FetchCandidates(ctx, model.Lunch, lowCarb())
	require.NoError(t, err)
	assert.Len(t, got, 3)

	_, err = rp.FetchCandidates(ctx, model.Dinner, lowCarb())
	require.Error(t, err)

	_, err = rp.FetchCandidates(ctx, model.Snack, lowCarb())
	require.NoError(t, err)

	require.Len(t, recorded, 3)
	assert.Equal(t, model.FetchLog{Provider: "stub", Category: "lunch", Diet: "low-carb", Status: model.FetchOK, Candidates: 3},
		withoutDuration(recorded[0]))
	assert.Equal(t, model.FetchFailed, recorded[1].Status)
	assert.Equal(t, "timeout", recorded[1].ErrorType)
	assert.NotEmpty(t, recorded[1].Error)
	assert.Equal(t, model.FetchEmpty, recorded[2].Status)
}

func TestRecordingProviderSwallowsRecorderErrors(t *testing.T) {
	recorder := recorderFunc(func(context.Context, *model.FetchLog) error {
		return errors.New("disk full")
	})
	provider := &stubProvider{results: map[model.MealCategory][]model.RecipeCandidate{model.Snack: titled("s", 1)}}

	got, err := NewRecordingProvider(provider, recorder).FetchCandidates(context.Background(), model.Snack, lowCarb())
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestRecordingSearcherOutlivesCancelledRequest(t *testing.T) {
	var recordCtxErr error
	recorder := recorderFunc(func(ctx context.Context, entry *model.FetchLog) error {
		recordCtxErr = ctx.Err()
		assert.Equal(t, "tacos", entry.Query)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRecordingSearcher(&stubSearcher{}, recorder).Search(ctx, "tacos")
	require.NoError(t, err)
	assert.NoError(t, recordCtxErr)
}

func TestRecordingProviderWritesToDatabase(t *testing.T) {
	svc := NewFetchLogService(testhelpers.SetupSQLite(t))
	provider := &stubProvider{results: map[model.MealCategory][]model.RecipeCandidate{model.Breakfast: titled("b", 2)}}

	_, err := NewRecordingProvider(provider, svc).FetchCandidates(context.Background(), model.Breakfast, lowCarb())
	require.NoError(t, err)

	entries, err := svc.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "breakfast", entries[0].Category)
	assert.Equal(t, 2, entries[0].Candidates)
}

func withoutDuration(entry *model.FetchLog) model.FetchLog {
	out := *entry
	out.DurationMS = 0
	return out
}
