package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/pageza/mealplan/backend/internal/errors"
	"github.com/pageza/mealplan/backend/internal/logger"
	"github.com/pageza/mealplan/backend/internal/model"
)

const (
	defaultFetchLogLimit = 50
	maxFetchLogLimit     = 200
)

// FetchLogService stores and reads upstream fetch records
type FetchLogService struct {
	db *gorm.DB
}

// NewFetchLogService creates a new FetchLogService instance
func NewFetchLogService(db *gorm.DB) *FetchLogService {
	return &FetchLogService{db: db}
}

// Record inserts one fetch log row
func (s *FetchLogService) Record(ctx context.Context, entry *model.FetchLog) error {
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return apperrors.NewDatabaseError(err)
	}
	return nil
}

// Recent returns the newest rows first. A non-positive limit means the
// default; larger limits are capped.
func (s *FetchLogService) Recent(ctx context.Context, limit int) ([]model.FetchLog, error) {
	if limit <= 0 {
		limit = defaultFetchLogLimit
	}
	if limit > maxFetchLogLimit {
		limit = maxFetchLogLimit
	}

	var entries []model.FetchLog
	if err := s.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&entries).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return entries, nil
}

// RecordingProvider writes a FetchLog row for every call it forwards.
// Recorder failures are logged and never returned to the caller.
type RecordingProvider struct {
	next     RecipeProvider
	recorder FetchRecorder
}

// NewRecordingProvider wraps next with recorder
func NewRecordingProvider(next RecipeProvider, recorder FetchRecorder) *RecordingProvider {
	return &RecordingProvider{next: next, recorder: recorder}
}

func (p *RecordingProvider) Name() string {
	return p.next.Name()
}

func (p *RecordingProvider) FetchCandidates(ctx context.Context, category model.MealCategory, constraint model.DietConstraint) ([]model.RecipeCandidate, error) {
	start := time.Now()
	candidates, err := p.next.FetchCandidates(ctx, category, constraint)

	record(ctx, p.recorder, &model.FetchLog{
		Provider: p.next.Name(),
		Category: string(category),
		Diet:     constraint.Diet,
	}, start, len(candidates), err)

	return candidates, err
}

// RecordingSearcher is the RecipeSearcher counterpart of RecordingProvider
type RecordingSearcher struct {
	next     RecipeSearcher
	recorder FetchRecorder
}

// NewRecordingSearcher wraps next with recorder
func NewRecordingSearcher(next RecipeSearcher, recorder FetchRecorder) *RecordingSearcher {
	return &RecordingSearcher{next: next, recorder: recorder}
}

func (s *RecordingSearcher) Name() string {
	return s.next.Name()
}

func (s *RecordingSearcher) Search(ctx context.Context, query string) ([]model.RecipeCandidate, error) {
	start := time.Now()
	candidates, err := s.next.Search(ctx, query)

	record(ctx, s.recorder, &model.FetchLog{
		Provider: s.next.Name(),
		Query:    query,
	}, start, len(candidates), err)

	return candidates, err
}

func record(ctx context.Context, recorder FetchRecorder, entry *model.FetchLog, start time.Time, count int, err error) {
	entry.DurationMS = time.Since(start).Milliseconds()
	entry.Candidates = count

	switch {
	case err != nil:
		entry.Status = model.FetchFailed
		entry.ErrorType = string(apperrors.TypeOf(err))
		entry.Error = err.Error()
	case count == 0:
		entry.Status = model.FetchEmpty
	default:
		entry.Status = model.FetchOK
	}

	// The row is written even when the request context was cancelled.
	if recErr := recorder.Record(context.WithoutCancel(ctx), entry); recErr != nil {
		logger.Warn("failed to record upstream fetch",
			"provider", entry.Provider,
			"category", entry.Category,
			"error", recErr,
		)
	}
}
