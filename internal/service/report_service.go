package service

import (
	"context"
	"errors"
	"wellcheck/internal/cache"
	"wellcheck/internal/model"
	"wellcheck/internal/repository"
)

var ErrResultNotFound = errors.New("assessment result not found")

const (
	defaultRecentLimit = 20
	maxRecentLimit     = 100
)

// ReportService serves submitted assessments and aggregate statistics
type ReportService struct {
	results repository.ResultRepo
	board   cache.ScoreBoard
}

// NewReportService creates a new report service
func NewReportService(results repository.ResultRepo, board cache.ScoreBoard) *ReportService {
	return &ReportService{
		results: results,
		board:   board,
	}
}

// Get returns the stored result of a submitted session
func (s *ReportService) Get(ctx context.Context, sessionID string) (*model.Assessment, error) {
	a, err := s.results.GetBySessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrResultNotFound
	}
	return a, nil
}

// Recent returns the newest submitted assessments, clamping limit to [1,100]
func (s *ReportService) Recent(ctx context.Context, limit int) ([]*model.Assessment, error) {
	results, err := s.results.ListRecent(ctx, int64(clampLimit(limit)))
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []*model.Assessment{}
	}
	return results, nil
}

// Stats returns the tier distribution of all submitted overall scores
func (s *ReportService) Stats(ctx context.Context) (*model.TierStats, error) {
	return s.board.Stats(ctx)
}

// Top returns the highest overall scores, clamping limit like Recent
func (s *ReportService) Top(ctx context.Context, limit int) ([]cache.ScoreEntry, error) {
	return s.board.Top(ctx, clampLimit(limit))
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultRecentLimit
	}
	if limit > maxRecentLimit {
		return maxRecentLimit
	}
	return limit
}
