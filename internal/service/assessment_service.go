package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"wellcheck/internal/cache"
	"wellcheck/internal/model"
	"wellcheck/internal/repository"
	"wellcheck/internal/scoring"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrSessionNotFound  = errors.New("assessment session not found")
	ErrUnknownQuestion  = errors.New("unknown question")
	ErrInvalidAnswer    = fmt.Errorf("answer must be between %d and %d", model.MinScore, model.MaxScore)
	ErrAlreadySubmitted = errors.New("assessment already submitted")
)

// AssessmentService runs respondent sessions: collecting answers and scoring them on submit
type AssessmentService struct {
	catalog     model.Catalog
	sessions    cache.SessionCache
	results     repository.ResultRepo
	board       cache.ScoreBoard
	authSvc     *AuthService
	tokenTTL    time.Duration
	broadcaster Broadcaster
	logger      *zap.Logger
}

// NewAssessmentService creates a new assessment service over a validated catalog
func NewAssessmentService(
	catalog model.Catalog,
	sessions cache.SessionCache,
	results repository.ResultRepo,
	board cache.ScoreBoard,
	authSvc *AuthService,
	tokenTTL time.Duration,
	logger *zap.Logger,
) *AssessmentService {
	return &AssessmentService{
		catalog:  catalog.Clone(),
		sessions: sessions,
		results:  results,
		board:    board,
		authSvc:  authSvc,
		tokenTTL: tokenTTL,
		logger:   logger,
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *AssessmentService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Catalog returns a copy of the catalog sessions are scored against
func (s *AssessmentService) Catalog() model.Catalog {
	return s.catalog.Clone()
}

// Start opens a new session with every question at the neutral default
func (s *AssessmentService) Start(ctx context.Context) (*model.StartResponse, error) {
	now := time.Now()
	session := &model.Session{
		ID:          uuid.NewString(),
		CatalogName: s.catalog.Name,
		Status:      model.SessionActive,
		Answers:     model.DefaultAnswerSet(s.catalog),
		StartedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.sessions.Set(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	token, err := s.authSvc.GenerateRespondentToken(session.ID, s.tokenTTL)
	if err != nil {
		if delErr := s.sessions.Delete(ctx, session.ID); delErr != nil {
			s.logger.Warn("failed to drop orphaned session", zap.String("session", session.ID), zap.Error(delErr))
		}
		return nil, err
	}

	s.logger.Info("assessment started", zap.String("session", session.ID))

	return &model.StartResponse{
		SessionID: session.ID,
		Token:     token,
		Answers:   session.Answers,
		Catalog:   s.Catalog(),
	}, nil
}

// Get returns the current state of a session
func (s *AssessmentService) Get(ctx context.Context, sessionID string) (*model.Session, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// RecordAnswer stores one answer. Keys and values are checked here so that a
// session only ever holds answers the scoring engine accepts.
func (s *AssessmentService) RecordAnswer(ctx context.Context, sessionID string, key model.AnswerKey, value int) (*model.Progress, error) {
	if !s.catalog.Contains(key) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownQuestion, key)
	}
	if !model.InRange(value) {
		return nil, ErrInvalidAnswer
	}

	session, err := s.sessions.Update(ctx, sessionID, func(sess *model.Session) error {
		if sess.Status == model.SessionSubmitted {
			return ErrAlreadySubmitted
		}
		sess.Answers.Set(key, value)
		sess.Touch(key)
		sess.UpdatedAt = time.Now()
		return nil
	})
	if errors.Is(err, ErrAlreadySubmitted) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	progress := s.progressOf(session)
	if s.broadcaster != nil {
		s.broadcaster.BroadcastToSession(sessionID, EventProgress, progress)
	}
	return progress, nil
}

// Progress reports how many categories the respondent has fully worked through
func (s *AssessmentService) Progress(ctx context.Context, sessionID string) (*model.Progress, error) {
	session, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.progressOf(session), nil
}

func (s *AssessmentService) progressOf(session *model.Session) *model.Progress {
	p := &model.Progress{
		SessionID:       session.ID,
		Categories:      make([]model.CategoryProgress, 0, len(s.catalog.Categories)),
		TotalCategories: len(s.catalog.Categories),
	}
	for _, cat := range s.catalog.Categories {
		cp := model.CategoryProgress{CategoryID: cat.ID, Total: len(cat.Questions)}
		for i := range cat.Questions {
			if session.IsTouched(model.AnswerKey{CategoryID: cat.ID, Index: i}) {
				cp.Answered++
			}
		}
		cp.Complete = cp.Answered == cp.Total
		if cp.Complete {
			p.CompletedCategories++
		}
		p.Categories = append(p.Categories, cp)
	}
	if p.TotalCategories > 0 {
		p.Fraction = float64(p.CompletedCategories) / float64(p.TotalCategories)
	}
	return p
}

// Submit scores the session, persists the result and publishes it. The
// session is marked submitted in the same transaction that reads the answers
// being scored, so a session can only ever be submitted once.
// Scoring errors are returned unchanged so callers can match them with errors.Is.
func (s *AssessmentService) Submit(ctx context.Context, sessionID string) (*model.Assessment, error) {
	var (
		report   *model.Report
		rejected error
	)
	session, err := s.sessions.Update(ctx, sessionID, func(sess *model.Session) error {
		rejected = nil
		if sess.Status == model.SessionSubmitted {
			rejected = ErrAlreadySubmitted
			return rejected
		}
		r, err := scoring.Evaluate(s.catalog, sess.Answers)
		if err != nil {
			rejected = err
			return err
		}
		report = r
		sess.Status = model.SessionSubmitted
		sess.UpdatedAt = time.Now()
		return nil
	})
	if rejected != nil {
		if !errors.Is(rejected, ErrAlreadySubmitted) {
			s.logger.Warn("assessment scoring failed", zap.String("session", sessionID), zap.Error(rejected))
		}
		return nil, rejected
	}
	if err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	assessment := &model.Assessment{
		SessionID:   session.ID,
		CatalogName: s.catalog.Name,
		Answers:     session.Answers.Entries(),
		Report:      *report,
		StartedAt:   session.StartedAt,
		CompletedAt: session.UpdatedAt,
	}

	if _, err := s.results.Save(ctx, assessment); err != nil {
		s.reopen(ctx, sessionID)
		return nil, fmt.Errorf("failed to save assessment: %w", err)
	}

	if err := s.board.Record(ctx, session.ID, report.Overall.Score); err != nil {
		s.logger.Warn("score board update failed", zap.String("session", sessionID), zap.Error(err))
	}

	s.logger.Info("assessment submitted",
		zap.String("session", sessionID),
		zap.Float64("overall", report.Overall.Score),
		zap.String("tier", string(report.Overall.Classification.Tier)))

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToSession(sessionID, EventCompleted, report)
		s.broadcaster.BroadcastToHosts(EventCompleted, map[string]interface{}{
			"sessionId": sessionID,
			"overall":   report.Overall,
		})
	}

	return assessment, nil
}

// reopen undoes the submitted mark after the result could not be persisted,
// so the respondent can retry
func (s *AssessmentService) reopen(ctx context.Context, sessionID string) {
	_, err := s.sessions.Update(ctx, sessionID, func(sess *model.Session) error {
		sess.Status = model.SessionActive
		return nil
	})
	if err != nil {
		s.logger.Error("failed to reopen session", zap.String("session", sessionID), zap.Error(err))
	}
}

// Discard drops a session from the cache. A submitted result stays stored
// and reachable through its report; the session itself can no longer be
// answered or submitted.
func (s *AssessmentService) Discard(ctx context.Context, sessionID string) error {
	if _, err := s.Get(ctx, sessionID); err != nil {
		return err
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	s.logger.Info("assessment discarded", zap.String("session", sessionID))
	return nil
}
