package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mindhaven/internal/cache"
	"mindhaven/internal/catalog"
	"mindhaven/internal/model"
	"mindhaven/internal/repository"
	"mindhaven/internal/scoring"
)

var (
	ErrAssessmentNotFound = errors.New("assessment not found")
	ErrAttemptNotFound    = errors.New("attempt not found")
	ErrAttemptFinished    = errors.New("attempt already scored")
	ErrNotAttemptOwner    = errors.New("attempt belongs to another user")
	ErrUnknownQuestion    = errors.New("question not in assessment")
)

// AttemptService owns the attempt lifecycle: answers accumulate in any order
// while in progress, submit runs the score→interpret→crisis pipeline in one
// synchronous step, and terminal attempts are persisted for longitudinal
// tracking.
type AttemptService struct {
	catalog      *catalog.Catalog
	attemptRepo  repository.AttemptRepository
	resultRepo   repository.ResultRepository
	attemptCache cache.AttemptCache
	resultCache  cache.ResultCache
	broadcaster  Broadcaster
	log          *zap.Logger
}

// NewAttemptService creates a new attempt service
func NewAttemptService(
	cat *catalog.Catalog,
	attemptRepo repository.AttemptRepository,
	resultRepo repository.ResultRepository,
	attemptCache cache.AttemptCache,
	resultCache cache.ResultCache,
	log *zap.Logger,
) *AttemptService {
	return &AttemptService{
		catalog:      cat,
		attemptRepo:  attemptRepo,
		resultRepo:   resultRepo,
		attemptCache: attemptCache,
		resultCache:  resultCache,
		log:          log,
	}
}

// SetBroadcaster sets the broadcaster for crisis escalation events
func (s *AttemptService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Start opens a new attempt at the given assessment
func (s *AttemptService) Start(ctx context.Context, userID, assessmentID string) (*model.Attempt, error) {
	def, ok := s.catalog.Get(assessmentID)
	if !ok {
		return nil, ErrAssessmentNotFound
	}

	attempt := &model.Attempt{
		ID:                "att_" + uuid.New().String(),
		UserID:            userID,
		AssessmentID:      def.ID,
		AssessmentVersion: def.Version,
		Status:            model.AttemptInProgress,
		Responses:         make(model.ResponseSet),
		StartedAt:         time.Now(),
	}

	if err := s.attemptRepo.Create(ctx, attempt); err != nil {
		return nil, err
	}
	if err := s.attemptCache.Set(ctx, attempt); err != nil {
		s.log.Warn("attempt cache set failed", zap.String("attemptId", attempt.ID), zap.Error(err))
	}
	return attempt, nil
}

// SaveAnswer records one answer on an in-progress attempt, overwriting any
// earlier answer to the same question. Values are checked against the
// question's domain up front so a bad client fails on the answer, not at
// submit.
func (s *AttemptService) SaveAnswer(ctx context.Context, userID, attemptID, questionID string, value model.AnswerValue) (*model.Attempt, error) {
	attempt, err := s.load(ctx, userID, attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.Terminal() {
		return nil, ErrAttemptFinished
	}

	def, ok := s.catalog.Get(attempt.AssessmentID)
	if !ok {
		return nil, ErrAssessmentNotFound
	}
	q := def.QuestionByID(questionID)
	if q == nil {
		return nil, ErrUnknownQuestion
	}
	if q.Answer.Scored() && !q.Answer.InDomain(value.Value) {
		return nil, &scoring.InvalidAnswerError{QuestionID: questionID, Value: value.Value}
	}

	attempt.Responses.Record(questionID, value)

	if err := s.attemptRepo.Update(ctx, attempt); err != nil {
		return nil, err
	}
	if err := s.attemptCache.Set(ctx, attempt); err != nil {
		s.log.Warn("attempt cache set failed", zap.String("attemptId", attempt.ID), zap.Error(err))
	}
	return attempt, nil
}

// Submit scores the attempt. An *scoring.IncompleteResponseError leaves the
// attempt in progress so the caller can invite the user to finish; any other
// outcome is terminal. Scoring operates on a snapshot of the responses, so a
// concurrent answer cannot tear the input mid-pipeline.
func (s *AttemptService) Submit(ctx context.Context, userID, attemptID string) (*model.ScoreResult, error) {
	attempt, err := s.load(ctx, userID, attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.Terminal() {
		return nil, ErrAttemptFinished
	}

	def, ok := s.catalog.Get(attempt.AssessmentID)
	if !ok {
		return nil, ErrAssessmentNotFound
	}

	snapshot := attempt.Responses.Clone()
	result, err := scoring.Score(def, snapshot)
	if err != nil {
		return nil, err
	}
	for _, w := range result.Warnings {
		s.log.Warn("score warning",
			zap.String("attemptId", attempt.ID),
			zap.String("assessmentId", def.ID),
			zap.String("warning", string(w)))
	}

	now := time.Now()
	attempt.CompletedAt = &now
	attempt.Status = model.AttemptCompleted
	if result.CrisisFlag {
		attempt.Status = model.AttemptCrisisFlagged
	}
	if err := s.attemptRepo.Update(ctx, attempt); err != nil {
		return nil, err
	}
	if err := s.attemptCache.Delete(ctx, attempt.ID); err != nil {
		s.log.Warn("attempt cache delete failed", zap.String("attemptId", attempt.ID), zap.Error(err))
	}

	record := &model.AssessmentResult{
		ID:                "res_" + uuid.New().String(),
		UserID:            attempt.UserID,
		AssessmentID:      attempt.AssessmentID,
		AssessmentVersion: attempt.AssessmentVersion,
		AttemptID:         attempt.ID,
		Responses:         snapshot,
		Result:            *result,
		CompletedAt:       now,
	}
	if err := s.resultRepo.Create(ctx, record); err != nil {
		return nil, err
	}
	if err := s.resultCache.Invalidate(ctx, attempt.UserID); err != nil {
		s.log.Warn("history cache invalidate failed", zap.String("userId", attempt.UserID), zap.Error(err))
	}

	if result.CrisisFlag && s.broadcaster != nil {
		s.broadcaster.BroadcastCrisisAlert(&model.CrisisAlert{
			AttemptID:    attempt.ID,
			UserID:       attempt.UserID,
			AssessmentID: attempt.AssessmentID,
			CrisisID:     result.CrisisID,
			Severity:     result.Interpretation.Severity,
			RawScore:     result.RawScore,
			OccurredAt:   now,
		})
	}

	return result, nil
}

// Get returns the caller's attempt
func (s *AttemptService) Get(ctx context.Context, userID, attemptID string) (*model.Attempt, error) {
	return s.load(ctx, userID, attemptID)
}

// History returns the user's completed results, most recent first
func (s *AttemptService) History(ctx context.Context, userID string) ([]*model.AssessmentResult, error) {
	if cached, err := s.resultCache.GetHistory(ctx, userID); err == nil {
		return cached, nil
	}
	results, err := s.resultRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.resultCache.SetHistory(ctx, userID, results); err != nil {
		s.log.Warn("history cache set failed", zap.String("userId", userID), zap.Error(err))
	}
	return results, nil
}

// HistoryByAssessment returns the user's results for one instrument, the
// longitudinal view a clinician tracks between visits
func (s *AttemptService) HistoryByAssessment(ctx context.Context, userID, assessmentID string) ([]*model.AssessmentResult, error) {
	return s.resultRepo.GetByUserAndAssessment(ctx, userID, assessmentID)
}

func (s *AttemptService) load(ctx context.Context, userID, attemptID string) (*model.Attempt, error) {
	attempt, err := s.attemptCache.Get(ctx, attemptID)
	if err != nil {
		attempt, err = s.attemptRepo.GetByID(ctx, attemptID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrAttemptNotFound
			}
			return nil, err
		}
	}
	if attempt.UserID != userID {
		return nil, ErrNotAttemptOwner
	}
	return attempt, nil
}
