package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"quizbank/internal/cache"
	"quizbank/internal/model"
	"quizbank/internal/repository"
)

// ErrValidation wraps payload validation failures so handlers can map
// them to 400 without inspecting validator internals.
var ErrValidation = errors.New("invalid question payload")

// HealthStatus reports reachability of the persistence backend.
type HealthStatus struct {
	Status    string    `json:"status"`
	Database  string    `json:"database"`
	Timestamp time.Time `json:"timestamp"`
}

// QuestionService handles question CRUD operations and input validation.
type QuestionService struct {
	repo     repository.QuestionRepo
	cache    cache.QuestionCache
	validate *validator.Validate
	logger   *zap.Logger
}

// NewQuestionService creates a new question service.
func NewQuestionService(repo repository.QuestionRepo, questionCache cache.QuestionCache, logger *zap.Logger) *QuestionService {
	return &QuestionService{
		repo:     repo,
		cache:    questionCache,
		validate: validator.New(),
		logger:   logger,
	}
}

// List returns all questions ordered by id ascending, reading through
// the cache when possible. Cache failures degrade to the repository.
func (s *QuestionService) List(ctx context.Context) ([]model.Question, error) {
	if s.cache != nil {
		questions, err := s.cache.GetList(ctx)
		if err == nil {
			return questions, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("question cache read failed", zap.Error(err))
		}
	}

	questions, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetList(ctx, questions); err != nil {
			s.logger.Warn("question cache write failed", zap.Error(err))
		}
	}

	return questions, nil
}

// GetByID returns one question or model.ErrNotFound.
func (s *QuestionService) GetByID(ctx context.Context, id int64) (*model.Question, error) {
	return s.repo.GetByID(ctx, id)
}

// Create validates the payload and inserts a new question.
func (s *QuestionService) Create(ctx context.Context, in model.QuestionInput) (*model.Question, error) {
	if err := s.validateInput(in); err != nil {
		return nil, err
	}

	q, err := s.repo.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	return q, nil
}

// Update validates the payload and replaces all mutable fields of an
// existing question.
func (s *QuestionService) Update(ctx context.Context, id int64, in model.QuestionInput) (*model.Question, error) {
	if err := s.validateInput(in); err != nil {
		return nil, err
	}

	q, err := s.repo.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	return q, nil
}

// Delete removes a question, refusing to empty the table.
func (s *QuestionService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)

	return nil
}

// Health pings the persistence backend.
func (s *QuestionService) Health(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "ok",
		Database:  "connected",
		Timestamp: time.Now().UTC(),
	}

	if err := s.repo.Ping(ctx); err != nil {
		s.logger.Error("database ping failed", zap.Error(err))
		status.Status = "error"
		status.Database = "unreachable"
	}

	return status
}

func (s *QuestionService) validateInput(in model.QuestionInput) error {
	if err := s.validate.Struct(in); err != nil {
		if len(in.Options) != model.OptionCount {
			return fmt.Errorf("%w: options must contain exactly %d entries", ErrValidation, model.OptionCount)
		}
		if in.CorrectAnswer < 0 || in.CorrectAnswer >= model.OptionCount {
			return fmt.Errorf("%w: correctAnswer must be between 0 and %d", ErrValidation, model.OptionCount-1)
		}
		return fmt.Errorf("%w: question text is required", ErrValidation)
	}
	return nil
}

func (s *QuestionService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("question cache invalidation failed", zap.Error(err))
	}
}
