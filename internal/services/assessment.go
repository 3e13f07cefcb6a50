package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"alfredoptarigan/ai-mentorship/internal/models"
)

// InitialQuestionCount is how many questions the opening request yields.
const InitialQuestionCount = 3

type AssessmentService interface {
	GenerateQuestions(ctx context.Context, profile models.UserProfile) ([]models.Question, error)
	NextQuestion(ctx context.Context, profile models.UserProfile, responses []models.Response, index int) (models.Question, error)
	Analyze(ctx context.Context, profile models.UserProfile, responses []models.Response) (*models.AnalysisResult, error)
}

type AssessmentOptions struct {
	// Timeout bounds each generator call. Zero leaves the caller's context alone.
	Timeout time.Duration
	// FallbackOnGeneratorError serves canned content when the generator call
	// fails instead of returning the error.
	FallbackOnGeneratorError bool
}

type assessmentService struct {
	generator     TextGenerator
	promptBuilder *PromptBuilder
	sanitizer     *ResponseSanitizer
	fallback      *FallbackGenerator
	metrics       *Metrics
	logger        *zap.Logger
	opts          AssessmentOptions
}

// NewAssessmentService wires the question/analysis pipeline. A nil generator
// is allowed: every call then fails with ErrNotConfigured.
func NewAssessmentService(
	generator TextGenerator,
	metrics *Metrics,
	logger *zap.Logger,
	opts AssessmentOptions,
) AssessmentService {
	return &assessmentService{
		generator:     generator,
		promptBuilder: NewPromptBuilder(),
		sanitizer:     NewResponseSanitizer(logger),
		fallback:      NewFallbackGenerator(),
		metrics:       metrics,
		logger:        logger,
		opts:          opts,
	}
}

// GenerateQuestions implements AssessmentService.
func (s *assessmentService) GenerateQuestions(ctx context.Context, profile models.UserProfile) ([]models.Question, error) {
	prompt := s.promptBuilder.BuildInitialQuestionsPrompt(profile)

	raw, elapsed, err := s.generate(ctx, prompt)
	if err != nil {
		if s.recoverable(err) {
			s.logger.Warn("generator failed, serving fallback questions", zap.Error(err))
			s.metrics.observe(KindQuestions, OutcomeFallback, elapsed)
			return s.fallback.FallbackQuestions(profile), nil
		}
		s.metrics.observe(KindQuestions, OutcomeError, elapsed)
		return nil, err
	}

	questions, err := s.sanitizer.ParseQuestions(raw)
	if err != nil {
		s.metrics.observe(KindQuestions, OutcomeFallback, elapsed)
		return s.fallback.FallbackQuestions(profile), nil
	}

	if len(questions) > InitialQuestionCount {
		questions = questions[:InitialQuestionCount]
	}
	for i := range questions {
		questions[i].ID = i + 1
	}

	s.metrics.observe(KindQuestions, OutcomeGenerated, elapsed)
	return questions, nil
}

// NextQuestion implements AssessmentService. The returned question always
// carries id index+1.
func (s *assessmentService) NextQuestion(ctx context.Context, profile models.UserProfile, responses []models.Response, index int) (models.Question, error) {
	prompt := s.promptBuilder.BuildNextQuestionPrompt(profile, responses, index)

	raw, elapsed, err := s.generate(ctx, prompt)
	if err != nil {
		if s.recoverable(err) {
			s.logger.Warn("generator failed, serving fallback question", zap.Int("index", index), zap.Error(err))
			s.metrics.observe(KindQuestion, OutcomeFallback, elapsed)
			return s.fallback.FallbackNextQuestion(profile, index), nil
		}
		s.metrics.observe(KindQuestion, OutcomeError, elapsed)
		return models.Question{}, err
	}

	question, err := s.sanitizer.ParseQuestion(raw)
	if err != nil {
		s.metrics.observe(KindQuestion, OutcomeFallback, elapsed)
		return s.fallback.FallbackNextQuestion(profile, index), nil
	}

	question.ID = index + 1
	s.metrics.observe(KindQuestion, OutcomeGenerated, elapsed)
	return question, nil
}

// Analyze implements AssessmentService.
func (s *assessmentService) Analyze(ctx context.Context, profile models.UserProfile, responses []models.Response) (*models.AnalysisResult, error) {
	prompt := s.promptBuilder.BuildAnalysisPrompt(profile, responses)

	raw, elapsed, err := s.generate(ctx, prompt)
	if err != nil {
		if s.recoverable(err) {
			s.logger.Warn("generator failed, serving fallback analysis", zap.Error(err))
			s.metrics.observe(KindAnalysis, OutcomeFallback, elapsed)
			return s.fallback.FallbackAnalysis(profile, responses), nil
		}
		s.metrics.observe(KindAnalysis, OutcomeError, elapsed)
		return nil, err
	}

	analysis, err := s.sanitizer.ParseAnalysis(raw)
	if err != nil {
		s.metrics.observe(KindAnalysis, OutcomeFallback, elapsed)
		return s.fallback.FallbackAnalysis(profile, responses), nil
	}

	s.metrics.observe(KindAnalysis, OutcomeGenerated, elapsed)
	return analysis, nil
}

func (s *assessmentService) generate(ctx context.Context, prompt string) (string, time.Duration, error) {
	if s.generator == nil {
		return "", 0, ErrNotConfigured
	}

	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	start := time.Now()
	raw, err := s.generator.GenerateText(ctx, prompt)
	elapsed := time.Since(start)
	if err != nil {
		return "", elapsed, fmt.Errorf("generator call failed: %w", err)
	}

	return raw, elapsed, nil
}

// recoverable reports whether a generator failure may be papered over with
// fallback content. A missing credential never is.
func (s *assessmentService) recoverable(err error) bool {
	return s.opts.FallbackOnGeneratorError && !errors.Is(err, ErrNotConfigured)
}
