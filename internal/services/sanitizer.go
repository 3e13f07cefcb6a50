package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"alfredoptarigan/ai-mentorship/internal/models"
)

// ErrMalformedOutput marks generator output that could not be turned into
// the expected shape. Callers recover from it with fallback content.
var ErrMalformedOutput = errors.New("malformed generator output")

var fencePattern = regexp.MustCompile("```\\s*")

// escapedMultipleChoice is the mis-escaped type tag some generations emit.
const escapedMultipleChoice = `multiple\_choice`

type ResponseSanitizer struct {
	logger *zap.Logger
}

func NewResponseSanitizer(logger *zap.Logger) *ResponseSanitizer {
	return &ResponseSanitizer{logger: logger}
}

// Clean reduces raw generator text to the span most likely to decode as JSON.
// The steps are purely textual and never fail.
func (s *ResponseSanitizer) Clean(raw string) string {
	text := fencePattern.ReplaceAllString(raw, "")

	// Sequential passes, not a single-pass replacer.
	text = strings.ReplaceAll(text, `\_`, "_")
	text = strings.ReplaceAll(text, `\"`, `"`)
	text = strings.ReplaceAll(text, `\\`, `\`)

	text = strings.TrimSpace(text)

	start := firstIndex(text, "[", "{")
	if start > 0 {
		text = text[start:]
	}

	end := max(strings.LastIndex(text, "]"), strings.LastIndex(text, "}"))
	if end != -1 && end < len(text)-1 {
		text = text[:end+1]
	}

	return text
}

// ParseQuestions decodes the initial question array.
func (s *ResponseSanitizer) ParseQuestions(raw string) ([]models.Question, error) {
	cleaned := s.Clean(raw)

	var questions []models.Question
	if err := json.Unmarshal([]byte(cleaned), &questions); err != nil {
		return nil, s.fail("questions", raw, cleaned, err)
	}

	if len(questions) == 0 {
		return nil, s.fail("questions", raw, cleaned, errors.New("empty question list"))
	}

	for i := range questions {
		if err := normalizeQuestion(&questions[i]); err != nil {
			return nil, s.fail("questions", raw, cleaned, fmt.Errorf("question %d: %w", i, err))
		}
	}

	return questions, nil
}

// ParseQuestion decodes a single follow-up question object.
func (s *ResponseSanitizer) ParseQuestion(raw string) (models.Question, error) {
	cleaned := s.Clean(raw)

	var question models.Question
	if err := json.Unmarshal([]byte(cleaned), &question); err != nil {
		return models.Question{}, s.fail("question", raw, cleaned, err)
	}

	if err := normalizeQuestion(&question); err != nil {
		return models.Question{}, s.fail("question", raw, cleaned, err)
	}

	return question, nil
}

// ParseAnalysis decodes the terminal analysis object.
func (s *ResponseSanitizer) ParseAnalysis(raw string) (*models.AnalysisResult, error) {
	cleaned := s.Clean(raw)

	var analysis models.AnalysisResult
	if err := json.Unmarshal([]byte(cleaned), &analysis); err != nil {
		return nil, s.fail("analysis", raw, cleaned, err)
	}

	if strings.TrimSpace(analysis.PersonalityProfile.Type) == "" {
		return nil, s.fail("analysis", raw, cleaned, errors.New("missing personality profile type"))
	}
	if len(analysis.CareerRecommendations) == 0 {
		return nil, s.fail("analysis", raw, cleaned, errors.New("missing career recommendations"))
	}

	for i := range analysis.SkillsAssessment.Technical {
		analysis.SkillsAssessment.Technical[i].Level = clampPercent(analysis.SkillsAssessment.Technical[i].Level)
	}
	for i := range analysis.SkillsAssessment.Soft {
		analysis.SkillsAssessment.Soft[i].Level = clampPercent(analysis.SkillsAssessment.Soft[i].Level)
	}
	for i := range analysis.CareerRecommendations {
		analysis.CareerRecommendations[i].Match = clampPercent(analysis.CareerRecommendations[i].Match)
	}

	return &analysis, nil
}

func (s *ResponseSanitizer) fail(shape, raw, cleaned string, err error) error {
	s.logger.Warn("failed to parse generator output",
		zap.String("shape", shape),
		zap.String("raw", raw),
		zap.String("cleaned", cleaned),
		zap.Error(err),
	)
	return fmt.Errorf("%w: %s: %v", ErrMalformedOutput, shape, err)
}

// NormalizeQuestionType coerces the type tag. Only the canonical literal and
// its mis-escaped variant map to multiple_choice; everything else is text.
// This is a narrow heuristic for one generator's escaping habit.
func NormalizeQuestionType(raw models.QuestionType) models.QuestionType {
	switch raw {
	case models.QuestionTypeMultipleChoice, escapedMultipleChoice:
		return models.QuestionTypeMultipleChoice
	default:
		return models.QuestionTypeText
	}
}

func normalizeQuestion(q *models.Question) error {
	q.Type = NormalizeQuestionType(q.Type)
	q.Question = strings.TrimSpace(q.Question)
	if q.Question == "" {
		return errors.New("missing question text")
	}

	if !q.IsMultipleChoice() {
		q.Options = nil
		return nil
	}

	options := q.Options[:0]
	for _, opt := range q.Options {
		if opt = strings.TrimSpace(opt); opt != "" {
			options = append(options, opt)
		}
	}
	if len(options) == 0 {
		return errors.New("multiple choice question without options")
	}
	q.Options = options
	q.Placeholder = ""
	return nil
}

func firstIndex(text string, needles ...string) int {
	first := -1
	for _, n := range needles {
		if i := strings.Index(text, n); i != -1 && (first == -1 || i < first) {
			first = i
		}
	}
	return first
}

func clampPercent(v int) int {
	return min(max(v, 0), 100)
}
