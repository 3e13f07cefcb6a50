package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"alfredoptarigan/ai-mentorship/internal/models"
)

func newTestSanitizer() *ResponseSanitizer {
	return NewResponseSanitizer(zap.NewNop())
}

func TestCleanStripsCodeFences(t *testing.T) {
	s := newTestSanitizer()

	assert.Equal(t, `{"a":1}`, s.Clean("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `[1,2]`, s.Clean("```\n[1,2]\n```   "))
}

func TestCleanDropsSurroundingProse(t *testing.T) {
	s := newTestSanitizer()

	raw := "Sure! Here are your questions:\n[{\"id\":1}]\nLet me know if you need more."
	assert.Equal(t, `[{"id":1}]`, s.Clean(raw))
}

func TestCleanCollapsesOverEscaping(t *testing.T) {
	s := newTestSanitizer()

	assert.Equal(t, `{"type": "multiple_choice"}`, s.Clean(`{"type": "multiple\_choice"}`))
	assert.Equal(t, `{"a": "b"}`, s.Clean(`{\"a\": \"b\"}`))
	assert.Equal(t, `{"p": "C:\x"}`, s.Clean(`{"p": "C:\\x"}`))
}

func TestCleanLeavesProseWithoutBrackets(t *testing.T) {
	s := newTestSanitizer()
	assert.Equal(t, "I cannot help with that.", s.Clean("  I cannot help with that.  "))
}

func TestParseQuestionsNormalizesEscapedType(t *testing.T) {
	s := newTestSanitizer()

	raw := "```json\n[{\"id\": 1, \"question\": \"Pick one\", \"type\": \"multiple\\_choice\", \"options\": [\"A\", \"B\"]}," +
		"{\"id\": 2, \"question\": \"Tell us more\", \"type\": \"free_text\", \"placeholder\": \"...\"}]\n```"

	questions, err := s.ParseQuestions(raw)
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, models.QuestionTypeMultipleChoice, questions[0].Type)
	assert.Equal(t, []string{"A", "B"}, questions[0].Options)
	assert.Equal(t, models.QuestionTypeText, questions[1].Type)
	assert.Equal(t, "...", questions[1].Placeholder)
}

func TestParseQuestionFromObject(t *testing.T) {
	s := newTestSanitizer()

	raw := `Here you go: {"id": 4, "question": "What motivates you?", "type": "text", "placeholder": "Be honest"} Thanks!`
	q, err := s.ParseQuestion(raw)
	require.NoError(t, err)
	assert.Equal(t, 4, q.ID)
	assert.Equal(t, models.QuestionTypeText, q.Type)
	assert.Equal(t, "Be honest", q.Placeholder)
}

func TestParseFailsOnProse(t *testing.T) {
	s := newTestSanitizer()

	_, err := s.ParseQuestions("I'm sorry, I can't generate questions right now.")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedOutput))

	_, err = s.ParseQuestion("no json here")
	assert.ErrorIs(t, err, ErrMalformedOutput)

	_, err = s.ParseAnalysis("nothing useful")
	assert.ErrorIs(t, err, ErrMalformedOutput)
}

func TestParseRejectsWrongShape(t *testing.T) {
	s := newTestSanitizer()

	_, err := s.ParseQuestions(`{"id": 1, "question": "Only one", "type": "text"}`)
	assert.ErrorIs(t, err, ErrMalformedOutput)

	_, err = s.ParseQuestions(`[]`)
	assert.ErrorIs(t, err, ErrMalformedOutput)

	_, err = s.ParseQuestion(`{"id": 1, "question": "Pick", "type": "multiple_choice", "options": []}`)
	assert.ErrorIs(t, err, ErrMalformedOutput)

	_, err = s.ParseQuestion(`{"id": 1, "question": "  ", "type": "text"}`)
	assert.ErrorIs(t, err, ErrMalformedOutput)

	_, err = s.ParseAnalysis(`{"personalityProfile": {"type": "Builder"}, "careerRecommendations": []}`)
	assert.ErrorIs(t, err, ErrMalformedOutput)
}

func TestParseAnalysisClampsPercentages(t *testing.T) {
	s := newTestSanitizer()

	raw := `{
	  "personalityProfile": {"type": "Builder", "description": "d", "strengths": ["x"], "workStyle": "w"},
	  "skillsAssessment": {
	    "technical": [{"skill": "Go", "level": 140, "growth": "g"}],
	    "soft": [{"skill": "Listening", "level": -5, "growth": "g"}]
	  },
	  "careerRecommendations": [{"title": "SRE", "match": 101, "reasoning": "r", "growthPath": "p", "timeToTransition": "t"}],
	  "actionPlan": {"immediate": ["a"], "shortTerm": ["b"], "longTerm": ["c"]},
	  "mentoringNeeds": ["m"]
	}`

	analysis, err := s.ParseAnalysis(raw)
	require.NoError(t, err)
	assert.Equal(t, 100, analysis.SkillsAssessment.Technical[0].Level)
	assert.Equal(t, 0, analysis.SkillsAssessment.Soft[0].Level)
	assert.Equal(t, 100, analysis.CareerRecommendations[0].Match)
}

func TestNormalizeQuestionType(t *testing.T) {
	assert.Equal(t, models.QuestionTypeMultipleChoice, NormalizeQuestionType("multiple_choice"))
	assert.Equal(t, models.QuestionTypeMultipleChoice, NormalizeQuestionType(`multiple\_choice`))
	assert.Equal(t, models.QuestionTypeText, NormalizeQuestionType("multiple-choice"))
	assert.Equal(t, models.QuestionTypeText, NormalizeQuestionType(""))
}
