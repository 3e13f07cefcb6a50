package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"alfredoptarigan/ai-mentorship/internal/models"
)

func TestPromptsEmbedProfileAndFormatRules(t *testing.T) {
	pb := NewPromptBuilder()
	profile := models.UserProfile{LifeStage: "Career changer/seeking new direction", Field: "Education", Goal: "Planning a career change"}
	responses := []models.Response{{QuestionID: 1, Question: "Why change?", Answer: "Other: burnout"}}

	initial := pb.BuildInitialQuestionsPrompt(profile)
	assert.Contains(t, initial, "Generate 3 career assessment questions")
	assert.Contains(t, initial, "Field/Interest: Education")
	assert.Contains(t, initial, "NO markdown formatting")
	assert.Contains(t, initial, `"multiple_choice"`)
	assert.Contains(t, initial, `"text"`)

	next := pb.BuildNextQuestionPrompt(profile, responses, 5)
	assert.Contains(t, next, `"id": 6`)
	assert.Contains(t, next, `"answer":"Other: burnout"`)
	assert.Contains(t, next, "Return ONLY valid JSON object")

	analysis := pb.BuildAnalysisPrompt(profile, responses)
	assert.Contains(t, analysis, "responses from a Career changer/seeking new direction interested in Education")
	assert.Contains(t, analysis, `"lifeStage":"Career changer/seeking new direction"`)
	assert.Contains(t, analysis, `"careerRecommendations"`)
	assert.False(t, strings.Contains(analysis, "%!"), "format verbs must all be consumed")
}

func TestPromptsAreDeterministic(t *testing.T) {
	pb := NewPromptBuilder()
	profile := models.UserProfile{LifeStage: "College/University student", Field: "Arts/Creative", Goal: "Finding my first job"}

	assert.Equal(t, pb.BuildAnalysisPrompt(profile, nil), pb.BuildAnalysisPrompt(profile, nil))
	assert.Equal(t, pb.BuildNextQuestionPrompt(profile, nil, 3), pb.BuildNextQuestionPrompt(profile, nil, 3))
}
