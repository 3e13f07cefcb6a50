package services

import (
	"encoding/json"
	"fmt"

	"alfredoptarigan/ai-mentorship/internal/models"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildInitialQuestionsPrompt asks for the first three questions as a JSON array.
func (pb *PromptBuilder) BuildInitialQuestionsPrompt(profile models.UserProfile) string {
	return fmt.Sprintf(`You are an expert career counselor. Generate 3 career assessment questions that are perfectly tailored to someone with this profile:

Life Stage: %s
Field/Interest: %s
Goal: %s

CRITICAL: Use only "multiple_choice" and "text" as type values (no underscores, no escaping)

ADAPTATION RULES:
- For HIGH SCHOOL STUDENTS: Focus on subjects, interests, learning styles, future aspirations, school projects
- For COLLEGE STUDENTS: Focus on studies, internships, extracurriculars, post-graduation plans, academic projects
- For WORKING PROFESSIONALS: Focus on work experiences, challenges, skills, career satisfaction, achievements
- For CAREER CHANGERS: Focus on motivations for change, transferable skills, new interests, transition goals

IMPORTANT: Return ONLY valid JSON array with NO markdown formatting, NO escaped characters.

Format exactly like this:
[
  {
    "id": 1,
    "question": "Your contextually appropriate question here",
    "type": "multiple_choice",
    "options": ["Option 1", "Option 2", "Option 3", "Option 4"]
  },
  {
    "id": 2,
    "question": "Another contextually appropriate question",
    "type": "text",
    "placeholder": "Helpful placeholder for their context"
  }
]`,
		profile.LifeStage, profile.Field, profile.Goal)
}

// BuildNextQuestionPrompt asks for one follow-up question object whose id is
// index+1.
func (pb *PromptBuilder) BuildNextQuestionPrompt(profile models.UserProfile, responses []models.Response, index int) string {
	id := index + 1
	return fmt.Sprintf(`Based on this user profile and their previous responses, generate the next insightful question:

User Profile:
- Life Stage: %s
- Field: %s
- Goal: %s

Previous Responses: %s

CRITICAL: Use only "multiple_choice" or "text" as type values (no escaping, no underscores with backslashes)

IMPORTANT: Return ONLY valid JSON object with NO markdown formatting.

Format exactly like this:
{
  "id": %d,
  "question": "Contextual follow-up question based on their profile and previous answers",
  "type": "multiple_choice",
  "options": ["Option 1", "Option 2", "Option 3", "Option 4"]
}

OR for text:

{
  "id": %d,
  "question": "Contextual follow-up question",
  "type": "text",
  "placeholder": "Relevant placeholder text"
}`,
		profile.LifeStage, profile.Field, profile.Goal, toJSON(responses), id, id)
}

// BuildAnalysisPrompt asks for the complete analysis object.
func (pb *PromptBuilder) BuildAnalysisPrompt(profile models.UserProfile, responses []models.Response) string {
	return fmt.Sprintf(`You are a senior career strategist analyzing responses from a %s interested in %s with the goal of %s.

User Profile: %s
Assessment Responses: %s

Provide a comprehensive analysis that is:
1. HIGHLY SPECIFIC to their life stage and field
2. References their actual responses with quotes
3. Includes realistic timelines and salary ranges for their level
4. Accounts for their current situation and goals
5. Provides actionable next steps appropriate for their stage

For HIGH SCHOOL STUDENTS: Focus on college preparation, major selection, early career exploration
For COLLEGE STUDENTS: Focus on internships, skill building, entry-level career paths
For WORKING PROFESSIONALS: Focus on advancement, skill development, industry trends
For CAREER CHANGERS: Focus on transferable skills, transition strategies, retraining needs

Return ONLY valid JSON with NO markdown formatting:

{
  "personalityProfile": {
    "type": "[Create a unique profile type based on their specific answers]",
    "description": "[300+ word analysis referencing their specific responses and life stage]",
    "strengths": ["[5-6 strengths derived from their responses]"],
    "workStyle": "[Work style analysis appropriate for their level and goals]"
  },
  "skillsAssessment": {
    "technical": [
      {"skill": "[Relevant technical skill for their field/level]", "level": [Score 0-100], "growth": "[Specific development plan with timeline]"}
    ],
    "soft": [
      {"skill": "[Relevant soft skill]", "level": [Score 0-100], "growth": "[Concrete improvement strategy]"}
    ]
  },
  "careerRecommendations": [
    {
      "title": "[Specific role appropriate for their level and field]",
      "match": [Percentage 0-100],
      "reasoning": "[150+ word explanation connecting their responses to role, including salary ranges and growth potential appropriate for their level]",
      "growthPath": "[Career progression path realistic for their starting point]",
      "timeToTransition": "[Timeline appropriate for their current stage]"
    }
  ],
  "actionPlan": {
    "immediate": ["[5 specific actions appropriate for their life stage and goals]"],
    "shortTerm": ["[4 strategic moves with specific outcomes for their level]"],
    "longTerm": ["[3 major milestones appropriate for their career stage]"]
  },
  "mentoringNeeds": [
    "[Specific mentor type based on their stage and goals]",
    "[Different mentorship need based on their field]"
  ]
}

Make this so personalized that it could only apply to someone with their exact profile and responses.`,
		profile.LifeStage, profile.Field, profile.Goal, toJSON(profile), toJSON(responses))
}

func toJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(b)
}
