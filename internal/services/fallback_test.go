package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/ai-mentorship/internal/models"
)

var bucketProfiles = map[string]models.UserProfile{
	"high school": {LifeStage: "High school student (grades 9-12)", Field: "Technology/Engineering", Goal: "Choosing a college major"},
	"college":     {LifeStage: "College/University student", Field: "Business/Finance", Goal: "Finding my first job"},
	"other":       {LifeStage: "Experienced professional (5+ years)", Field: "Healthcare/Life Sciences", Goal: "Advancing in my current field"},
}

func TestFallbackQuestionsPerBucket(t *testing.T) {
	f := NewFallbackGenerator()

	seen := map[string]bool{}
	for name, profile := range bucketProfiles {
		questions := f.FallbackQuestions(profile)
		require.Len(t, questions, 3, name)

		for i, q := range questions {
			assert.Equal(t, i+1, q.ID, name)
			assert.Contains(t, []models.QuestionType{models.QuestionTypeMultipleChoice, models.QuestionTypeText}, q.Type)
			if q.IsMultipleChoice() {
				assert.GreaterOrEqual(t, len(q.Options), 2, name)
			} else {
				assert.NotEmpty(t, q.Placeholder, name)
			}
		}
		seen[questions[0].Question] = true
	}
	assert.Len(t, seen, 3, "each bucket should have its own question set")
}

func TestFallbackQuestionsBucketMatchingIsCaseInsensitive(t *testing.T) {
	f := NewFallbackGenerator()

	hs := f.FallbackQuestions(models.UserProfile{LifeStage: "HIGH SCHOOL senior"})
	assert.Equal(t, "Which school subjects do you find most engaging and why?", hs[0].Question)

	grad := f.FallbackQuestions(models.UserProfile{LifeStage: "Graduate Student"})
	assert.Equal(t, "What initially drew you to your current field of study?", grad[0].Question)

	other := f.FallbackQuestions(models.UserProfile{LifeStage: "Other: retired"})
	assert.Equal(t, "What aspects of your current work give you the most satisfaction?", other[0].Question)
}

func TestFallbackNextQuestionCycles(t *testing.T) {
	f := NewFallbackGenerator()
	profile := bucketProfiles["other"]

	q3 := f.FallbackNextQuestion(profile, 3)
	q6 := f.FallbackNextQuestion(profile, 6)
	assert.Equal(t, q3.Question, q6.Question)
	assert.Equal(t, 4, q3.ID)
	assert.Equal(t, 7, q6.ID)

	q5 := f.FallbackNextQuestion(profile, 5)
	assert.Equal(t, models.QuestionTypeText, q5.Type)
	assert.NotEmpty(t, q5.Placeholder)

	// the pool ignores the profile
	assert.Equal(t, q3, f.FallbackNextQuestion(bucketProfiles["high school"], 3))
}

func TestFallbackAnalysisIsSchemaValid(t *testing.T) {
	f := NewFallbackGenerator()
	responses := []models.Response{{QuestionID: 1, Question: "q", Answer: "a"}, {QuestionID: 2, Question: "q2", Answer: "b"}}

	for name, profile := range bucketProfiles {
		for _, rs := range [][]models.Response{nil, responses} {
			a := f.FallbackAnalysis(profile, rs)
			require.NotNil(t, a, name)

			assert.NotEmpty(t, a.PersonalityProfile.Type, name)
			assert.NotEmpty(t, a.PersonalityProfile.Description, name)
			assert.NotEmpty(t, a.PersonalityProfile.Strengths, name)
			assert.NotEmpty(t, a.PersonalityProfile.WorkStyle, name)
			assert.NotEmpty(t, a.SkillsAssessment.Technical, name)
			assert.NotEmpty(t, a.SkillsAssessment.Soft, name)
			assert.NotEmpty(t, a.CareerRecommendations, name)
			assert.NotEmpty(t, a.ActionPlan.Immediate, name)
			assert.NotEmpty(t, a.ActionPlan.ShortTerm, name)
			assert.NotEmpty(t, a.ActionPlan.LongTerm, name)
			assert.NotEmpty(t, a.MentoringNeeds, name)

			for _, s := range append(a.SkillsAssessment.Technical, a.SkillsAssessment.Soft...) {
				assert.True(t, s.Level >= 0 && s.Level <= 100, "%s: level %d", name, s.Level)
			}
			for _, r := range a.CareerRecommendations {
				assert.True(t, r.Match >= 0 && r.Match <= 100, "%s: match %d", name, r.Match)
			}
		}
	}
}

func TestFallbackAnalysisInterpolatesProfile(t *testing.T) {
	f := NewFallbackGenerator()
	responses := make([]models.Response, 6)

	a := f.FallbackAnalysis(bucketProfiles["high school"], responses)
	assert.Equal(t, "Emerging Explorer", a.PersonalityProfile.Type)
	assert.Contains(t, a.PersonalityProfile.Description, "technology/engineering")
	assert.Contains(t, a.PersonalityProfile.Description, "Your 6 thoughtful responses")
	assert.Contains(t, a.PersonalityProfile.Description, "choosing a college major")
	assert.Equal(t, "College Major in technology/engineering", a.CareerRecommendations[0].Title)

	a = f.FallbackAnalysis(bucketProfiles["college"], responses)
	assert.Equal(t, "Academic Achiever", a.PersonalityProfile.Type)
	assert.Equal(t, 88, a.CareerRecommendations[0].Match)

	a = f.FallbackAnalysis(bucketProfiles["other"], responses)
	assert.Equal(t, "Strategic Professional", a.PersonalityProfile.Type)
	assert.Equal(t, "Career coach specializing in experienced  (5+ years) transitions", a.MentoringNeeds[1])
}

func TestTransitionLabelRemovesFirstStageWord(t *testing.T) {
	assert.Equal(t, "college/university", transitionLabel("college/university student"))
	assert.Equal(t, "high school  (grades 9-12)", transitionLabel("high school student (grades 9-12)"))
	assert.Equal(t, "career changer", transitionLabel("career changer"))
	assert.False(t, strings.HasSuffix(transitionLabel("working professional"), " "))
}
