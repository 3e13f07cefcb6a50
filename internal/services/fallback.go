package services

import (
	"fmt"
	"regexp"
	"strings"

	"alfredoptarigan/ai-mentorship/internal/models"
)

type lifeStageBucket int

const (
	bucketHighSchool lifeStageBucket = iota
	bucketCollege
	bucketProfessional
)

func bucketFor(profile models.UserProfile) lifeStageBucket {
	stage := strings.ToLower(profile.LifeStage)
	switch {
	case strings.Contains(stage, "high school"):
		return bucketHighSchool
	case strings.Contains(stage, "college"), strings.Contains(stage, "student"):
		return bucketCollege
	default:
		return bucketProfessional
	}
}

// FallbackGenerator produces deterministic canned content whenever generator
// output is unusable. None of its methods can fail.
type FallbackGenerator struct{}

func NewFallbackGenerator() *FallbackGenerator {
	return &FallbackGenerator{}
}

// FallbackQuestions returns the three opening questions for the profile's
// life-stage bucket.
func (f *FallbackGenerator) FallbackQuestions(profile models.UserProfile) []models.Question {
	switch bucketFor(profile) {
	case bucketHighSchool:
		return []models.Question{
			{
				ID:       1,
				Question: "Which school subjects do you find most engaging and why?",
				Type:     models.QuestionTypeMultipleChoice,
				Options: []string{
					"STEM subjects (Math, Science, Engineering)",
					"Humanities (English, History, Social Studies)",
					"Creative subjects (Art, Music, Drama)",
					"Practical subjects (Business, Technology, Life Skills)",
				},
			},
			{
				ID:          2,
				Question:    "Describe a school project or activity you're proud of. What did you enjoy most about it?",
				Type:        models.QuestionTypeText,
				Placeholder: "Think about what aspects excited you - the research, creativity, teamwork, problem-solving...",
			},
			{
				ID:       3,
				Question: "When working on group projects, what role do you naturally take?",
				Type:     models.QuestionTypeMultipleChoice,
				Options: []string{
					"The organizer who keeps everyone on track",
					"The creative idea generator",
					"The researcher who finds information",
					"The presenter who communicates findings",
				},
			},
		}
	case bucketCollege:
		return []models.Question{
			{
				ID:          1,
				Question:    "What initially drew you to your current field of study?",
				Type:        models.QuestionTypeText,
				Placeholder: "Consider your motivations, interests, or experiences that influenced your choice...",
			},
			{
				ID:       2,
				Question: "Which aspects of your studies do you find most engaging?",
				Type:     models.QuestionTypeMultipleChoice,
				Options: []string{
					"Theoretical concepts and research",
					"Practical applications and hands-on work",
					"Collaborative projects and teamwork",
					"Independent study and analysis",
				},
			},
			{
				ID:          3,
				Question:    "How do you envision applying your studies in the real world after graduation?",
				Type:        models.QuestionTypeText,
				Placeholder: "Think about specific roles, industries, or ways you'd like to make an impact...",
			},
		}
	default:
		return []models.Question{
			{
				ID:       1,
				Question: "What aspects of your current work give you the most satisfaction?",
				Type:     models.QuestionTypeMultipleChoice,
				Options: []string{
					"Solving complex problems",
					"Leading and mentoring others",
					"Creating something new",
					"Making a positive impact",
				},
			},
			{
				ID:          2,
				Question:    "Describe a significant challenge you've overcome in your career. What skills did you use?",
				Type:        models.QuestionTypeText,
				Placeholder: "Focus on the situation, your actions, and the skills that helped you succeed...",
			},
			{
				ID:       3,
				Question: "How do you prefer to collaborate with colleagues?",
				Type:     models.QuestionTypeMultipleChoice,
				Options: []string{
					"Leading cross-functional teams",
					"Contributing expertise to group efforts",
					"Mentoring and developing others",
					"Working independently with occasional check-ins",
				},
			},
		}
	}
}

// FallbackNextQuestion cycles through a fixed pool. The profile is not
// consulted.
func (f *FallbackGenerator) FallbackNextQuestion(_ models.UserProfile, questionIndex int) models.Question {
	pool := []models.Question{
		{
			Question: "What type of work environment helps you perform at your best?",
			Type:     models.QuestionTypeMultipleChoice,
			Options:  []string{"Fast-paced and dynamic", "Structured and organized", "Creative and flexible", "Collaborative and social"},
		},
		{
			Question: "When facing a difficult decision, what approach do you typically take?",
			Type:     models.QuestionTypeMultipleChoice,
			Options:  []string{"Analyze data and research thoroughly", "Seek input from others", "Trust your intuition", "Consider long-term impact"},
		},
		{
			Question:    "What motivates you most in your career journey?",
			Type:        models.QuestionTypeText,
			Placeholder: "Consider what drives you - impact, growth, recognition, stability, creativity...",
		},
	}

	slot := questionIndex % len(pool)
	if slot < 0 {
		slot += len(pool)
	}
	question := pool[slot]
	question.ID = questionIndex + 1
	return question
}

var stageWord = regexp.MustCompile(`student|professional`)

// FallbackAnalysis builds a complete analysis from the profile alone,
// interpolating field, goal and the number of answers collected.
func (f *FallbackGenerator) FallbackAnalysis(profile models.UserProfile, responses []models.Response) *models.AnalysisResult {
	stage := strings.ToLower(profile.LifeStage)
	field := strings.ToLower(profile.Field)
	goal := strings.ToLower(profile.Goal)
	if goal == "" {
		goal = "planning your next step"
	}
	count := len(responses)

	var profileType, description string
	var recommendation models.CareerRecommendation

	switch bucketFor(profile) {
	case bucketHighSchool:
		profileType = "Emerging Explorer"
		description = fmt.Sprintf("As a high school student exploring %s, you're at an exciting stage of discovery. Your %d thoughtful responses show curiosity and self-awareness that will serve you well in college and beyond, especially as you focus on %s. You demonstrate the kind of reflective thinking that helps students make informed decisions about their future paths.", field, count, goal)
		recommendation = models.CareerRecommendation{
			Title:            "College Major in " + field,
			Match:            85,
			Reasoning:        fmt.Sprintf("Based on your interest in %s and your thoughtful responses, this major would allow you to explore your interests while building foundational knowledge. College programs typically cost $10,000-50,000 per year, but lead to entry-level positions earning $40,000-60,000 annually.", field),
			GrowthPath:       "College Student → Internships → Entry-level Role → Mid-level Professional",
			TimeToTransition: "4-5 years (college + early career)",
		}
	case bucketCollege:
		profileType = "Academic Achiever"
		description = fmt.Sprintf("As a college student in %s, your %d responses reveal someone who's thinking strategically about their future and about %s. You're in the perfect position to explore internships, build relevant skills, and network within your chosen field.", field, count, goal)
		recommendation = models.CareerRecommendation{
			Title:            "Entry-level " + field + " Role",
			Match:            88,
			Reasoning:        fmt.Sprintf("Your academic background in %s combined with your thoughtful approach to career planning positions you well for entry-level roles. These typically pay $45,000-65,000 for new graduates, with strong growth potential.", field),
			GrowthPath:       "Graduate → Entry-level → Mid-level → Senior Professional",
			TimeToTransition: "6-12 months post-graduation",
		}
	default:
		profileType = "Strategic Professional"
		description = fmt.Sprintf("As an experienced professional interested in %s, your %d responses show the kind of strategic thinking that leads to career success, and a clear focus on %s. You understand the importance of continuous learning and growth in today's dynamic workplace.", field, count, goal)
		recommendation = models.CareerRecommendation{
			Title:            "Senior " + field + " Role",
			Match:            90,
			Reasoning:        fmt.Sprintf("Your professional experience combined with your interest in %s suggests you're ready for senior-level responsibilities. These roles typically command $80,000-120,000+ depending on location and industry.", field),
			GrowthPath:       "Current Role → Senior Role → Leadership → Executive",
			TimeToTransition: "1-3 years with strategic skill building",
		}
	}

	return &models.AnalysisResult{
		PersonalityProfile: models.PersonalityProfile{
			Type:        profileType,
			Description: description,
			Strengths: []string{
				"Strategic thinking",
				"Self-awareness",
				"Growth mindset",
				"Communication skills",
				"Adaptability",
			},
			WorkStyle: "Collaborative with strong independent work capabilities",
		},
		SkillsAssessment: models.SkillsAssessment{
			Technical: []models.Skill{
				{Skill: "Analysis", Level: 75, Growth: "Continue developing through coursework and practice"},
				{Skill: "Communication", Level: 80, Growth: "Strong foundation - leverage in leadership opportunities"},
			},
			Soft: []models.Skill{
				{Skill: "Leadership", Level: 70, Growth: "Seek opportunities to lead projects or teams"},
				{Skill: "Adaptability", Level: 85, Growth: "Key strength - use to navigate career transitions"},
			},
		},
		CareerRecommendations: []models.CareerRecommendation{recommendation},
		ActionPlan: models.ActionPlan{
			Immediate: []string{
				"Research specific roles in " + field,
				"Update LinkedIn profile with career interests",
				"Connect with professionals in target field",
				"Identify skill gaps to address",
				"Set 90-day learning goals",
			},
			ShortTerm: []string{
				"Complete relevant certification or course",
				"Gain hands-on experience through projects",
				"Build professional network in target industry",
				"Develop portfolio showcasing relevant skills",
			},
			LongTerm: []string{
				"Establish expertise in specialized area",
				"Build mentor and sponsor relationships",
				"Consider advanced education if needed",
				"Develop leadership and strategic skills",
			},
		},
		MentoringNeeds: []string{
			"Industry professional in " + field + " who can provide insider perspective",
			"Career coach specializing in " + transitionLabel(stage) + " transitions",
			"Peer mentor network for accountability and support",
		},
	}
}

// transitionLabel drops the first "student" or "professional" from the
// lower-cased life stage.
func transitionLabel(stage string) string {
	if loc := stageWord.FindStringIndex(stage); loc != nil {
		stage = stage[:loc[0]] + stage[loc[1]:]
	}
	return strings.TrimSpace(stage)
}
