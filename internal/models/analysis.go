package models

type AnalysisResult struct {
	PersonalityProfile    PersonalityProfile     `json:"personalityProfile"`
	SkillsAssessment      SkillsAssessment       `json:"skillsAssessment"`
	CareerRecommendations []CareerRecommendation `json:"careerRecommendations"`
	ActionPlan            ActionPlan             `json:"actionPlan"`
	MentoringNeeds        []string               `json:"mentoringNeeds"`
}

type PersonalityProfile struct {
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Strengths   []string `json:"strengths"`
	WorkStyle   string   `json:"workStyle"`
}

type SkillsAssessment struct {
	Technical []Skill `json:"technical"`
	Soft      []Skill `json:"soft"`
}

// Skill level is a percentage in [0,100].
type Skill struct {
	Skill  string `json:"skill"`
	Level  int    `json:"level"`
	Growth string `json:"growth"`
}

// CareerRecommendation match is a percentage in [0,100].
type CareerRecommendation struct {
	Title            string `json:"title"`
	Match            int    `json:"match"`
	Reasoning        string `json:"reasoning"`
	GrowthPath       string `json:"growthPath"`
	TimeToTransition string `json:"timeToTransition"`
}

type ActionPlan struct {
	Immediate []string `json:"immediate"`
	ShortTerm []string `json:"shortTerm"`
	LongTerm  []string `json:"longTerm"`
}
