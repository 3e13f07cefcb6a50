package models

type AssessmentRequest struct {
	UserProfile          UserProfile `json:"userProfile"`
	Responses            []Response  `json:"responses"`
	CurrentQuestionIndex int         `json:"currentQuestionIndex"`
}

type QuestionsResponse struct {
	Questions []Question `json:"questions"`
}

type QuestionResponse struct {
	Question Question `json:"question"`
}

type AnalyzeRequest struct {
	Responses   []Response  `json:"responses"`
	UserProfile UserProfile `json:"userProfile"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
