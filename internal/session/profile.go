package session

import "strings"

// OtherOption is the choice that asks for a free-text answer instead.
const OtherOption = "Other (Please specify)"

// otherPrefix is prepended to free text committed for an Other choice.
const otherPrefix = "Other: "

// ProfileQuestion is one of the fixed intake questions. Field names the
// UserProfile attribute the answer fills.
type ProfileQuestion struct {
	Field    string
	Question string
	Options  []string
}

var ProfileQuestions = []ProfileQuestion{
	{
		Field:    "lifeStage",
		Question: "Which of the following best describes you?",
		Options: []string{
			"High school student (grades 9-12)",
			"College/University student",
			"Recent graduate (within 2 years)",
			"Working professional (0-5 years experience)",
			"Experienced professional (5+ years)",
			"Career changer/seeking new direction",
			OtherOption,
		},
	},
	{
		Field:    "field",
		Question: "What field are you studying or working in?",
		Options: []string{
			"Technology/Engineering",
			"Business/Finance",
			"Healthcare/Life Sciences",
			"Arts/Creative",
			"Education",
			"Still exploring/Undecided",
			OtherOption,
		},
	},
	{
		Field:    "goal",
		Question: "What's your main goal for this assessment?",
		Options: []string{
			"Choosing a college major",
			"Exploring career options after graduation",
			"Planning a career change",
			"Advancing in my current field",
			"Finding my first job",
			"Understanding my strengths and interests",
		},
	},
}

// IsOtherOption reports whether choosing option requires free text.
// Generated questions phrase it loosely, so match on both words.
func IsOtherOption(option string) bool {
	return strings.Contains(option, "Other") && strings.Contains(option, "specify")
}

func otherAnswer(text string) string {
	return otherPrefix + text
}

func containsOption(options []string, option string) bool {
	for _, o := range options {
		if o == option {
			return true
		}
	}
	return false
}
