package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

type QuestionType string

const (
	QuestionTypeMultipleChoice QuestionType = "multiple_choice"
	QuestionTypeText           QuestionType = "text"
)

// MaxResponses is the number of answered questions a session collects
// before it can be finished.
const MaxResponses = 6

type UserProfile struct {
	LifeStage string `json:"lifeStage"`
	Field     string `json:"field"`
	Goal      string `json:"goal"`
	Name      string `json:"name"`
	Email     string `json:"email"`
}

type Question struct {
	ID          int          `json:"id"`
	Question    string       `json:"question"`
	Type        QuestionType `json:"type"`
	Options     []string     `json:"options,omitempty"`
	Placeholder string       `json:"placeholder,omitempty"`
}

// UnmarshalJSON accepts the id as a number or a numeric string. Any other id
// decodes as zero; callers assign their own sequence anyway.
func (q *Question) UnmarshalJSON(data []byte) error {
	type plain Question
	aux := struct {
		ID json.RawMessage `json:"id"`
		*plain
	}{plain: (*plain)(q)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	q.ID = lenientInt(aux.ID)
	return nil
}

func lenientInt(raw json.RawMessage) int {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return int(n)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return n
		}
	}
	return 0
}

func (q Question) IsMultipleChoice() bool {
	return q.Type == QuestionTypeMultipleChoice
}

type Response struct {
	QuestionID int    `json:"questionId"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
}
