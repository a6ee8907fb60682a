package model

import (
	"encoding/json"
	"fmt"
	"reflect"
	"time"
)

const (
	RoleAdmin      = "admin"
	RoleRespondent = "respondent"
)

// Identity is the authenticated caller, as established by the bearer token.
type Identity struct {
	UserID string
	Role   string
}

func (id Identity) IsAdmin() bool { return id.Role == RoleAdmin }

type Survey struct {
	ID         int             `json:"id,omitempty"`
	Token      string          `json:"token,omitempty"`
	Version    int             `json:"version,omitempty"`
	Title      string          `json:"title"`
	Definition json.RawMessage `json:"definition,omitempty"`
	CreatedAt  time.Time       `json:"createdAt,omitempty"`
}

// Question is derived from a survey definition, never persisted.
// Choices is nil for non-choice questions and empty (non-nil) for
// choice-bearing questions that declared no options.
type Question struct {
	Name    string   `json:"name"`
	Title   string   `json:"title"`
	Type    string   `json:"type"`
	Choices []Choice `json:"choices"`
}

// Choice is a single selectable option. A bare-label option has its label
// in Value and an empty Text.
type Choice struct {
	Value any    `json:"value"`
	Text  string `json:"text,omitempty"`
}

// Matches reports whether a raw submitted value selects this choice,
// comparing as-is and with the raw value coerced to a string. A decoded
// definition may declare map or slice choice values, which Go cannot
// compare directly; those only ever match by string coercion.
func (c Choice) Matches(v any) bool {
	if t := reflect.TypeOf(c.Value); t == nil || t.Comparable() {
		if c.Value == v {
			return true
		}
	}
	return c.Value == fmt.Sprint(v)
}

func (c Choice) Display() string {
	if c.Text != "" {
		return c.Text
	}
	return fmt.Sprint(c.Value)
}

// QA is one formatted question/answer pair of a reviewed response.
type QA struct {
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	FieldName string `json:"fieldName"`
}

type Response struct {
	ID          string    `json:"id"`
	SurveyID    int       `json:"surveyId"`
	Answers     AnswerSet `json:"answers"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// Draft is an in-progress answer set, unique per (SurveyID, OwnerID).
// SavedBy records who performed the last write and never affects the key;
// Revision counts writes, starting at 1.
type Draft struct {
	SurveyID  int       `json:"surveyId"`
	OwnerID   string    `json:"ownerId"`
	SavedBy   string    `json:"savedBy"`
	Revision  int       `json:"revision"`
	Answers   AnswerSet `json:"answers"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ShareGrant lets SharedWith read and write the draft owned by OwnerID.
// Unique per (SurveyID, SharedWith).
type ShareGrant struct {
	SurveyID   int       `json:"surveyId"`
	OwnerID    string    `json:"ownerId"`
	SharedWith string    `json:"sharedWith"`
	SharedAt   time.Time `json:"sharedAt"`
}
