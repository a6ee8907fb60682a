package schema

import (
	"encoding/json"
	"testing"
	"time"

	"formlink/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembleNewestFirst(t *testing.T) {
	survey := model.Survey{
		ID:    1,
		Title: "Feedback",
		Definition: json.RawMessage(`{
			"pages": [{"elements": [
				{"name": "rating", "title": "How was it?", "type": "radiogroup", "choices": [
					{"value": "g", "text": "Good"},
					{"value": "b", "text": "Bad"}
				]}
			]}]
		}`),
	}

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	responses := []model.Response{
		{ID: "old", SurveyID: 1, Answers: answers("rating", "b"), SubmittedAt: base},
		{ID: "new", SurveyID: 1, Answers: answers("rating", "g"), SubmittedAt: base.Add(time.Hour)},
	}

	assembled := Assemble(survey, responses)
	require.Len(t, assembled, 2)

	assert.Equal(t, "new", assembled[0].ID)
	assert.Equal(t, "old", assembled[1].ID)

	require.Len(t, assembled[0].QA, 1)
	assert.Equal(t, "How was it?", assembled[0].QA[0].Question)
	assert.Equal(t, "Good", assembled[0].QA[0].Answer)
	assert.Equal(t, "Bad", assembled[1].QA[0].Answer)
}

func TestAssembleEmptyResponses(t *testing.T) {
	assembled := Assemble(model.Survey{Definition: json.RawMessage(`{}`)}, nil)
	assert.Empty(t, assembled)
}
