package schema

import (
	"encoding/json"
	"testing"

	"formlink/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(questions []model.Question) []string {
	out := make([]string, len(questions))
	for i, q := range questions {
		out[i] = q.Name
	}
	return out
}

func TestExtractNestedPagesReadingOrder(t *testing.T) {
	definition := json.RawMessage(`{
		"pages": [
			{"name": "p1", "elements": [{"name": "q1"}, {"name": "q2"}]},
			{"name": "p2", "elements": [{"name": "q3"}, {"name": "q4"}]},
			{"name": "p3", "elements": [{"name": "q5"}, {"name": "q6"}]}
		]
	}`)

	questions := Extract(definition)
	require.Len(t, questions, 6)
	assert.Equal(t, []string{"q1", "q2", "q3", "q4", "q5", "q6"}, names(questions))
}

func TestExtractNamedPanelIsQuestionAndContainer(t *testing.T) {
	definition := json.RawMessage(`{
		"elements": [
			{"name": "panel1", "type": "panel", "elements": [
				{"name": "inner1"},
				{"name": "inner2", "questions": [{"name": "deep"}]}
			]}
		]
	}`)

	questions := Extract(definition)
	assert.Equal(t, []string{"panel1", "inner1", "inner2", "deep"}, names(questions))
}

func TestExtractTitlePrecedence(t *testing.T) {
	tests := []struct {
		name string
		node string
		want string
	}{
		{"explicit title", `{"name":"q","title":"Title","label":"Label"}`, "Title"},
		{"questionTitle", `{"name":"q","questionTitle":"QT","caption":"Cap"}`, "QT"},
		{"question", `{"name":"q","question":"Q?"}`, "Q?"},
		{"label", `{"name":"q","label":"Label","description":"Desc"}`, "Label"},
		{"caption", `{"name":"q","caption":"Cap"}`, "Cap"},
		{"description", `{"name":"q","description":"Desc"}`, "Desc"},
		{"fallback to name", `{"name":"q"}`, "q"},
		{"empty title skipped", `{"name":"q","title":"","label":"Label"}`, "Label"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			questions := Extract(json.RawMessage(`{"elements":[` + tt.node + `]}`))
			require.Len(t, questions, 1)
			assert.Equal(t, tt.want, questions[0].Title)
		})
	}
}

func TestExtractChoices(t *testing.T) {
	definition := json.RawMessage(`{
		"elements": [
			{"name": "c1", "type": "radiogroup", "choices": [
				{"value": "opt1", "text": "First"},
				"bare"
			]},
			{"name": "c2", "type": "custom", "options": ["a", "b"]},
			{"name": "c3", "type": "dropdown"},
			{"name": "c4", "type": "comment"}
		]
	}`)

	questions := Extract(definition)
	require.Len(t, questions, 4)

	require.Len(t, questions[0].Choices, 2)
	assert.Equal(t, "opt1", questions[0].Choices[0].Value)
	assert.Equal(t, "First", questions[0].Choices[0].Text)
	assert.Equal(t, "bare", questions[0].Choices[1].Value)
	assert.Empty(t, questions[0].Choices[1].Text)

	// 'options' is an accepted alias for 'choices'
	require.Len(t, questions[1].Choices, 2)

	// choice-bearing type without declared options: empty, not nil
	assert.NotNil(t, questions[2].Choices)
	assert.Empty(t, questions[2].Choices)

	// non-choice type: nil
	assert.Nil(t, questions[3].Choices)
}

func TestExtractTypeDefaultsToText(t *testing.T) {
	questions := Extract(json.RawMessage(`{"elements":[{"name":"q"}]}`))
	require.Len(t, questions, 1)
	assert.Equal(t, "text", questions[0].Type)
}

func TestExtractDuplicateNamesBothKept(t *testing.T) {
	definition := json.RawMessage(`{
		"elements": [
			{"name": "dup", "title": "First"},
			{"name": "dup", "title": "Second"}
		]
	}`)

	questions := Extract(definition)
	require.Len(t, questions, 2)
	assert.Equal(t, "First", questions[0].Title)
	assert.Equal(t, "Second", questions[1].Title)
}

func TestExtractMalformedDefinitionIsEmpty(t *testing.T) {
	for _, definition := range []string{``, `null`, `[]`, `"text"`, `{"pages": "oops"}`, `{garbage`} {
		questions := Extract(json.RawMessage(definition))
		assert.NotNil(t, questions)
		assert.Empty(t, questions, "definition: %s", definition)
	}
}
