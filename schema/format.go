package schema

import (
	"fmt"
	"strings"

	"formlink/model"
)

const noAnswer = "(No answer)"

// Format pairs raw submitted answers with the questions that produced them,
// preserving the order the fields were submitted in. A field with no
// matching question keeps its raw field name as the question title.
func Format(answers model.AnswerSet, questions []model.Question) []model.QA {
	index := make(map[string]model.Question, len(questions))
	for _, q := range questions {
		index[q.Name] = q // last occurrence wins
	}

	qa := make([]model.QA, 0, answers.Len())
	for _, field := range answers.Order {
		question, known := index[field]

		title := field
		if known {
			title = question.Title
		}

		qa = append(qa, model.QA{
			Question:  title,
			Answer:    display(answers.Values[field], question.Choices),
			FieldName: field,
		})
	}
	return qa
}

func display(value any, choices []model.Choice) string {
	if list, ok := value.([]any); ok {
		parts := make([]string, len(list))
		for i, v := range list {
			parts[i] = displayScalar(v, choices)
		}
		return strings.Join(parts, ", ")
	}
	return displayScalar(value, choices)
}

func displayScalar(value any, choices []model.Choice) string {
	if value == nil {
		return noAnswer
	}
	for _, c := range choices {
		if c.Matches(value) {
			return c.Display()
		}
	}
	return fmt.Sprint(value)
}
