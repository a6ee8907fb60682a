// Package schema derives question lists from opaque survey definitions and
// renders raw answers back against them.
package schema

import (
	"encoding/json"

	"formlink/model"
)

// Field names tried in order when resolving a question's display title.
var titleKeys = []string{"title", "questionTitle", "question", "label", "caption", "description"}

// Keys under which a node may nest child nodes.
var containerKeys = []string{"elements", "questions"}

// Question types that carry an enumerated option list even when none was declared.
var choiceTypes = map[string]bool{
	"radiogroup": true,
	"checkbox":   true,
	"dropdown":   true,
	"selectbase": true,
}

// Extract walks a survey definition depth-first and returns its questions in
// reading order. It never fails: a malformed or absent definition yields an
// empty list. Duplicate names are all kept; consumers that index by name use
// the last occurrence.
func Extract(definition json.RawMessage) []model.Question {
	questions := []model.Question{}

	var root map[string]any
	if err := json.Unmarshal(definition, &root); err != nil {
		return questions
	}

	if pages, ok := root["pages"].([]any); ok {
		for _, page := range pages {
			if p, ok := page.(map[string]any); ok {
				walk(p["elements"], &questions)
			}
		}
	}
	walk(root["elements"], &questions)
	walk(root["questions"], &questions)

	return questions
}

func walk(nodes any, out *[]model.Question) {
	list, ok := nodes.([]any)
	if !ok {
		return
	}
	for _, n := range list {
		node, ok := n.(map[string]any)
		if !ok {
			continue
		}
		if name, ok := node["name"].(string); ok && name != "" {
			*out = append(*out, question(name, node))
		}
		// a named panel is both a question and a container
		for _, key := range containerKeys {
			walk(node[key], out)
		}
	}
}

func question(name string, node map[string]any) model.Question {
	q := model.Question{Name: name, Type: "text"}
	if t, ok := node["type"].(string); ok && t != "" {
		q.Type = t
	}

	q.Title = name
	for _, key := range titleKeys {
		if title, ok := node[key].(string); ok && title != "" {
			q.Title = title
			break
		}
	}

	if choices, ok := choiceList(node["choices"]); ok {
		q.Choices = choices
	} else if options, ok := choiceList(node["options"]); ok {
		q.Choices = options
	} else if choiceTypes[q.Type] {
		q.Choices = []model.Choice{}
	}
	return q
}

func choiceList(v any) ([]model.Choice, bool) {
	list, ok := v.([]any)
	if !ok {
		return nil, false
	}
	choices := make([]model.Choice, 0, len(list))
	for _, c := range list {
		choices = append(choices, choice(c))
	}
	return choices, true
}

func choice(v any) model.Choice {
	if obj, ok := v.(map[string]any); ok {
		c := model.Choice{Value: obj["value"]}
		if text, ok := obj["text"].(string); ok {
			c.Text = text
		}
		return c
	}
	return model.Choice{Value: v}
}
