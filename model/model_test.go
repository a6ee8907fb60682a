package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChoiceMatches(t *testing.T) {
	cases := []struct {
		name   string
		choice Choice
		value  any
		want   bool
	}{
		{"exact string", Choice{Value: "opt1"}, "opt1", true},
		{"coerced number", Choice{Value: "2"}, float64(2), true},
		{"mismatch", Choice{Value: "opt1"}, "opt2", false},
		{"nil both sides", Choice{Value: nil}, nil, true},
		{"object on both sides", Choice{Value: map[string]any{"k": float64(1)}}, map[string]any{"k": float64(1)}, false},
		{"list on both sides", Choice{Value: []any{"a"}}, []any{"a"}, false},
		{"object answer against scalar choice", Choice{Value: "x"}, map[string]any{"k": float64(1)}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, c.choice.Matches(c.value))
		})
	}
}
