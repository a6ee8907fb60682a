package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswerSetKeepsSubmissionOrder(t *testing.T) {
	raw := `{"zeta":1,"alpha":"two","mid":[1,2],"last":null}`

	var a AnswerSet
	require.NoError(t, json.Unmarshal([]byte(raw), &a))

	assert.Equal(t, []string{"zeta", "alpha", "mid", "last"}, a.Order)
	assert.Equal(t, "two", a.Values["alpha"])
	assert.Nil(t, a.Values["last"])

	out, err := json.Marshal(a)
	require.NoError(t, err)
	assert.Equal(t, raw, string(out))
}

func TestAnswerSetDuplicateKeyLastWins(t *testing.T) {
	var a AnswerSet
	require.NoError(t, json.Unmarshal([]byte(`{"a":1,"b":2,"a":3}`), &a))

	assert.Equal(t, []string{"a", "b"}, a.Order)
	assert.Equal(t, float64(3), a.Values["a"])
}

func TestAnswerSetRejectsNonObject(t *testing.T) {
	var a AnswerSet
	assert.Error(t, json.Unmarshal([]byte(`[1,2,3]`), &a))
	assert.Error(t, json.Unmarshal([]byte(`"nope"`), &a))
}

func TestAnswerSetSet(t *testing.T) {
	a := AnswerSet{}
	a.Set("q1", "yes")
	a.Set("q2", 5)
	a.Set("q1", "no")

	assert.Equal(t, []string{"q1", "q2"}, a.Order)
	assert.Equal(t, "no", a.Values["q1"])
	assert.Equal(t, 2, a.Len())
}
