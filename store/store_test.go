package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"testing"

	"formlink/config"
	"formlink/database"
	"formlink/model"

	"github.com/stretchr/testify/require"
)

var dbSeq int64

func testDB(t *testing.T) *sql.DB {
	t.Helper()

	url := fmt.Sprintf("file:storetest%d?mode=memory&cache=shared", atomic.AddInt64(&dbSeq, 1))
	db, err := database.Open(config.Config{DBUrl: url})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func seedSurvey(t *testing.T, db *sql.DB) model.Survey {
	t.Helper()

	survey, err := NewSurveyStore(db).Create(context.Background(), "Test Survey", json.RawMessage(`{
		"pages": [{"elements": [
			{"name": "q1", "title": "Question one"},
			{"name": "q2", "title": "Question two", "type": "radiogroup",
				"choices": [{"value": "y", "text": "Yes"}, {"value": "n", "text": "No"}]}
		]}]
	}`))
	require.NoError(t, err)
	return survey
}

func answerSet(pairs ...any) model.AnswerSet {
	a := model.AnswerSet{}
	for i := 0; i < len(pairs); i += 2 {
		a.Set(pairs[i].(string), pairs[i+1])
	}
	return a
}
