package store

import (
	"context"
	"testing"
	"time"

	"formlink/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseInsertAndListNewestFirst(t *testing.T) {
	db := testDB(t)
	responses := NewResponseStore(db)
	ctx := context.Background()

	survey := seedSurvey(t, db)

	first, err := responses.Insert(ctx, survey.ID, answerSet("q1", "one"))
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)

	time.Sleep(10 * time.Millisecond)

	second, err := responses.Insert(ctx, survey.ID, answerSet("q1", "two"))
	require.NoError(t, err)

	list, err := responses.ListForSurvey(ctx, survey.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
	assert.Equal(t, "two", list[0].Answers.Values["q1"])
}

func TestUserCreate(t *testing.T) {
	db := testDB(t)
	users := NewUserStore(db)
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, "alice", "s3cret", ""))

	err := users.Create(ctx, "alice", "other", "")
	assert.ErrorIs(t, err, errs.ErrConflict)

	err = users.Create(ctx, "", "pw", "")
	assert.ErrorIs(t, err, errs.ErrInvalidRequest)

	err = users.Create(ctx, "bob", "pw", "superuser")
	assert.ErrorIs(t, err, errs.ErrInvalidRequest)
}
