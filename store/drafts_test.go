package store

import (
	"context"
	"testing"

	"formlink/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraftSaveLoadRoundTrip(t *testing.T) {
	db := testDB(t)
	drafts := NewDraftStore(db)
	ctx := context.Background()

	survey := seedSurvey(t, db)

	created, err := drafts.Save(ctx, survey.ID, "alice", "alice", answerSet("q1", "first", "q2", "y"))
	require.NoError(t, err)
	assert.True(t, created)

	draft, err := drafts.Load(ctx, survey.ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", draft.OwnerID)
	assert.Equal(t, "alice", draft.SavedBy)
	assert.Equal(t, 1, draft.Revision)
	assert.Equal(t, []string{"q1", "q2"}, draft.Answers.Order)
	assert.Equal(t, "first", draft.Answers.Values["q1"])
}

func TestDraftResaveOverwritesInPlace(t *testing.T) {
	db := testDB(t)
	drafts := NewDraftStore(db)
	ctx := context.Background()

	survey := seedSurvey(t, db)

	created, err := drafts.Save(ctx, survey.ID, "alice", "alice", answerSet("q1", "old"))
	require.NoError(t, err)
	assert.True(t, created)

	// a collaborator overwrites on the owner's behalf
	created, err = drafts.Save(ctx, survey.ID, "alice", "bob", answerSet("q1", "new"))
	require.NoError(t, err)
	assert.False(t, created)

	n, err := drafts.Count(ctx, survey.ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	draft, err := drafts.Load(ctx, survey.ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, "new", draft.Answers.Values["q1"])
	assert.Equal(t, "bob", draft.SavedBy)
	assert.Equal(t, "alice", draft.OwnerID)
	assert.Equal(t, 2, draft.Revision)
}

func TestDraftOwnersNeverCollide(t *testing.T) {
	db := testDB(t)
	drafts := NewDraftStore(db)
	ctx := context.Background()

	survey := seedSurvey(t, db)

	_, err := drafts.Save(ctx, survey.ID, "alice", "alice", answerSet("q1", "a"))
	require.NoError(t, err)
	_, err = drafts.Save(ctx, survey.ID, "bob", "bob", answerSet("q1", "b"))
	require.NoError(t, err)

	alice, err := drafts.Load(ctx, survey.ID, "alice")
	require.NoError(t, err)
	bob, err := drafts.Load(ctx, survey.ID, "bob")
	require.NoError(t, err)

	assert.Equal(t, "a", alice.Answers.Values["q1"])
	assert.Equal(t, "b", bob.Answers.Values["q1"])
}

func TestDraftSaveRequiresOwner(t *testing.T) {
	db := testDB(t)
	survey := seedSurvey(t, db)

	_, err := NewDraftStore(db).Save(context.Background(), survey.ID, "", "alice", answerSet("q1", "x"))
	assert.ErrorIs(t, err, errs.ErrInvalidRequest)
}

func TestDraftLoadMissingIsNotFound(t *testing.T) {
	db := testDB(t)
	survey := seedSurvey(t, db)

	_, err := NewDraftStore(db).Load(context.Background(), survey.ID, "nobody")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}
