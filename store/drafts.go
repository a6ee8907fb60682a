package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"formlink/errs"
	"formlink/model"
)

type DraftStore struct {
	db *sql.DB
}

func NewDraftStore(db *sql.DB) *DraftStore {
	return &DraftStore{db}
}

// Save upserts the draft stored under (surveyID, ownerID), overwriting the
// answer set wholesale. The owner id must already be resolved by the access
// resolver; it is never defaulted here, so a collaborator's write cannot be
// misattributed to their own identity.
func (s *DraftStore) Save(ctx context.Context, surveyID int, ownerID, savedBy string, answers model.AnswerSet) (created bool, err error) {
	if ownerID == "" {
		return false, fmt.Errorf("draft owner id is required: %w", errs.ErrInvalidRequest)
	}

	raw, err := json.Marshal(answers)
	if err != nil {
		return false, fmt.Errorf("draft answers: %w: %v", errs.ErrInvalidRequest, err)
	}

	// The revision counter comes back from the same statement that writes
	// the row, so concurrent first saves report created exactly once.
	var revision int
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO draft (survey_id, owner_id, saved_by, answers, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (survey_id, owner_id) DO UPDATE SET
			saved_by = excluded.saved_by,
			answers = excluded.answers,
			revision = revision + 1,
			updated_at = excluded.updated_at
		RETURNING revision`,
		surveyID,
		ownerID,
		savedBy,
		string(raw),
		time.Now().UTC(),
	).Scan(&revision)
	if err != nil {
		return false, unavailable("db.upsert_draft", err)
	}
	return revision == 1, nil
}

// Load is an exact-key lookup. No legacy key shapes, no scan-and-guess: a
// missing row is NotFound, full stop.
func (s *DraftStore) Load(ctx context.Context, surveyID int, ownerID string) (model.Draft, error) {
	draft := model.Draft{SurveyID: surveyID, OwnerID: ownerID}

	var raw string
	err := s.db.QueryRowContext(ctx, `
		SELECT saved_by, answers, revision, updated_at
		FROM draft
		WHERE survey_id = ? AND owner_id = ?`,
		surveyID, ownerID,
	).Scan(&draft.SavedBy, &raw, &draft.Revision, &draft.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Draft{}, notFound("draft", ownerID)
	}
	if err != nil {
		return model.Draft{}, unavailable("db.get_draft", err)
	}

	if err := json.Unmarshal([]byte(raw), &draft.Answers); err != nil {
		return model.Draft{}, fmt.Errorf("db.get_draft.parse_answers: %w", err)
	}
	return draft, nil
}

// Count reports how many draft rows exist for the key. Used by tests to
// verify the upsert never duplicates.
func (s *DraftStore) Count(ctx context.Context, surveyID int, ownerID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM draft WHERE survey_id = ? AND owner_id = ?`,
		surveyID, ownerID,
	).Scan(&n)
	if err != nil {
		return 0, unavailable("db.count_drafts", err)
	}
	return n, nil
}
