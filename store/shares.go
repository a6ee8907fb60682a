package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"formlink/errs"
	"formlink/model"
)

type ShareStore struct {
	db *sql.DB
}

func NewShareStore(db *sql.DB) *ShareStore {
	return &ShareStore{db}
}

// Grant upserts the grant stored under (surveyID, sharedWith). Granting the
// same pair again is idempotent; the grant stays pinned to its owner.
func (s *ShareStore) Grant(ctx context.Context, surveyID int, ownerID, sharedWith string) (model.ShareGrant, error) {
	if ownerID == "" || sharedWith == "" {
		return model.ShareGrant{}, fmt.Errorf("grant owner and recipient are required: %w", errs.ErrInvalidRequest)
	}

	grant := model.ShareGrant{
		SurveyID:   surveyID,
		OwnerID:    ownerID,
		SharedWith: sharedWith,
		SharedAt:   time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO share_grant (survey_id, owner_id, shared_with, shared_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (survey_id, shared_with) DO UPDATE SET
			owner_id = excluded.owner_id,
			shared_at = excluded.shared_at`,
		grant.SurveyID,
		grant.OwnerID,
		grant.SharedWith,
		grant.SharedAt,
	)
	if err != nil {
		return model.ShareGrant{}, unavailable("db.upsert_grant", err)
	}
	return grant, nil
}

// GrantFor looks up the grant keyed (surveyID, sharedWith), the resolver's
// single source of shared access.
func (s *ShareStore) GrantFor(ctx context.Context, surveyID int, sharedWith string) (model.ShareGrant, error) {
	grant := model.ShareGrant{SurveyID: surveyID, SharedWith: sharedWith}
	err := s.db.QueryRowContext(ctx, `
		SELECT owner_id, shared_at
		FROM share_grant
		WHERE survey_id = ? AND shared_with = ?`,
		surveyID, sharedWith,
	).Scan(&grant.OwnerID, &grant.SharedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ShareGrant{}, notFound("grant", sharedWith)
	}
	if err != nil {
		return model.ShareGrant{}, unavailable("db.get_grant", err)
	}
	return grant, nil
}

// Revoke deletes the grant. Only the grant's owner of record or an
// administrator may revoke it.
func (s *ShareStore) Revoke(ctx context.Context, surveyID int, sharedWith string, requestedBy model.Identity) error {
	grant, err := s.GrantFor(ctx, surveyID, sharedWith)
	if err != nil {
		return err
	}
	if requestedBy.UserID != grant.OwnerID && !requestedBy.IsAdmin() {
		return fmt.Errorf("revoke by %q: %w", requestedBy.UserID, errs.ErrForbidden)
	}

	_, err = s.db.ExecContext(ctx,
		`DELETE FROM share_grant WHERE survey_id = ? AND shared_with = ?`,
		surveyID, sharedWith,
	)
	if err != nil {
		return unavailable("db.delete_grant", err)
	}
	return nil
}

func (s *ShareStore) ListForSurvey(ctx context.Context, surveyID int) ([]model.ShareGrant, error) {
	return s.list(ctx, `
		SELECT survey_id, owner_id, shared_with, shared_at
		FROM share_grant
		WHERE survey_id = ?
		ORDER BY shared_at DESC`,
		surveyID)
}

func (s *ShareStore) ListReceivedBy(ctx context.Context, userID string) ([]model.ShareGrant, error) {
	return s.list(ctx, `
		SELECT survey_id, owner_id, shared_with, shared_at
		FROM share_grant
		WHERE shared_with = ?
		ORDER BY shared_at DESC`,
		userID)
}

func (s *ShareStore) list(ctx context.Context, query string, arg any) ([]model.ShareGrant, error) {
	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, unavailable("db.get_grants", err)
	}
	defer rows.Close()

	grants := []model.ShareGrant{}
	for rows.Next() {
		g := model.ShareGrant{}
		err = rows.Scan(&g.SurveyID, &g.OwnerID, &g.SharedWith, &g.SharedAt)
		if err != nil {
			return nil, unavailable("db.get_grants.scan", err)
		}
		grants = append(grants, g)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("db.get_grants.rows", err)
	}
	return grants, nil
}
