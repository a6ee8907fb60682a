package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	"formlink/errs"
	"formlink/model"

	"github.com/gofrs/uuid"
)

type SurveyStore struct {
	db *sql.DB
}

func NewSurveyStore(db *sql.DB) *SurveyStore {
	return &SurveyStore{db}
}

var reDigits = regexp.MustCompile(`^\d+$`)

// ResolveCanonical normalizes the two interchangeable survey identifiers,
// the store-internal numeric id and the application-issued token, to the
// one record both name. This is the only place the distinction exists.
func (s *SurveyStore) ResolveCanonical(ctx context.Context, idOrToken string) (model.Survey, error) {
	where := "token = ?"
	if reDigits.MatchString(idOrToken) {
		where = "id = ?"
	}

	var survey model.Survey
	var definition string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, token, version, title, definition, created_at
		FROM survey
		WHERE `+where,
		idOrToken,
	).Scan(&survey.ID, &survey.Token, &survey.Version, &survey.Title, &definition, &survey.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Survey{}, notFound("survey", idOrToken)
	}
	if err != nil {
		return model.Survey{}, unavailable("db.get_survey", err)
	}

	survey.Definition = json.RawMessage(definition)
	return survey, nil
}

func (s *SurveyStore) Exists(ctx context.Context, surveyID int) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM survey WHERE id = ?)`,
		surveyID,
	).Scan(&exists)
	if err != nil {
		return false, unavailable("db.survey_exists", err)
	}
	return exists, nil
}

func (s *SurveyStore) Create(ctx context.Context, title string, definition json.RawMessage) (model.Survey, error) {
	if len(definition) == 0 {
		return model.Survey{}, fmt.Errorf("survey definition is required: %w", errs.ErrInvalidRequest)
	}
	if title == "" {
		title = "Untitled Survey"
	}

	token, err := uuid.NewV4()
	if err != nil {
		return model.Survey{}, fmt.Errorf("db.insert_survey.token: %w", err)
	}

	survey := model.Survey{
		Token:      token.String(),
		Version:    1,
		Title:      title,
		Definition: definition,
		CreatedAt:  time.Now().UTC(),
	}
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO survey (token, title, definition, created_at) VALUES (?, ?, ?, ?)
		RETURNING id`,
		survey.Token,
		survey.Title,
		string(definition),
		survey.CreatedAt,
	).Scan(&survey.ID)
	if err != nil {
		return model.Survey{}, unavailable("db.insert_survey", err)
	}
	return survey, nil
}

// Update is a full overwrite of title and definition under the same
// canonical id, guarded by an optimistic version check.
func (s *SurveyStore) Update(ctx context.Context, surveyID int, version int, title string, definition json.RawMessage) error {
	if len(definition) == 0 {
		return fmt.Errorf("survey definition is required: %w", errs.ErrInvalidRequest)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE survey
		SET
			title = ?,
			definition = ?,
			version = version+1
		WHERE	id = ?
			AND version = ?`,
		title,
		string(definition),
		surveyID,
		version,
	)
	if err != nil {
		return unavailable("db.update_survey", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return unavailable("db.update_survey.verify", err)
	}
	if n < 1 {
		exists, err := s.Exists(ctx, surveyID)
		if err != nil {
			return err
		}
		if !exists {
			return notFound("survey", surveyID)
		}
		return fmt.Errorf("db.update_survey: stale version %d: %w", version, errs.ErrConflict)
	}
	return nil
}

// Delete removes the survey; responses, drafts and grants go with it via
// foreign-key cascade.
func (s *SurveyStore) Delete(ctx context.Context, surveyID int) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM survey WHERE id = ?`, surveyID)
	if err != nil {
		return unavailable("db.delete_survey", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return unavailable("db.delete_survey.verify", err)
	}
	if n < 1 {
		return notFound("survey", surveyID)
	}
	return nil
}

// SurveyOverview is a survey list entry; the definition is omitted.
type SurveyOverview struct {
	ID            int       `json:"id"`
	Token         string    `json:"token"`
	Version       int       `json:"version"`
	Title         string    `json:"title"`
	CreatedAt     time.Time `json:"createdAt"`
	ResponseCount int       `json:"responseCount"`
}

// List returns all surveys, newest first, with their response counts.
func (s *SurveyStore) List(ctx context.Context) ([]SurveyOverview, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, s.token, s.version, s.title, s.created_at, COUNT(r.id)
		FROM survey s
		LEFT OUTER JOIN response r ON (s.id = r.survey_id)
		GROUP BY s.id, s.token, s.version, s.title, s.created_at
		ORDER BY s.created_at DESC`)
	if err != nil {
		return nil, unavailable("db.get_surveys", err)
	}
	defer rows.Close()

	surveys := []SurveyOverview{}
	for rows.Next() {
		o := SurveyOverview{}
		err = rows.Scan(&o.ID, &o.Token, &o.Version, &o.Title, &o.CreatedAt, &o.ResponseCount)
		if err != nil {
			return nil, unavailable("db.get_surveys.scan", err)
		}
		surveys = append(surveys, o)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("db.get_surveys.rows", err)
	}
	return surveys, nil
}
