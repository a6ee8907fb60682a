package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"formlink/errs"
	"formlink/model"

	"github.com/gofrs/uuid"
)

type ResponseStore struct {
	db *sql.DB
}

func NewResponseStore(db *sql.DB) *ResponseStore {
	return &ResponseStore{db}
}

// Insert records a finalized submission. Responses are immutable once
// created; there is no update path.
func (s *ResponseStore) Insert(ctx context.Context, surveyID int, answers model.AnswerSet) (model.Response, error) {
	raw, err := json.Marshal(answers)
	if err != nil {
		return model.Response{}, fmt.Errorf("response answers: %w: %v", errs.ErrInvalidRequest, err)
	}

	id, err := uuid.NewV4()
	if err != nil {
		return model.Response{}, fmt.Errorf("db.insert_response.id: %w", err)
	}

	response := model.Response{
		ID:          id.String(),
		SurveyID:    surveyID,
		Answers:     answers,
		SubmittedAt: time.Now().UTC(),
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO response (id, survey_id, answers, submitted_at)
		VALUES (?, ?, ?, ?)`,
		response.ID,
		response.SurveyID,
		string(raw),
		response.SubmittedAt,
	)
	if err != nil {
		return model.Response{}, unavailable("db.insert_response", err)
	}
	return response, nil
}

// ListForSurvey returns the survey's responses, newest first.
func (s *ResponseStore) ListForSurvey(ctx context.Context, surveyID int) ([]model.Response, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, answers, submitted_at
		FROM response
		WHERE survey_id = ?
		ORDER BY submitted_at DESC`,
		surveyID,
	)
	if err != nil {
		return nil, unavailable("db.get_responses", err)
	}
	defer rows.Close()

	responses := []model.Response{}
	for rows.Next() {
		r := model.Response{SurveyID: surveyID}
		var raw string
		err = rows.Scan(&r.ID, &raw, &r.SubmittedAt)
		if err != nil {
			return nil, unavailable("db.get_responses.scan", err)
		}
		if err := json.Unmarshal([]byte(raw), &r.Answers); err != nil {
			return nil, fmt.Errorf("db.get_responses.parse_answers: %w", err)
		}
		responses = append(responses, r)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("db.get_responses.rows", err)
	}
	return responses, nil
}
