package routes

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"formlink/app"
	"formlink/errs"
	"formlink/httpx"
	"formlink/log"
	"formlink/schema"

	"github.com/go-chi/render"
)

func CreateSurvey(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Title      string          `json:"title"`
			Definition json.RawMessage `json:"definition"`
		}
		err := render.DecodeJSON(r.Body, &body)
		if err != nil {
			httpx.LogError(w, "request.parse_body", errs.ErrInvalidRequest)
			return
		}

		survey, err := app.Surveys.Create(r.Context(), body.Title, body.Definition)
		if err != nil {
			httpx.LogError(w, "db.insert_survey", err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, map[string]any{
			"id":    survey.ID,
			"token": survey.Token,
		})
	}
}

func ListSurveys(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveys, err := app.Surveys.List(r.Context())
		if err != nil {
			httpx.LogError(w, "db.get_surveys", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"surveys": surveys,
		})
	}
}

func GetSurveyById(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		survey, err := surveyFromRequest(app, r)
		if err != nil {
			httpx.LogError(w, "db.get_survey", err)
			return
		}

		render.JSON(w, r, survey)
	}
}

// UpdateSurvey overwrites title and definition wholesale under the same
// canonical id. The version in the body must match the stored one.
func UpdateSurvey(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		survey, err := surveyFromRequest(app, r)
		if err != nil {
			httpx.LogError(w, "db.get_survey", err)
			return
		}

		var body struct {
			Version    int             `json:"version"`
			Title      string          `json:"title"`
			Definition json.RawMessage `json:"definition"`
		}
		err = render.DecodeJSON(r.Body, &body)
		if err != nil {
			httpx.LogError(w, "request.parse_body", errs.ErrInvalidRequest)
			return
		}

		err = app.Surveys.Update(r.Context(), survey.ID, body.Version, body.Title, body.Definition)
		if err != nil {
			httpx.LogError(w, "db.update_survey", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// DeleteSurvey removes the survey and, through the store's cascade, its
// responses, drafts and share grants.
func DeleteSurvey(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		survey, err := surveyFromRequest(app, r)
		if err != nil {
			httpx.LogError(w, "db.get_survey", err)
			return
		}

		err = app.Surveys.Delete(r.Context(), survey.ID)
		if err != nil {
			httpx.LogError(w, "db.delete_survey", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func ExportSurvey(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		survey, err := surveyFromRequest(app, r)
		if err != nil {
			httpx.LogError(w, "db.get_survey", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"survey": survey,
		})
	}
}

// GetSurveyResponses renders the review view: every stored response paired
// back with the questions that produced its answers, newest first.
func GetSurveyResponses(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		survey, err := surveyFromRequest(app, r)
		if err != nil {
			httpx.LogError(w, "db.get_survey", err)
			return
		}

		responses, err := app.Responses.ListForSurvey(r.Context(), survey.ID)
		if err != nil {
			httpx.LogError(w, "db.get_responses", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"surveyId":  survey.ID,
			"title":     survey.Title,
			"responses": schema.Assemble(survey, responses),
		})
	}
}

// FillLink is one minted per-respondent link.
type FillLink struct {
	Owner string `json:"owner"`
	Label string `json:"label,omitempty"`
	URL   string `json:"url"`
}

// MintLinks turns a CSV body (owner id per row, optional label column)
// into per-respondent fill links for the survey.
func MintLinks(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		survey, err := surveyFromRequest(app, r)
		if err != nil {
			httpx.LogError(w, "db.get_survey", err)
			return
		}

		reader := csv.NewReader(r.Body)
		reader.FieldsPerRecord = -1
		reader.TrimLeadingSpace = true

		links := []FillLink{}
		for {
			record, err := reader.Read()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				httpx.LogStatusMsg(w, http.StatusBadRequest, log.WarnLevel,
					"links.parse_csv", "malformed csv: %s", err)
				return
			}

			owner := strings.TrimSpace(record[0])
			if owner == "" {
				continue
			}
			link := FillLink{
				Owner: owner,
				URL: fmt.Sprintf("%s/api/fill/%s?owner=%s",
					app.PublicURL, survey.Token, url.QueryEscape(owner)),
			}
			if len(record) > 1 {
				link.Label = strings.TrimSpace(record[1])
			}
			links = append(links, link)
		}

		render.JSON(w, r, map[string]any{
			"links": links,
		})
	}
}

func CreateUser(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Username string `json:"username"`
			Password string `json:"password"`
			Role     string `json:"role,omitempty"`
		}
		err := render.DecodeJSON(r.Body, &body)
		if err != nil {
			httpx.LogError(w, "request.parse_body", errs.ErrInvalidRequest)
			return
		}

		err = app.Users.Create(r.Context(), body.Username, body.Password, body.Role)
		if err != nil {
			httpx.LogError(w, "db.insert_user", err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, map[string]any{
			"username": body.Username,
		})
	}
}
