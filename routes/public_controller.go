package routes

import (
	"errors"
	"net/http"

	"formlink/app"
	"formlink/errs"
	"formlink/httpx"
	"formlink/model"
	"formlink/routes/middlewares"

	"github.com/go-chi/render"
)

// FillSurvey renders a survey for a respondent arriving on a fill link:
// the definition plus the effective owner's draft, if one exists. On this
// endpoint a denial is deliberately indistinguishable from a missing
// survey, so link guessing cannot probe which surveys exist.
func FillSurvey(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middlewares.IdentityFrom(r.Context())

		survey, err := surveyFromRequest(app, r)
		if errors.Is(err, errs.ErrNotFound) {
			httpx.LogNotFound(w, "fill.get_survey", survey.ID)
			return
		}
		if err != nil {
			httpx.LogError(w, "fill.get_survey", err)
			return
		}

		decision, err := app.Access.Resolve(r.Context(), survey.ID, identity.UserID, r.URL.Query().Get("owner"))
		if err != nil {
			httpx.LogError(w, "fill.resolve", err)
			return
		}
		if !decision.Granted {
			httpx.LogNotFound(w, "fill.denied", survey.ID)
			return
		}

		var draft any
		d, err := app.Drafts.Load(r.Context(), survey.ID, decision.EffectiveOwnerID)
		switch {
		case errors.Is(err, errs.ErrNotFound):
			// first visit, nothing saved yet
		case err != nil:
			httpx.LogError(w, "fill.get_draft", err)
			return
		default:
			draft = d
		}

		render.JSON(w, r, map[string]any{
			"survey": model.Survey{
				ID:         survey.ID,
				Token:      survey.Token,
				Title:      survey.Title,
				Definition: survey.Definition,
			},
			"access": decision,
			"draft":  draft,
		})
	}
}

// SubmitResponse records a finalized, immutable submission. The caller must
// hold access to the survey instance, same as for drafts.
func SubmitResponse(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middlewares.IdentityFrom(r.Context())

		survey, err := surveyFromRequest(app, r)
		if err != nil {
			httpx.LogError(w, "submit.get_survey", err)
			return
		}

		decision, err := app.Access.Resolve(r.Context(), survey.ID, identity.UserID, r.URL.Query().Get("owner"))
		if err != nil {
			httpx.LogError(w, "submit.resolve", err)
			return
		}
		if !decision.Granted {
			httpx.LogError(w, "submit.denied", errs.ErrForbidden)
			return
		}

		var body struct {
			Answers model.AnswerSet `json:"answers"`
		}
		err = render.DecodeJSON(r.Body, &body)
		if err != nil {
			httpx.LogError(w, "request.parse_body", errs.ErrInvalidRequest)
			return
		}

		response, err := app.Responses.Insert(r.Context(), survey.ID, body.Answers)
		if err != nil {
			httpx.LogError(w, "submit.insert_response", err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, map[string]any{
			"id":          response.ID,
			"submittedAt": response.SubmittedAt,
		})
	}
}
