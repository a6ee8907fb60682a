package routes

import (
	"net/http"

	"formlink/access"
	"formlink/app"
	"formlink/errs"
	"formlink/httpx"
	"formlink/model"
	"formlink/routes/middlewares"

	"github.com/go-chi/render"
)

// resolveDraftAccess runs the one authorization path shared by draft reads
// and writes. The handlers never inline their own checks.
func resolveDraftAccess(app app.App, r *http.Request) (model.Survey, access.Decision, error) {
	identity, _ := middlewares.IdentityFrom(r.Context())

	survey, err := surveyFromRequest(app, r)
	if err != nil {
		return model.Survey{}, access.Decision{}, err
	}

	decision, err := app.Access.Resolve(r.Context(), survey.ID, identity.UserID, r.URL.Query().Get("owner"))
	if err != nil {
		return model.Survey{}, access.Decision{}, err
	}
	if !decision.Granted {
		return model.Survey{}, access.Decision{}, errs.ErrForbidden
	}
	return survey, decision, nil
}

func SaveDraft(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		survey, decision, err := resolveDraftAccess(app, r)
		if err != nil {
			httpx.LogError(w, "draft.save.resolve", err)
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

		identity, _ := middlewares.IdentityFrom(r.Context())
		created, err := app.Drafts.Save(r.Context(), survey.ID, decision.EffectiveOwnerID, identity.UserID, body.Answers)
		if err != nil {
			httpx.LogError(w, "draft.save", err)
			return
		}

		if created {
			w.WriteHeader(http.StatusCreated)
		}
		render.JSON(w, r, map[string]any{
			"created": created,
			"ownerId": decision.EffectiveOwnerID,
		})
	}
}

func LoadDraft(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		survey, decision, err := resolveDraftAccess(app, r)
		if err != nil {
			httpx.LogError(w, "draft.load.resolve", err)
			return
		}

		draft, err := app.Drafts.Load(r.Context(), survey.ID, decision.EffectiveOwnerID)
		if err != nil {
			httpx.LogError(w, "draft.load", err)
			return
		}

		render.JSON(w, r, draft)
	}
}
