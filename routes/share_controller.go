package routes

import (
	"fmt"
	"net/http"

	"formlink/app"
	"formlink/errs"
	"formlink/httpx"
	"formlink/model"
	"formlink/routes/middlewares"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// GrantShare lets a respondent open their own draft to another respondent.
// An administrator may grant on behalf of any owner by naming ownerId.
func GrantShare(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middlewares.IdentityFrom(r.Context())

		survey, err := surveyFromRequest(app, r)
		if err != nil {
			httpx.LogError(w, "share.grant.get_survey", err)
			return
		}

		var body struct {
			SharedWith string `json:"sharedWith"`
			OwnerID    string `json:"ownerId,omitempty"`
		}
		err = render.DecodeJSON(r.Body, &body)
		if err != nil {
			httpx.LogError(w, "request.parse_body", errs.ErrInvalidRequest)
			return
		}

		ownerID := identity.UserID
		if body.OwnerID != "" && body.OwnerID != identity.UserID {
			if !identity.IsAdmin() {
				httpx.LogError(w, "share.grant.owner", fmt.Errorf("grant for another owner: %w", errs.ErrForbidden))
				return
			}
			ownerID = body.OwnerID
		}

		grant, err := app.Shares.Grant(r.Context(), survey.ID, ownerID, body.SharedWith)
		if err != nil {
			httpx.LogError(w, "share.grant", err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, grant)
	}
}

func RevokeShare(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middlewares.IdentityFrom(r.Context())

		survey, err := surveyFromRequest(app, r)
		if err != nil {
			httpx.LogError(w, "share.revoke.get_survey", err)
			return
		}

		err = app.Shares.Revoke(r.Context(), survey.ID, chi.URLParam(r, "userId"), identity)
		if err != nil {
			httpx.LogError(w, "share.revoke", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// ListShares returns the survey's grants: all of them for administrators,
// only the caller's own otherwise.
func ListShares(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middlewares.IdentityFrom(r.Context())

		survey, err := surveyFromRequest(app, r)
		if err != nil {
			httpx.LogError(w, "share.list.get_survey", err)
			return
		}

		grants, err := app.Shares.ListForSurvey(r.Context(), survey.ID)
		if err != nil {
			httpx.LogError(w, "share.list", err)
			return
		}

		if !identity.IsAdmin() {
			own := []model.ShareGrant{}
			for _, g := range grants {
				if g.OwnerID == identity.UserID {
					own = append(own, g)
				}
			}
			grants = own
		}

		render.JSON(w, r, map[string]any{
			"shares": grants,
		})
	}
}

func ListReceivedShares(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middlewares.IdentityFrom(r.Context())

		grants, err := app.Shares.ListReceivedBy(r.Context(), identity.UserID)
		if err != nil {
			httpx.LogError(w, "share.received", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"shares": grants,
		})
	}
}
