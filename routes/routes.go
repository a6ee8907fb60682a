package routes

import (
	"net/http"

	"formlink/app"
	"formlink/model"
	"formlink/routes/middlewares"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func Wire(app app.App) http.Handler {
	root := chi.NewRouter()
	root.Use(middleware.Logger, middleware.Recoverer)

	root.Mount("/api", apiRouter(app))

	return root
}

func apiRouter(app app.App) http.Handler {
	api := chi.NewRouter()

	api.Post("/login", Login(app))
	api.Post("/refresh", Refresh(app))

	// respondent surface: everything resolves through the access resolver
	api.Route("/fill", func(r chi.Router) {
		r.Use(middlewares.Authenticated(app.TokenSecret))

		r.Get("/{id}", FillSurvey(app))
		r.Get("/{id}/draft", LoadDraft(app))
		r.Put("/{id}/draft", SaveDraft(app))
		r.Post("/{id}/responses", SubmitResponse(app))

		r.Post("/{id}/shares", GrantShare(app))
		r.Get("/{id}/shares", ListShares(app))
		r.Delete("/{id}/shares/{userId}", RevokeShare(app))
	})

	api.With(middlewares.Authenticated(app.TokenSecret)).
		Get("/shares", ListReceivedShares(app))

	api.Route("/admin", func(r chi.Router) {
		r.Use(middlewares.Authenticated(app.TokenSecret), middlewares.Admin)

		// CRUD survey
		r.Post("/surveys", CreateSurvey(app))
		r.Get("/surveys", ListSurveys(app))
		r.Get("/surveys/{id}", GetSurveyById(app))
		r.Put("/surveys/{id}", UpdateSurvey(app))
		r.Delete("/surveys/{id}", DeleteSurvey(app))

		r.Get("/surveys/{id}/export", ExportSurvey(app))
		r.Get("/surveys/{id}/responses", GetSurveyResponses(app))
		r.Post("/surveys/{id}/links", MintLinks(app))

		r.Post("/users", CreateUser(app))
	})

	return api
}

// surveyFromRequest normalizes the {id} URL param (numeric id or token) to
// the canonical survey record.
func surveyFromRequest(app app.App, r *http.Request) (model.Survey, error) {
	return app.Surveys.ResolveCanonical(r.Context(), chi.URLParam(r, "id"))
}
