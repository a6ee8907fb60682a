package app

import (
	"database/sql"

	"formlink/access"
	"formlink/config"
	"formlink/store"

	"github.com/go-chi/oauth"
)

type App struct {
	*sql.DB
	*oauth.BearerServer
	config.Config

	Surveys   *store.SurveyStore
	Responses *store.ResponseStore
	Drafts    *store.DraftStore
	Shares    *store.ShareStore
	Users     *store.UserStore
	Access    *access.Resolver
}

func New(db *sql.DB, bearerServer *oauth.BearerServer, cfg config.Config) App {
	surveys := store.NewSurveyStore(db)
	shares := store.NewShareStore(db)

	return App{
		DB:           db,
		BearerServer: bearerServer,
		Config:       cfg,

		Surveys:   surveys,
		Responses: store.NewResponseStore(db),
		Drafts:    store.NewDraftStore(db),
		Shares:    shares,
		Users:     store.NewUserStore(db),
		Access:    access.NewResolver(surveys, shares),
	}
}
