package app

import (
	"github.com/go-chi/jwtauth"
	"github.com/jmoiron/sqlx"

	"github.com/truthtechno/lockerroom-evals/config"
	"github.com/truthtechno/lockerroom-evals/store"
)

// App bundles everything the route handlers close over.
type App struct {
	DB     *sqlx.DB
	Store  *store.Store
	Tokens *jwtauth.JWTAuth
	Forms  *TemplateCache
	config.Config
}

func New(cfg config.Config, db *sqlx.DB) App {
	st := store.New(db)
	return App{
		DB:     db,
		Store:  st,
		Tokens: jwtauth.New("HS256", []byte(cfg.TokenSecret), nil),
		Forms:  NewTemplateCache(st),
		Config: cfg,
	}
}
