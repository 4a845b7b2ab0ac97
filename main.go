package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/truthtechno/lockerroom-evals/app"
	"github.com/truthtechno/lockerroom-evals/config"
	"github.com/truthtechno/lockerroom-evals/database"
	"github.com/truthtechno/lockerroom-evals/log"
	"github.com/truthtechno/lockerroom-evals/routes"
)

func main() {
	cfg, err := config.ParseFlags()
	if err != nil {
		log.Fatal("main.config:", err)
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal("main.db.open:", err)
	}
	defer db.Close()

	if cfg.SeedDemo {
		if err := database.Seed(db); err != nil {
			log.Fatal("main.db.seed:", err)
		}
	}

	handler := routes.Wire(app.New(cfg, db))

	err = runServer(cfg, handler)
	if !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("main.server:", err)
	}
}

func runServer(cfg config.Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Info("Listening on " + cfg.Url())
	return srv.ListenAndServe()
}
