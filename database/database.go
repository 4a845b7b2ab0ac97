package database

import (
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/truthtechno/lockerroom-evals/config"
)

// Open connects to the SQLite file named by the configuration and
// brings the schema up to date.
func Open(cfg config.Config) (db *sqlx.DB, err error) {
	db, err = sqlx.Open("sqlite3", cfg.DBPath)
	if err != nil {
		return
	}

	_, err = db.Exec("PRAGMA foreign_keys = ON")
	if err != nil {
		db.Close()
		return
	}

	// db tuning options
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(2 * time.Hour)

	err = migrateDB(db.DB)
	if err != nil {
		db.Close()
		return
	}

	return
}
