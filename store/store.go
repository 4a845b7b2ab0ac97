// Package store is the persistence layer. All access goes through raw
// SQL; writes that touch parent and child rows run in one transaction.
package store

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrVersionConflict = errors.New("version conflict")
)

func IsNotFound(err error) bool {
	return errors.Cause(err) == ErrNotFound
}

func IsVersionConflict(err error) bool {
	return errors.Cause(err) == ErrVersionConflict
}

type Store struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// trapNoRows rewrites the sql sentinel into ours and wraps anything
// else with the failing operation.
func trapNoRows(err error, op string) error {
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	return errors.Wrap(err, op)
}
