package database

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// WithTx runs fn inside a transaction. Any error from fn, or a panic,
// rolls the transaction back; otherwise it is committed.
func WithTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}
