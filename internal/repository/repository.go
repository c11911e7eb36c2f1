package repository

import (
	"context"
	"database/sql"

	"chargenet/internal/apperr"
)

// withTx runs op inside a transaction, rolling back on error. Multi-step
// writes (signup with first vehicle, session insert plus payment upsert)
// must commit or fail as one unit.
func withTx(ctx context.Context, db *sql.DB, op func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return apperr.FromStore(err)
	}
	defer tx.Rollback()

	if err := op(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return apperr.FromStore(err)
	}
	return nil
}
