package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type contextKey string

// DBTxKey is the context key under which an open transaction is stored.
const DBTxKey contextKey = "db_tx"

// TxFromContext retrieves the transaction from context, or nil when the
// context carries none. Repositories consult this before falling back to the
// shared pool, so every statement issued inside RunInTx joins the same
// transaction.
func TxFromContext(ctx context.Context) pgx.Tx {
	tx, _ := ctx.Value(DBTxKey).(pgx.Tx)
	return tx
}

// RunInTx executes fn inside a single database transaction. The transaction
// is committed when fn returns nil and rolled back when it returns an error
// or panics. If the context already carries a transaction, fn joins it and
// commit/rollback is left to the outer call. A nil pool runs fn directly
// without a transaction.
func RunInTx(ctx context.Context, pool *pgxpool.Pool, fn func(context.Context) error) error {
	if TxFromContext(ctx) != nil {
		return fn(ctx)
	}
	if pool == nil {
		return fn(ctx)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	done := false
	defer func() {
		if !done {
			_ = tx.Rollback(ctx)
		}
	}()

	if err := fn(context.WithValue(ctx, DBTxKey, tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	done = true
	return nil
}
