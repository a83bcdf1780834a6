package aggregates

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"gorm.io/gorm"

	domainagg "github.com/yungbote/shiftplan-backend/internal/domain/aggregates"
	"github.com/yungbote/shiftplan-backend/internal/platform/dbctx"
)

// DefaultTxAttempts is the number of times a write body runs before a
// serialization failure is surfaced as retryable.
const DefaultTxAttempts = 3

// TxRunner provides a shared transaction boundary primitive for aggregate writes.
type TxRunner interface {
	InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error
}

type gormTxRunner struct {
	db *gorm.DB
}

// NewGormTxRunner returns a transaction runner backed by GORM transactions.
// When db is already a transaction the body runs inside a savepoint.
func NewGormTxRunner(db *gorm.DB) TxRunner {
	return &gormTxRunner{db: db}
}

func (r *gormTxRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	if fn == nil {
		return nil
	}
	if r == nil || r.db == nil {
		return domainagg.NewError(domainagg.CodeInternal, "aggregate.tx", "transaction runner has nil db", nil)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(dbctx.Context{Ctx: ctx, Tx: tx})
	})
}

// runTx runs fn in a transaction and replays it while the database reports a
// serialization failure or deadlock. Every other error ends the loop.
func runTx(ctx context.Context, r TxRunner, attempts int, fn func(dbc dbctx.Context) error, onRetry func(attempt int, err error)) error {
	if attempts <= 0 {
		attempts = 1
	}
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		err = r.InTx(ctx, fn)
		if err == nil || !isTxConflict(err) || ctx.Err() != nil {
			return err
		}
		if attempt < attempts && onRetry != nil {
			onRetry(attempt, err)
		}
	}
	return err
}

// isTxConflict reports whether err aborted the transaction because of a
// concurrent writer, so replaying the whole body may succeed.
func isTxConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch strings.TrimSpace(pgErr.Code) {
		case "40001", "40P01":
			return true
		}
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "database table is locked")
}
