package importer

import (
	"context"

	"gorm.io/gorm"

	"github.com/capframe/capframe-backend/internal/domain/importing"
	"github.com/capframe/capframe-backend/internal/platform/dbctx"
)

// TxRunner provides the transaction boundary every import batch runs inside.
type TxRunner interface {
	InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error
}

type gormTxRunner struct {
	db *gorm.DB
}

// NewGormTxRunner returns a transaction runner backed by GORM transactions.
func NewGormTxRunner(db *gorm.DB) TxRunner {
	return &gormTxRunner{db: db}
}

func (r *gormTxRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	if fn == nil {
		return nil
	}
	if r == nil || r.db == nil {
		return importing.NewError(importing.CodeInternal, "importer.tx", "transaction runner has nil db", nil)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(dbctx.Context{Ctx: ctx, Tx: tx})
	})
}

// inSavepoint runs fn inside a nested transaction so one failed statement,
// a lost insert race in particular, can be retried without poisoning the
// batch transaction.
func inSavepoint(dbc dbctx.Context, fn func(dbc dbctx.Context) error) error {
	if dbc.Tx == nil {
		return importing.NewError(importing.CodeInternal, "importer.tx", "savepoint requires an open transaction", nil)
	}
	return dbc.Tx.Transaction(func(tx *gorm.DB) error {
		return fn(dbc.WithTx(tx))
	})
}
