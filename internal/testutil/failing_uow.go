package testutil

import (
	"context"
	"database/sql"

	"github.com/alexanderramin/studycal/internal/db"
)

// FailOnNthExec returns a UnitOfWork whose transactions fail the nth
// ExecContext (counting from 1) with err. Reads pass through, so a test can
// stop a plan save after the header or part way through its sessions and
// check that nothing was committed.
func FailOnNthExec(database *sql.DB, n int, err error) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database, db.WithTxWrapper(func(tx db.DBTX) db.DBTX {
		return &failingExec{DBTX: tx, failOn: n, err: err}
	}))
}

type failingExec struct {
	db.DBTX
	calls  int
	failOn int
	err    error
}

func (f *failingExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	f.calls++
	if f.calls == f.failOn {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
