package testutil

import (
	"context"
	"database/sql"

	"github.com/alexanderramin/studybuddy/internal/db"
)

// FailOnNthExecUoW runs a real transaction but makes the FailOn-th write
// (counting ExecContext calls from 1) return Err, so tests can check that
// multi-write operations roll back. Reads are never counted.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int32
	Err    error
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return db.NewSQLiteUnitOfWork(u.DB).WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &execFaulter{DBTX: tx, failOn: u.FailOn, err: u.Err})
	})
}

type execFaulter struct {
	db.DBTX
	writes int32
	failOn int32
	err    error
}

func (f *execFaulter) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	f.writes++
	if f.writes == f.failOn {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
