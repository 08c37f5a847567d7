package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oksasatya/go-logmanager/internal/domain/repository"
)

// DBTX is the subset of pgx used by the repositories.
// *pgxpool.Pool, pgx.Tx and *pgx.Conn all satisfy it.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TxBeginner starts transactions; *pgxpool.Pool satisfies it.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// UnitOfWork binds fresh repositories to one pgx transaction per call.
type UnitOfWork struct {
	db TxBeginner
}

func NewUnitOfWork(db TxBeginner) *UnitOfWork {
	return &UnitOfWork{db: db}
}

// Do begins a transaction, runs fn with repositories bound to it, and commits
// on success or rolls back on error/panic. Panics are rethrown.
func (u *UnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, repos repository.Repositories) error) (err error) {
	tx, err := u.db.Begin(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		err = tx.Commit(ctx)
	}()

	err = fn(ctx, Repositories(tx))
	return err
}

// Repositories returns the repositories bound to db.
func Repositories(db DBTX) repository.Repositories {
	return repository.Repositories{
		Users: NewUserRepository(db),
		Logs:  NewLogRepository(db),
	}
}

var _ repository.UnitOfWork = (*UnitOfWork)(nil)
