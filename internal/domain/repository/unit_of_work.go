package repository

import (
	"context"
	"errors"
)

// ErrNotFound is returned by repositories when a lookup matches nothing.
var ErrNotFound = errors.New("not found")

// Repositories groups the repositories bound to one transaction scope.
type Repositories struct {
	Users UserRepository
	Logs  LogRepository
}

// UnitOfWork runs fn inside a single transaction. The transaction commits when
// fn returns nil and rolls back otherwise, so every write made through repos is
// all-or-nothing.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}
