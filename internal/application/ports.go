package application

import (
	"context"

	"github.com/oksasatya/go-logmanager/internal/domain/entity"
	"github.com/oksasatya/go-logmanager/internal/domain/repository"
)

// AuditSink writes audit logs inside the caller's unit of work.
type AuditSink interface {
	AddLog(ctx context.Context, repos repository.Repositories, in LogInput) (*entity.Log, error)
	ExistLogByUserToDelete(ctx context.Context, repos repository.Repositories, user entity.User) (bool, error)
}

// AuditPublisher announces committed audit logs.
type AuditPublisher interface {
	PublishLog(ctx context.Context, l entity.Log) error
}

type LogSearcher interface {
	Search(ctx context.Context, q string, size int) ([]entity.LogEvent, error)
}

// LogExporter stores a snapshot of logs and returns where it was written.
type LogExporter interface {
	Export(ctx context.Context, events []entity.LogEvent) (string, error)
}
