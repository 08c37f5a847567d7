package repository

import (
	"context"
	"time"

	"github.com/oksasatya/go-logmanager/internal/domain/entity"
)

// LogFilter narrows a log listing. Zero values match everything.
type LogFilter struct {
	Severity entity.Severity
	Message  string // substring, case-insensitive
	UserName string
	From     *time.Time
	To       *time.Time
}

// LogRepository defines the interface for audit log persistence.
// Logs are append-only: there is no update.
type LogRepository interface {
	Create(ctx context.Context, l *entity.Log) error
	GetByID(ctx context.Context, id int64) (*entity.Log, error)
	List(ctx context.Context, filter LogFilter) ([]entity.Log, error)
	DeleteByIDs(ctx context.Context, ids []int64) error
	ExistsByUserID(ctx context.Context, userID int64) (bool, error)
}
