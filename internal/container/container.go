package container

import (
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-logmanager/config"
	"github.com/oksasatya/go-logmanager/internal/application"
	"github.com/oksasatya/go-logmanager/internal/domain/bmi"
	"github.com/oksasatya/go-logmanager/internal/domain/repository"
	"github.com/oksasatya/go-logmanager/internal/infrastructure/messaging"
	"github.com/oksasatya/go-logmanager/internal/infrastructure/search"
	gcsstore "github.com/oksasatya/go-logmanager/internal/infrastructure/storage"
	"github.com/oksasatya/go-logmanager/pkg/helpers"
)

// Container holds the infrastructure built by the composition root. Optional
// clients are nil when their service is not configured; the corresponding
// features are then disabled rather than failing.
type Container struct {
	Config *config.Config
	Logger *logrus.Logger

	// Store is the transactional entry point to users and logs, backed by
	// PGPool or by the in-memory store.
	Store  repository.UnitOfWork
	PGPool *pgxpool.Pool

	Redis     *redis.Client
	GCS       *storage.Client
	ES        *elasticsearch.Client
	RabbitPub *helpers.RabbitPublisher

	// Clock drives log timestamps and ages; nil means time.Now.
	Clock func() time.Time
}

// Services are the application services shared by the HTTP modules.
type Services struct {
	Users *application.UserService
	Logs  *application.LogService
}

func (c *Container) now() func() time.Time {
	if c.Clock != nil {
		return c.Clock
	}
	return time.Now
}

func (c *Container) LogIndex() *search.LogIndex {
	return search.NewLogIndex(c.ES, c.Config.ESLogsIndex)
}

func (c *Container) auditPublisher() application.AuditPublisher {
	if c.RabbitPub == nil {
		return nil
	}
	return messaging.NewAuditPublisher(c.RabbitPub)
}

func (c *Container) logSearcher() application.LogSearcher {
	if c.ES == nil {
		return nil
	}
	return c.LogIndex()
}

func (c *Container) logExporter() application.LogExporter {
	if c.GCS == nil || c.Config.GCSBucket == "" {
		return nil
	}
	return gcsstore.NewGCSLogExporter(c.GCS, c.Config.GCSBucket)
}

// BuildServices wires the application services on top of the container.
func (c *Container) BuildServices() Services {
	logs := application.NewLogService(c.Store, c.auditPublisher(), c.logSearcher(), c.logExporter(), c.Logger)
	logs.Now = c.now()

	validation := application.NewValidationService(logs, c.Logger)
	users := application.NewUserService(c.Store, validation, logs, bmi.NewCalculator(c.now()), c.Logger)
	return Services{Users: users, Logs: logs}
}
