package application

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-logmanager/internal/domain/entity"
	"github.com/oksasatya/go-logmanager/internal/domain/repository"
)

// LogInput describes an audit log to write. User is the acting user's name;
// an unknown name leaves the log without a user reference.
type LogInput struct {
	Message  string
	Severity entity.Severity
	User     string
}

// LogService writes and reads the audit log.
type LogService struct {
	UoW       repository.UnitOfWork
	Publisher AuditPublisher
	Searcher  LogSearcher
	Exporter  LogExporter
	Logger    *logrus.Logger
	Now       func() time.Time
}

func NewLogService(uow repository.UnitOfWork, publisher AuditPublisher, searcher LogSearcher, exporter LogExporter, logger *logrus.Logger) *LogService {
	return &LogService{
		UoW:       uow,
		Publisher: publisher,
		Searcher:  searcher,
		Exporter:  exporter,
		Logger:    logger,
		Now:       time.Now,
	}
}

var _ AuditSink = (*LogService)(nil)

// AddLog persists in through repos and mirrors it to the process logger.
func (s *LogService) AddLog(ctx context.Context, repos repository.Repositories, in LogInput) (*entity.Log, error) {
	l := &entity.Log{
		Message:   in.Message,
		Severity:  in.Severity,
		Timestamp: s.now(),
	}
	if in.User != "" {
		u, err := repos.Users.GetByName(ctx, in.User)
		switch {
		case err == nil:
			l.UserID = &u.ID
			name := u.Name
			l.UserName = &name
		case !errors.Is(err, repository.ErrNotFound):
			return nil, err
		}
	}
	if err := repos.Logs.Create(ctx, l); err != nil {
		return nil, err
	}
	s.mirror(*l, in.User)
	return l, nil
}

func (s *LogService) ExistLogByUserToDelete(ctx context.Context, repos repository.Repositories, user entity.User) (bool, error) {
	return repos.Logs.ExistsByUserID(ctx, user.ID)
}

// CreateLog writes a single log on its own.
func (s *LogService) CreateLog(ctx context.Context, in LogInput) (*entity.Log, error) {
	if strings.TrimSpace(in.Message) == "" || in.Severity == "" {
		var missing []string
		if strings.TrimSpace(in.Message) == "" {
			missing = append(missing, "message")
		}
		if in.Severity == "" {
			missing = append(missing, "severity")
		}
		return nil, newError(KindParameterMissing, msgParameterMissing, strings.Join(missing, ", "))
	}
	sev, ok := entity.ParseSeverity(string(in.Severity))
	if !ok {
		return nil, newError(KindInvalidParameter, msgInvalidSeverity, in.Severity)
	}
	in.Severity = sev

	var created *entity.Log
	err := s.UoW.Do(ctx, func(ctx context.Context, repos repository.Repositories) (err error) {
		created, err = s.AddLog(ctx, repos, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.Publish(ctx, *created)
	return created, nil
}

func (s *LogService) ListLogs(ctx context.Context, filter repository.LogFilter) ([]entity.Log, error) {
	var logs []entity.Log
	err := s.UoW.Do(ctx, func(ctx context.Context, repos repository.Repositories) (err error) {
		logs, err = repos.Logs.List(ctx, filter)
		return err
	})
	return logs, err
}

func (s *LogService) FindLogByID(ctx context.Context, id int64) (*entity.Log, error) {
	var l *entity.Log
	err := s.UoW.Do(ctx, func(ctx context.Context, repos repository.Repositories) (err error) {
		l, err = repos.Logs.GetByID(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			return newError(KindLogNotFound, msgLogNotFound, id)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return l, nil
}

// DeleteLogs removes every log in ids or none of them.
func (s *LogService) DeleteLogs(ctx context.Context, ids []int64) (string, error) {
	if len(ids) == 0 {
		return "", newError(KindParameterMissing, msgParameterMissing, "ids")
	}
	err := s.UoW.Do(ctx, func(ctx context.Context, repos repository.Repositories) error {
		for _, id := range ids {
			if _, err := repos.Logs.GetByID(ctx, id); err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return newError(KindLogNotFound, msgLogNotFound, id)
				}
				return err
			}
		}
		return repos.Logs.DeleteByIDs(ctx, ids)
	})
	if err != nil {
		return "", err
	}
	msg := fmt.Sprintf(msgEntriesDeleted, joinIDs(ids))
	s.Logger.Info(msg)
	return msg, nil
}

// SearchLogs queries the search index. Without an index it finds nothing.
func (s *LogService) SearchLogs(ctx context.Context, q string, size int) ([]entity.LogEvent, error) {
	if s.Searcher == nil {
		return []entity.LogEvent{}, nil
	}
	return s.Searcher.Search(ctx, q, size)
}

// ExportLogs uploads all logs and records the export as an INFO log by actor.
// The snapshot read, the upload and the INFO log are separate steps.
func (s *LogService) ExportLogs(ctx context.Context, actor string) (string, error) {
	if strings.TrimSpace(actor) == "" {
		return "", ParameterNotPresent("actor")
	}
	if s.Exporter == nil {
		return "", errors.New("log export is not configured")
	}

	var events []entity.LogEvent
	err := s.UoW.Do(ctx, func(ctx context.Context, repos repository.Repositories) error {
		logs, err := repos.Logs.List(ctx, repository.LogFilter{})
		if err != nil {
			return err
		}
		events = make([]entity.LogEvent, 0, len(logs))
		for _, l := range logs {
			events = append(events, entity.NewLogEvent(l))
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	// No unit of work is open during the upload.
	url, err := s.Exporter.Export(ctx, events)
	if err != nil {
		return "", fmt.Errorf("export logs: %w", err)
	}

	var written *entity.Log
	err = s.UoW.Do(ctx, func(ctx context.Context, repos repository.Repositories) (err error) {
		written, err = s.AddLog(ctx, repos, LogInput{
			Message:  fmt.Sprintf(msgLogsExported, url),
			Severity: entity.SeverityInfo,
			User:     actor,
		})
		return err
	})
	if err != nil {
		s.Logger.WithError(err).WithField("url", url).Error("export uploaded but not recorded")
		return "", err
	}
	s.Publish(ctx, *written)
	return url, nil
}

// Publish announces committed logs. Failures are logged, not returned: the
// logs are already stored.
func (s *LogService) Publish(ctx context.Context, logs ...entity.Log) {
	if s.Publisher == nil {
		return
	}
	for _, l := range logs {
		if err := s.Publisher.PublishLog(ctx, l); err != nil {
			s.Logger.WithError(err).WithField("log_id", l.ID).Warn("publish audit log failed")
		}
	}
}

func (s *LogService) now() time.Time {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return now().UTC().Truncate(time.Microsecond)
}

func (s *LogService) mirror(l entity.Log, user string) {
	entry := s.Logger.WithFields(logrus.Fields{
		"log_id":   l.ID,
		"severity": l.Severity,
		"user":     user,
	})
	switch l.Severity {
	case entity.SeverityError:
		entry.Error(l.Message)
	case entity.SeverityWarning:
		entry.Warn(l.Message)
	default:
		entry.Info(l.Message)
	}
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ", ")
}
