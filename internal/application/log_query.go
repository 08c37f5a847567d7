package application

import (
	"strings"
	"time"

	"github.com/oksasatya/go-logmanager/internal/domain/entity"
	"github.com/oksasatya/go-logmanager/internal/domain/repository"
)

// TimestampLayout is the wire format of log timestamps.
const TimestampLayout = "2006-01-02T15:04:05"

// LogQuery is the raw, string-typed form of a log listing filter.
type LogQuery struct {
	Severity string
	Message  string
	User     string
	From     string
	To       string
}

// ParseLogQuery validates q and converts it into a repository filter.
// Timestamps are read as UTC; RFC 3339 values are accepted as well.
func ParseLogQuery(q LogQuery) (repository.LogFilter, error) {
	f := repository.LogFilter{
		Message:  strings.TrimSpace(q.Message),
		UserName: strings.TrimSpace(q.User),
	}
	if raw := strings.TrimSpace(q.Severity); raw != "" {
		sev, ok := entity.ParseSeverity(raw)
		if !ok {
			return f, newError(KindInvalidParameter, msgInvalidSeverity, raw)
		}
		f.Severity = sev
	}
	var err error
	if f.From, err = parseTimeParam("from", q.From); err != nil {
		return f, err
	}
	if f.To, err = parseTimeParam("to", q.To); err != nil {
		return f, err
	}
	return f, nil
}

func parseTimeParam(name, raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{TimestampLayout, time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, newError(KindInvalidParameter, msgInvalidTimeParameter, name)
}
