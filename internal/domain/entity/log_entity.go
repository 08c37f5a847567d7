package entity

import (
	"strings"
	"time"
)

// Severity classifies an audit log entry.
type Severity string

const (
	SeverityInfo    Severity = "INFO"
	SeverityWarning Severity = "WARNING"
	SeverityError   Severity = "ERROR"
)

// ParseSeverity accepts any casing and returns the canonical severity.
func ParseSeverity(s string) (Severity, bool) {
	switch sev := Severity(strings.ToUpper(strings.TrimSpace(s))); sev {
	case SeverityInfo, SeverityWarning, SeverityError:
		return sev, true
	}
	return "", false
}

// Log is an audit entry. UserID/UserName point back at the acting user and
// are nil when that user did not exist at write time.
type Log struct {
	ID        int64
	Message   string
	Severity  Severity
	Timestamp time.Time
	UserID    *int64
	UserName  *string
}

// LogEvent is the wire form of a Log, used on the audit queue and in the
// search index.
type LogEvent struct {
	ID        int64     `json:"id"`
	Severity  string    `json:"severity"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	User      *string   `json:"user"`
}

func NewLogEvent(l Log) LogEvent {
	return LogEvent{
		ID:        l.ID,
		Severity:  string(l.Severity),
		Message:   l.Message,
		Timestamp: l.Timestamp,
		User:      l.UserName,
	}
}
