package worker

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-logmanager/internal/domain/entity"
	"github.com/oksasatya/go-logmanager/pkg/helpers"
	"github.com/oksasatya/go-logmanager/pkg/mailer"
)

// Indexer stores audit events for search.
type Indexer interface {
	Index(ctx context.Context, ev entity.LogEvent) error
}

// Mailer delivers alert mails.
type Mailer interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// Outcome tells the consumer how to settle a delivery.
type Outcome int

const (
	Ack Outcome = iota
	// Reject drops a message that can never be processed.
	Reject
	// Requeue hands the message back for another attempt.
	Requeue
)

// AuditHandler processes audit events from the queue. Alerts are sent for
// WARNING and ERROR events when Mail and AlertTo are set.
type AuditHandler struct {
	Index   Indexer
	Mail    Mailer
	AlertTo string
	AppName string
	Logger  *logrus.Logger

	// RetryDelay is the pause before the first requeue; it doubles with every
	// consecutive failure up to MaxRetryDelay and resets after a success.
	RetryDelay    time.Duration
	MaxRetryDelay time.Duration

	sleep func(ctx context.Context, d time.Duration) bool
}

const (
	defaultRetryDelay    = time.Second
	defaultMaxRetryDelay = time.Minute
)

func (h *AuditHandler) Handle(ctx context.Context, body []byte) Outcome {
	var ev entity.LogEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		h.Logger.WithError(err).Warn("bad audit message")
		return Reject
	}
	fields := logrus.Fields{"log_id": ev.ID, "severity": ev.Severity}

	if h.Index != nil {
		if err := h.Index.Index(ctx, ev); err != nil {
			h.Logger.WithError(err).WithFields(fields).Error("index failed")
			return Requeue
		}
	}

	if !h.wantsAlert(ev) {
		return Ack
	}
	user := ""
	if ev.User != nil {
		user = *ev.User
	}
	subject, text, html, err := mailer.RenderAlert(mailer.AlertData{
		AppName:   h.AppName,
		LogID:     ev.ID,
		Severity:  ev.Severity,
		Message:   ev.Message,
		User:      user,
		Timestamp: ev.Timestamp,
	})
	if err != nil {
		h.Logger.WithError(err).WithFields(fields).Error("render alert failed")
		return Reject
	}
	if err := h.Mail.Send(ctx, h.AlertTo, subject, text, html); err != nil {
		h.Logger.WithError(err).WithFields(fields).Error("send alert failed")
		return Requeue
	}
	helpers.LogInfo(h.Logger, "alert sent", fields)
	return Ack
}

func (h *AuditHandler) wantsAlert(ev entity.LogEvent) bool {
	if h.Mail == nil || h.AlertTo == "" {
		return false
	}
	sev, ok := entity.ParseSeverity(ev.Severity)
	return ok && (sev == entity.SeverityWarning || sev == entity.SeverityError)
}

// Run handles deliveries until ctx is done or the channel closes. Failed
// messages are requeued after a growing delay so a broken dependency does not
// turn into a hot redelivery loop.
func (h *AuditHandler) Run(ctx context.Context, deliveries <-chan amqp.Delivery) {
	failures := 0
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-deliveries:
			if !ok {
				return
			}
			switch h.Handle(ctx, msg.Body) {
			case Ack:
				failures = 0
				_ = msg.Ack(false)
			case Reject:
				_ = msg.Nack(false, false)
			case Requeue:
				failures++
				delay := h.backoff(failures)
				h.Logger.WithFields(logrus.Fields{"failures": failures, "delay": delay.String()}).Warn("requeue audit message")
				if !h.wait(ctx, delay) {
					_ = msg.Nack(false, true)
					return
				}
				_ = msg.Nack(false, true)
			}
		}
	}
}

func (h *AuditHandler) backoff(failures int) time.Duration {
	base, limit := h.RetryDelay, h.MaxRetryDelay
	if base <= 0 {
		base = defaultRetryDelay
	}
	if limit <= 0 {
		limit = defaultMaxRetryDelay
	}
	d := base
	for i := 1; i < failures && d < limit; i++ {
		d *= 2
	}
	return min(d, limit)
}

func (h *AuditHandler) wait(ctx context.Context, d time.Duration) bool {
	if h.sleep != nil {
		return h.sleep(ctx, d)
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
