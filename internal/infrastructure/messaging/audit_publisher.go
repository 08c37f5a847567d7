package messaging

import (
	"context"
	"time"

	"github.com/oksasatya/go-logmanager/internal/domain/entity"
)

const publishTimeout = 2 * time.Second

// JSONPublisher is satisfied by *helpers.RabbitPublisher.
type JSONPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// AuditPublisher puts committed audit logs on the audit queue.
type AuditPublisher struct {
	pub JSONPublisher
}

func NewAuditPublisher(pub JSONPublisher) *AuditPublisher {
	return &AuditPublisher{pub: pub}
}

func (p *AuditPublisher) PublishLog(ctx context.Context, l entity.Log) error {
	if p == nil || p.pub == nil {
		return nil
	}
	c, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	return p.pub.PublishJSON(c, entity.NewLogEvent(l))
}
