package messaging

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-logmanager/internal/domain/entity"
)

type fakePublisher struct {
	bodies []any
	err    error
}

func (f *fakePublisher) PublishJSON(_ context.Context, body any) error {
	f.bodies = append(f.bodies, body)
	return f.err
}

func TestAuditPublisher_PublishLog(t *testing.T) {
	fp := &fakePublisher{}
	name := "Petra"
	uid := int64(1)
	l := entity.Log{ID: 4, Message: "User Petra was created.", Severity: entity.SeverityInfo, Timestamp: time.Now(), UserID: &uid, UserName: &name}

	require.NoError(t, NewAuditPublisher(fp).PublishLog(context.Background(), l))
	require.Len(t, fp.bodies, 1)
	ev, ok := fp.bodies[0].(entity.LogEvent)
	require.True(t, ok)
	assert.Equal(t, int64(4), ev.ID)
	assert.Equal(t, "INFO", ev.Severity)
	assert.Equal(t, "Petra", *ev.User)
}

func TestAuditPublisher_Error(t *testing.T) {
	fp := &fakePublisher{err: errors.New("channel closed")}
	assert.EqualError(t, NewAuditPublisher(fp).PublishLog(context.Background(), entity.Log{ID: 1}), "channel closed")
}

func TestAuditPublisher_Nil(t *testing.T) {
	var p *AuditPublisher
	assert.NoError(t, p.PublishLog(context.Background(), entity.Log{}))
}
