package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-logmanager/internal/domain/entity"
)

type fakeIndexer struct {
	events []entity.LogEvent
	err    error
}

func (f *fakeIndexer) Index(_ context.Context, ev entity.LogEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, ev)
	return nil
}

type sentMail struct{ to, subject, text, html string }

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (f *fakeMailer) Send(_ context.Context, to, subject, text, html string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{to, subject, text, html})
	return nil
}

type settle struct {
	acked   bool
	nacked  bool
	requeue bool
}

func (s *settle) Ack(uint64, bool) error { s.acked = true; return nil }
func (s *settle) Nack(_ uint64, _ bool, requeue bool) error {
	s.nacked, s.requeue = true, requeue
	return nil
}
func (s *settle) Reject(_ uint64, requeue bool) error {
	s.nacked, s.requeue = true, requeue
	return nil
}

const (
	infoEvent    = `{"id":1,"severity":"INFO","message":"User Hans was created.","timestamp":"2024-06-01T10:00:00Z","user":"Petra"}`
	warningEvent = `{"id":2,"severity":"WARNING","message":"Entries with the ID(s) 3 were deleted from database.","timestamp":"2024-06-01T10:00:00Z","user":"Petra"}`
)

func newHandler(t *testing.T) (*AuditHandler, *fakeIndexer, *fakeMailer) {
	t.Helper()
	logger, _ := logtest.NewNullLogger()
	idx, mail := &fakeIndexer{}, &fakeMailer{}
	return &AuditHandler{Index: idx, Mail: mail, AlertTo: "ops@example.com", AppName: "logmanager", Logger: logger}, idx, mail
}

func TestHandle_InfoIsIndexedWithoutAlert(t *testing.T) {
	h, idx, mail := newHandler(t)

	assert.Equal(t, Ack, h.Handle(context.Background(), []byte(infoEvent)))
	require.Len(t, idx.events, 1)
	assert.Equal(t, int64(1), idx.events[0].ID)
	assert.Empty(t, mail.sent)
}

func TestHandle_WarningSendsAlert(t *testing.T) {
	h, idx, mail := newHandler(t)

	assert.Equal(t, Ack, h.Handle(context.Background(), []byte(warningEvent)))
	assert.Len(t, idx.events, 1)
	require.Len(t, mail.sent, 1)
	assert.Equal(t, "ops@example.com", mail.sent[0].to)
	assert.Equal(t, "[logmanager] WARNING audit log #2", mail.sent[0].subject)
	assert.Contains(t, mail.sent[0].text, "User:    Petra")
}

func TestHandle_NoAlertWithoutRecipient(t *testing.T) {
	h, _, mail := newHandler(t)
	h.AlertTo = ""

	assert.Equal(t, Ack, h.Handle(context.Background(), []byte(warningEvent)))
	assert.Empty(t, mail.sent)
}

func TestHandle_Failures(t *testing.T) {
	h, idx, mail := newHandler(t)
	assert.Equal(t, Reject, h.Handle(context.Background(), []byte("{not json")))

	idx.err = errors.New("es down")
	assert.Equal(t, Requeue, h.Handle(context.Background(), []byte(infoEvent)))

	idx.err = nil
	mail.err = errors.New("mailgun down")
	assert.Equal(t, Requeue, h.Handle(context.Background(), []byte(warningEvent)))
}

func TestRun_SettlesDeliveries(t *testing.T) {
	h, _, _ := newHandler(t)
	ok, bad := &settle{}, &settle{}

	deliveries := make(chan amqp.Delivery, 2)
	deliveries <- amqp.Delivery{Acknowledger: ok, Body: []byte(infoEvent)}
	deliveries <- amqp.Delivery{Acknowledger: bad, Body: []byte("nope")}
	close(deliveries)

	h.Run(context.Background(), deliveries)

	assert.True(t, ok.acked)
	assert.True(t, bad.nacked)
	assert.False(t, bad.requeue)
}

func TestRun_RequeueBacksOff(t *testing.T) {
	h, idx, _ := newHandler(t)
	h.RetryDelay = 100 * time.Millisecond
	h.MaxRetryDelay = 300 * time.Millisecond
	var waited []time.Duration
	h.sleep = func(_ context.Context, d time.Duration) bool {
		waited = append(waited, d)
		return true
	}
	idx.err = errors.New("es down")

	settles := make([]*settle, 4)
	deliveries := make(chan amqp.Delivery, len(settles)+1)
	for i := range settles {
		settles[i] = &settle{}
		deliveries <- amqp.Delivery{Acknowledger: settles[i], Body: []byte(infoEvent)}
	}
	close(deliveries)

	h.Run(context.Background(), deliveries)

	assert.Equal(t, []time.Duration{100 * time.Millisecond, 200 * time.Millisecond, 300 * time.Millisecond, 300 * time.Millisecond}, waited)
	for _, s := range settles {
		assert.True(t, s.nacked)
		assert.True(t, s.requeue)
	}
}

type flakyIndexer struct {
	errs []error
}

func (f *flakyIndexer) Index(context.Context, entity.LogEvent) error {
	err := f.errs[0]
	f.errs = f.errs[1:]
	return err
}

func TestRun_SuccessResetsBackoff(t *testing.T) {
	h, _, _ := newHandler(t)
	down := errors.New("es down")
	h.Index = &flakyIndexer{errs: []error{down, down, nil, down}}
	h.RetryDelay = time.Second
	var waited []time.Duration
	h.sleep = func(_ context.Context, d time.Duration) bool {
		waited = append(waited, d)
		return true
	}

	deliveries := make(chan amqp.Delivery, 4)
	for range 4 {
		deliveries <- amqp.Delivery{Acknowledger: &settle{}, Body: []byte(infoEvent)}
	}
	close(deliveries)

	h.Run(context.Background(), deliveries)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, time.Second}, waited)
}

func TestRun_StopsWhileWaiting(t *testing.T) {
	h, idx, _ := newHandler(t)
	idx.err = errors.New("es down")
	h.RetryDelay = time.Hour

	c, cancel := context.WithCancel(context.Background())
	s := &settle{}
	deliveries := make(chan amqp.Delivery, 1)
	deliveries <- amqp.Delivery{Acknowledger: s, Body: []byte(infoEvent)}

	done := make(chan struct{})
	go func() {
		h.Run(c, deliveries)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
