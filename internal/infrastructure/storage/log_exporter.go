package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"

	"github.com/oksasatya/go-logmanager/internal/domain/entity"
	"github.com/oksasatya/go-logmanager/pkg/helpers"
)

var ErrNotConfigured = errors.New("object storage not configured")

// Uploader writes an object and returns its URL.
type Uploader func(ctx context.Context, objectPath, contentType string, body []byte) (string, error)

// LogExporter writes JSON snapshots of the audit log to a bucket.
type LogExporter struct {
	upload Uploader
	now    func() time.Time
}

// NewGCSLogExporter returns an exporter backed by a GCS bucket. It is
// disabled when client is nil or bucket is empty.
func NewGCSLogExporter(client *storage.Client, bucket string) *LogExporter {
	if client == nil || bucket == "" {
		return NewLogExporter(nil, nil)
	}
	return NewLogExporter(func(ctx context.Context, objectPath, contentType string, body []byte) (string, error) {
		return helpers.UploadObject(ctx, client, bucket, objectPath, contentType, bytes.NewReader(body))
	}, nil)
}

func NewLogExporter(upload Uploader, now func() time.Time) *LogExporter {
	if now == nil {
		now = time.Now
	}
	return &LogExporter{upload: upload, now: now}
}

// ObjectPath names the snapshot object, e.g. exports/logs/20240601T100000Z-<uuid>.json.
func (e *LogExporter) ObjectPath() string {
	stamp := e.now().UTC().Format("20060102T150405Z")
	return path.Join("exports", "logs", stamp+"-"+uuid.NewString()+".json")
}

func (e *LogExporter) Export(ctx context.Context, events []entity.LogEvent) (string, error) {
	if e == nil || e.upload == nil {
		return "", ErrNotConfigured
	}
	body, err := json.Marshal(map[string]any{"result": events})
	if err != nil {
		return "", err
	}
	return e.upload(ctx, e.ObjectPath(), "application/json", body)
}
