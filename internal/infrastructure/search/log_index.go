package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/go-logmanager/internal/domain/entity"
	"github.com/oksasatya/go-logmanager/pkg/helpers"
)

const (
	requestTimeout = 3 * time.Second
	defaultSize    = 10
	maxSize        = 50
)

// LogIndex stores audit log events in an Elasticsearch index.
// A nil client or empty index disables it.
type LogIndex struct {
	es    *elasticsearch.Client
	index string
}

func NewLogIndex(es *elasticsearch.Client, index string) *LogIndex {
	return &LogIndex{es: es, index: index}
}

// Mapping is the index mapping for LogEvent documents.
const Mapping = `{
  "mappings": {
    "properties": {
      "id":        {"type": "long"},
      "severity":  {"type": "keyword"},
      "message":   {"type": "text"},
      "timestamp": {"type": "date"},
      "user":      {"type": "keyword"}
    }
  }
}`

// EnsureIndex creates the index with Mapping if it does not exist yet.
func (x *LogIndex) EnsureIndex(ctx context.Context) error {
	if !x.enabled() {
		return nil
	}
	return helpers.EnsureIndex(ctx, x.es, x.index, Mapping)
}

func (x *LogIndex) enabled() bool {
	return x != nil && x.es != nil && x.index != ""
}

// Index upserts ev using the log id as document id, so redelivered events
// overwrite instead of duplicating.
func (x *LogIndex) Index(ctx context.Context, ev entity.LogEvent) error {
	if !x.enabled() {
		return nil
	}
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{
		Index:      x.index,
		DocumentID: strconv.FormatInt(ev.ID, 10),
		Body:       bytes.NewReader(b),
		Refresh:    "false",
	}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := req.Do(c, x.es)
	if err != nil {
		return fmt.Errorf("index log %d: %w", ev.ID, err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("index log %d: %s", ev.ID, res.Status())
	}
	return nil
}

// Search runs a multi_match query over message and user.
func (x *LogIndex) Search(ctx context.Context, q string, size int) ([]entity.LogEvent, error) {
	if !x.enabled() {
		return []entity.LogEvent{}, nil
	}
	if size <= 0 || size > maxSize {
		size = defaultSize
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"message^2", "user", "severity"},
			},
		},
		"sort": []any{map[string]any{"id": "asc"}},
		"size": size,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := x.es.Search(
		x.es.Search.WithContext(c),
		x.es.Search.WithIndex(x.index),
		x.es.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, fmt.Errorf("search logs: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("search logs: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source entity.LogEvent `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]entity.LogEvent, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
