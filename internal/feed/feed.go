// Package feed pulls raw telemetry snapshots from the external data
// source. Every fetch returns the complete key→record map; the pipeline
// never sees partial updates.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"solar_telemetry"
)

// Source delivers a full snapshot of the raw records. Keys are opaque
// and their iteration order means nothing; the pipeline re-sorts.
type Source interface {
	Snapshot(ctx context.Context) (map[string]solar_telemetry.RawRecord, error)
}

const defaultTimeout = 15 * time.Second

// HTTPSource reads the snapshot from a JSON endpoint shaped
// { "<key>": {"message": "...", "sender": "..."}, ... }.
type HTTPSource struct {
	url    string
	client *http.Client
}

func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPSource{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

func (s *HTTPSource) Snapshot(ctx context.Context) (map[string]solar_telemetry.RawRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build feed request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed snapshot: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed snapshot: unexpected status %d", resp.StatusCode)
	}

	var records map[string]solar_telemetry.RawRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode feed snapshot: %w", err)
	}
	return records, nil
}
