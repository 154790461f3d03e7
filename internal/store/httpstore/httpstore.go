// Package httpstore talks to the local persistence server over its JSON API.
// Every call carries a short timeout so a stopped server degrades the sidebar
// instead of hanging it.
package httpstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"

	"leedz/config"
	"leedz/internal/store"
	"leedz/shared/failure"
)

type httpStore struct {
	client  *http.Client
	baseURL string
}

// New builds a Store backed by the persistence server named in config.
func New(cfg *config.Config) store.Store {
	return &httpStore{
		client: &http.Client{
			Timeout: time.Duration(cfg.Persistence.TimeoutSeconds) * time.Second,
		},
		baseURL: cfg.Persistence.BaseURL,
	}
}

func (s *httpStore) Save(ctx context.Context, record map[string]any) (*store.SaveResult, error) {
	var result store.SaveResult

	found, err := s.do(ctx, http.MethodPost, "/records", nil, record, &result)
	if err != nil {
		return nil, err
	}

	if !found {
		return nil, failure.InternalError(fmt.Errorf("save returned no ids"))
	}

	return &result, nil
}

func (s *httpStore) Load(ctx context.Context, clientID string) (map[string]any, error) {
	query := url.Values{"clientId": {clientID}}

	var record map[string]any

	found, err := s.do(ctx, http.MethodGet, "/records", query, nil, &record)
	if err != nil || !found {
		return nil, err
	}

	return record, nil
}

func (s *httpStore) SearchClient(ctx context.Context, email, name string) (map[string]any, error) {
	query := url.Values{}
	if email != "" {
		query.Set("email", email)
	}
	if name != "" {
		query.Set("name", name)
	}

	var record map[string]any

	found, err := s.do(ctx, http.MethodGet, "/clients", query, nil, &record)
	if err != nil || !found {
		return nil, err
	}

	return record, nil
}

func (s *httpStore) GetBookings(ctx context.Context, clientID string) ([]map[string]any, error) {
	query := url.Values{"clientId": {clientID}}

	var records []map[string]any

	found, err := s.do(ctx, http.MethodGet, "/bookings", query, nil, &records)
	if err != nil || !found {
		return nil, err
	}

	return records, nil
}

func (s *httpStore) GetSettings(ctx context.Context) (map[string]any, error) {
	var record map[string]any

	found, err := s.do(ctx, http.MethodGet, "/config", nil, nil, &record)
	if err != nil || !found {
		return nil, err
	}

	return record, nil
}

func (s *httpStore) PutSettings(ctx context.Context, settings map[string]any) error {
	_, err := s.do(ctx, http.MethodPost, "/config", nil, settings, nil)

	return err
}

// envelope matches the server's response wrapper. A 200 with a null data
// field means the record does not exist.
type envelope struct {
	Data json.RawMessage `json:"data"`
}

// do runs one request and decodes the data envelope into out. The boolean is
// false when the server answered with null data.
func (s *httpStore) do(ctx context.Context, method, path string, query url.Values, body, out any) (bool, error) {
	target := s.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return false, fmt.Errorf("marshaling request body: %w", err)
		}

		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return false, fmt.Errorf("building request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("url", target).Msg("persistence server unreachable")

		return false, failure.ServerNotRunning
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Error().Int("status", resp.StatusCode).Str("url", target).Msg("persistence server error")

		return false, &failure.Failure{Code: resp.StatusCode, Message: string(raw)}
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return false, fmt.Errorf("decoding response envelope: %w", err)
	}

	if len(env.Data) == 0 || string(env.Data) == "null" {
		return false, nil
	}

	if out == nil {
		return true, nil
	}

	if err := json.Unmarshal(env.Data, out); err != nil {
		return false, fmt.Errorf("decoding response data: %w", err)
	}

	return true, nil
}
