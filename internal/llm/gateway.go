// Package llm is the single egress for remote model calls. It templates the
// prompt with date context, posts to the completions endpoint, and digs a
// JSON object out of the model's prose. Extraction failures are soft: the
// caller gets nil and the procedural results stand.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"leedz/config"
	"leedz/internal/entity"
	"leedz/shared/format"
	"leedz/shared/timezone"
)

//go:generate go run go.uber.org/mock/mockgen -source=gateway.go -destination=mocks/gateway.go -package=llm_mocks

// Extraction is the model output routed into entity buckets by field name.
type Extraction struct {
	Client   map[string]any
	Booking  map[string]any
	Settings map[string]any
}

// Gateway extracts structured fields from raw page text. A nil extraction
// with a nil error means the model had nothing usable.
type Gateway interface {
	Extract(ctx context.Context, pageText string) (*Extraction, error)
}

type gateway struct {
	client   *http.Client
	endpoint string
	apiKey   string
	version  string
	model    string
	maxTok   int
}

// New builds the Gateway from the configured completions endpoint.
func New(cfg *config.Config) Gateway {
	return &gateway{
		client: &http.Client{
			Timeout: time.Duration(cfg.LLM.TimeoutSeconds) * time.Second,
		},
		endpoint: cfg.LLM.Endpoint,
		apiKey:   cfg.LLM.APIKey,
		version:  cfg.LLM.Version,
		model:    cfg.LLM.Model,
		maxTok:   cfg.LLM.MaxTokens,
	}
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type completionResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

func (g *gateway) Extract(ctx context.Context, pageText string) (*Extraction, error) {
	if strings.TrimSpace(pageText) == "" {
		return nil, nil
	}

	prompt := RenderPrompt(pageText)

	payload, err := json.Marshal(completionRequest{
		Model:     g.model,
		MaxTokens: g.maxTok,
		Messages:  []message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building completion request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", g.apiKey)
	req.Header.Set("anthropic-version", g.version)

	resp, err := g.client.Do(req)
	if err != nil {
		log.Warn().Err(err).Msg("model call failed")

		return nil, nil
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Warn().Err(err).Msg("reading model response failed")

		return nil, nil
	}

	if resp.StatusCode != http.StatusOK {
		log.Warn().Int("status", resp.StatusCode).Msg("model returned non-200")

		return nil, nil
	}

	var completion completionResponse
	if err := json.Unmarshal(raw, &completion); err != nil || len(completion.Content) == 0 {
		log.Warn().Err(err).Msg("malformed model response")

		return nil, nil
	}

	return ParseExtraction(completion.Content[0].Text), nil
}

// ParseExtraction digs the first balanced JSON object out of model text and
// routes its keys into entity buckets. Nil when no object parses.
func ParseExtraction(text string) *Extraction {
	body := ExtractJSONObject(StripFences(text))
	if body == "" {
		return nil
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(body), &fields); err != nil {
		log.Warn().Err(err).Msg("model emitted unparseable JSON")

		return nil
	}

	extraction := routeFields(fields)
	correctDates(extraction.Booking)

	return extraction
}

// routeFields assigns flat keys to their owning entity by field name. Rates
// and totals go through currency sanitizing; duration becomes a float or is
// dropped.
func routeFields(fields map[string]any) *Extraction {
	extraction := &Extraction{
		Client:   map[string]any{},
		Booking:  map[string]any{},
		Settings: map[string]any{},
	}

	clientFields := nameSet(entity.ClientFieldNames())
	bookingFields := nameSet(entity.BookingFieldNames())
	settingsFields := nameSet(entity.SettingsFieldNames())
	numericFields := nameSet(entity.NumericBookingFields())

	for key, value := range fields {
		switch {
		case clientFields[key]:
			extraction.Client[key] = value
		case bookingFields[key]:
			if numericFields[key] {
				if coerced, ok := coerceNumeric(key, value); ok {
					extraction.Booking[key] = coerced
				}

				continue
			}

			extraction.Booking[key] = value
		case settingsFields[key]:
			extraction.Settings[key] = value
		}
	}

	return extraction
}

func coerceNumeric(field string, value any) (float64, bool) {
	if field == entity.BookingFieldDuration {
		if amount, ok := value.(float64); ok && amount > 0 {
			return amount, true
		}

		return 0, false
	}

	switch v := value.(type) {
	case float64:
		if v > 0 {
			return v, true
		}
	case string:
		if amount := format.SanitizeCurrency(v); amount > 0 {
			return amount, true
		}
	}

	return 0, false
}

// correctDates bumps obviously wrong years: a start or end more than one day
// in the past moves to the current year, or the next one when its month has
// already gone by.
func correctDates(booking map[string]any) {
	for _, field := range []string{entity.BookingFieldStartDate, entity.BookingFieldEndDate} {
		raw, ok := booking[field].(string)
		if !ok || raw == "" {
			continue
		}

		if corrected, changed := CorrectPastDate(raw, timezone.Now()); changed {
			booking[field] = corrected
		}
	}
}

// CorrectPastDate applies the year bump to one ISO date. The boolean reports
// whether anything changed.
func CorrectPastDate(isoDate string, now time.Time) (string, bool) {
	parsed, err := time.ParseInLocation("2006-01-02", isoDate, now.Location())
	if err != nil {
		return isoDate, false
	}

	if now.Sub(parsed) <= 24*time.Hour {
		return isoDate, false
	}

	year := now.Year()
	if int(parsed.Month()) < int(now.Month()) {
		year++
	}

	corrected := time.Date(year, parsed.Month(), parsed.Day(), 12, 0, 0, 0, now.Location())

	return corrected.Format("2006-01-02"), true
}

// StripFences drops Markdown code fence lines.
func StripFences(text string) string {
	var kept []string

	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}

		kept = append(kept, line)
	}

	return strings.Join(kept, "\n")
}

// ExtractJSONObject returns the first balanced top-level {…} in the text,
// skipping braces inside string literals.
func ExtractJSONObject(text string) string {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		c := text[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}

			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}

	return ""
}

func nameSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}

	return set
}
