// Package marketplace talks to the cloud leed marketplace. The wire format
// is the server's: terse keys, query-string submission, and a cd/er result
// envelope whose error text is surfaced to the user verbatim.
package marketplace

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"leedz/config"
)

//go:generate go run go.uber.org/mock/mockgen -source=marketplace.go -destination=mocks/marketplace.go -package=marketplace_mocks

// Trade is one marketplace category. SK is the tag; CS an optional display
// color.
type Trade struct {
	SK string `json:"sk"`
	CS string `json:"cs,omitempty"`
}

// User is the marketplace's view of the signed-in user. FR is the
// comma-separated friends list; SQSt the Square authorization status.
type User struct {
	FR   string `json:"fr"`
	SQSt string `json:"sq_st"`
}

// Friends splits the FR field into addresses.
func (u *User) Friends() []string {
	if u == nil || strings.TrimSpace(u.FR) == "" {
		return nil
	}

	parts := strings.Split(u.FR, ",")
	friends := make([]string, 0, len(parts))

	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			friends = append(friends, trimmed)
		}
	}

	return friends
}

// SquareAuthorized reports whether paid leedz may carry a price.
func (u *User) SquareAuthorized() bool {
	return u != nil && u.SQSt == "authorized"
}

// Token is a marketplace session token with its expiry in epoch millis.
type Token struct {
	Token   string `json:"token"`
	Expires int64  `json:"expires"`
}

func (t *Token) ExpiresAt() time.Time {
	return time.UnixMilli(t.Expires)
}

// Leed is the marketplace payload, keyed the way the server parses it.
type Leed struct {
	ID int64  `json:"id"`
	TN string `json:"tn"`
	TI string `json:"ti"`
	LC string `json:"lc"`
	ZP string `json:"zp"`
	ST int64  `json:"st"`
	ET int64  `json:"et"`
	DT string `json:"dt"`
	RQ string `json:"rq"`
	PH string `json:"ph"`
	EM string `json:"em"`
	CN string `json:"cn"`
	PR int64  `json:"pr"`
	SH string `json:"sh"`
}

// AddLeedResult is the cd/er envelope. CD is 1 on success; ER carries the
// server's own wording on failure.
type AddLeedResult struct {
	CD int         `json:"cd"`
	ID json.Number `json:"id,omitempty"`
	TI string      `json:"ti,omitempty"`
	TN string      `json:"tn,omitempty"`
	PR int64       `json:"pr,omitempty"`
	ER string      `json:"er,omitempty"`
}

// Client is the marketplace API surface.
type Client interface {
	GetTrades(ctx context.Context) ([]Trade, error)
	GetUser(ctx context.Context, session string) (*User, error)
	GetToken(ctx context.Context, email string) (*Token, error)
	AddLeed(ctx context.Context, leed *Leed, session string) (*AddLeedResult, error)
}

type client struct {
	http    *http.Client
	baseURL string
}

// New builds the Client from the configured marketplace base URL.
func New(cfg *config.Config) Client {
	return &client{
		http: &http.Client{
			Timeout: time.Duration(cfg.Marketplace.TimeoutSeconds) * time.Second,
		},
		baseURL: cfg.Marketplace.BaseURL,
	}
}

func (c *client) GetTrades(ctx context.Context) ([]Trade, error) {
	var trades []Trade
	if err := c.get(ctx, "/getTrades", nil, &trades); err != nil {
		return nil, err
	}

	return trades, nil
}

func (c *client) GetUser(ctx context.Context, session string) (*User, error) {
	var user User

	query := url.Values{"session": {session}}
	if err := c.get(ctx, "/getUser", query, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (c *client) GetToken(ctx context.Context, email string) (*Token, error) {
	var token Token

	query := url.Values{"email": {email}}
	if err := c.get(ctx, "/getToken", query, &token); err != nil {
		return nil, err
	}

	return &token, nil
}

// AddLeed posts the leed as query parameters. A cd:0 response is not an
// error at this level; the caller decides how to surface er.
func (c *client) AddLeed(ctx context.Context, leed *Leed, session string) (*AddLeedResult, error) {
	query := url.Values{
		"id":      {strconv.FormatInt(leed.ID, 10)},
		"tn":      {leed.TN},
		"ti":      {leed.TI},
		"lc":      {leed.LC},
		"zp":      {leed.ZP},
		"st":      {strconv.FormatInt(leed.ST, 10)},
		"et":      {strconv.FormatInt(leed.ET, 10)},
		"dt":      {leed.DT},
		"rq":      {leed.RQ},
		"ph":      {leed.PH},
		"em":      {leed.EM},
		"cn":      {leed.CN},
		"pr":      {strconv.FormatInt(leed.PR, 10)},
		"sh":      {leed.SH},
		"session": {session},
	}

	var result AddLeedResult
	if err := c.get(ctx, "/addLeed", query, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *client) get(ctx context.Context, path string, query url.Values, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("building marketplace request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("marketplace unreachable")

		return fmt.Errorf("calling marketplace %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading marketplace response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("marketplace %s returned status %d", path, resp.StatusCode)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decoding marketplace response: %w", err)
	}

	return nil
}
