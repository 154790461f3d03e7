// Package hostmsg is the typed message contract between the panel side and the
// host background worker. Every remote call the panel needs (LLM extraction,
// marketplace, mail, calendar insert, tab open) travels as one request union
// over the bus and is executed by a single worker goroutine, so the panel code
// never talks to the network directly.
package hostmsg

import (
	"context"
	"fmt"

	"google.golang.org/api/calendar/v3"

	"leedz/internal/llm"
	"leedz/internal/marketplace"
)

// Kind discriminates the request union.
type Kind string

const (
	KindExtract     Kind = "extract"
	KindSendMail    Kind = "sendMail"
	KindGetTrades   Kind = "getTrades"
	KindGetUser     Kind = "getUser"
	KindGetToken    Kind = "getToken"
	KindAddLeed     Kind = "addLeed"
	KindInsertEvent Kind = "insertEvent"
	KindOpenTab     Kind = "openTab"
)

// ExtractRequest asks the worker to run an LLM extraction on page text.
type ExtractRequest struct {
	PageText string `json:"pageText"`
}

// MailRequest asks the worker to send one email through the host mailer.
type MailRequest struct {
	To       string `json:"to"`
	Subject  string `json:"subject"`
	HTMLBody string `json:"htmlBody"`
}

// UserRequest and TokenRequest target marketplace account endpoints.
type UserRequest struct {
	Session string `json:"session"`
}

type TokenRequest struct {
	Email string `json:"email"`
}

// LeedRequest posts a finished leed under a session token.
type LeedRequest struct {
	Leed    *marketplace.Leed `json:"leed"`
	Session string            `json:"session"`
}

// EventRequest inserts a calendar event through the host.
type EventRequest struct {
	Event *calendar.Event `json:"event"`
}

// TabRequest opens a browser tab at the given URL.
type TabRequest struct {
	URL string `json:"url"`
}

// Request is the panel-to-host union. Exactly one variant field is set,
// matching Kind.
type Request struct {
	Kind    Kind            `json:"kind"`
	Extract *ExtractRequest `json:"extract,omitempty"`
	Mail    *MailRequest    `json:"mail,omitempty"`
	User    *UserRequest    `json:"user,omitempty"`
	Token   *TokenRequest   `json:"token,omitempty"`
	Leed    *LeedRequest    `json:"leed,omitempty"`
	Event   *EventRequest   `json:"event,omitempty"`
	Tab     *TabRequest     `json:"tab,omitempty"`
}

// Response is the host-to-panel union, mirroring Request by Kind. Variants
// with no payload (mail, event, tab) reply with just the Kind.
type Response struct {
	Kind       Kind                       `json:"kind"`
	Extraction *llm.Extraction            `json:"extraction,omitempty"`
	Trades     []marketplace.Trade        `json:"trades,omitempty"`
	User       *marketplace.User          `json:"user,omitempty"`
	Token      *marketplace.Token         `json:"token,omitempty"`
	LeedResult *marketplace.AddLeedResult `json:"leedResult,omitempty"`
}

type result struct {
	resp Response
	err  error
}

type envelope struct {
	ctx   context.Context
	req   Request
	reply chan result
}

// Bus carries request envelopes from panel callers to the worker. Send blocks
// until the worker replies or the caller's context is done.
type Bus struct {
	requests chan envelope
}

func NewBus(buffer int) *Bus {
	return &Bus{requests: make(chan envelope, buffer)}
}

func (b *Bus) Send(ctx context.Context, req Request) (Response, error) {
	env := envelope{ctx: ctx, req: req, reply: make(chan result, 1)}

	select {
	case b.requests <- env:
	case <-ctx.Done():
		return Response{}, fmt.Errorf("sending %s request: %w", req.Kind, ctx.Err())
	}

	select {
	case res := <-env.reply:
		return res.resp, res.err
	case <-ctx.Done():
		return Response{}, fmt.Errorf("awaiting %s reply: %w", req.Kind, ctx.Err())
	}
}
