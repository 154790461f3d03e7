package hostmsg

import (
	"context"

	"google.golang.org/api/calendar/v3"

	"leedz/internal/llm"
	"leedz/internal/marketplace"
)

// Client is the panel-side face of the bus. It satisfies llm.Gateway,
// marketplace.Client, and the share pipeline's mail sender, so panel code
// wired against those interfaces routes through the worker unchanged.
type Client struct {
	bus *Bus
}

func NewClient(bus *Bus) *Client {
	return &Client{bus: bus}
}

func (c *Client) Extract(ctx context.Context, pageText string) (*llm.Extraction, error) {
	resp, err := c.bus.Send(ctx, Request{Kind: KindExtract, Extract: &ExtractRequest{PageText: pageText}})
	if err != nil {
		return nil, err
	}
	return resp.Extraction, nil
}

func (c *Client) SendMail(ctx context.Context, to, subject, htmlBody string) error {
	_, err := c.bus.Send(ctx, Request{Kind: KindSendMail, Mail: &MailRequest{To: to, Subject: subject, HTMLBody: htmlBody}})
	return err
}

func (c *Client) GetTrades(ctx context.Context) ([]marketplace.Trade, error) {
	resp, err := c.bus.Send(ctx, Request{Kind: KindGetTrades})
	if err != nil {
		return nil, err
	}
	return resp.Trades, nil
}

func (c *Client) GetUser(ctx context.Context, session string) (*marketplace.User, error) {
	resp, err := c.bus.Send(ctx, Request{Kind: KindGetUser, User: &UserRequest{Session: session}})
	if err != nil {
		return nil, err
	}
	return resp.User, nil
}

func (c *Client) GetToken(ctx context.Context, email string) (*marketplace.Token, error) {
	resp, err := c.bus.Send(ctx, Request{Kind: KindGetToken, Token: &TokenRequest{Email: email}})
	if err != nil {
		return nil, err
	}
	return resp.Token, nil
}

func (c *Client) AddLeed(ctx context.Context, leed *marketplace.Leed, session string) (*marketplace.AddLeedResult, error) {
	resp, err := c.bus.Send(ctx, Request{Kind: KindAddLeed, Leed: &LeedRequest{Leed: leed, Session: session}})
	if err != nil {
		return nil, err
	}
	return resp.LeedResult, nil
}

func (c *Client) InsertEvent(ctx context.Context, event *calendar.Event) error {
	_, err := c.bus.Send(ctx, Request{Kind: KindInsertEvent, Event: &EventRequest{Event: event}})
	return err
}

func (c *Client) OpenTab(ctx context.Context, url string) error {
	_, err := c.bus.Send(ctx, Request{Kind: KindOpenTab, Tab: &TabRequest{URL: url}})
	return err
}
