package hostmsg_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/api/calendar/v3"

	"leedz/internal/hostmsg"
	"leedz/internal/llm"
	llm_mocks "leedz/internal/llm/mocks"
	"leedz/internal/marketplace"
	marketplace_mocks "leedz/internal/marketplace/mocks"
)

type fakeHost struct {
	mu      sync.Mutex
	mails   []string
	events  []*calendar.Event
	tabs    []string
	mailErr error
}

func (f *fakeHost) SendMail(_ context.Context, to, _, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mailErr != nil {
		return f.mailErr
	}
	f.mails = append(f.mails, to)
	return nil
}

func (f *fakeHost) InsertEvent(_ context.Context, event *calendar.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

func (f *fakeHost) OpenTab(_ context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tabs = append(f.tabs, url)
	return nil
}

func startWorker(t *testing.T, gateway llm.Gateway, market marketplace.Client, host *fakeHost) *hostmsg.Client {
	t.Helper()

	bus := hostmsg.NewBus(4)
	worker := hostmsg.NewWorker(bus, gateway, market, host, host, host)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go worker.Run(ctx)

	return hostmsg.NewClient(bus)
}

func TestClient_ExtractRoundTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	gateway := llm_mocks.NewMockGateway(ctrl)
	market := marketplace_mocks.NewMockClient(ctrl)

	gateway.EXPECT().
		Extract(gomock.Any(), "page text").
		Return(&llm.Extraction{Client: map[string]any{"name": "Jane Doe"}}, nil)

	client := startWorker(t, gateway, market, &fakeHost{})

	extraction, err := client.Extract(context.Background(), "page text")
	require.NoError(t, err)
	require.NotNil(t, extraction)
	assert.Equal(t, "Jane Doe", extraction.Client["name"])
}

func TestClient_MarketplaceCalls(t *testing.T) {
	ctrl := gomock.NewController(t)
	gateway := llm_mocks.NewMockGateway(ctrl)
	market := marketplace_mocks.NewMockClient(ctrl)

	market.EXPECT().GetTrades(gomock.Any()).Return([]marketplace.Trade{{SK: "dj"}}, nil)
	market.EXPECT().GetUser(gomock.Any(), "session-1").Return(&marketplace.User{SQSt: "authorized"}, nil)
	market.EXPECT().GetToken(gomock.Any(), "me@example.com").Return(&marketplace.Token{Token: "tok"}, nil)
	market.EXPECT().
		AddLeed(gomock.Any(), gomock.Any(), "session-1").
		Return(&marketplace.AddLeedResult{CD: 1}, nil)

	client := startWorker(t, gateway, market, &fakeHost{})
	ctx := context.Background()

	trades, err := client.GetTrades(ctx)
	require.NoError(t, err)
	require.Len(t, trades, 1)
	assert.Equal(t, "dj", trades[0].SK)

	user, err := client.GetUser(ctx, "session-1")
	require.NoError(t, err)
	assert.True(t, user.SquareAuthorized())

	token, err := client.GetToken(ctx, "me@example.com")
	require.NoError(t, err)
	assert.Equal(t, "tok", token.Token)

	leedResult, err := client.AddLeed(ctx, &marketplace.Leed{TI: "Gig"}, "session-1")
	require.NoError(t, err)
	assert.Equal(t, 1, leedResult.CD)
}

func TestClient_HostCapabilities(t *testing.T) {
	ctrl := gomock.NewController(t)
	host := &fakeHost{}
	client := startWorker(t, llm_mocks.NewMockGateway(ctrl), marketplace_mocks.NewMockClient(ctrl), host)
	ctx := context.Background()

	require.NoError(t, client.SendMail(ctx, "a@example.com", "hi", "<p>hi</p>"))
	require.NoError(t, client.InsertEvent(ctx, &calendar.Event{Summary: "Gig"}))
	require.NoError(t, client.OpenTab(ctx, "https://example.com"))

	host.mu.Lock()
	defer host.mu.Unlock()
	assert.Equal(t, []string{"a@example.com"}, host.mails)
	require.Len(t, host.events, 1)
	assert.Equal(t, "Gig", host.events[0].Summary)
	assert.Equal(t, []string{"https://example.com"}, host.tabs)
}

func TestClient_ErrorsPropagate(t *testing.T) {
	ctrl := gomock.NewController(t)
	host := &fakeHost{mailErr: errors.New("smtp down")}
	client := startWorker(t, llm_mocks.NewMockGateway(ctrl), marketplace_mocks.NewMockClient(ctrl), host)

	err := client.SendMail(context.Background(), "a@example.com", "hi", "body")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "smtp down")
}

func TestSend_ContextCancelledWithoutWorker(t *testing.T) {
	bus := hostmsg.NewBus(0)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := bus.Send(ctx, hostmsg.Request{Kind: hostmsg.KindGetTrades})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSend_RequestsServeInArrivalOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	market := marketplace_mocks.NewMockClient(ctrl)

	var calls []string
	market.EXPECT().GetTrades(gomock.Any()).Times(3).DoAndReturn(
		func(context.Context) ([]marketplace.Trade, error) {
			calls = append(calls, "trades")
			return nil, nil
		})

	client := startWorker(t, llm_mocks.NewMockGateway(ctrl), market, &fakeHost{})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := client.GetTrades(ctx)
		require.NoError(t, err)
	}

	assert.Len(t, calls, 3)
}
