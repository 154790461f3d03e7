package hostmsg

import (
	"context"

	"github.com/rs/zerolog/log"
	"google.golang.org/api/calendar/v3"

	"leedz/internal/llm"
	"leedz/internal/marketplace"
	"leedz/shared/failure"
)

// CalendarInserter and TabOpener are host capabilities the worker delegates
// to; the browser side implements them, tests use fakes.
type CalendarInserter interface {
	InsertEvent(ctx context.Context, event *calendar.Event) error
}

type TabOpener interface {
	OpenTab(ctx context.Context, url string) error
}

// Mailer sends one email through the host mail account.
type Mailer interface {
	SendMail(ctx context.Context, to, subject, htmlBody string) error
}

// Worker drains the bus and executes each request against the real backends.
// It is the only code in the panel process that performs remote egress.
type Worker struct {
	bus      *Bus
	gateway  llm.Gateway
	market   marketplace.Client
	mail     Mailer
	calendar CalendarInserter
	tabs     TabOpener
}

func NewWorker(bus *Bus, gateway llm.Gateway, market marketplace.Client, mail Mailer, cal CalendarInserter, tabs TabOpener) *Worker {
	return &Worker{
		bus:      bus,
		gateway:  gateway,
		market:   market,
		mail:     mail,
		calendar: cal,
		tabs:     tabs,
	}
}

// Run serves requests until ctx is cancelled. Requests are handled one at a
// time in arrival order.
func (w *Worker) Run(ctx context.Context) {
	for {
		select {
		case env := <-w.bus.requests:
			resp, err := w.handle(env.ctx, env.req)
			if err != nil {
				log.Warn().Err(err).Str("kind", string(env.req.Kind)).Msg("host request failed")
			}
			env.reply <- result{resp: resp, err: err}
		case <-ctx.Done():
			return
		}
	}
}

func (w *Worker) handle(ctx context.Context, req Request) (Response, error) {
	resp := Response{Kind: req.Kind}

	switch req.Kind {
	case KindExtract:
		if req.Extract == nil {
			return resp, failure.BadRequestFromString("extract request has no payload")
		}
		extraction, err := w.gateway.Extract(ctx, req.Extract.PageText)
		if err != nil {
			return resp, err
		}
		resp.Extraction = extraction
		return resp, nil

	case KindSendMail:
		if req.Mail == nil {
			return resp, failure.BadRequestFromString("mail request has no payload")
		}
		return resp, w.mail.SendMail(ctx, req.Mail.To, req.Mail.Subject, req.Mail.HTMLBody)

	case KindGetTrades:
		trades, err := w.market.GetTrades(ctx)
		if err != nil {
			return resp, err
		}
		resp.Trades = trades
		return resp, nil

	case KindGetUser:
		if req.User == nil {
			return resp, failure.BadRequestFromString("user request has no payload")
		}
		user, err := w.market.GetUser(ctx, req.User.Session)
		if err != nil {
			return resp, err
		}
		resp.User = user
		return resp, nil

	case KindGetToken:
		if req.Token == nil {
			return resp, failure.BadRequestFromString("token request has no payload")
		}
		token, err := w.market.GetToken(ctx, req.Token.Email)
		if err != nil {
			return resp, err
		}
		resp.Token = token
		return resp, nil

	case KindAddLeed:
		if req.Leed == nil || req.Leed.Leed == nil {
			return resp, failure.BadRequestFromString("leed request has no payload")
		}
		leedResult, err := w.market.AddLeed(ctx, req.Leed.Leed, req.Leed.Session)
		if err != nil {
			return resp, err
		}
		resp.LeedResult = leedResult
		return resp, nil

	case KindInsertEvent:
		if req.Event == nil || req.Event.Event == nil {
			return resp, failure.BadRequestFromString("event request has no payload")
		}
		return resp, w.calendar.InsertEvent(ctx, req.Event.Event)

	case KindOpenTab:
		if req.Tab == nil {
			return resp, failure.BadRequestFromString("tab request has no payload")
		}
		return resp, w.tabs.OpenTab(ctx, req.Tab.URL)

	default:
		return resp, failure.BadRequestFromString("unknown request kind: " + string(req.Kind))
	}
}
