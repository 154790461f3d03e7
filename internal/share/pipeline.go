package share

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"leedz/config"
	"leedz/infras/jwt"
	"leedz/internal/marketplace"
	"leedz/internal/state"
	"leedz/shared/failure"
	"leedz/shared/format"
	"leedz/shared/timezone"
)

// MailSender is the host's mail capability.
type MailSender interface {
	SendMail(ctx context.Context, to, subject, htmlBody string) error
}

// Request is one share attempt as the user configured it.
type Request struct {
	Trade      string
	Broadcast  bool
	Recipients []string

	// Price is the user's asking price as typed ("$25", "25.00"). Empty
	// means free.
	Price string
}

// Outcome reports what the attempt did, including per-recipient failures the
// UI surfaces without aborting the rest of the fan-out.
type Outcome struct {
	LeedID     int64
	ShareList  string
	PriceCents int64
	Sent       []string
	Failed     map[string]string
	Result     *marketplace.AddLeedResult
}

// Pipeline drives a share end to end: price gating, payload build, magic
// links, mail fan-out, friends persistence, marketplace post.
type Pipeline struct {
	cfg    *config.Config
	state  *state.State
	signer jwt.JWT
	market marketplace.Client
	mail   MailSender
	tokens TokenSource
}

func NewPipeline(cfg *config.Config, st *state.State, signer jwt.JWT, market marketplace.Client, mail MailSender, tokens TokenSource) *Pipeline {
	return &Pipeline{
		cfg:    cfg,
		state:  st,
		signer: signer,
		market: market,
		mail:   mail,
		tokens: tokens,
	}
}

// Screen is what the share screen opens with: the trade dropdown and the
// recipient chips.
type Screen struct {
	Trades     []marketplace.Trade
	Recipients *RecipientList
}

// Open bootstraps the share screen. Trades load from the marketplace; the
// recipient list seeds from the locally persisted friends, then from the
// marketplace user's friends when a session is available. A missing session
// or failed user lookup degrades to the local friends only.
func (p *Pipeline) Open(ctx context.Context) (*Screen, error) {
	trades, err := p.market.GetTrades(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading trades: %w", err)
	}

	recipients := NewRecipientList()
	recipients.LoadFriends(p.state.Settings.Friends)

	screen := &Screen{Trades: trades, Recipients: recipients}

	session, err := p.tokens.SessionToken(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("no session, share screen keeps local friends only")

		return screen, nil
	}

	user, err := p.market.GetUser(ctx, session)
	if err != nil {
		log.Warn().Err(err).Msg("user lookup failed, share screen keeps local friends only")

		return screen, nil
	}

	recipients.LoadFriends(user.Friends())

	return screen, nil
}

// PriceAllowed reports whether the price section applies: the user enabled
// pricing and the marketplace confirmed Square authorization.
func (p *Pipeline) PriceAllowed(ctx context.Context) bool {
	if !p.state.Settings.PriceEnabled {
		return false
	}

	session, err := p.tokens.SessionToken(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("no session for price gating, treating as unauthorized")

		return false
	}

	user, err := p.market.GetUser(ctx, session)
	if err != nil {
		log.Warn().Err(err).Msg("user lookup for price gating failed")

		return false
	}

	return user.SquareAuthorized()
}

// Send runs the share. Emails go first, one at a time, continuing past
// individual failures; then the addresses are persisted as friends; the
// marketplace post is last, reusing the pre-generated leed id so a retry
// cannot duplicate the record.
func (p *Pipeline) Send(ctx context.Context, req Request) (*Outcome, error) {
	return p.SendWithID(ctx, NewLeedID(), req)
}

// SendWithID is Send with a caller-supplied id, which is what makes a retry
// of a failed attempt idempotent.
func (p *Pipeline) SendWithID(ctx context.Context, leedID int64, req Request) (*Outcome, error) {
	shareList, err := BuildShareList(req.Broadcast, req.Recipients)
	if err != nil {
		return nil, err
	}

	priceCents, err := p.priceCents(ctx, req.Price)
	if err != nil {
		return nil, err
	}

	leed, err := BuildLeed(leedID, req.Trade, p.state.Client, p.state.Booking, p.state.Settings.SpecialInfo, priceCents, shareList)
	if err != nil {
		return nil, err
	}

	outcome := &Outcome{
		LeedID:     leedID,
		ShareList:  shareList,
		PriceCents: priceCents,
		Failed:     map[string]string{},
	}

	p.fanOut(ctx, leed, req.Recipients, outcome)
	p.persistFriends(ctx, outcome.Sent)

	session, err := p.tokens.SessionToken(ctx)
	if err != nil {
		return outcome, err
	}

	result, err := p.market.AddLeed(ctx, leed, session)
	if err != nil {
		return outcome, err
	}

	outcome.Result = result

	if result.CD != 1 {
		// The server's own wording goes to the user untouched.
		return outcome, failure.BadRequestFromString(result.ER)
	}

	p.markShared(leed)

	return outcome, nil
}

func (p *Pipeline) priceCents(ctx context.Context, price string) (int64, error) {
	if price == "" {
		return 0, nil
	}

	if !p.PriceAllowed(ctx) {
		return 0, failure.BadRequestFromString("pricing requires Square authorization")
	}

	cents, err := format.PriceToCents(price, p.cfg.Marketplace.MaxPriceCents)
	if err != nil {
		return 0, failure.BadRequest(err)
	}

	return cents, nil
}

// fanOut emails every selected recipient. One bad address does not stop the
// rest; its error lands in the outcome keyed by recipient.
func (p *Pipeline) fanOut(ctx context.Context, leed *marketplace.Leed, recipients []string, outcome *Outcome) {
	paid := leed.PR > 0

	for _, recipient := range recipients {
		token, err := p.signer.MagicToken(recipient)
		if err != nil {
			outcome.Failed[recipient] = fmt.Sprintf("signing magic link: %v", err)

			continue
		}

		redirect := DashboardRedirect()
		if paid {
			redirect = LeedRedirect(leed.ID, leed.TN)
		}

		magicURL := MagicLink(p.cfg.Marketplace.LoginBase, token, redirect)
		subject, body := leedEmail(leed, magicURL, paid)

		if err := p.mail.SendMail(ctx, recipient, subject, body); err != nil {
			log.Warn().Err(err).Str("recipient", recipient).Msg("leed mail failed")
			outcome.Failed[recipient] = err.Error()

			continue
		}

		outcome.Sent = append(outcome.Sent, recipient)
	}
}

func (p *Pipeline) persistFriends(ctx context.Context, sent []string) {
	added := false

	for _, email := range sent {
		if p.state.Settings.AddFriend(email) {
			added = true
		}
	}

	if !added {
		return
	}

	if err := p.state.SaveSettings(ctx); err != nil {
		log.Warn().Err(err).Msg("could not persist friends list")
	}
}

func (p *Pipeline) markShared(leed *marketplace.Leed) {
	booking := p.state.Booking
	booking.Shared = true
	booking.SharedTo = leed.SH
	booking.SharedAt = timezone.Now()
	booking.LeedPrice = leed.PR
}
