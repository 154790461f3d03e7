package parser

import (
	"context"

	"github.com/rs/zerolog/log"

	"leedz/internal/entity"
	"leedz/internal/llm"
	"leedz/internal/page"
	"leedz/internal/state"
)

// Orchestrator runs the two-phase extraction for whatever parser matches the
// page, then applies the result to state in one shot: DOM fields first, model
// fields only into the holes, then the derived-field recompute.
type Orchestrator struct {
	registry *Registry
	gateway  llm.Gateway
	state    *state.State
}

func NewOrchestrator(registry *Registry, gateway llm.Gateway, st *state.State) *Orchestrator {
	return &Orchestrator{registry: registry, gateway: gateway, state: st}
}

// QuickIdentity delegates to the parser matching the current URL.
func (o *Orchestrator) QuickIdentity(ctx context.Context, doc page.Adapter) *page.Identity {
	p, ok := o.registry.Match(doc.CurrentURL())
	if !ok {
		return nil
	}

	return p.QuickIdentity(ctx, doc)
}

// FullParse extracts the page into state. Parser errors are soft: the result
// reports not-OK and the state is left as it was.
func (o *Orchestrator) FullParse(ctx context.Context, doc page.Adapter) page.ParseResult {
	p, ok := o.registry.Match(doc.CurrentURL())
	if !ok {
		log.Debug().Str("url", doc.CurrentURL()).Msg("no parser for page")

		return page.ParseResult{}
	}

	patch, err := p.Parse(ctx, doc)
	if err != nil {
		log.Warn().Err(err).Str("parser", p.Name()).Msg("page parse failed")

		return page.ParseResult{}
	}

	if patch == nil {
		return page.ParseResult{}
	}

	o.apply(ctx, patch)

	return page.ParseResult{
		OK: true,
		Identity: page.Identity{
			Name:  o.state.Client.Name,
			Email: o.state.Client.Email,
		},
	}
}

func (o *Orchestrator) apply(ctx context.Context, patch *Patch) {
	if len(patch.Clients) > 0 {
		clients := make([]*entity.Client, 0, len(patch.Clients))
		for _, record := range patch.Clients {
			clients = append(clients, entity.NewClient(record))
		}

		o.state.SetClients(clients)
	} else if len(patch.Client) > 0 {
		mergeClient(o.state.Client, patch.Client)
	}

	if len(patch.Booking) > 0 {
		mergeBooking(o.state.Booking, patch.Booking)
	}

	if patch.Source != "" && o.state.Booking.Source == "" {
		o.state.Booking.Source = patch.Source
	}

	if patch.LLMContent != "" {
		extraction, err := o.gateway.Extract(ctx, patch.LLMContent)
		if err != nil {
			log.Warn().Err(err).Msg("model extraction failed, keeping scraped fields")
		}

		if extraction != nil {
			mergeClient(o.state.Client, extraction.Client)
			mergeBooking(o.state.Booking, extraction.Booking)
		}
	}

	o.finish()
}

// finish is the shared post-processing: default the booking linkage and end
// date, canonicalize formats, and recompute the derived money fields.
func (o *Orchestrator) finish() {
	client := o.state.Client
	booking := o.state.Booking

	client.Normalize()
	booking.Normalize()

	if booking.ClientID == "" && client.Name != "" {
		booking.ClientID = client.Name
	}

	if booking.EndDate == "" && booking.StartDate != "" {
		booking.EndDate = booking.StartDate
	}

	booking.RecomputeDuration()
	booking.RecomputeTotal()
}
