package page

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"leedz/internal/state"
	"leedz/internal/store"
	"leedz/shared/failure"
)

// Identity is the cheap page identity a parser can lift without a full parse.
type Identity struct {
	Name  string
	Email string
}

// ParseResult is what a full parse reports back to the engine.
type ParseResult struct {
	OK       bool
	Identity Identity
}

// Hooks are the page-specific pieces of the show workflow. The engine owns
// the order; a concrete page owns the rendering and the parsing.
type Hooks interface {
	ClearPageUI()
	ShowPageUI()
	ShowSpinner()
	HideSpinner()

	// QuickIdentity lifts a name/email from the page without parsing it.
	// Nil means the page yields no identity cheaply.
	QuickIdentity(ctx context.Context) *Identity

	// FullParse runs the two-phase extraction and writes into state.
	FullParse(ctx context.Context) ParseResult

	RenderFromState()
	RenderFromDB(record map[string]any)
	RenderFromParse()
}

// Engine drives the show-a-page workflow: restore the working record, check
// it against the page, prefer a database hit, and only then pay for a parse.
type Engine struct {
	state *state.State
	store store.Store
	hooks Hooks

	busy atomic.Bool
}

// NewEngine wires the workflow to its state, store and page hooks.
func NewEngine(st *state.State, recordStore store.Store, hooks Hooks) *Engine {
	return &Engine{state: st, store: recordStore, hooks: hooks}
}

// OnShow runs the full workflow. A second invocation while one is in flight
// is dropped, so the page UI cannot flicker through interleaved stages.
func (e *Engine) OnShow(ctx context.Context) {
	if !e.busy.CompareAndSwap(false, true) {
		log.Debug().Msg("page show already in flight, dropping")

		return
	}
	defer e.busy.Store(false)

	e.hooks.ClearPageUI()
	e.hooks.ShowSpinner()
	defer e.hooks.HideSpinner()

	if err := e.state.Load(ctx); err != nil {
		log.Warn().Err(err).Msg("state restore failed, continuing with empty state")
	}

	var identity *Identity

	if e.state.Client.Name != "" || e.state.Client.Email != "" {
		identity = e.hooks.QuickIdentity(ctx)

		if identity == nil || !e.stateIsStale(identity) {
			if record := e.search(ctx, e.state.Client.Email, e.state.Client.Name); record != nil {
				e.hooks.RenderFromDB(record)
			} else {
				e.hooks.RenderFromState()
			}

			e.hooks.ShowPageUI()

			return
		}

		log.Debug().
			Str("pageName", identity.Name).
			Str("pageEmail", identity.Email).
			Msg("working record does not match the page, re-extracting")
	} else {
		identity = e.hooks.QuickIdentity(ctx)
	}

	if identity != nil {
		if record := e.search(ctx, identity.Email, identity.Name); record != nil {
			e.hooks.RenderFromDB(record)
			e.hooks.ShowPageUI()

			return
		}
	}

	e.parseAndRender(ctx)
	e.hooks.ShowPageUI()
}

// Reload re-extracts unconditionally: the working record is dropped and the
// full parse runs against the live page.
func (e *Engine) Reload(ctx context.Context) {
	if !e.busy.CompareAndSwap(false, true) {
		return
	}
	defer e.busy.Store(false)

	e.hooks.ClearPageUI()
	e.hooks.ShowSpinner()
	defer e.hooks.HideSpinner()

	if err := e.state.Clear(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to clear cached state on reload")
	}

	e.parseAndRender(ctx)
	e.hooks.ShowPageUI()
}

func (e *Engine) parseAndRender(ctx context.Context) {
	result := e.hooks.FullParse(ctx)
	if !result.OK {
		// The working record was either stale or absent; render a blank
		// form rather than resurrecting it.
		if err := e.state.Clear(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to clear state after parse failure")
		}

		e.hooks.RenderFromState()

		return
	}

	if record := e.search(ctx, result.Identity.Email, result.Identity.Name); record != nil {
		e.hooks.RenderFromDB(record)

		return
	}

	e.hooks.RenderFromParse()
}

// stateIsStale reports whether the page identity disagrees with the working
// record. Names compare case-insensitively by containment, emails by
// equality; either one matching keeps the record fresh.
func (e *Engine) stateIsStale(identity *Identity) bool {
	stateName := strings.ToLower(strings.TrimSpace(e.state.Client.Name))
	pageName := strings.ToLower(strings.TrimSpace(identity.Name))
	stateEmail := strings.ToLower(strings.TrimSpace(e.state.Client.Email))
	pageEmail := strings.ToLower(strings.TrimSpace(identity.Email))

	nameMatches := strings.Contains(pageName, stateName)
	emailMatches := stateEmail == pageEmail

	return !nameMatches && !emailMatches
}

// search treats an offline record store as a miss so the workflow can keep
// going off the page alone.
func (e *Engine) search(ctx context.Context, email, name string) map[string]any {
	if email == "" && name == "" {
		return nil
	}

	record, err := e.store.SearchClient(ctx, email, name)
	if err != nil {
		if failure.IsServerNotRunning(err) {
			log.Warn().Msg("record store offline, skipping lookup")
		} else {
			log.Error().Err(err).Msg("client lookup failed")
		}

		return nil
	}

	return record
}
