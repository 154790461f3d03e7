package main

import (
	"context"

	"github.com/rs/zerolog/log"

	"leedz/internal/page"
	"leedz/internal/parser"
	"leedz/internal/state"
)

// uiMessage is a render instruction posted to the host panel.
type uiMessage struct {
	Kind   string         `json:"kind"`
	Record map[string]any `json:"record,omitempty"`
	State  map[string]any `json:"state,omitempty"`
	FromDB bool           `json:"fromDb,omitempty"`
}

// sidebarHooks binds the lifecycle engine to a concrete page: parsing goes
// through the orchestrator, rendering goes to the host as messages.
type sidebarHooks struct {
	doc   page.Adapter
	state *state.State
	orch  *parser.Orchestrator
}

func newSidebarHooks(doc page.Adapter, st *state.State, orch *parser.Orchestrator) *sidebarHooks {
	return &sidebarHooks{doc: doc, state: st, orch: orch}
}

func (h *sidebarHooks) ClearPageUI() { h.post(uiMessage{Kind: "clearUi"}) }
func (h *sidebarHooks) ShowPageUI()  { h.post(uiMessage{Kind: "showUi"}) }
func (h *sidebarHooks) ShowSpinner() { h.post(uiMessage{Kind: "showSpinner"}) }
func (h *sidebarHooks) HideSpinner() { h.post(uiMessage{Kind: "hideSpinner"}) }

func (h *sidebarHooks) QuickIdentity(ctx context.Context) *page.Identity {
	return h.orch.QuickIdentity(ctx, h.doc)
}

func (h *sidebarHooks) FullParse(ctx context.Context) page.ParseResult {
	return h.orch.FullParse(ctx, h.doc)
}

func (h *sidebarHooks) RenderFromState() {
	h.post(uiMessage{Kind: "render", State: h.state.Snapshot()})
}

func (h *sidebarHooks) RenderFromDB(record map[string]any) {
	h.post(uiMessage{Kind: "render", Record: record, FromDB: true})
}

func (h *sidebarHooks) RenderFromParse() {
	h.post(uiMessage{Kind: "render", State: h.state.Snapshot()})
}

func (h *sidebarHooks) post(msg uiMessage) {
	if err := h.doc.PostToHost(msg); err != nil {
		log.Warn().Err(err).Str("kind", msg.Kind).Msg("failed to post to host")
	}
}
