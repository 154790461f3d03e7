// Package parser turns a page into Client and Booking fields. A parser is
// picked by URL, lifts a cheap identity first, and only then runs the full
// two-phase extraction: procedural DOM reads, then an LLM pass that is merged
// conservatively so a model guess never overwrites a scraped value.
package parser

import (
	"context"

	"leedz/internal/page"
)

// Patch is a parser's output: field maps keyed by entity field names, plus
// the raw page text an LLM pass should read. Parsers never mutate state; the
// orchestrator applies the patch atomically.
type Patch struct {
	Client     map[string]any
	Clients    []map[string]any
	Booking    map[string]any
	Source     string
	LLMContent string
}

// Parser is the capability set for one kind of page.
type Parser interface {
	Name() string
	MatchPage(url string) bool

	// QuickIdentity lifts a name/email without a full parse. Nil when the
	// page gives nothing away cheaply.
	QuickIdentity(ctx context.Context, doc page.Adapter) *page.Identity

	// Parse runs the procedural extraction against the document.
	Parse(ctx context.Context, doc page.Adapter) (*Patch, error)
}

// Registry holds the known parsers in registration order; the first URL match
// wins.
type Registry struct {
	parsers []Parser
}

func NewRegistry(parsers ...Parser) *Registry {
	return &Registry{parsers: parsers}
}

func (r *Registry) Register(p Parser) {
	r.parsers = append(r.parsers, p)
}

// Match picks the parser for a URL.
func (r *Registry) Match(url string) (Parser, bool) {
	for _, p := range r.parsers {
		if p.MatchPage(url) {
			return p, true
		}
	}

	return nil, false
}

// Names lists the registered parsers in order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.parsers))
	for _, p := range r.parsers {
		names = append(names, p.Name())
	}

	return names
}
