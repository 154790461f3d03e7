// Package page holds the show-a-page lifecycle engine and the DOM capability
// it runs against. The engine merges three sources into one rendered state:
// the cached working record, a database lookup, and a page scrape, cheapest
// first, each with an early exit.
package page

import (
	"context"
	"time"
)

// DefaultWaitTimeout bounds WaitForElement when the caller passes zero.
const DefaultWaitTimeout = 15 * time.Second

// WaitPollInterval is how often WaitForElement re-checks the document.
const WaitPollInterval = 120 * time.Millisecond

//go:generate go run go.uber.org/mock/mockgen -source=adapter.go -destination=mocks/adapter.go -package=page_mocks

// Element is one document node. Queries run against the node's subtree.
type Element interface {
	Tag() string
	Text() string
	Attr(name string) (string, bool)
	Parent() (Element, bool)
	Query(selector string) []Element
	QueryOne(selector string) (Element, bool)
}

// Adapter is the document capability a parser works through. Implementations
// wrap whatever rendering host is in front of the page.
type Adapter interface {
	CurrentURL() string
	Query(selector string) []Element
	QueryOne(selector string) (Element, bool)

	// WaitForElement polls until the selector matches or the timeout
	// elapses. The context cancels the wait early.
	WaitForElement(ctx context.Context, selector string, timeout time.Duration) (Element, error)

	// PostToHost sends a fire-and-forget message to the hosting context.
	PostToHost(message any) error
}
