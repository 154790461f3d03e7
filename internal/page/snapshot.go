package page

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// Node is one element in a document snapshot. Snapshots are loaded from JSON
// captures of a live page and queried with a small CSS subset: tag, #id,
// .class, [attr], [attr=value], compounds of those, descendant chains and
// comma lists.
type Node struct {
	TagName  string            `json:"tag"`
	Attrs    map[string]string `json:"attrs,omitempty"`
	OwnText  string            `json:"text,omitempty"`
	Children []*Node           `json:"children,omitempty"`

	parent *Node
}

// Snapshot is a static document plus the page URL, usable wherever a live
// Adapter would be. Messages posted to the host are recorded for inspection.
type Snapshot struct {
	mu     sync.Mutex
	url    string
	root   *Node
	posted []any
}

// NewSnapshot wires a parsed node tree to a URL.
func NewSnapshot(url string, root *Node) *Snapshot {
	if root == nil {
		root = &Node{TagName: "html"}
	}

	linkParents(root)

	return &Snapshot{url: url, root: root}
}

// LoadSnapshot reads a JSON document capture.
func LoadSnapshot(url string, r io.Reader) (*Snapshot, error) {
	var root Node
	if err := json.NewDecoder(r).Decode(&root); err != nil {
		return nil, fmt.Errorf("decoding document snapshot: %w", err)
	}

	return NewSnapshot(url, &root), nil
}

func linkParents(node *Node) {
	for _, child := range node.Children {
		child.parent = node
		linkParents(child)
	}
}

func (s *Snapshot) CurrentURL() string {
	return s.url
}

func (s *Snapshot) Query(selector string) []Element {
	s.mu.Lock()
	defer s.mu.Unlock()

	return queryTree(s.root, selector)
}

func (s *Snapshot) QueryOne(selector string) (Element, bool) {
	matches := s.Query(selector)
	if len(matches) == 0 {
		return nil, false
	}

	return matches[0], true
}

func (s *Snapshot) WaitForElement(ctx context.Context, selector string, timeout time.Duration) (Element, error) {
	if timeout <= 0 {
		timeout = DefaultWaitTimeout
	}

	deadline := time.Now().Add(timeout)

	for {
		if el, ok := s.QueryOne(selector); ok {
			return el, nil
		}

		if time.Now().After(deadline) {
			return nil, fmt.Errorf("element %q did not appear within %s", selector, timeout)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(WaitPollInterval):
		}
	}
}

func (s *Snapshot) PostToHost(message any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.posted = append(s.posted, message)

	return nil
}

// Posted returns every message sent to the host so far.
func (s *Snapshot) Posted() []any {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]any(nil), s.posted...)
}

// ReplaceRoot swaps the document, simulating a mutation such as a modal
// appearing.
func (s *Snapshot) ReplaceRoot(root *Node) {
	s.mu.Lock()
	defer s.mu.Unlock()

	linkParents(root)
	s.root = root
}

// Node's Element implementation.

func (n *Node) Tag() string {
	return n.TagName
}

// Text returns the subtree's text with fragments joined by single spaces.
func (n *Node) Text() string {
	var parts []string

	n.walk(func(node *Node) bool {
		if trimmed := strings.TrimSpace(node.OwnText); trimmed != "" {
			parts = append(parts, trimmed)
		}

		return true
	})

	return strings.Join(parts, " ")
}

func (n *Node) Attr(name string) (string, bool) {
	value, ok := n.Attrs[name]

	return value, ok
}

func (n *Node) Parent() (Element, bool) {
	if n.parent == nil {
		return nil, false
	}

	return n.parent, true
}

func (n *Node) Query(selector string) []Element {
	return queryTree(n, selector)
}

func (n *Node) QueryOne(selector string) (Element, bool) {
	matches := queryTree(n, selector)
	if len(matches) == 0 {
		return nil, false
	}

	return matches[0], true
}

func (n *Node) walk(visit func(*Node) bool) {
	if !visit(n) {
		return
	}

	for _, child := range n.Children {
		child.walk(visit)
	}
}

// Selector matching.

type attrMatch struct {
	name     string
	value    string
	hasValue bool
}

type simpleSelector struct {
	tag     string
	id      string
	classes []string
	attrs   []attrMatch
}

func queryTree(root *Node, selector string) []Element {
	var results []Element

	for _, alternative := range strings.Split(selector, ",") {
		chain := parseChain(alternative)
		if len(chain) == 0 {
			continue
		}

		root.walk(func(node *Node) bool {
			if matchesChain(node, chain) {
				results = append(results, node)
			}

			return true
		})
	}

	return results
}

func parseChain(selector string) []simpleSelector {
	var chain []simpleSelector

	for _, token := range strings.Fields(selector) {
		chain = append(chain, parseSimple(token))
	}

	return chain
}

func parseSimple(token string) simpleSelector {
	var sel simpleSelector

	for token != "" {
		switch token[0] {
		case '#':
			rest := token[1:]
			end := nextBoundary(rest)
			sel.id = rest[:end]
			token = rest[end:]
		case '.':
			rest := token[1:]
			end := nextBoundary(rest)
			sel.classes = append(sel.classes, rest[:end])
			token = rest[end:]
		case '[':
			end := strings.IndexByte(token, ']')
			if end < 0 {
				return sel
			}

			body := token[1:end]
			token = token[end+1:]

			if name, value, found := strings.Cut(body, "="); found {
				value = strings.Trim(value, `"'`)
				sel.attrs = append(sel.attrs, attrMatch{name: name, value: value, hasValue: true})
			} else {
				sel.attrs = append(sel.attrs, attrMatch{name: body})
			}
		default:
			end := nextBoundary(token)
			sel.tag = strings.ToLower(token[:end])
			token = token[end:]
		}
	}

	return sel
}

func nextBoundary(s string) int {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '#', '.', '[':
			return i
		}
	}

	return len(s)
}

func matchesSimple(node *Node, sel simpleSelector) bool {
	if sel.tag != "" && sel.tag != "*" && !strings.EqualFold(node.TagName, sel.tag) {
		return false
	}

	if sel.id != "" && node.Attrs["id"] != sel.id {
		return false
	}

	if len(sel.classes) > 0 {
		classes := strings.Fields(node.Attrs["class"])

		for _, want := range sel.classes {
			found := false

			for _, have := range classes {
				if have == want {
					found = true
					break
				}
			}

			if !found {
				return false
			}
		}
	}

	for _, attr := range sel.attrs {
		value, ok := node.Attrs[attr.name]
		if !ok {
			return false
		}

		if attr.hasValue && value != attr.value {
			return false
		}
	}

	return true
}

// matchesChain checks the node against the last selector and walks ancestors
// for the rest of the descendant chain.
func matchesChain(node *Node, chain []simpleSelector) bool {
	if !matchesSimple(node, chain[len(chain)-1]) {
		return false
	}

	remaining := chain[:len(chain)-1]
	ancestor := node.parent

	for len(remaining) > 0 && ancestor != nil {
		if matchesSimple(ancestor, remaining[len(remaining)-1]) {
			remaining = remaining[:len(remaining)-1]
		}

		ancestor = ancestor.parent
	}

	return len(remaining) == 0
}
