package parser

import (
	"context"
	"strings"

	"leedz/internal/page"
)

const (
	gmailSenderSelector  = "[email]"
	gmailMainSelector    = "[role=main]"
	gmailArticleSelector = "[role=article]"
)

// Gmail extracts the thread sender as the client and hands the thread text to
// the model for booking details.
type Gmail struct{}

func NewGmail() *Gmail {
	return &Gmail{}
}

func (p *Gmail) Name() string {
	return "gmail"
}

func (p *Gmail) MatchPage(url string) bool {
	return strings.Contains(url, "mail.google.com")
}

func (p *Gmail) QuickIdentity(ctx context.Context, doc page.Adapter) *page.Identity {
	sender := p.senderElement(doc)
	if sender == nil {
		return nil
	}

	email, _ := sender.Attr("email")

	return &page.Identity{
		Name:  CleanPersonName(sender.Text()),
		Email: email,
	}
}

func (p *Gmail) Parse(ctx context.Context, doc page.Adapter) (*Patch, error) {
	patch := &Patch{Source: "gmail", Client: map[string]any{}}

	if sender := p.senderElement(doc); sender != nil {
		if email, ok := sender.Attr("email"); ok {
			patch.Client["email"] = email
		}

		if name := CleanPersonName(sender.Text()); name != "" {
			patch.Client["name"] = name
		}
	}

	patch.LLMContent = p.threadText(doc)

	return patch, nil
}

// senderElement prefers an addressed element outside any quoted-reply block,
// falling back to the first one on the page.
func (p *Gmail) senderElement(doc page.Adapter) page.Element {
	candidates := doc.Query(gmailSenderSelector)
	if len(candidates) == 0 {
		return nil
	}

	for _, el := range candidates {
		if !insideQuotedReply(el) {
			return el
		}
	}

	return candidates[0]
}

func insideQuotedReply(el page.Element) bool {
	ancestor, ok := el.Parent()

	for ok {
		if strings.EqualFold(ancestor.Tag(), "blockquote") {
			return true
		}

		if class, found := ancestor.Attr("class"); found && strings.Contains(strings.ToLower(class), "quote") {
			return true
		}

		ancestor, ok = ancestor.Parent()
	}

	return false
}

// threadText prefers the main content region; without one, the article
// regions are concatenated.
func (p *Gmail) threadText(doc page.Adapter) string {
	if main, ok := doc.QueryOne(gmailMainSelector); ok {
		if text := main.Text(); text != "" {
			return text
		}
	}

	var parts []string

	for _, article := range doc.Query(gmailArticleSelector) {
		if text := article.Text(); text != "" {
			parts = append(parts, text)
		}
	}

	return strings.Join(parts, "\n\n")
}
