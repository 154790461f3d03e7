package parser

import (
	"context"
	"strings"

	"leedz/internal/page"
)

const (
	profileNameSelector     = "h1"
	profileHeadlineSelector = ".text-body-medium, [data-testid=UserDescription]"
)

// Profile lifts the person from a LinkedIn or X profile page. These pages
// carry no booking and no email, so there is no model pass.
type Profile struct{}

func NewProfile() *Profile {
	return &Profile{}
}

func (p *Profile) Name() string {
	return "profile"
}

func (p *Profile) MatchPage(url string) bool {
	return containsAny(url, "linkedin.com/in", "x.com/", "twitter.com/")
}

func (p *Profile) QuickIdentity(ctx context.Context, doc page.Adapter) *page.Identity {
	heading, ok := doc.QueryOne(profileNameSelector)
	if !ok {
		return nil
	}

	name := CleanPersonName(heading.Text())
	if name == "" {
		return nil
	}

	return &page.Identity{Name: name}
}

func (p *Profile) Parse(ctx context.Context, doc page.Adapter) (*Patch, error) {
	patch := &Patch{Source: "profile", Client: map[string]any{}}

	if heading, ok := doc.QueryOne(profileNameSelector); ok {
		if name := CleanPersonName(heading.Text()); name != "" {
			patch.Client["name"] = name
		}
	}

	if headline, ok := doc.QueryOne(profileHeadlineSelector); ok {
		if text := strings.TrimSpace(headline.Text()); text != "" {
			patch.Client["clientNotes"] = text
		}
	}

	return patch, nil
}

func containsAny(url string, fragments ...string) bool {
	for _, fragment := range fragments {
		if strings.Contains(url, fragment) {
			return true
		}
	}

	return false
}
