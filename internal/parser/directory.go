package parser

import (
	"context"
	"regexp"
	"strings"

	"leedz/internal/page"
)

var (
	directoryEmailPattern = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)

	// "Jane Doe" or "Doe, Jane": two capitalized words, optional comma.
	directoryNamePattern = regexp.MustCompile(`[A-Z][A-Za-z'-]+,?\s+[A-Z][A-Za-z'-]+`)
)

// defaultRoleKeywords are the staff titles a directory page anchors a person
// card around.
var defaultRoleKeywords = []string{
	"owner", "manager", "director", "coordinator",
	"president", "principal", "instructor", "agent", "contact",
}

// Directory harvests every person card on a staff or contact listing: for
// each role keyword it climbs to the nearest container holding both an email
// and a person name, deduplicating by email. It is the catch-all parser and
// must be registered last.
type Directory struct {
	roles []string
}

func NewDirectory(roles ...string) *Directory {
	if len(roles) == 0 {
		roles = defaultRoleKeywords
	}

	return &Directory{roles: roles}
}

func (p *Directory) Name() string {
	return "directory"
}

func (p *Directory) MatchPage(url string) bool {
	return true
}

func (p *Directory) QuickIdentity(ctx context.Context, doc page.Adapter) *page.Identity {
	return nil
}

func (p *Directory) Parse(ctx context.Context, doc page.Adapter) (*Patch, error) {
	patch := &Patch{Source: "directory"}

	seenEmails := map[string]bool{}
	seenContainers := map[page.Element]bool{}

	for _, role := range p.roles {
		for _, el := range doc.Query("*") {
			text := el.Text()
			if len(text) > 400 || !strings.Contains(strings.ToLower(text), role) {
				continue
			}

			container := personContainer(el)
			if container == nil || seenContainers[container] {
				continue
			}

			seenContainers[container] = true

			name, email := personFields(container.Text())
			if name == "" || email == "" {
				continue
			}

			lowered := strings.ToLower(email)
			if seenEmails[lowered] {
				continue
			}

			seenEmails[lowered] = true
			patch.Clients = append(patch.Clients, map[string]any{
				"name":        name,
				"email":       email,
				"clientNotes": role,
			})
		}
	}

	return patch, nil
}

// personContainer climbs from a role mention to the nearest ancestor whose
// text carries both an email and a person name.
func personContainer(el page.Element) page.Element {
	current := el

	for depth := 0; depth < 6; depth++ {
		text := current.Text()

		// A container that swallowed half the page is past the card level.
		if len(text) > 600 {
			return nil
		}

		if directoryEmailPattern.MatchString(text) && directoryNamePattern.MatchString(text) {
			return current
		}

		parent, ok := current.Parent()
		if !ok {
			return nil
		}

		current = parent
	}

	return nil
}

func personFields(text string) (string, string) {
	email := directoryEmailPattern.FindString(text)

	// Drop the email before matching the name, so an address like
	// Jane.Doe@x.com cannot double as the name.
	withoutEmail := strings.ReplaceAll(text, email, " ")
	name := CleanPersonName(directoryNamePattern.FindString(withoutEmail))

	return name, email
}
