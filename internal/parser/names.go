package parser

import (
	"strings"
)

var honorifics = map[string]bool{
	"mr":   true,
	"mrs":  true,
	"ms":   true,
	"miss": true,
	"dr":   true,
	"prof": true,
	"rev":  true,
}

// CleanPersonName strips honorifics, collapses whitespace and reverses
// "Lastname, Firstname" ordering.
func CleanPersonName(raw string) string {
	name := strings.TrimSpace(raw)
	if name == "" {
		return ""
	}

	if last, first, found := strings.Cut(name, ","); found {
		name = strings.TrimSpace(first) + " " + strings.TrimSpace(last)
	}

	words := strings.Fields(name)
	kept := words[:0]

	for _, word := range words {
		if honorifics[strings.ToLower(strings.TrimRight(word, "."))] {
			continue
		}

		kept = append(kept, word)
	}

	return strings.Join(kept, " ")
}
