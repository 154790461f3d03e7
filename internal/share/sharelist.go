// Package share turns the working booking into a marketplace leed: it keeps
// the recipient list, builds the wire payload, signs the per-recipient magic
// links, fans out the emails and posts the leed with a pre-generated id so a
// duplicate click cannot create a second record.
package share

import (
	"strings"

	"leedz/shared/constant"
	"leedz/shared/failure"
)

// BuildShareList renders the sh wire grammar. The leading # tells the server
// the private recipients were already delivered out-of-band, so it must not
// re-send mail but still dedup against the list.
//
//	broadcast=false, recipients   → "#a@x,b@y"
//	broadcast=true,  none         → "#*"
//	broadcast=true,  recipients   → "#*,a@x,b@y"
//	broadcast=false, none         → refused
func BuildShareList(broadcast bool, recipients []string) (string, error) {
	cleaned := make([]string, 0, len(recipients))

	for _, recipient := range recipients {
		if trimmed := strings.TrimSpace(recipient); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}

	if !broadcast && len(cleaned) == 0 {
		return "", failure.BadRequestFromString("select at least one recipient or enable broadcast")
	}

	parts := make([]string, 0, len(cleaned)+1)
	if broadcast {
		parts = append(parts, constant.ShareBroadcast)
	}

	parts = append(parts, cleaned...)

	return constant.SharePreDelivery + strings.Join(parts, ","), nil
}
