package share

import (
	"fmt"
	"net/url"
	"strconv"

	"leedz/internal/marketplace"
)

// Redirect targets resolved by the marketplace web app after login.
const (
	leedPageTarget  = "showLeedPage"
	dashboardTarget = "showDashboard"
)

// CTA labels on the emailed button.
const (
	buyLeedLabel   = "Buy Leed"
	dashboardLabel = "Your Dashboard"
)

// MagicLink builds the signed login URL: the token authenticates the
// recipient, the redirect tells the app where to land them.
func MagicLink(loginBase, token, redirect string) string {
	return fmt.Sprintf("%s?token=%s&redirect=%s", loginBase, token, url.QueryEscape(redirect))
}

// LeedRedirect points at one leed's detail page.
func LeedRedirect(leedID int64, trade string) string {
	return fmt.Sprintf("%s?id=%s&tn=%s", leedPageTarget, strconv.FormatInt(leedID, 10), url.QueryEscape(trade))
}

// DashboardRedirect points at the recipient's own dashboard.
func DashboardRedirect() string {
	return dashboardTarget
}

// leedEmail renders the invitation mail. Paid leedz link straight to the
// purchase page; free ones land on the dashboard where the leed is waiting.
func leedEmail(leed *marketplace.Leed, magicURL string, paid bool) (string, string) {
	label := dashboardLabel
	if paid {
		label = buyLeedLabel
	}

	subject := fmt.Sprintf("New leed: %s", leed.TI)
	body := fmt.Sprintf(
		`<p>%s shared a booking opportunity with you.</p>
<p><strong>%s</strong><br>%s</p>
<p><a href="%s">%s</a></p>`,
		leed.CN, leed.TI, leed.LC, magicURL, label,
	)

	return subject, body
}
