package llm

import (
	"strconv"
	"strings"

	"leedz/shared/timezone"
)

// promptTemplate asks for a flat JSON object keyed by entity field names.
// Date placeholders are substituted at send time so the model anchors
// relative dates correctly.
const promptTemplate = `Today's date is {{CURRENT_DATE}}. The current year is {{CURRENT_YEAR}}; dates without a year that have already passed this year belong to {{NEXT_YEAR}}.

Read the page text below and extract the booking inquiry it describes. Respond with a single JSON object and nothing else. Use only these keys, omitting any you cannot fill: name, email, phone, company, website, title, description, location, startDate, endDate, startTime, endTime, duration, hourlyRate, flatRate, totalAmount, notes.

Dates are "YYYY-MM-DD". Times are 24-hour "HH:MM". duration is hours as a number or null. Rates and totals are plain dollar amounts.

Page text:
{{PAGE_TEXT}}`

// RenderPrompt substitutes the date context and page text into the template.
func RenderPrompt(pageText string) string {
	now := timezone.Now()

	replacer := strings.NewReplacer(
		"{{CURRENT_DATE}}", now.Format("January 2, 2006"),
		"{{CURRENT_YEAR}}", strconv.Itoa(now.Year()),
		"{{NEXT_YEAR}}", strconv.Itoa(now.Year()+1),
		"{{PAGE_TEXT}}", pageText,
	)

	return replacer.Replace(promptTemplate)
}
