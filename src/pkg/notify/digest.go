// Package notify renders and sends the review digest: a periodic,
// non-critical-path fan-out from the review projection (C8) to a human,
// through src/pkg/email's three-provider transport.
package notify

import (
	"fmt"
	"html"
	"strings"

	"github.com/tuumbleweed/xerr"

	"curlysbooks/src/pkg/email"
	"curlysbooks/src/pkg/review"
)

// DigestOptions controls which pending reviewables are included and
// where the rendered digest is sent.
type DigestOptions struct {
	Provider      email.Provider
	Sender        string
	Recipients    []string
	MinAgeHours   float64
	MaxItemsShown int
}

// SendDigest renders a digest of reviewables older than
// options.MinAgeHours and sends it through options.Provider. An empty
// pending list still sends a short "nothing pending" message rather
// than silently doing nothing, so a broken query is visible as an
// empty-but-delivered digest rather than as no mail at all.
func SendDigest(pending []review.Reviewable, options DigestOptions) *xerr.Error {
	due := make([]review.Reviewable, 0, len(pending))
	for _, rv := range pending {
		if rv.AgeHours >= options.MinAgeHours {
			due = append(due, rv)
		}
	}

	subject := fmt.Sprintf("Review digest: %d item(s) waiting", len(due))
	text := renderText(due, options.MaxItemsShown)
	htmlBody := renderHTML(due, options.MaxItemsShown)

	return email.SendMessage(options.Provider, nil, options.Sender, options.Recipients, subject, text, htmlBody, nil)
}

func renderText(due []review.Reviewable, maxItems int) string {
	if len(due) == 0 {
		return "Nothing is waiting for review right now."
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("%d item(s) waiting for review:\n\n", len(due)))
	for _, rv := range truncate(due, maxItems) {
		builder.WriteString(fmt.Sprintf(
			"- [%s] %s — %s ($%.2f, %.0fh old)\n",
			rv.Vendor, rv.Summary, confidenceLabel(rv.Confidence), rv.Amount, rv.AgeHours,
		))
	}
	if len(due) > maxItems {
		builder.WriteString(fmt.Sprintf("\n...and %d more.\n", len(due)-maxItems))
	}
	return builder.String()
}

func renderHTML(due []review.Reviewable, maxItems int) string {
	var builder strings.Builder
	builder.WriteString(`<div style="font-family:sans-serif;font-size:14px;color:#111827;">`)
	if len(due) == 0 {
		builder.WriteString(`<p>Nothing is waiting for review right now.</p>`)
		builder.WriteString(`</div>`)
		return builder.String()
	}

	builder.WriteString(fmt.Sprintf(`<p><strong>%d</strong> item(s) waiting for review:</p>`, len(due)))
	builder.WriteString(`<ul>`)
	for _, rv := range truncate(due, maxItems) {
		builder.WriteString(fmt.Sprintf(
			`<li><strong>%s</strong> — %s (%s, $%.2f, %.0fh old)</li>`,
			html.EscapeString(rv.Vendor), html.EscapeString(rv.Summary), confidenceLabel(rv.Confidence), rv.Amount, rv.AgeHours,
		))
	}
	builder.WriteString(`</ul>`)
	if len(due) > maxItems {
		builder.WriteString(fmt.Sprintf(`<p>...and %d more.</p>`, len(due)-maxItems))
	}
	builder.WriteString(`</div>`)
	return builder.String()
}

func confidenceLabel(confidence *float64) string {
	if confidence == nil {
		return "no confidence score"
	}
	return fmt.Sprintf("%.0f%% confidence", *confidence*100)
}

func truncate(items []review.Reviewable, maxItems int) []review.Reviewable {
	if maxItems <= 0 || len(items) <= maxItems {
		return items
	}
	return items[:maxItems]
}
