package main

import (
	"flag"
	"strings"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"

	"curlysbooks/src/pkg/cache"
	"curlysbooks/src/pkg/config"
	"curlysbooks/src/pkg/email"
	"curlysbooks/src/pkg/notify"
	"curlysbooks/src/pkg/receipt"
	"curlysbooks/src/pkg/repository"
	"curlysbooks/src/pkg/review"
	"curlysbooks/src/pkg/util"
)

/*
main is the periodic job named in SPEC_FULL's Review Digest Notifier:
it queries the review projection (C8) for pending, requires_review
items older than -min-age-hours, renders a short digest, and sends it
through one of the three email providers cmd/send-email also selects
from. It performs no writes and never affects pipeline correctness —
a failed send here just means the digest goes out next run.
*/
func main() {
	config.CheckIfEnvVarsPresent(
		"AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY", "AWS_REGION",
		"MAILGUN_DOMAIN", "MAILGUN_API_KEY",
		"SENDGRID_API_KEY",
	)

	configPath := flag.String("config", "./cfg/config.json", "Path to your configuration file.")
	entityFlag := flag.String("entity", "corp", "Entity namespace to digest: corp or soleprop.")
	providerFlag := flag.String("provider", "mailgun", "Email provider: mailgun, sendgrid, or ses.")
	senderFlag := flag.String("sender", "", "Sender address.")
	recipientFlag := flag.String("recipients", "", "Comma-separated recipient addresses.")
	minAgeHoursFlag := flag.Float64("min-age-hours", 24, "Only include reviewables at least this many hours old.")
	maxItemsFlag := flag.Int("max-items", 20, "Maximum items listed individually before summarizing the rest.")

	flag.Parse()
	util.RequiredFlag(senderFlag, "sender")
	util.RequiredFlag(recipientFlag, "recipients")
	util.EnsureFlags()
	config.InitializeConfig(*configPath)

	entity := receipt.Entity(strings.ToLower(strings.TrimSpace(*entityFlag)))
	if !entity.Valid() {
		tl.Log(tl.Error, palette.RedBold, "unrecognized entity %q", *entityFlag)
		return
	}

	db, e := config.OpenDatabase()
	e.QuitIf("error")

	c := cache.New(db)
	repo := repository.New(db, c)
	projection := review.New(db, repo)

	pending, e := projection.ListPending(entity, repository.Filters{})
	e.QuitIf("error")

	tl.Log(tl.Info1, palette.Cyan, "Found %d pending reviewable(s) for %s", len(pending), entity)

	options := notify.DigestOptions{
		Provider:      email.Provider(*providerFlag),
		Sender:        *senderFlag,
		Recipients:    strings.Split(*recipientFlag, ","),
		MinAgeHours:   *minAgeHoursFlag,
		MaxItemsShown: *maxItemsFlag,
	}

	if e := notify.SendDigest(pending, options); e != nil {
		e.QuitIf("error")
	}

	tl.Log(tl.Notice, palette.GreenBold, "Review digest sent for %s via %s", entity, *providerFlag)
}
