// Package email is the multi-provider outbound mail transport: one
// SendMessage operation fans out to whichever provider is named, the
// same lazy-client-per-provider shape src/pkg/ocr uses for Textract.
package email

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	sestypes "github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/mailgun/mailgun-go/v4"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"

	"curlysbooks/src/pkg/config"
)

// Provider is the closed set of outbound mail backends this package
// speaks, matching the three SDKs named in go.mod.
type Provider string

const (
	ProviderMailgun  Provider = "mailgun"
	ProviderSendgrid Provider = "sendgrid"
	ProviderSES      Provider = "ses"
)

// sesClient is created lazily and reused across calls, the same
// lazy-client-per-provider pattern TextractProvider.ensureClient uses.
var sesClient *sesv2.Client

func ensureSESClient(ctx context.Context) (*sesv2.Client, *xerr.Error) {
	if sesClient != nil {
		return sesClient, nil
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(config.Cfg.TextractRegion))
	if err != nil {
		return nil, xerr.NewError(err, "awsconfig.LoadDefaultConfig for SES", map[string]any{"region": config.Cfg.TextractRegion})
	}
	sesClient = sesv2.NewFromConfig(cfg)
	return sesClient, nil
}

// SendMessage sends one text+HTML email through the named provider. send
// gates whether the call actually goes out (nil or true sends; false is
// a dry run that still validates recipients), mirroring the -sender/
// -recipient flag pair cmd/send-email exposes. attachments is accepted
// for interface parity with the teacher's call shape; none of the three
// providers' attachment API is exercised here since nothing in this
// module sends attachments yet.
func SendMessage(provider Provider, send *bool, sender string, recipients []string, subject, text, html string, attachments any) *xerr.Error {
	if len(recipients) == 0 {
		return xerr.NewError(fmt.Errorf("no recipients"), "send email", map[string]any{"provider": provider})
	}
	if send != nil && !*send {
		tl.Log(tl.Info1, palette.Cyan, "Dry run: would send %q to %v via %s", subject, recipients, provider)
		return nil
	}

	switch provider {
	case ProviderMailgun:
		return sendViaMailgun(sender, recipients, subject, text, html)
	case ProviderSendgrid:
		return sendViaSendgrid(sender, recipients, subject, text, html)
	case ProviderSES:
		return sendViaSES(sender, recipients, subject, text, html)
	default:
		return xerr.NewError(fmt.Errorf("unrecognized provider %q", provider), "send email", map[string]any{"provider": provider})
	}
}

func sendViaMailgun(sender string, recipients []string, subject, text, html string) *xerr.Error {
	domain := mailgunDomain()
	apiKey := mailgunAPIKey()
	mg := mailgun.NewMailgun(domain, apiKey)

	message := mg.NewMessage(sender, subject, text, recipients...)
	message.SetHTML(html)

	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	_, _, err := mg.Send(ctx, message)
	if err != nil {
		return xerr.NewError(err, "send via mailgun", map[string]any{"recipients": recipients, "subject": subject})
	}
	return nil
}

func sendViaSendgrid(sender string, recipients []string, subject, text, html string) *xerr.Error {
	from := mail.NewEmail("", sender)
	message := mail.NewSingleEmail(from, subject, mail.NewEmail("", recipients[0]), text, html)
	for _, recipient := range recipients[1:] {
		message.Personalizations[0].AddTos(mail.NewEmail("", recipient))
	}

	client := sendgrid.NewSendClient(sendgridAPIKey())
	response, err := client.Send(message)
	if err != nil {
		return xerr.NewError(err, "send via sendgrid", map[string]any{"recipients": recipients, "subject": subject})
	}
	if response.StatusCode >= 300 {
		return xerr.NewError(fmt.Errorf("sendgrid status %d", response.StatusCode), "send via sendgrid", map[string]any{"recipients": recipients, "body": response.Body})
	}
	return nil
}

func sendViaSES(sender string, recipients []string, subject, text, html string) *xerr.Error {
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	client, e := ensureSESClient(ctx)
	if e != nil {
		return e
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: &sender,
		Destination:      &sestypes.Destination{ToAddresses: recipients},
		Content: &sestypes.EmailContent{
			Simple: &sestypes.Message{
				Subject: &sestypes.Content{Data: &subject},
				Body: &sestypes.Body{
					Text: &sestypes.Content{Data: &text},
					Html: &sestypes.Content{Data: &html},
				},
			},
		},
	}

	if _, err := client.SendEmail(ctx, input); err != nil {
		return xerr.NewError(err, "send via ses", map[string]any{"recipients": recipients, "subject": subject})
	}
	return nil
}
