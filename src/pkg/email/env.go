package email

import (
	"os"
	"time"
)

const sendTimeout = 30 * time.Second

func mailgunDomain() string  { return os.Getenv("MAILGUN_DOMAIN") }
func mailgunAPIKey() string  { return os.Getenv("MAILGUN_API_KEY") }
func sendgridAPIKey() string { return os.Getenv("SENDGRID_API_KEY") }
