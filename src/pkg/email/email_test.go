package email_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"curlysbooks/src/pkg/email"
)

func TestSendMessage_NoRecipientsFails(t *testing.T) {
	e := email.SendMessage(email.ProviderMailgun, nil, "a@example.com", nil, "subject", "text", "<p>html</p>", nil)
	assert.Error(t, e)
}

func TestSendMessage_DryRunSucceedsWithoutNetwork(t *testing.T) {
	send := false
	e := email.SendMessage(email.ProviderSES, &send, "a@example.com", []string{"b@example.com"}, "subject", "text", "<p>html</p>", nil)
	assert.Nil(t, e)
}

func TestSendMessage_UnrecognizedProviderFails(t *testing.T) {
	e := email.SendMessage(email.Provider("carrier-pigeon"), nil, "a@example.com", []string{"b@example.com"}, "subject", "text", "<p>html</p>", nil)
	assert.Error(t, e)
}
