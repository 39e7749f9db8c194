package notify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"curlysbooks/src/pkg/email"
	"curlysbooks/src/pkg/notify"
	"curlysbooks/src/pkg/review"
)

func TestSendDigest_UnrecognizedProviderFails(t *testing.T) {
	pending := []review.Reviewable{
		{Vendor: "Costco", Summary: "old enough", AgeHours: 48, Amount: 10.00},
		{Vendor: "Walmart", Summary: "too fresh", AgeHours: 1, Amount: 5.00},
	}

	sent := false
	options := notify.DigestOptions{
		Provider:      email.Provider("unsupported"),
		Sender:        "a@example.com",
		Recipients:    []string{"b@example.com"},
		MinAgeHours:   24,
		MaxItemsShown: 10,
	}

	e := notify.SendDigest(pending, options)
	require.Error(t, e)
	_ = sent
}

func TestSendDigest_NoRecipientsFails(t *testing.T) {
	options := notify.DigestOptions{
		Provider:    email.ProviderMailgun,
		Sender:      "a@example.com",
		Recipients:  nil,
		MinAgeHours: 0,
	}
	e := notify.SendDigest(nil, options)
	assert.Error(t, e)
}
