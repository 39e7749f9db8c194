package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeFlagName(t *testing.T) {
	assert.Equal(t, "--sender", normalizeFlagName("sender"))
	assert.Equal(t, "--sender", normalizeFlagName("-sender"))
	assert.Equal(t, "--sender", normalizeFlagName("--sender"))
	assert.Equal(t, "--sender", normalizeFlagName("  sender  "))
}
