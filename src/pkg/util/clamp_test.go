package util_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"curlysbooks/src/pkg/util"
)

func TestClamp_WithinRange(t *testing.T) {
	assert.Equal(t, 5, util.Clamp(5, 0, 10))
}

func TestClamp_BelowMin(t *testing.T) {
	assert.Equal(t, 0, util.Clamp(-3, 0, 10))
}

func TestClamp_AboveMax(t *testing.T) {
	assert.Equal(t, 10, util.Clamp(99, 0, 10))
}

func TestClamp_Floats(t *testing.T) {
	assert.InDelta(t, 0.5, util.Clamp(0.5, 0.0, 1.0), 0.0001)
	assert.InDelta(t, 1.0, util.Clamp(1.5, 0.0, 1.0), 0.0001)
}
