package util_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"curlysbooks/src/pkg/util"
)

func TestPtr(t *testing.T) {
	value := 42
	ptr := util.Ptr(value)
	require.NotNil(t, ptr)
	assert.Equal(t, 42, *ptr)

	value = 7
	assert.Equal(t, 42, *ptr, "Ptr should copy, not alias, the input")
}
