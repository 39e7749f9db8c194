package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashFile_StableForSameContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "receipt.txt")
	require.NoError(t, os.WriteFile(path, []byte("same bytes"), 0o644))

	first, e := hashFile(path)
	require.Nil(t, e)
	second, e := hashFile(path)
	require.Nil(t, e)

	assert.Equal(t, first, second)
	assert.NotEmpty(t, first)
}

func TestHashFile_DiffersForDifferentContent(t *testing.T) {
	dir := t.TempDir()
	pathA := filepath.Join(dir, "a.txt")
	pathB := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(pathA, []byte("content a"), 0o644))
	require.NoError(t, os.WriteFile(pathB, []byte("content b"), 0o644))

	hashA, e := hashFile(pathA)
	require.Nil(t, e)
	hashB, e := hashFile(pathB)
	require.Nil(t, e)

	assert.NotEqual(t, hashA, hashB)
}

func TestHashFile_MissingFileErrors(t *testing.T) {
	_, e := hashFile(filepath.Join(t.TempDir(), "does-not-exist.txt"))
	assert.NotNil(t, e)
}

func TestTotalInvariantTolerance_IsTwoCents(t *testing.T) {
	assert.Equal(t, "0.02", totalInvariantTolerance.StringFixed(2))
}
