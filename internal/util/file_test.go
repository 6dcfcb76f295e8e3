package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAndReadIntFile(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "channel3")

	// WHEN
	err := WriteIntToFileAtomic(-64, path)
	require.NoError(t, err)
	value, err := ReadIntFromFile(path)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, -64, value)
}

func TestWriteIntToFileAtomic(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "channel1")
	require.NoError(t, os.WriteFile(path, []byte("12"), 0644))

	// WHEN
	err := WriteIntToFileAtomic(127, path)
	require.NoError(t, err)
	value, err := ReadIntFromFile(path)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 127, value)
}

func TestReadIntFromEmptyFile(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "empty")
	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0644))

	// WHEN
	_, err := ReadIntFromFile(path)

	// THEN
	assert.Error(t, err)
}

func TestReadIntFromMissingFile(t *testing.T) {
	// WHEN
	value, err := ReadIntFromFile(filepath.Join(t.TempDir(), "missing"))

	// THEN
	assert.Error(t, err)
	assert.Equal(t, -1, value)
}
