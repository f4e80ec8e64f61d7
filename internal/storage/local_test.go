package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_Save(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "/uploads", 10*1024*1024)
	require.NoError(t, err)

	filename, url, err := store.Save([]byte("%PDF-1.4"), "My Resume (final).pdf")
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(filename, "-My_Resume__final_.pdf"))
	assert.Equal(t, "/uploads/"+filename, url)

	data, err := os.ReadFile(filepath.Join(dir, filename))
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), data)
}

func TestLocalStore_StripsDirectoryComponents(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "/uploads", 1024)
	require.NoError(t, err)

	filename, _, err := store.Save([]byte("x"), "../../etc/passwd")
	require.NoError(t, err)
	assert.NotContains(t, filename, "/")
	assert.True(t, strings.HasSuffix(filename, "-passwd"))
}

func TestLocalStore_SizeCeiling(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "/uploads", 8)
	require.NoError(t, err)

	_, _, err = store.Save([]byte("123456789"), "big.pdf")
	assert.ErrorIs(t, err, ErrFileTooLarge)

	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestLocalStore_RejectsEmptyInput(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "/uploads", 1024)
	require.NoError(t, err)

	_, _, err = store.Save(nil, "resume.pdf")
	assert.ErrorIs(t, err, ErrEmptyFile)

	_, _, err = store.Save([]byte("x"), "")
	assert.ErrorIs(t, err, ErrEmptyFilename)
}
