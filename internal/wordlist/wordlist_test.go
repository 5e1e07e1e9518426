package wordlist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FiltersAndDeduplicates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "words.txt")
	content := "support\nSUPPORT\nlogin123\n\n  billing  \nadmin\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	words, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"support", "SUPPORT", "billing", "admin"}, words)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/words.txt")
	assert.Error(t, err)
}

func TestLoad_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(path, []byte(""), 0o644))

	words, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, words)
}
