package util_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alchemy/internal/util"
)

func TestCleanText(t *testing.T) {
	in := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Hello world\r\nbad:\xff")...)
	assert.Equal(t, "Hello world\nbad:\uFFFD", util.CleanText(in, "test"))
}

func TestReadTextFile(t *testing.T) {
	dir := t.TempDir()
	text := filepath.Join(dir, "in.txt")
	require.NoError(t, os.WriteFile(text, []byte("Bonjour"), 0o644))
	got, err := util.ReadTextFile(text)
	require.NoError(t, err)
	assert.Equal(t, "Bonjour", got)

	bin := filepath.Join(dir, "in.bin")
	require.NoError(t, os.WriteFile(bin, []byte{'P', 'K', 0, 1}, 0o644))
	_, err = util.ReadTextFile(bin)
	assert.Error(t, err)

	_, err = util.ReadTextFile(filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
}
