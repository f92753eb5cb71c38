package validator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tnega/gosearch/internal/entity"
)

func dirEntry(t *testing.T, dir, name string, isDir bool) os.DirEntry {
	t.Helper()

	if isDir {
		require.NoError(t, os.Mkdir(filepath.Join(dir, name), 0o755))
	} else {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, entry := range entries {
		if entry.Name() == name {
			return entry
		}
	}
	t.Fatalf("entry %s not found", name)
	return nil
}

func TestIsCandidate(t *testing.T) {
	v := NewDocumentValidator(0)

	assert.True(t, v.IsCandidate(dirEntry(t, t.TempDir(), "go_1.pdf", false)))
	assert.True(t, v.IsCandidate(dirEntry(t, t.TempDir(), "GO_2.PDF", false)))
	assert.False(t, v.IsCandidate(dirEntry(t, t.TempDir(), "notes.txt", false)))
	assert.False(t, v.IsCandidate(dirEntry(t, t.TempDir(), "archive.pdf", true)))
}

func TestValidate(t *testing.T) {
	v := NewDocumentValidator(100)

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, v.Validate("go_1.pdf", 50))
	})

	t.Run("wrong extension", func(t *testing.T) {
		err := v.Validate("notes.txt", 50)
		assert.ErrorIs(t, err, entity.ErrInvalidExtension)
	})

	t.Run("too large", func(t *testing.T) {
		err := v.Validate("go_1.pdf", 101)
		assert.ErrorIs(t, err, entity.ErrFileTooLarge)
	})

	t.Run("no size limit", func(t *testing.T) {
		unlimited := NewDocumentValidator(0)
		assert.NoError(t, unlimited.Validate("go_1.pdf", 1<<40))
	})
}
