package storeconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tnega/gosearch/internal/entity"
)

func TestSaveLoad(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "store_config.json")
		want := entity.StoreConfig{
			StoreName:   "fileSearchStores/abc123",
			DisplayName: "TNega-GOs",
		}

		require.NoError(t, Save(path, want))

		got, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("file uses snake_case keys", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "store_config.json")
		require.NoError(t, Save(path, entity.StoreConfig{
			StoreName:   "fileSearchStores/abc123",
			DisplayName: "TNega-GOs",
		}))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"store_name"`)
		assert.Contains(t, string(data), `"display_name"`)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
		require.ErrorIs(t, err, entity.ErrStoreConfigMissing)
		assert.Contains(t, err.Error(), "run the ingestion tool first")
	})

	t.Run("malformed json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "store_config.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

		_, err := Load(path)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, entity.ErrStoreConfigMissing)
	})

	t.Run("empty store name", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "store_config.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"store_name":"","display_name":"x"}`), 0o644))

		_, err := Load(path)
		assert.Error(t, err)
	})
}
