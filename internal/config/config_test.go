package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.lost.host/meutraa/techmania/internal/config"
)

func TestFromString(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		data     string
		expected *config.Config
	}{
		{
			name:     "empty",
			data:     "",
			expected: config.Default(),
		},
		{
			name: "overrides",
			data: "tracks_folder: /srv/tracks\nscan_concurrency: 16\ncache_size: 32\n",
			expected: &config.Config{
				TracksFolder:    "/srv/tracks",
				RecordsDatabase: "records.db",
				ProfileFolder:   ".",
				ScanConcurrency: 16,
				CacheSize:       32,
			},
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg, err := config.FromString(tc.data)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, cfg)
		})
	}
}

func TestFromStringInvalid(t *testing.T) {
	t.Parallel()

	for name, data := range map[string]string{
		"empty tracks folder": "tracks_folder: ''",
		"empty database":      "records_database: ''",
		"no concurrency":      "scan_concurrency: 0",
		"negative cache":      "cache_size: -1",
		"not yaml":            "tracks_folder: [",
		"wrong type":          "scan_concurrency: many",
	} {
		data := data
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := config.FromString(data)
			assert.Error(t, err)
		})
	}
}

func TestFromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("records_database: scores.db\n"), 0o600))

	cfg, err := config.FromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "scores.db", cfg.RecordsDatabase)
	assert.Equal(t, "Tracks", cfg.TracksFolder)

	_, err = config.FromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")
}
