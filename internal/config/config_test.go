package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"remdex/internal/config"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	return path
}

func Test_Load_Returns_Defaults_When_No_Config_Exists(t *testing.T) {
	// Not parallel: manipulates the process environment.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := config.Load("")
	require.NoError(t, err)
	require.Equal(t, config.Default(), cfg)
	require.Equal(t, 2, cfg.DebounceSeconds)
}

func Test_Load_Accepts_HuJSON_With_Comments(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `{
		// where the tablet keeps its documents
		"doc_dir": "/mnt/tablet/xochitl",
		"debounce_seconds": 5,
		"log_level": "debug", // trailing comma below is fine too
	}`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "/mnt/tablet/xochitl", cfg.DocDir)
	require.Equal(t, 5, cfg.DebounceSeconds)
	require.Equal(t, "debug", cfg.LogLevel)
	require.False(t, cfg.LogJSON)
}

func Test_Load_Keeps_Defaults_For_Omitted_Fields(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `{"doc_dir": "/somewhere"}`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "/somewhere", cfg.DocDir)
	require.Equal(t, 2, cfg.DebounceSeconds)
	require.Equal(t, "info", cfg.LogLevel)
}

func Test_Load_Fails_When_Config_Invalid(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		contents string
	}{
		{name: "broken syntax", contents: `{"doc_dir": `},
		{name: "empty doc dir", contents: `{"doc_dir": ""}`},
		{name: "negative debounce", contents: `{"doc_dir": "/x", "debounce_seconds": -1}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			path := writeConfig(t, tc.contents)

			_, err := config.Load(path)
			require.Error(t, err)
		})
	}
}

func Test_Load_Fails_When_Explicit_Path_Missing(t *testing.T) {
	t.Parallel()

	_, err := config.Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}
