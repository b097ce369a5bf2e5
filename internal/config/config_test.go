package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/tss/internal/config"
	"bennypowers.dev/tss/internal/easing"
)

func TestParse(t *testing.T) {
	cfg, err := config.Parse([]byte(`{
		// dark by default
		"theme": "nord",
		"stylesheets": ["app.tcss", "styles/**/*.tcss"],
		"watch": true,
		/* noisy */
		"logLevel": "debug",
	}`))
	require.NoError(t, err)
	assert.Equal(t, "nord", cfg.Theme)
	assert.Equal(t, []string{"app.tcss", "styles/**/*.tcss"}, cfg.Stylesheets)
	assert.True(t, cfg.Watch)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, easing.Default, cfg.DefaultEasing, "unset fields keep their defaults")

	t.Run("invalid", func(t *testing.T) {
		tests := []struct {
			name string
			data string
		}{
			{"syntax", `{"theme": }`},
			{"log level", `{"logLevel": "loud"}`},
			{"easing", `{"defaultEasing": "wobble"}`},
			{"empty theme", `{"theme": ""}`},
			{"wrong type", `{"watch": "yes"}`},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := config.Parse([]byte(tt.data))
				assert.Error(t, err)
			})
		}
	})
}

func TestLoad(t *testing.T) {
	t.Run("missing file gives defaults", func(t *testing.T) {
		cfg, err := config.Load(filepath.Join(t.TempDir(), config.FileName))
		require.NoError(t, err)
		assert.Equal(t, config.DefaultConfig(), cfg)
	})

	t.Run("relative paths resolve against the config directory", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, config.FileName)
		require.NoError(t, os.WriteFile(path, []byte(`{
			"stylesheets": ["app.tcss", "/abs/other.tcss"],
			"themes": ["themes/ocean.yaml"]
		}`), 0o644))

		cfg, err := config.Load(path)
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(dir, "app.tcss"), "/abs/other.tcss"}, cfg.Stylesheets)
		assert.Equal(t, []string{filepath.Join(dir, "themes", "ocean.yaml")}, cfg.Themes)
	})

	t.Run("invalid file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), config.FileName)
		require.NoError(t, os.WriteFile(path, []byte(`{"logLevel": "loud"}`), 0o644))
		_, err := config.Load(path)
		assert.ErrorContains(t, err, "logLevel")
	})
}

func TestHasGlob(t *testing.T) {
	assert.True(t, config.HasGlob("styles/**/*.tcss"))
	assert.True(t, config.HasGlob("app.{tcss,css}"))
	assert.False(t, config.HasGlob("styles/app.tcss"))
}
