package style_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/tss/internal/config"
	"bennypowers.dev/tss/internal/styleerr"
	"bennypowers.dev/tss/style"
)

func TestNewManagerFromConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.tcss"), []byte("Button { background: $background; }"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte(`{
		// dark and frosty
		"theme": "nord",
		"stylesheets": ["app.tcss"],
		"logLevel": "error",
	}`), 0o644))

	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	m, err := style.NewManagerFromConfig(cfg)
	require.NoError(t, err)

	assert.Equal(t, "nord", m.ActiveTheme())
	cs := m.GetStyle(1, node("Button"), nil)
	assert.Equal(t, "#2e3440", cs.Color("background").String())

	t.Run("extra themes", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.LogLevel = "error"
		cfg.Themes = []string{"../test/fixtures/themes/reef.tokens.json"}
		cfg.Theme = "reef"
		m, err := style.NewManagerFromConfig(cfg)
		require.NoError(t, err)
		assert.Equal(t, "reef", m.ActiveTheme())
		assert.Equal(t, "#ff7f50", m.Variables()["primary"])
	})

	t.Run("unknown theme", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.LogLevel = "error"
		cfg.Theme = "solarized"
		_, err := style.NewManagerFromConfig(cfg)
		assert.True(t, errors.Is(err, styleerr.ErrThemeNotFound))
	})

	t.Run("missing stylesheet", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.LogLevel = "error"
		cfg.Stylesheets = []string{filepath.Join(dir, "missing.tcss")}
		_, err := style.NewManagerFromConfig(cfg)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("invalid config", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.LogLevel = "loud"
		_, err := style.NewManagerFromConfig(cfg)
		assert.Error(t, err)
	})
}
