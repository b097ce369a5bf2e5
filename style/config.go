package style

import (
	"fmt"

	"bennypowers.dev/tss/internal/config"
	"bennypowers.dev/tss/internal/log"
)

// NewManagerFromConfig creates a manager set up as cfg describes: log
// level, extra themes, the active theme and the user stylesheets. Parse
// errors in the stylesheets are logged; any other failure is returned.
func NewManagerFromConfig(cfg config.Config, opts ...Option) (*Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log.SetLevel(log.ParseLevel(cfg.LogLevel))

	base := []Option{WithDefaultEasing(cfg.DefaultEasing), WithHotReload(cfg.Watch)}
	m := NewManager(append(base, opts...)...)

	for _, path := range cfg.Themes {
		name, err := m.LoadThemeFile(path)
		if err != nil {
			return nil, err
		}
		log.Info("loaded theme %s from %s", name, path)
	}
	if cfg.Theme != m.ActiveTheme() {
		if err := m.SetTheme(cfg.Theme); err != nil {
			return nil, err
		}
	}

	for _, entry := range cfg.Stylesheets {
		var err error
		if config.HasGlob(entry) {
			err = m.WatchStylesheets(entry)
		} else {
			err = m.LoadUserStylesheetFile(entry)
		}
		if err != nil && !isParseError(err) {
			return nil, fmt.Errorf("failed to load stylesheets: %w", err)
		}
		if err != nil {
			log.Warn("%v", err)
		}
	}
	return m, nil
}
