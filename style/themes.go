package style

import (
	"bennypowers.dev/tss/internal/theme"
)

// SetTheme activates a registered theme. The stylesheet is recompiled
// against the new theme's variables before anything changes, so an unknown
// theme, or one missing a variable the stylesheets use, leaves the current
// theme in place. Every cached style becomes stale.
func (m *Manager) SetTheme(name string) error {
	vars, err := m.themes.VariablesFor(name)
	if err != nil {
		return err
	}
	b, err := compile(m.sources, vars)
	if err != nil {
		return err
	}
	if err := m.themes.SetActive(name); err != nil {
		return err
	}
	m.install(m.sources, b)
	return nil
}

// ActiveTheme returns the name of the active theme
func (m *Manager) ActiveTheme() string {
	return m.themes.ActiveName()
}

// Themes returns the registered theme names, sorted
func (m *Manager) Themes() []string {
	return m.themes.Names()
}

// RegisterTheme adds or replaces a theme. Replacing the active theme
// recompiles the stylesheet with its new variables.
func (m *Manager) RegisterTheme(t *Theme) error {
	if t.Name != m.themes.ActiveName() {
		return m.themes.Register(t)
	}

	vars, err := theme.GenerateVariables(t)
	if err != nil {
		return err
	}
	b, err := compile(m.sources, vars)
	if err != nil {
		return err
	}
	if err := m.themes.Register(t); err != nil {
		return err
	}
	m.install(m.sources, b)
	return nil
}

// LoadThemeFile registers a theme from a YAML theme document or a design
// tokens file and returns its name
func (m *Manager) LoadThemeFile(path string) (string, error) {
	t, err := theme.LoadFile(path)
	if err != nil {
		return "", err
	}
	if err := m.RegisterTheme(t); err != nil {
		return "", err
	}
	return t.Name, nil
}
