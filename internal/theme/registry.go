package theme

import (
	"fmt"
	"maps"
	"slices"

	"bennypowers.dev/tss/internal/log"
	"bennypowers.dev/tss/internal/styleerr"
)

// Registry holds the known themes and tracks the active one. The version
// counter increases on every change that alters the active variables, so
// cached styles can tell they were computed against an older theme.
type Registry struct {
	themes    map[string]*Theme
	active    string
	variables map[string]string
	version   uint64
}

// NewRegistry creates a registry holding the builtin themes with
// DefaultName active
func NewRegistry() *Registry {
	r := &Registry{themes: make(map[string]*Theme)}
	for _, t := range Builtin() {
		if err := r.Register(t); err != nil {
			panic(fmt.Sprintf("builtin theme %s: %v", t.Name, err))
		}
	}
	if err := r.SetActive(DefaultName); err != nil {
		panic(err)
	}
	return r
}

// Register adds or replaces a theme. The theme is validated by generating
// its variables; replacing the active theme bumps the version.
func (r *Registry) Register(t *Theme) error {
	if t.Name == "" {
		return fmt.Errorf("theme has no name")
	}
	vars, err := GenerateVariables(t)
	if err != nil {
		return err
	}
	r.themes[t.Name] = t.Clone()
	log.Debug("registered theme %s", t.Name)

	if t.Name == r.active {
		r.variables = vars
		r.version++
	}
	return nil
}

// Get returns the named theme
func (r *Registry) Get(name string) (*Theme, error) {
	t, ok := r.themes[name]
	if !ok {
		return nil, styleerr.NewThemeNotFoundError(name, r.Names())
	}
	return t, nil
}

// Names returns the registered theme names, sorted
func (r *Registry) Names() []string {
	return slices.Sorted(maps.Keys(r.themes))
}

// Active returns the active theme
func (r *Registry) Active() *Theme {
	return r.themes[r.active]
}

// ActiveName returns the name of the active theme
func (r *Registry) ActiveName() string {
	return r.active
}

// VariablesFor generates the variables of the named theme without
// activating it
func (r *Registry) VariablesFor(name string) (map[string]string, error) {
	t, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	return GenerateVariables(t)
}

// SetActive switches the active theme. On error the registry is unchanged.
func (r *Registry) SetActive(name string) error {
	vars, err := r.VariablesFor(name)
	if err != nil {
		return err
	}
	r.active = name
	r.variables = vars
	r.version++
	log.Info("theme %s active (version %d)", name, r.version)
	return nil
}

// Variables returns a copy of the active theme's variables
func (r *Registry) Variables() map[string]string {
	return maps.Clone(r.variables)
}

// Version returns the theme version counter
func (r *Registry) Version() uint64 {
	return r.version
}

// Bump increments the version without changing the theme, for changes
// outside the registry that invalidate every computed style
func (r *Registry) Bump() uint64 {
	r.version++
	return r.version
}
