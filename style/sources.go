package style

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"bennypowers.dev/tss/internal/hotreload"
	"bennypowers.dev/tss/internal/log"
	"bennypowers.dev/tss/internal/parser"
	"bennypowers.dev/tss/internal/styleerr"
	"bennypowers.dev/tss/internal/stylesheet"
	"bennypowers.dev/tss/internal/tokenizer"
	"bennypowers.dev/tss/internal/variables"
)

// InlineSource names the stylesheet given to LoadUserStylesheet
const InlineSource = "<user>"

// source is one stylesheet text. Defaults are keyed by widget type, user
// stylesheets by path or InlineSource.
type source struct {
	key    string
	name   string
	text   string
	origin stylesheet.Origin
}

// sourceList keeps sources in registration order. Replacing a source keeps
// its position, so reloading a file does not reorder the cascade.
type sourceList struct {
	items []source
}

func newSourceList() *sourceList {
	return &sourceList{}
}

func (l *sourceList) index(origin stylesheet.Origin, key string) int {
	return slices.IndexFunc(l.items, func(s source) bool {
		return s.origin == origin && s.key == key
	})
}

// with returns a copy of the list with src added or replaced
func (l *sourceList) with(src source) *sourceList {
	items := slices.Clone(l.items)
	if i := l.index(src.origin, src.key); i >= 0 {
		items[i] = src
	} else {
		items = append(items, src)
	}
	return &sourceList{items: items}
}

// without returns a copy of the list lacking the given source
func (l *sourceList) without(origin stylesheet.Origin, key string) *sourceList {
	items := slices.Clone(l.items)
	if i := l.index(origin, key); i >= 0 {
		items = slices.Delete(items, i, i+1)
	}
	return &sourceList{items: items}
}

// ordered returns defaults first, then user sources, each in registration
// order. Rule order numbers follow this sequence.
func (l *sourceList) ordered() []source {
	result := make([]source, 0, len(l.items))
	for _, origin := range []stylesheet.Origin{stylesheet.OriginDefault, stylesheet.OriginUser} {
		for _, s := range l.items {
			if s.origin == origin {
				result = append(result, s)
			}
		}
	}
	return result
}

// build is a stylesheet compiled from a source list
type build struct {
	sheet     *stylesheet.StyleSheet
	variables map[string]string
	// errors holds the non-fatal errors of each source by name
	errors map[string][]error
}

// compile resolves and parses every source against the theme variables.
// Variables defined in a source are visible to that source only. An
// undefined variable or a reference cycle in any source fails the build.
func compile(sources *sourceList, themeVars map[string]string) (*build, error) {
	b := &build{
		variables: maps.Clone(themeVars),
		errors:    make(map[string][]error),
	}
	var rules []*stylesheet.RuleSet
	var atRules []stylesheet.AtRule

	for _, src := range sources.ordered() {
		resolved, err := variables.Resolve(src.name, tokenizer.Tokenize(src.text), themeVars)
		if err != nil {
			return nil, err
		}
		maps.Copy(b.variables, resolved.Variables)

		parsed := parser.Parse(resolved.Tokens, parser.Options{
			Source:     src.name,
			Origin:     src.origin,
			FirstOrder: len(rules),
		})
		rules = append(rules, parsed.Rules...)
		atRules = append(atRules, parsed.AtRules...)

		errs := append(resolved.Errors, parsed.Errors...)
		if len(errs) > 0 {
			b.errors[src.name] = errs
		}
	}

	b.sheet = stylesheet.New(rules, atRules)
	return b, nil
}

// install swaps in a new build. Every cached style becomes stale.
func (m *Manager) install(sources *sourceList, b *build) {
	m.sources = sources
	m.sheet = b.sheet
	m.vars = b.variables
	m.InvalidateAll()
	log.Debug("stylesheet rebuilt: %d rules from %d sources", len(b.sheet.Rules()), len(sources.items))
}

// apply compiles sources and installs them. Fatal errors leave the manager
// unchanged; the non-fatal errors of the named source are returned as a
// ParseErrors after the rest of the sheet is installed.
func (m *Manager) apply(sources *sourceList, name string) error {
	b, err := compile(sources, m.themes.Variables())
	if err != nil {
		return err
	}
	m.install(sources, b)
	if errs := b.errors[name]; len(errs) > 0 {
		return &styleerr.ParseErrors{Errors: errs}
	}
	return nil
}

func isParseError(err error) bool {
	return errors.Is(err, styleerr.ErrParse)
}

// RegisterDefaults sets the default stylesheet of a widget type.
// Registering the same type again replaces its defaults.
//
// Malformed rules are skipped and reported in the returned error; the rest
// of the sheet still applies. Undefined variables and reference cycles fail
// the whole call and leave the engine unchanged.
func (m *Manager) RegisterDefaults(typeName, css string) error {
	src := source{
		key:    typeName,
		name:   typeName + " defaults",
		text:   css,
		origin: stylesheet.OriginDefault,
	}
	return m.apply(m.sources.with(src), src.name)
}

// LoadUserStylesheet sets the inline user stylesheet, replacing any
// previous inline stylesheet. Errors follow RegisterDefaults.
func (m *Manager) LoadUserStylesheet(text string) error {
	src := source{
		key:    InlineSource,
		name:   InlineSource,
		text:   text,
		origin: stylesheet.OriginUser,
	}
	return m.apply(m.sources.with(src), src.name)
}

// LoadUserStylesheetFile loads a user stylesheet from disk and watches it
// for hot reload
func (m *Manager) LoadUserStylesheetFile(path string) error {
	path = filepath.Clean(path)
	err := m.loadFile(path)
	if err != nil && !isParseError(err) {
		return err
	}
	if werr := m.watcher.Add(path); werr != nil {
		return werr
	}
	return err
}

func (m *Manager) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read stylesheet %s: %w", path, err)
	}
	src := source{key: path, name: path, text: string(data), origin: stylesheet.OriginUser}
	return m.apply(m.sources.with(src), src.name)
}

// WatchStylesheets loads every file matching the doublestar patterns as a
// user stylesheet and watches the patterns, so files created later are
// loaded by PollHotReload. Loading stops at the first fatal error; parse
// errors are collected and returned together.
func (m *Manager) WatchStylesheets(patterns ...string) error {
	var errs []error
	for _, pattern := range patterns {
		matches, err := m.watcher.AddPattern(pattern)
		if err != nil {
			return err
		}
		log.Info("loading %d stylesheets from %s", len(matches), pattern)
		for _, path := range matches {
			if err := m.loadFile(path); err != nil {
				if !isParseError(err) {
					return err
				}
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// PollHotReload checks the watched stylesheet files and reloads the sheet
// when any changed. It reports whether a new sheet was installed. A change
// that fails to compile is logged and the previous sheet stays active.
func (m *Manager) PollHotReload() bool {
	if !m.hotReload {
		return false
	}
	changes := m.watcher.Poll()
	if len(changes) == 0 {
		return false
	}

	sources := m.sources
	for _, c := range changes {
		if c.Kind == hotreload.Removed {
			log.Info("stylesheet %s removed", c.Path)
			sources = sources.without(stylesheet.OriginUser, c.Path)
			continue
		}
		data, err := os.ReadFile(c.Path)
		if err != nil {
			log.Warn("failed to reload %s: %v", c.Path, err)
			continue
		}
		log.Info("stylesheet %s %s", c.Path, c.Kind)
		sources = sources.with(source{key: c.Path, name: c.Path, text: string(data), origin: stylesheet.OriginUser})
	}

	b, err := compile(sources, m.themes.Variables())
	if err != nil {
		log.Error("hot reload failed, keeping the previous stylesheet: %v", err)
		return false
	}
	for name, errs := range b.errors {
		for _, err := range errs {
			log.Warn("%s: %v", name, err)
		}
	}
	m.install(sources, b)
	return true
}
