package theme

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	asimonimParser "bennypowers.dev/asimonim/parser"
	"bennypowers.dev/asimonim/resolver"
	"bennypowers.dev/asimonim/schema"
	"bennypowers.dev/asimonim/token"
	"bennypowers.dev/asimonim/validator"
	"bennypowers.dev/tss/internal/color"
	"bennypowers.dev/tss/internal/log"
	"bennypowers.dev/tss/internal/values"
	"gopkg.in/yaml.v3"
)

// LoadYAML decodes a theme document:
//
//	name: ocean
//	primary: "#1b6ca8"
//	dark: true
//	variables:
//	  sidebar-width: "24"
func LoadYAML(data []byte) (*Theme, error) {
	var t Theme
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to decode theme: %w", err)
	}
	return &t, nil
}

// LoadTokens builds a theme from a design tokens file (DTCG JSON or YAML).
// Tokens named after a slot, optionally under a "color" group, fill that
// slot; "luminosity-spread" and "text-alpha" set the tunables; every other
// token becomes an extra variable. Aliases, "{color.blue}" or a 2025.10
// "$ref" pointer, are resolved against the same file. Structured colors of
// the 2025.10 format are converted to sRGB.
func LoadTokens(name string, data []byte) (*Theme, error) {
	parser := asimonimParser.NewJSONParser()
	parsed, err := parser.Parse(data, asimonimParser.Options{SchemaVersion: declaredVersion(data)})
	if err != nil {
		return nil, fmt.Errorf("failed to parse tokens: %w", err)
	}

	version := schema.Draft
	for _, tok := range parsed {
		if tok.SchemaVersion != schema.Unknown {
			version = tok.SchemaVersion
			break
		}
	}
	for _, ve := range validator.ValidateConsistency(data, version) {
		log.Warn("theme %s: schema validation: %s", name, ve.Error())
	}
	if err := resolver.ResolveAliases(parsed, version); err != nil {
		return nil, fmt.Errorf("failed to resolve token aliases: %w", err)
	}

	resolved := make(map[string]string, len(parsed))
	var order []string
	for _, tok := range parsed {
		value, err := tokenValue(tok)
		if err != nil {
			return nil, fmt.Errorf("token %s: %w", tok.Name, err)
		}
		if _, seen := resolved[tok.Name]; !seen {
			order = append(order, tok.Name)
		}
		resolved[tok.Name] = value
	}

	t := &Theme{Name: name}
	for _, tokenName := range order {
		value := resolved[tokenName]

		key := strings.TrimPrefix(tokenName, "color-")
		switch key {
		case "luminosity-spread", "text-alpha":
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, fmt.Errorf("token %s: %w", tokenName, err)
			}
			if key == "text-alpha" {
				t.TextAlpha = f
			} else {
				t.LuminositySpread = f
			}
			continue
		}
		if t.SetSlot(strings.ToLower(key), value) {
			continue
		}
		if t.Variables == nil {
			t.Variables = make(map[string]string)
		}
		t.Variables[tokenName] = value
	}

	if t.Background != "" {
		if bg, err := values.ParseColor(t.Background); err == nil {
			t.Dark = bg.Brightness() < 0.5
		}
	}
	return t, nil
}

// declaredVersion reads the "$schema" URL at the root of a token file.
// Unknown lets the parser detect the version itself.
func declaredVersion(data []byte) schema.Version {
	var root struct {
		Schema string `json:"$schema"`
	}
	if err := json.Unmarshal(data, &root); err != nil || root.Schema == "" {
		return schema.Unknown
	}
	version, err := schema.FromURL(root.Schema)
	if err != nil {
		return schema.Unknown
	}
	return version
}

// tokenValue flattens a resolved token value to the text a variable holds
func tokenValue(tok *token.Token) (string, error) {
	switch v := tok.ResolvedValue.(type) {
	case nil:
		return tok.Value, nil
	case string:
		return v, nil
	case map[string]any:
		if _, ok := v["colorSpace"]; ok {
			return color.ToHex(v)
		}
		return tok.Value, nil
	default:
		return fmt.Sprint(v), nil
	}
}

// LoadFile loads a theme from disk. Files named *.json or *.tokens.yaml
// are read as design tokens and named after the file; other YAML files are
// theme documents, named after the file unless they carry a name.
func LoadFile(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme %s: %w", path, err)
	}

	base := filepath.Base(path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	var t *Theme
	switch {
	case ext == ".json" || strings.HasSuffix(stem, ".tokens"):
		t, err = LoadTokens(strings.TrimSuffix(stem, ".tokens"), data)
	case ext == ".yaml" || ext == ".yml":
		t, err = LoadYAML(data)
		if err == nil && t.Name == "" {
			t.Name = stem
		}
	default:
		return nil, fmt.Errorf("unsupported theme file %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}
