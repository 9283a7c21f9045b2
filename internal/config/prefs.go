package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/vaultpass/passgen-go/internal/crypto"
)

// Preferences are the CLI defaults read from a TOML file:
//
//	length = 20
//	symbols = false
//	require_each = true
//	source = "secure"
//
// Missing class flags keep their default of true.
type Preferences struct {
	Length      int    `toml:"length"`
	Uppercase   *bool  `toml:"uppercase"`
	Lowercase   *bool  `toml:"lowercase"`
	Numbers     *bool  `toml:"numbers"`
	Symbols     *bool  `toml:"symbols"`
	RequireEach bool   `toml:"require_each"`
	Source      string `toml:"source"`
}

// DefaultPreferencesPath is $XDG_CONFIG_HOME/passgen/config.toml or the
// platform equivalent. It returns "" when no config directory is known.
func DefaultPreferencesPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "passgen", "config.toml")
}

// LoadPreferences decodes the TOML file at path. Unknown keys are rejected so
// typos do not silently fall back to defaults.
func LoadPreferences(path string) (Preferences, error) {
	var p Preferences
	meta, err := toml.DecodeFile(path, &p)
	if err != nil {
		return Preferences{}, fmt.Errorf("loading preferences: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Preferences{}, fmt.Errorf("loading preferences: unknown keys %s", strings.Join(keys, ", "))
	}
	if err := p.Validate(); err != nil {
		return Preferences{}, fmt.Errorf("loading preferences: %w", err)
	}
	return p, nil
}

// LoadPreferencesIfExists is LoadPreferences that treats a missing file as
// empty preferences.
func LoadPreferencesIfExists(path string) (Preferences, error) {
	if path == "" {
		return Preferences{}, nil
	}
	p, err := LoadPreferences(path)
	if errors.Is(err, os.ErrNotExist) {
		return Preferences{}, nil
	}
	return p, err
}

// Validate checks the length bounds and source name.
func (p Preferences) Validate() error {
	if p.Length != 0 && (p.Length < crypto.MinLength || p.Length > crypto.MaxLength) {
		return fmt.Errorf("length must be between %d and %d, got %d", crypto.MinLength, crypto.MaxLength, p.Length)
	}
	if _, err := crypto.ParseSource(p.Source); err != nil {
		return err
	}
	return nil
}

// Options converts the preferences into generator options, filling defaults.
func (p Preferences) Options() crypto.Options {
	opts := crypto.DefaultOptions()
	if p.Length != 0 {
		opts.Length = p.Length
	}
	opts.Uppercase = orDefault(p.Uppercase, opts.Uppercase)
	opts.Lowercase = orDefault(p.Lowercase, opts.Lowercase)
	opts.Numbers = orDefault(p.Numbers, opts.Numbers)
	opts.Symbols = orDefault(p.Symbols, opts.Symbols)
	opts.RequireEach = p.RequireEach
	return opts
}

func orDefault(p *bool, fallback bool) bool {
	if p == nil {
		return fallback
	}
	return *p
}
