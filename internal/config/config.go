// Package config holds the reel configuration schema and its embedded
// defaults. User files are merged on top of the defaults by the command line.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var embeddedDefaultConfig []byte

// Config is the full configuration file.
type Config struct {
	App     App     `yaml:"app"`
	UI      UI      `yaml:"ui"`
	Catalog Catalog `yaml:"catalog"`
}

// App holds texts shown by the form.
type App struct {
	Name        string `yaml:"name"`
	Heading     string `yaml:"heading"`
	SubmitLabel string `yaml:"submit_label"`
}

// UI holds presentation settings.
type UI struct {
	Theme      string           `yaml:"theme"`
	NoColor    bool             `yaml:"no_color"`
	InputWidth int              `yaml:"input_width"`
	CardWidth  int              `yaml:"card_width"`
	MaxCards   int              `yaml:"max_cards"` // most recent movies shown; 0 shows all
	Themes     map[string]Theme `yaml:"themes"`
}

// Theme is a palette of terminal colours (ANSI numbers or #rrggbb).
type Theme struct {
	Heading string `yaml:"heading"`
	Label   string `yaml:"label"`
	Text    string `yaml:"text"`
	Focus   string `yaml:"focus"`
	Error   string `yaml:"error"`
	Muted   string `yaml:"muted"`
	Accent  string `yaml:"accent"`
}

// Catalog configures where submitted movies go.
type Catalog struct {
	Path   string `yaml:"path"`
	Output string `yaml:"output"`
}

// DefaultYAML returns a copy of the embedded default configuration.
func DefaultYAML() []byte {
	return append([]byte(nil), embeddedDefaultConfig...)
}

// Default parses the embedded default configuration.
func Default() (Config, error) {
	var cfg Config
	if err := Merge(&cfg, embeddedDefaultConfig); err != nil {
		return Config{}, fmt.Errorf("decode embedded default config: %w", err)
	}
	return cfg, nil
}

// Merge decodes data on top of cfg. Keys absent from data keep their
// current values; theme maps are merged per colour, and a colour set to ""
// falls back to the terminal default.
func Merge(cfg *Config, data []byte) error {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	var overlay struct {
		UI struct {
			Themes map[string]map[string]*string `yaml:"themes"`
		} `yaml:"ui"`
	}
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return err
	}
	// yaml.v3 replaces map values wholesale, so themes are detached before
	// decoding and merged back per colour afterwards.
	themes := make(map[string]Theme, len(cfg.UI.Themes))
	for name, th := range cfg.UI.Themes {
		themes[name] = th
	}
	cfg.UI.Themes = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return err
	}
	for name, colours := range overlay.UI.Themes {
		th := themes[name]
		for key, value := range colours {
			if err := th.set(key, value); err != nil {
				return fmt.Errorf("ui.themes.%s: %w", name, err)
			}
		}
		themes[name] = th
	}
	cfg.UI.Themes = themes
	return nil
}

// set assigns one colour by its YAML key. A nil value clears it.
func (t *Theme) set(key string, value *string) error {
	var v string
	if value != nil {
		v = strings.TrimSpace(*value)
	}
	switch key {
	case "heading":
		t.Heading = v
	case "label":
		t.Label = v
	case "text":
		t.Text = v
	case "focus":
		t.Focus = v
	case "error":
		t.Error = v
	case "muted":
		t.Muted = v
	case "accent":
		t.Accent = v
	default:
		return fmt.Errorf("unknown colour %q", key)
	}
	return nil
}

// ThemeNames returns the configured theme names, sorted.
func (c Config) ThemeNames() []string {
	names := make([]string, 0, len(c.UI.Themes))
	for name := range c.UI.Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ActiveTheme returns the theme selected by ui.theme.
func (c Config) ActiveTheme() (Theme, error) {
	th, ok := c.UI.Themes[c.UI.Theme]
	if !ok {
		return Theme{}, fmt.Errorf("unknown theme %q (available: %s)", c.UI.Theme, strings.Join(c.ThemeNames(), ", "))
	}
	return th, nil
}

// Validate reports settings the application cannot run with.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.App.Heading) == "" {
		errs = append(errs, errors.New("app.heading must not be empty"))
	}
	if strings.TrimSpace(c.App.SubmitLabel) == "" {
		errs = append(errs, errors.New("app.submit_label must not be empty"))
	}
	if c.UI.InputWidth < 10 {
		errs = append(errs, fmt.Errorf("ui.input_width must be at least 10, got %d", c.UI.InputWidth))
	}
	if c.UI.CardWidth < 20 {
		errs = append(errs, fmt.Errorf("ui.card_width must be at least 20, got %d", c.UI.CardWidth))
	}
	if c.UI.MaxCards < 0 {
		errs = append(errs, fmt.Errorf("ui.max_cards must not be negative, got %d", c.UI.MaxCards))
	}
	if _, err := c.ActiveTheme(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
