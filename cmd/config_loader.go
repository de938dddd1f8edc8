package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/reel/internal/config"
	"github.com/oakwood-commons/reel/pkg/settings"
)

// configLoader centralizes config loading so callers avoid duplicating merge logic.
type configLoader struct {
	defaultConfig func() []byte
	readFile      func(string) ([]byte, error)
}

var cfgLoader = configLoader{defaultConfig: config.DefaultYAML, readFile: os.ReadFile}

func loadMergedConfig(cfgPath string) (config.Config, error) {
	return cfgLoader.loadMergedConfig(cfgPath)
}

// loadMergedConfig merges the file at cfgPath over the embedded defaults and
// validates the result. An empty path yields the defaults.
func (l configLoader) loadMergedConfig(cfgPath string) (config.Config, error) {
	var cfg config.Config

	defaultData := l.defaultConfig()
	if len(defaultData) == 0 {
		return cfg, fmt.Errorf("embedded default config is empty")
	}
	if err := config.Merge(&cfg, defaultData); err != nil {
		return cfg, fmt.Errorf("load default config: %w", err)
	}

	if cfgPath != "" {
		data, err := l.readFile(cfgPath)
		if err != nil {
			return cfg, fmt.Errorf("read config %s: %w", cfgPath, err)
		}
		if err := config.Merge(&cfg, data); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", cfgPath, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		if cfgPath == "" {
			return cfg, fmt.Errorf("invalid default config: %w", err)
		}
		return cfg, fmt.Errorf("invalid config %s: %w", cfgPath, err)
	}
	return cfg, nil
}

// resolveConfigPath returns explicit when set, otherwise the user config file
// under $XDG_CONFIG_HOME (or ~/.config) if it exists.
func resolveConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	xdg := os.Getenv("XDG_CONFIG_HOME")
	candidate := ""
	if xdg != "" {
		candidate = filepath.Join(xdg, settings.CliBinaryName, "config.yaml")
	} else if home, err := os.UserHomeDir(); err == nil {
		candidate = filepath.Join(home, ".config", settings.CliBinaryName, "config.yaml")
	}
	if candidate != "" {
		if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
			return candidate
		}
	}
	return ""
}

// marshalConfig renders cfg as annotated YAML with two-space indentation.
func marshalConfig(cfg config.Config) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return addConfigComments(buf.String()), nil
}

func addConfigComments(yml string) string {
	if strings.Contains(yml, "\n  themes:\n") {
		comment := "  # Colours are ANSI numbers (0-255) or #rrggbb; empty keeps the terminal default\n"
		yml = strings.Replace(yml, "\n  themes:\n", "\n"+comment+"  themes:\n", 1)
	}
	lines := strings.Split(yml, "\n")
	section := ""
	for i, line := range lines {
		if line != "" && !strings.HasPrefix(line, " ") {
			section = strings.TrimSuffix(line, ":")
			continue
		}
		key := strings.TrimSpace(line)
		switch {
		case section == "catalog" && strings.HasPrefix(key, "path:"):
			lines[i] = line + " # loaded at start, saved on exit"
		case section == "catalog" && strings.HasPrefix(key, "output:"):
			lines[i] = line + " # yaml|json|toml, printed on exit"
		case section == "ui" && strings.HasPrefix(key, "theme:"):
			lines[i] = line + " # see 'reel config themes'"
		}
	}
	return strings.Join(lines, "\n")
}
