// Package config loads tracker settings from an optional YAML file and
// resolves the comment author identity.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the runtime knobs of the session and store layers.
// Zero values are replaced by defaults in Load.
type Config struct {
	// TickRate and FrameRate are events per second for the two timers.
	TickRate  float64 `yaml:"tick_rate"`
	FrameRate float64 `yaml:"frame_rate"`

	// Mouse and Paste toggle the terminal capture modes.
	Mouse bool  `yaml:"mouse"`
	Paste *bool `yaml:"paste"` // pointer so "absent" defaults to on

	// Author is recorded on issues and comments created in the UI.
	// When empty the local git identity is consulted, then $USER.
	Author string `yaml:"author"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	paste := true
	return Config{
		TickRate:  4,
		FrameRate: 10,
		Paste:     &paste,
	}
}

// Load reads the YAML config at path. A missing file (or empty path)
// yields the defaults; a malformed file is an error, never silently
// ignored.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 4
	}
	if cfg.FrameRate <= 0 {
		cfg.FrameRate = 10
	}
	if cfg.Paste == nil {
		paste := true
		cfg.Paste = &paste
	}
	return cfg, nil
}

// PasteEnabled reports the paste capture setting.
func (c Config) PasteEnabled() bool {
	return c.Paste == nil || *c.Paste
}

// ResolveAuthor returns the identity to stamp on new issues and
// comments: the configured author, else the local git identity, else
// $USER, else "unknown".
func (c Config) ResolveAuthor() string {
	if c.Author != "" {
		return c.Author
	}
	if email := gitConfig("user.email"); email != "" {
		return email
	}
	if name := gitConfig("user.name"); name != "" {
		return name
	}
	if user := os.Getenv("USER"); user != "" {
		return user
	}
	return "unknown"
}

func gitConfig(key string) string {
	out, err := exec.Command("git", "config", "--get", key).Output()
	if err != nil {
		slog.Debug("git identity lookup failed", "key", key, "error", err)
		return ""
	}
	return strings.TrimSpace(string(out))
}
