// internal/config/config.go
//
// Runtime configuration for planpick. Defaults come from the user's home
// directory; an optional YAML file can override them and command-line flags
// override the file. The resulting Config is passed explicitly to everything
// that needs it.

package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	apperrors "github.com/kingrea/planpick/internal/errors"
)

const (
	// PlansSubdir is where plan files live, relative to the home directory.
	PlansSubdir = ".claude/plans"

	// DefaultCommand opens a markdown plan; the absolute path is appended.
	DefaultCommand = "gh mdp"

	configDirName  = "planpick"
	configFileName = "config.yaml"
)

// PickerConfig holds interactive picker preferences.
type PickerConfig struct {
	PromptTop bool `yaml:"prompt_top"`
}

// FileConfig models config.yaml.
type FileConfig struct {
	Version  int          `yaml:"version"`
	PlansDir string       `yaml:"plans_dir,omitempty"`
	Command  *string      `yaml:"command,omitempty"`
	LogFile  string       `yaml:"log_file,omitempty"`
	Picker   PickerConfig `yaml:"picker"`
}

// Config holds the resolved settings for one run.
type Config struct {
	HomeDir string

	// PlansDir is scanned when no explicit path is given.
	PlansDir string

	// Command is the whitespace-separated opener template.
	Command string

	// LogFile enables the diagnostic log when non-empty.
	LogFile string

	Picker PickerConfig
}

// New returns the default configuration for home.
func New(home string) (*Config, error) {
	home = strings.TrimSpace(home)
	if home == "" {
		return nil, apperrors.Configuration("config: failed to determine home directory")
	}
	return &Config{
		HomeDir:  home,
		PlansDir: filepath.Join(home, PlansSubdir),
		Command:  DefaultCommand,
	}, nil
}

// DefaultPath returns where config.yaml is looked up when no --config flag is
// given: $XDG_CONFIG_HOME/planpick/config.yaml, falling back to ~/.config.
func DefaultPath(home, xdgConfigHome string) string {
	base := strings.TrimSpace(xdgConfigHome)
	if base == "" {
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, configDirName, configFileName)
}

// Load builds the defaults for home and applies the YAML file at path on top.
// A missing file is ignored unless required is set.
func Load(home, path string, required bool) (*Config, error) {
	cfg, err := New(home)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return cfg, nil
		}
		return nil, apperrors.IO(err, "config: read %s", path)
	}

	var parsed FileConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, apperrors.ConfigurationWithCause(err, "config: parse %s", path)
	}
	parsed.applyDefaults()
	parsed.normalize(cfg.HomeDir)
	if err := parsed.validate(); err != nil {
		return nil, apperrors.ConfigurationWithCause(err, "config: %s", path)
	}
	cfg.apply(parsed)
	return cfg, nil
}

func (c *Config) apply(fc FileConfig) {
	if fc.PlansDir != "" {
		c.PlansDir = fc.PlansDir
	}
	if fc.Command != nil {
		c.Command = *fc.Command
	}
	if fc.LogFile != "" {
		c.LogFile = fc.LogFile
	}
	c.Picker = fc.Picker
}

func (fc *FileConfig) applyDefaults() {
	if fc.Version == 0 {
		fc.Version = 1
	}
}

func (fc *FileConfig) normalize(home string) {
	fc.PlansDir = resolvePath(home, fc.PlansDir)
	fc.LogFile = resolvePath(home, fc.LogFile)
	if fc.Command != nil {
		command := strings.TrimSpace(*fc.Command)
		fc.Command = &command
	}
}

func (fc *FileConfig) validate() error {
	if fc.Version != 1 {
		return errors.New("unsupported config version")
	}
	if fc.Command != nil && *fc.Command == "" {
		return errors.New("command must not be blank")
	}
	return nil
}

// resolvePath expands a leading ~ and anchors relative paths at home.
func resolvePath(home, candidate string) string {
	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" {
		return ""
	}
	if trimmed == "~" {
		return filepath.Clean(home)
	}
	if strings.HasPrefix(trimmed, "~/") {
		trimmed = strings.TrimPrefix(trimmed, "~/")
	}
	if filepath.IsAbs(trimmed) {
		return filepath.Clean(trimmed)
	}
	return filepath.Clean(filepath.Join(home, trimmed))
}
