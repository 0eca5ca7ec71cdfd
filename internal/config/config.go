// Package config loads guppy settings from .guppy.yaml, the environment, and
// command-line flags, in that order of increasing precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Flags holds command-line flag values along with whether each was set
// explicitly, so unset flags never mask YAML or environment settings.
type Flags struct {
	ProjectsHome   string
	Fixture        bool
	NoColor        bool
	IgnoreExitCode bool

	FixtureSet        bool
	NoColorSet        bool
	IgnoreExitCodeSet bool
}

// AppConfig is the resolved application configuration.
type AppConfig struct {
	ProjectsHome   string `yaml:"projects_home,omitempty"`
	FixtureMode    bool   `yaml:"fixture_mode"`
	NoColor        bool   `yaml:"no_color"`
	IgnoreExitCode bool   `yaml:"ignore_exit_code"`
	MaxLineLength  int    `yaml:"max_line_length"`
}

// DefaultMaxLineLength caps a single scaffolding-tool output line at 1MB.
const DefaultMaxLineLength = 1 * 1024 * 1024

const configFileName = ".guppy.yaml"

// Load reads the configuration, layering .guppy.yaml over built-in defaults
// and the environment over both. Missing or unreadable config files fall back
// to defaults with a warning, never an error.
func Load() *AppConfig {
	cfg := &AppConfig{
		MaxLineLength: DefaultMaxLineLength,
	}

	path := configPath()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				fmt.Fprintf(os.Stderr, "Warning: error reading config file %s: %v. Using defaults.\n", path, err)
			}
		} else {
			var fileCfg AppConfig
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: error parsing config file %s: %v. Using defaults.\n", path, err)
			} else {
				mergeFile(cfg, &fileCfg)
			}
		}
	}

	applyEnv(cfg)
	return cfg
}

func mergeFile(cfg, fileCfg *AppConfig) {
	if fileCfg.ProjectsHome != "" {
		cfg.ProjectsHome = fileCfg.ProjectsHome
	}
	cfg.FixtureMode = fileCfg.FixtureMode
	cfg.NoColor = fileCfg.NoColor
	cfg.IgnoreExitCode = fileCfg.IgnoreExitCode
	if fileCfg.MaxLineLength > 0 {
		cfg.MaxLineLength = fileCfg.MaxLineLength
	}
}

func applyEnv(cfg *AppConfig) {
	if v := os.Getenv("GUPPY_HOME"); v != "" {
		cfg.ProjectsHome = v
	}
	if v := envBool("GUPPY_FIXTURE"); v != nil {
		cfg.FixtureMode = *v
	}

	noColor := os.Getenv("GUPPY_NO_COLOR")
	if noColor == "" {
		noColor = os.Getenv("NO_COLOR")
	}
	if noColor != "" {
		if b, err := strconv.ParseBool(noColor); err == nil {
			cfg.NoColor = b
		} else {
			// NO_COLOR convention: any non-empty value disables color.
			cfg.NoColor = true
		}
	}
}

func envBool(key string) *bool {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil
	}
	return &b
}

// Merge applies explicitly-set command-line flags on top of cfg.
func (c *AppConfig) Merge(flags Flags) {
	if flags.ProjectsHome != "" {
		c.ProjectsHome = flags.ProjectsHome
	}
	if flags.FixtureSet {
		c.FixtureMode = flags.Fixture
	}
	if flags.NoColorSet {
		c.NoColor = flags.NoColor
	}
	if flags.IgnoreExitCodeSet {
		c.IgnoreExitCode = flags.IgnoreExitCode
	}
}

// configPath finds .guppy.yaml: current directory first, then the user config
// directory under a guppy/ subdirectory.
func configPath() string {
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName
	}

	configHome, err := os.UserConfigDir()
	if err != nil || configHome == "" || configHome == "/" {
		return ""
	}
	xdgPath := filepath.Join(configHome, "guppy", configFileName)
	if _, err := os.Stat(xdgPath); err == nil {
		return xdgPath
	}
	return ""
}
