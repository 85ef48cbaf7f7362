// clogfmt - Keep a Changelog formatter
// Author: Ariel Frischer
// Source: https://github.com/ariel-frischer/clogfmt

// Package config provides hierarchical configuration for clogfmt using koanf.
// Configuration is loaded with priority: environment variables > project config
// (.clogfmt.yml or .clogfmt.json) > user config (~/.config/clogfmt/config.yml)
// > defaults.
package config

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "CLOGFMT_"

// ConfigSource tracks where a configuration value came from
type ConfigSource string

const (
	SourceDefault ConfigSource = "default"
	SourceUser    ConfigSource = "user"
	SourceProject ConfigSource = "project"
	SourceEnv     ConfigSource = "env"
)

// Configuration represents the clogfmt configuration
type Configuration struct {
	// Path is the changelog formatted when no path argument is given.
	Path string `koanf:"path" yaml:"path" validate:"required"`

	// Jobs caps how many files are formatted in parallel (0 = one per CPU).
	Jobs int `koanf:"jobs" yaml:"jobs" validate:"min=0,max=256"`

	// Color controls colored output: auto | always | never.
	Color string `koanf:"color" yaml:"color" validate:"oneof=auto always never"`

	Recursive bool `koanf:"recursive" yaml:"recursive"`

	// RepoRootFallback looks for the changelog at the git repository root
	// when Path does not exist in the working directory.
	RepoRootFallback bool `koanf:"repo_root_fallback" yaml:"repo_root_fallback"`

	Show ShowConfig `koanf:"show" yaml:"show"`

	// Sources records which layer last set each key.
	Sources map[string]ConfigSource `koanf:"-" yaml:"-"`
}

// ShowConfig configures the show command.
type ShowConfig struct {
	// Last is the number of versions shown when no version is requested.
	Last int `koanf:"last" yaml:"last" validate:"min=1"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (default: .clogfmt.yml)
	ProjectConfigPath string
	// UserConfigPath overrides the user config path (used by tests)
	UserConfigPath string
	// SkipUser ignores the user config entirely
	SkipUser bool
}

// Load loads configuration from user, project, and environment sources.
// Priority: Environment variables > Project config > User config > Defaults
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	l := &loader{
		k:       koanf.New("."),
		origins: map[string]keyOrigin{},
		tracker: &sourceTracker{values: map[string]string{}, sources: map[string]ConfigSource{}},
	}

	loadDefaults(l.k)
	l.tracker.record(l.k, SourceDefault)

	if !opts.SkipUser {
		if err := l.loadUserConfig(opts.UserConfigPath); err != nil {
			return nil, err
		}
		l.tracker.record(l.k, SourceUser)
	}

	if err := l.loadProjectConfig(opts.ProjectConfigPath); err != nil {
		return nil, err
	}
	l.tracker.record(l.k, SourceProject)

	if err := l.loadEnvironmentConfig(); err != nil {
		return nil, err
	}
	l.tracker.record(l.k, SourceEnv)

	cfg, err := finalizeConfig(l.k, l.origins)
	if err != nil {
		return nil, err
	}
	cfg.Sources = l.tracker.sources
	return cfg, nil
}

// loader merges the configuration layers and remembers where each key was
// last set.
type loader struct {
	k       *koanf.Koanf
	origins map[string]keyOrigin
	tracker *sourceTracker
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// sourceTracker records which layer last changed each key. A layer that
// sets a key to its current value leaves the earlier source in place.
type sourceTracker struct {
	values  map[string]string
	sources map[string]ConfigSource
}

func (t *sourceTracker) record(k *koanf.Koanf, src ConfigSource) {
	for key, value := range k.All() {
		current := fmt.Sprint(value)
		if prev, ok := t.values[key]; !ok || prev != current {
			t.sources[key] = src
		}
		t.values[key] = current
	}
}

func (l *loader) loadUserConfig(override string) error {
	path := override
	if path == "" {
		var err error
		path, err = UserConfigPath()
		if err != nil {
			// No home directory: nothing to load.
			return nil
		}
	}
	if !fileExists(path) {
		return nil
	}
	if err := l.loadConfigFile(path); err != nil {
		return fmt.Errorf("loading user config: %w", err)
	}
	return nil
}

// loadProjectConfig loads the explicit --config path, or the first of
// .clogfmt.yml, .clogfmt.yaml and .clogfmt.json found in the working
// directory. An explicit path that does not exist is an error.
func (l *loader) loadProjectConfig(customPath string) error {
	path := customPath
	if path == "" {
		path = FindProjectConfig()
	} else if !fileExists(path) {
		return fmt.Errorf("config file %s not found", path)
	}
	if path == "" {
		return nil
	}
	if err := l.loadConfigFile(path); err != nil {
		return fmt.Errorf("loading project config: %w", err)
	}
	return nil
}

// loadConfigFile loads a YAML or JSON config file into its own layer,
// rejects unknown keys and merges the layer.
func (l *loader) loadConfigFile(path string) error {
	layer := koanf.New(".")

	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := layer.Load(file.Provider(path), json.Parser()); err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
		for _, key := range layer.Keys() {
			if _, ok := KnownKeys[key]; !ok {
				return &ValidationError{Source: path, Key: key, Message: "unknown configuration key"}
			}
			l.origins[key] = keyOrigin{source: path}
		}
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		origins, err := yamlKeyOrigins(path, data)
		if err != nil {
			return err
		}
		if err := layer.Load(file.Provider(path), yaml.Parser()); err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
		maps.Copy(l.origins, origins)
	}

	return l.k.Merge(layer)
}

// loadEnvironmentConfig applies CLOGFMT_* overrides. Values are parsed with
// the key's type, so CLOGFMT_JOBS=many fails here instead of at unmarshal.
func (l *loader) loadEnvironmentConfig() error {
	var parseErr error
	provider := env.ProviderWithValue(EnvPrefix, ".", func(name, value string) (string, interface{}) {
		key := envTransform(name)
		if key == "" {
			return "", nil
		}
		parsed, err := ParseValue(key, value)
		if err != nil {
			if parseErr == nil {
				parseErr = &ValidationError{Source: name, Message: err.Error()}
			}
			return "", nil
		}
		l.origins[key] = keyOrigin{source: name}
		return key, parsed
	})

	if err := l.k.Load(provider, nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return parseErr
}

// finalizeConfig unmarshals and validates the merged configuration
func finalizeConfig(k *koanf.Koanf, origins map[string]keyOrigin) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateValues(&cfg, origins); err != nil {
		return nil, err
	}

	cfg.Path = expandHomePath(cfg.Path)
	return &cfg, nil
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform maps environment variable names to config keys.
// Example: CLOGFMT_SHOW_LAST -> show.last. Unknown variables are ignored.
func envTransform(s string) string {
	name := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	for key := range KnownKeys {
		if strings.ReplaceAll(key, ".", "_") == name {
			return key
		}
	}
	return ""
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
