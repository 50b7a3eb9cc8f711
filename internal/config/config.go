package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"nmprep/internal/paths"
	"nmprep/internal/slogutil"
)

// CurrentVersion is the config schema version this build understands
const CurrentVersion = 1

// Config represents the complete nmprep configuration
type Config struct {
	Version int `toml:"version" mapstructure:"version" json:"version"`

	Header  HeaderConfig  `toml:"header" mapstructure:"header" json:"header"`
	Naming  NamingConfig  `toml:"naming" mapstructure:"naming" json:"naming"`
	Build   BuildConfig   `toml:"build" mapstructure:"build" json:"build"`
	Logging LoggingConfig `toml:"logging" mapstructure:"logging" json:"logging"`
}

// HeaderConfig controls docstring relocation
type HeaderConfig struct {
	// Input is the source header, relative to the repo root
	Input string `toml:"input" mapstructure:"input" json:"input"`
	// Namespace is the identifier namespace ("NM"); it selects the doc block marker,
	// the root token for prefix derivation and the ignored macro prefix
	Namespace string `toml:"namespace" mapstructure:"namespace" json:"namespace"`
	// DiscardUnterminated drops a doc block left open at end of input instead of failing
	DiscardUnterminated bool `toml:"discardUnterminated" mapstructure:"discardUnterminated" json:"discardUnterminated"`
}

// NamingConfig controls enumerator renaming
type NamingConfig struct {
	// EnumPattern selects the enums generated as native enums (anchored regexp)
	EnumPattern string `toml:"enumPattern" mapstructure:"enumPattern" json:"enumPattern"`
	// OverridesFile holds extra prefix overrides, relative to the repo root
	OverridesFile string `toml:"overridesFile" mapstructure:"overridesFile" json:"overridesFile"`
}

// BuildConfig controls output location and rebuild directives
type BuildConfig struct {
	// OutDir is the output directory; empty means read OutDirEnv
	OutDir string `toml:"outDir" mapstructure:"outDir" json:"outDir"`
	// OutDirEnv names the environment variable holding the output directory
	OutDirEnv string `toml:"outDirEnv" mapstructure:"outDirEnv" json:"outDirEnv"`
	// DirectivePrefix is prepended to rerun-if-* lines
	DirectivePrefix string `toml:"directivePrefix" mapstructure:"directivePrefix" json:"directivePrefix"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `toml:"format" mapstructure:"format" json:"format"`
	Level  string `toml:"level" mapstructure:"level" json:"level"`
	// File additionally writes logs to this path when set
	File string `toml:"file,omitempty" mapstructure:"file" json:"file,omitempty"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentVersion,
		Header: HeaderConfig{
			Input:     "nm-dbus-interface.h",
			Namespace: "NM",
		},
		Naming: NamingConfig{
			EnumPattern:   "NM.*",
			OverridesFile: paths.DefaultOverridesPath(),
		},
		Build: BuildConfig{
			OutDirEnv:       "OUT_DIR",
			DirectivePrefix: "cargo:",
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// EnvOverride records one environment variable applied over the file config
type EnvOverride struct {
	EnvVar string `json:"envVar" yaml:"envVar"`
	Key    string `json:"key" yaml:"key"`
	Value  string `json:"value" yaml:"value"`
}

// envMapping binds an environment variable to a config key
type envMapping struct {
	EnvVar string
	Key    string
}

// ConfigPathEnvVar points at an alternative config file
const ConfigPathEnvVar = "NMPREP_CONFIG_PATH"

var envMappings = []envMapping{
	{"NMPREP_HEADER_INPUT", "header.input"},
	{"NMPREP_NAMESPACE", "header.namespace"},
	{"NMPREP_DISCARD_UNTERMINATED", "header.discardUnterminated"},
	{"NMPREP_ENUM_PATTERN", "naming.enumPattern"},
	{"NMPREP_OVERRIDES_FILE", "naming.overridesFile"},
	{"NMPREP_OUT_DIR", "build.outDir"},
	{"NMPREP_OUT_DIR_ENV", "build.outDirEnv"},
	{"NMPREP_DIRECTIVE_PREFIX", "build.directivePrefix"},
	{"NMPREP_LOG_LEVEL", "logging.level"},
	{"NMPREP_LOG_FORMAT", "logging.format"},
	{"NMPREP_LOG_FILE", "logging.file"},
}

// GetSupportedEnvVars returns every environment variable the loader reads
func GetSupportedEnvVars() []string {
	vars := make([]string, 0, len(envMappings)+1)
	vars = append(vars, ConfigPathEnvVar)
	for _, m := range envMappings {
		vars = append(vars, m.EnvVar)
	}
	return vars
}

// EnvVarKey returns the config key an environment variable overrides
func EnvVarKey(envVar string) (string, bool) {
	for _, m := range envMappings {
		if m.EnvVar == envVar {
			return m.Key, true
		}
	}
	return "", false
}

// LoadResult is a loaded config plus where it came from
type LoadResult struct {
	Config       *Config
	ConfigPath   string
	UsedDefaults bool
	EnvOverrides []EnvOverride
}

// LoadConfig loads configuration from .nmprep/config.toml
func LoadConfig(repoRoot string) (*Config, error) {
	result, err := LoadConfigWithDetails(repoRoot)
	if err != nil {
		return nil, err
	}
	return result.Config, nil
}

// LoadConfigWithDetails loads configuration and reports the file used and the
// environment overrides applied. NMPREP_CONFIG_PATH takes precedence over
// <repoRoot>/.nmprep/config.toml; a missing file yields the defaults.
func LoadConfigWithDetails(repoRoot string) (*LoadResult, error) {
	v := viper.New()
	v.SetConfigType("toml")

	configPath := paths.GetConfigPath(repoRoot)
	explicit := false
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		configPath = p
		explicit = true
	}
	v.SetConfigFile(configPath)

	for _, m := range envMappings {
		if err := v.BindEnv(m.Key, m.EnvVar); err != nil {
			return nil, err
		}
	}

	result := &LoadResult{ConfigPath: configPath}
	if err := v.ReadInConfig(); err != nil {
		if !isNotExist(err) || explicit {
			return nil, &ConfigError{Field: "file", Message: fmt.Sprintf("reading %s: %v", configPath, err)}
		}
		result.UsedDefaults = true
		result.ConfigPath = ""
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, &ConfigError{Field: "file", Message: err.Error()}
	}
	result.Config = cfg

	for _, m := range envMappings {
		if val, ok := os.LookupEnv(m.EnvVar); ok {
			result.EnvOverrides = append(result.EnvOverrides, EnvOverride{EnvVar: m.EnvVar, Key: m.Key, Value: val})
		}
	}

	return result, nil
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
}

// Save writes the configuration to .nmprep/config.toml
func (c *Config) Save(repoRoot string) error {
	if err := paths.EnsureDir(paths.GetConfigDir(repoRoot)); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(paths.GetConfigPath(repoRoot), data, 0644)
}

var namespacePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]*$`)

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return &ConfigError{Field: "version", Message: fmt.Sprintf("unsupported config version %d", c.Version)}
	}
	if c.Header.Input == "" {
		return &ConfigError{Field: "header.input", Message: "must not be empty"}
	}
	if !namespacePattern.MatchString(c.Header.Namespace) {
		return &ConfigError{Field: "header.namespace", Message: fmt.Sprintf("%q is not an identifier", c.Header.Namespace)}
	}
	if _, err := regexp.Compile(c.Naming.EnumPattern); err != nil {
		return &ConfigError{Field: "naming.enumPattern", Message: err.Error()}
	}
	if c.Build.OutDir == "" && c.Build.OutDirEnv == "" {
		return &ConfigError{Field: "build.outDirEnv", Message: "either build.outDir or build.outDirEnv must be set"}
	}
	if !slogutil.ValidLevel(c.Logging.Level) {
		return &ConfigError{Field: "logging.level", Message: fmt.Sprintf("unknown level %q", c.Logging.Level)}
	}
	if _, ok := slogutil.ParseFormat(c.Logging.Format); !ok {
		return &ConfigError{Field: "logging.format", Message: fmt.Sprintf("unknown format %q", c.Logging.Format)}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
