package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"nmprep/internal/config"
	preperrors "nmprep/internal/errors"
	"nmprep/internal/paths"
)

var (
	configFormat   string
	configShowDiff bool
	configForce    bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage nmprep configuration",
	Long:  "View and manage nmprep configuration stored in .nmprep/config.toml",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long: `Display the effective configuration after defaults, config file and
environment overrides.

Examples:
  nmprep config show                # Pretty-print current config
  nmprep config show --format json  # JSON output
  nmprep config show --diff         # Only show non-default values`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default .nmprep/config.toml",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var configEnvCmd = &cobra.Command{
	Use:   "env",
	Short: "List supported environment variables",
	Long:  "Display all supported NMPREP_* environment variable overrides",
	Args:  cobra.NoArgs,
	Run:   runConfigEnv,
}

func init() {
	configShowCmd.Flags().StringVar(&configFormat, "format", string(FormatHuman), "Output format (human, json, yaml)")
	configShowCmd.Flags().BoolVar(&configShowDiff, "diff", false, "Only show non-default values")
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing config file")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configEnvCmd)
	rootCmd.AddCommand(configCmd)
}

// ConfigShowResponse is the response format for config show
type ConfigShowResponse struct {
	ConfigPath   string                 `json:"configPath,omitempty" yaml:"configPath,omitempty"`
	UsedDefaults bool                   `json:"usedDefaults" yaml:"usedDefaults"`
	EnvOverrides []config.EnvOverride   `json:"envOverrides,omitempty" yaml:"envOverrides,omitempty"`
	Config       map[string]interface{} `json:"config" yaml:"config"`
}

func repoRoot() (string, error) {
	return filepath.Abs(repoFlag)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	format, err := ParseOutputFormat(configFormat)
	if err != nil {
		return err
	}
	root, err := repoRoot()
	if err != nil {
		return err
	}

	result, err := config.LoadConfigWithDetails(root)
	if err != nil {
		return preperrors.Wrap(preperrors.InvalidConfig, err, "loading config")
	}

	out := cmd.OutOrStdout()
	if format == FormatHuman {
		outputConfigHuman(out, result, configShowDiff)
		return nil
	}

	configMap, err := configToMap(result.Config)
	if err != nil {
		return err
	}
	if configShowDiff {
		defaultMap, err := configToMap(config.DefaultConfig())
		if err != nil {
			return err
		}
		configMap = computeDiff(configMap, defaultMap)
	}

	text, err := FormatResponse(&ConfigShowResponse{
		ConfigPath:   result.ConfigPath,
		UsedDefaults: result.UsedDefaults,
		EnvOverrides: result.EnvOverrides,
		Config:       configMap,
	}, format)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, text)
	return nil
}

// configToMap converts a config into a generic map keyed like the TOML file.
func configToMap(cfg *config.Config) (map[string]interface{}, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return m, nil
}

func outputConfigHuman(w io.Writer, result *config.LoadResult, diffOnly bool) {
	fmt.Fprintln(w, "nmprep Configuration")
	fmt.Fprintln(w, strings.Repeat("─", 50))

	if result.UsedDefaults {
		fmt.Fprintln(w, "Source: defaults (no config file found)")
	} else if result.ConfigPath != "" {
		fmt.Fprintf(w, "Source: %s\n", result.ConfigPath)
	}

	if len(result.EnvOverrides) > 0 {
		fmt.Fprintln(w, "\nEnvironment Overrides:")
		for _, ov := range result.EnvOverrides {
			fmt.Fprintf(w, "  %s=%s → %s\n", ov.EnvVar, ov.Value, ov.Key)
		}
	}
	fmt.Fprintln(w)

	cfg := result.Config
	defaults := config.DefaultConfig()
	rows := []configRow{
		{"version", cfg.Version, defaults.Version},
		{"header.input", cfg.Header.Input, defaults.Header.Input},
		{"header.namespace", cfg.Header.Namespace, defaults.Header.Namespace},
		{"header.discardUnterminated", cfg.Header.DiscardUnterminated, defaults.Header.DiscardUnterminated},
		{"naming.enumPattern", cfg.Naming.EnumPattern, defaults.Naming.EnumPattern},
		{"naming.overridesFile", cfg.Naming.OverridesFile, defaults.Naming.OverridesFile},
		{"build.outDir", valueOrDefault(cfg.Build.OutDir, "(from env)"), "(from env)"},
		{"build.outDirEnv", cfg.Build.OutDirEnv, defaults.Build.OutDirEnv},
		{"build.directivePrefix", cfg.Build.DirectivePrefix, defaults.Build.DirectivePrefix},
		{"logging.level", cfg.Logging.Level, defaults.Logging.Level},
		{"logging.format", cfg.Logging.Format, defaults.Logging.Format},
		{"logging.file", valueOrDefault(cfg.Logging.File, "(none)"), "(none)"},
	}

	modified := 0
	for _, r := range rows {
		changed := !isEqual(r.value, r.defaultValue)
		if diffOnly && !changed {
			continue
		}
		if changed {
			modified++
			fmt.Fprintf(w, "%s: %v (default: %v)\n", r.name, r.value, r.defaultValue)
		} else {
			fmt.Fprintf(w, "%s: %v\n", r.name, r.value)
		}
	}
	if diffOnly && modified == 0 {
		fmt.Fprintln(w, "  (no modifications - using all defaults)")
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Use 'nmprep config show --format json' for machine-readable output")
	fmt.Fprintln(w, "Use 'nmprep config env' to see supported environment variables")
}

type configRow struct {
	name         string
	value        interface{}
	defaultValue interface{}
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	root, err := repoRoot()
	if err != nil {
		return err
	}

	path := paths.GetConfigPath(root)
	if _, err := os.Stat(path); err == nil && !configForce {
		return preperrors.New(preperrors.InvalidConfig, "%s already exists (use --force to overwrite)", path)
	}

	if err := config.DefaultConfig().Save(root); err != nil {
		return preperrors.Wrap(preperrors.IOFailure, err, "writing %s", path)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

var envVarDescriptions = map[string]string{
	config.ConfigPathEnvVar:       "Path to config file",
	"NMPREP_HEADER_INPUT":         "Header to process",
	"NMPREP_NAMESPACE":            "Identifier namespace (NM)",
	"NMPREP_DISCARD_UNTERMINATED": "Drop a doc block left open at end of input",
	"NMPREP_ENUM_PATTERN":         "Enums generated as native enums (regexp)",
	"NMPREP_OVERRIDES_FILE":       "Prefix override table",
	"NMPREP_OUT_DIR":              "Output directory",
	"NMPREP_OUT_DIR_ENV":          "Variable holding the output directory",
	"NMPREP_DIRECTIVE_PREFIX":     "Prefix of rebuild directives",
	"NMPREP_LOG_LEVEL":            "Log level (debug, info, warn, error)",
	"NMPREP_LOG_FORMAT":           "Log format (human, json)",
	"NMPREP_LOG_FILE":             "Also append logs to this file",
}

func runConfigEnv(cmd *cobra.Command, args []string) {
	writeEnvHelp(cmd.OutOrStdout())
}

func writeEnvHelp(w io.Writer) {
	fmt.Fprintln(w, "Supported nmprep Environment Variables")
	fmt.Fprintln(w, strings.Repeat("─", 50))
	fmt.Fprintln(w)

	for _, name := range config.GetSupportedEnvVars() {
		desc := envVarDescriptions[name]
		if key, ok := config.EnvVarKey(name); ok {
			desc += " [" + key + "]"
		}
		fmt.Fprintf(w, "  %-30s %s\n", name, desc)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Example usage:")
	fmt.Fprintln(w, "  NMPREP_LOG_LEVEL=debug nmprep process")
	fmt.Fprintln(w, "  NMPREP_OUT_DIR=target/gen nmprep process")
}

func valueOrDefault(value, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}

func isEqual(a, b interface{}) bool {
	return fmt.Sprintf("%v", a) == fmt.Sprintf("%v", b)
}

func computeDiff(current, defaults map[string]interface{}) map[string]interface{} {
	diff := make(map[string]interface{})
	for key, currentVal := range current {
		defaultVal, exists := defaults[key]
		if !exists {
			diff[key] = currentVal
			continue
		}

		currentMap, currentIsMap := currentVal.(map[string]interface{})
		defaultMap, defaultIsMap := defaultVal.(map[string]interface{})
		if currentIsMap && defaultIsMap {
			if nested := computeDiff(currentMap, defaultMap); len(nested) > 0 {
				diff[key] = nested
			}
		} else if !isEqual(currentVal, defaultVal) {
			diff[key] = currentVal
		}
	}
	return diff
}
