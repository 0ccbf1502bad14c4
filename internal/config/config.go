package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// ProjectConfigFile is the per-repository config file name, looked up in the
// working directory before the user config directory.
const ProjectConfigFile = ".hookkit.yaml"

// EnvPrefix is prepended to environment overrides, e.g. HOOKKIT_LOGGING_LEVEL.
const EnvPrefix = "HOOKKIT"

// Config represents the complete hookkit configuration
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging"`
	Owners    OwnersConfig    `mapstructure:"owners"`
	Versions  VersionsConfig  `mapstructure:"versions"`
	VSCode    VSCodeConfig    `mapstructure:"vscode"`
	PreCommit PreCommitConfig `mapstructure:"precommit"`
	Load      LoadRuleConfig  `mapstructure:"load"`
}

// LoggingConfig controls diagnostic logging on stderr
type LoggingConfig struct {
	// Level is the log level: "debug", "info", "warn", "error" (default: "warn")
	Level string `mapstructure:"level"`
	// Format is the handler format: "text" or "json" (default: "text")
	Format string `mapstructure:"format"`
	// File, when set, sends logs to this file instead of stderr
	File string `mapstructure:"file"`
}

// OwnersConfig controls CODEOWNERS lookup
type OwnersConfig struct {
	// CodeownersFile is an explicit CODEOWNERS path. When empty the standard
	// locations under the repository root are searched.
	CodeownersFile string `mapstructure:"codeowners_file"`
}

// VersionsConfig controls sync-versions
type VersionsConfig struct {
	// ConfigFile is the versions document (default: ".versions.yaml")
	ConfigFile string `mapstructure:"config_file"`
}

// VSCodeConfig controls sync-vscode
type VSCodeConfig struct {
	DevcontainerJSON string `mapstructure:"devcontainer_json"`
	SettingsPath     string `mapstructure:"settings_path"`
	ExtensionsPath   string `mapstructure:"extensions_path"`
	// Indent is the number of spaces per JSON level (default: 4)
	Indent int `mapstructure:"indent"`
}

// PreCommitConfig controls precommit-metrics
type PreCommitConfig struct {
	// ConfigFile is the pre-commit config (default: ".pre-commit-config.yaml")
	ConfigFile string `mapstructure:"config_file"`
	// OutputFile, when set, also receives the JSON report
	OutputFile string `mapstructure:"output_file"`
}

// LoadRuleConfig supplies defaults for check-load's --rule-path and --rule-name
type LoadRuleConfig struct {
	RulePath string `mapstructure:"rule_path"`
	RuleName string `mapstructure:"rule_name"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
		},
		Versions: VersionsConfig{
			ConfigFile: ".versions.yaml",
		},
		VSCode: VSCodeConfig{
			DevcontainerJSON: ".devcontainer/devcontainer.json",
			SettingsPath:     ".vscode/settings.json",
			ExtensionsPath:   ".vscode/extensions.json",
			Indent:           4,
		},
		PreCommit: PreCommitConfig{
			ConfigFile: ".pre-commit-config.yaml",
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Logging defaults
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.format", defaults.Logging.Format)
	viper.SetDefault("logging.file", defaults.Logging.File)

	// Owners defaults
	viper.SetDefault("owners.codeowners_file", defaults.Owners.CodeownersFile)

	// Versions defaults
	viper.SetDefault("versions.config_file", defaults.Versions.ConfigFile)

	// VS Code defaults
	viper.SetDefault("vscode.devcontainer_json", defaults.VSCode.DevcontainerJSON)
	viper.SetDefault("vscode.settings_path", defaults.VSCode.SettingsPath)
	viper.SetDefault("vscode.extensions_path", defaults.VSCode.ExtensionsPath)
	viper.SetDefault("vscode.indent", defaults.VSCode.Indent)

	// Pre-commit defaults
	viper.SetDefault("precommit.config_file", defaults.PreCommit.ConfigFile)
	viper.SetDefault("precommit.output_file", defaults.PreCommit.OutputFile)

	// Load rule defaults
	viper.SetDefault("load.rule_path", defaults.Load.RulePath)
	viper.SetDefault("load.rule_name", defaults.Load.RuleName)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration, falling back to defaults when the
// loaded configuration is invalid
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "hookkit")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".hookkit"
	}
	return filepath.Join(home, ".config", "hookkit")
}

// ConfigFile returns the path to the user config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
