package cmd

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/hookkit/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify hookkit configuration",
	Long: `View or modify hookkit configuration.

Without arguments, displays the current configuration.
Use subcommands to modify settings or create a config file.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the user's config file.

Keys use dot notation, e.g.:
  hookkit config set logging.level debug
  hookkit config set vscode.indent 2
  hookkit config set load.rule_path @rules_python//python:defs.bzl

Valid keys:
  logging.level              - debug, info, warn or error
  logging.format             - text or json
  logging.file               - write logs to this file instead of stderr
  owners.codeowners_file     - CODEOWNERS file used by 'owners'
  versions.config_file       - versions config used by 'sync-versions'
  vscode.devcontainer_json   - devcontainer.json read by 'sync-vscode'
  vscode.settings_path       - settings file written by 'sync-vscode'
  vscode.extensions_path     - extensions file written by 'sync-vscode'
  vscode.indent              - JSON indentation (1-16)
  precommit.config_file      - pre-commit config read by 'precommit-metrics'
  precommit.output_file      - report file written by 'precommit-metrics'
  load.rule_path             - default --rule-path of 'check-load'
  load.rule_name             - default --rule-name of 'check-load'`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long: `Create a config file with all available options.

By default the file is created at ~/.config/hookkit/config.yaml. With --project
it is created as .hookkit.yaml in the current directory.`,
	RunE: runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)

	configInitCmd.Flags().Bool("project", false, "create .hookkit.yaml in the current directory")
}

// configKeys maps each settable key to its value type.
var configKeys = map[string]string{
	"logging.level":            "level",
	"logging.format":           "format",
	"logging.file":             "string",
	"owners.codeowners_file":   "string",
	"versions.config_file":     "path",
	"vscode.devcontainer_json": "path",
	"vscode.settings_path":     "path",
	"vscode.extensions_path":   "path",
	"vscode.indent":            "indent",
	"precommit.config_file":    "path",
	"precommit.output_file":    "string",
	"load.rule_path":           "string",
	"load.rule_name":           "string",
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	out := cmd.OutOrStdout()

	if configErr != nil {
		newPrinter(cmd).Warning(fmt.Sprintf("%v; showing defaults", configErr))
	}

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintln(out)

	// Show where config is being read from
	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Config file: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Config file: (none - using defaults)\n")
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "logging:")
	fmt.Fprintf(out, "  level: %s\n", cfg.Logging.Level)
	fmt.Fprintf(out, "  format: %s\n", cfg.Logging.Format)
	fmt.Fprintf(out, "  file: %s\n", cfg.Logging.File)

	fmt.Fprintln(out, "owners:")
	fmt.Fprintf(out, "  codeowners_file: %s\n", cfg.Owners.CodeownersFile)

	fmt.Fprintln(out, "versions:")
	fmt.Fprintf(out, "  config_file: %s\n", cfg.Versions.ConfigFile)

	fmt.Fprintln(out, "vscode:")
	fmt.Fprintf(out, "  devcontainer_json: %s\n", cfg.VSCode.DevcontainerJSON)
	fmt.Fprintf(out, "  settings_path: %s\n", cfg.VSCode.SettingsPath)
	fmt.Fprintf(out, "  extensions_path: %s\n", cfg.VSCode.ExtensionsPath)
	fmt.Fprintf(out, "  indent: %d\n", cfg.VSCode.Indent)

	fmt.Fprintln(out, "precommit:")
	fmt.Fprintf(out, "  config_file: %s\n", cfg.PreCommit.ConfigFile)
	fmt.Fprintf(out, "  output_file: %s\n", cfg.PreCommit.OutputFile)

	fmt.Fprintln(out, "load:")
	fmt.Fprintf(out, "  rule_path: %s\n", cfg.Load.RulePath)
	fmt.Fprintf(out, "  rule_name: %s\n", cfg.Load.RuleName)

	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	keyType, ok := configKeys[key]
	if !ok {
		return fmt.Errorf("unknown configuration key: %s\nRun 'hookkit config set --help' to see valid keys", key)
	}

	// Validate the value based on type
	var typedValue any
	switch keyType {
	case "level":
		if !slices.Contains(config.ValidLogLevels(), strings.ToLower(value)) {
			return fmt.Errorf("invalid value for %s: %s\nValid options: %s",
				key, value, strings.Join(config.ValidLogLevels(), ", "))
		}
		typedValue = strings.ToLower(value)
	case "format":
		if !slices.Contains(config.ValidLogFormats(), strings.ToLower(value)) {
			return fmt.Errorf("invalid value for %s: %s\nValid options: %s",
				key, value, strings.Join(config.ValidLogFormats(), ", "))
		}
		typedValue = strings.ToLower(value)
	case "path":
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("invalid value for %s: must not be empty", key)
		}
		typedValue = value
	case "indent":
		intVal, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: expected integer", key)
		}
		if intVal < config.MinIndent || intVal > config.MaxIndent {
			return fmt.Errorf("invalid value for %s: must be between %d and %d", key, config.MinIndent, config.MaxIndent)
		}
		typedValue = intVal
	default:
		typedValue = value
	}

	// Ensure config directory exists
	configDir := config.ConfigDir()
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.Set(key, typedValue)

	configFile := config.ConfigFile()
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %v\n", key, typedValue)
	fmt.Fprintf(cmd.OutOrStdout(), "Config saved to %s\n", configFile)

	return nil
}

const defaultConfigContent = `# hookkit configuration

logging:
  # debug, info, warn or error
  level: warn
  # text or json
  format: text
  # Write logs to a file instead of stderr
  file: ""

owners:
  # Leave empty to search .github/CODEOWNERS, CODEOWNERS and docs/CODEOWNERS
  codeowners_file: ""

versions:
  # Versions config read by sync-versions (YAML, or TOML when ending in .toml)
  config_file: .versions.yaml

vscode:
  devcontainer_json: .devcontainer/devcontainer.json
  settings_path: .vscode/settings.json
  extensions_path: .vscode/extensions.json
  # Spaces per JSON indentation level
  indent: 4

precommit:
  config_file: .pre-commit-config.yaml
  # Also write the precommit-metrics report here
  output_file: ""

load:
  # Default rule for check-load, e.g. @rules_python//python:defs.bzl and py_library
  rule_path: ""
  rule_name: ""
`

func runConfigInit(cmd *cobra.Command, args []string) error {
	configDir := config.ConfigDir()
	configFile := config.ConfigFile()
	if project, _ := cmd.Flags().GetBool("project"); project {
		configDir = "."
		configFile = config.ProjectConfigFile
	}

	// Check if config file already exists
	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s\nUse 'hookkit config set' to modify values", configFile)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(configFile, []byte(defaultConfigContent), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created config file at %s\n", configFile)
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Active config: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Default path: %s (not created)\n", config.ConfigFile())
	}

	fmt.Fprintln(out, "\nSearch paths:")
	fmt.Fprintf(out, "  1. --config flag\n")
	fmt.Fprintf(out, "  2. ./%s (current directory)\n", config.ProjectConfigFile)
	fmt.Fprintf(out, "  3. %s\n", config.ConfigFile())
	fmt.Fprintf(out, "\nEnvironment variables: %s_* (e.g., %s_LOGGING_LEVEL)\n", config.EnvPrefix, config.EnvPrefix)

	return nil
}
