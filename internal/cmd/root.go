package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/hookkit/internal/config"
	"github.com/Iron-Ham/hookkit/internal/errors"
)

var rootCmd = &cobra.Command{
	Use:   "hookkit",
	Short: "Pre-commit checks and config sync tools",
	Long: `hookkit bundles the small checks and synchronization utilities a repository
runs from pre-commit: TODO ticket references, one sentence per line, Bazel
load() sources, CODEOWNERS lookups, tool version propagation, VS Code settings
sync and pre-commit exclude metrics.

Each subcommand exits 0 when the files are clean and 1 when it found problems
or rewrote something.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Errors other than hook failures, whose
// diagnostics are already printed, are reported on stderr.
func Execute() error {
	err := rootCmd.Execute()
	var silent *silentError
	if err != nil && !errors.As(err, &silent) {
		rootCmd.PrintErrln("Error:", err)
	}
	return err
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is ./.hookkit.yaml, then $HOME/.config/hookkit/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "", "log format: text or json")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose logging (same as --log-level info)")
}

// configErr is the error from reading the config file during initConfig.
// Hook commands fail with it; a missing default config is not an error.
var configErr error

func initConfig() {
	configErr = nil

	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	switch {
	case cfgFile != "":
		viper.SetConfigFile(cfgFile)
	case fileExists(config.ProjectConfigFile):
		viper.SetConfigFile(config.ProjectConfigFile)
	default:
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix(config.EnvPrefix)
	// Replace dots with underscores for nested keys in env vars
	// e.g., HOOKKIT_VSCODE_INDENT for vscode.indent
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			configErr = fmt.Errorf("failed to read config file: %w", err)
		}
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
