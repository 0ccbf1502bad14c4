package cmd

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/Iron-Ham/hookkit/internal/config"
	"github.com/Iron-Ham/hookkit/internal/fileargs"
	"github.com/Iron-Ham/hookkit/internal/logging"
	"github.com/Iron-Ham/hookkit/internal/report"
)

// appFs is the filesystem every command reads and writes. Tests replace it
// with an in-memory filesystem.
var appFs afero.Fs = afero.NewOsFs()

// runtime bundles what a hook command needs.
type runtime struct {
	cfg     *config.Config
	logger  *logging.Logger
	printer *report.Printer
}

// newRuntime loads the configuration and builds the logger and printer for
// cmd. Callers must Close the runtime.
func newRuntime(cmd *cobra.Command) (*runtime, error) {
	if configErr != nil {
		return nil, configErr
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	level := cfg.Logging.Level
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = logging.LevelInfo
	}
	if flagLevel, _ := cmd.Flags().GetString("log-level"); flagLevel != "" {
		level = flagLevel
	}
	format := cfg.Logging.Format
	if flagFormat, _ := cmd.Flags().GetString("log-format"); flagFormat != "" {
		format = flagFormat
	}

	var logger *logging.Logger
	if cfg.Logging.File != "" {
		logger, err = logging.NewFileLogger(cfg.Logging.File, level, format)
		if err != nil {
			return nil, err
		}
	} else {
		logger = logging.NewLogger(cmd.ErrOrStderr(), level, format)
	}

	return &runtime{
		cfg:     cfg,
		logger:  logger,
		printer: newPrinter(cmd),
	}, nil
}

// Close releases the log file, if any.
func (r *runtime) Close() error {
	return r.logger.Close()
}

// files expands the file arguments of a hook command.
func (r *runtime) files(args []string) ([]string, error) {
	files, err := fileargs.Expand(appFs, args)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("expanded file arguments", "args", len(args), "files", len(files))
	return files, nil
}

// newPrinter returns a printer for commands that need no configuration.
func newPrinter(cmd *cobra.Command) *report.Printer {
	return report.NewPrinter(cmd.OutOrStdout())
}
