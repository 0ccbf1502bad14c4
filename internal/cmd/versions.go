package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/hookkit/internal/errors"
	"github.com/Iron-Ham/hookkit/internal/versionsync"
)

var syncVersionsCmd = &cobra.Command{
	Use:   "sync-versions",
	Short: "Propagate tool versions into the files that pin them",
	Long: `Rewrite every file listed in the versions config so it carries the declared
version of its tool.

Each entry pattern must have exactly one capture group, or contain THE_VERSION
once, which stands for a semantic version. Only the captured text is replaced.
Entry paths are relative to the config file.

The command exits 1 when a file was rewritten or an entry is invalid. An
invalid config aborts before any file is touched.`,
	Args: cobra.NoArgs,
	RunE: runSyncVersions,
}

func init() {
	rootCmd.AddCommand(syncVersionsCmd)

	syncVersionsCmd.Flags().String("versions-file", "", "versions config, YAML or .toml (default from versions.config_file)")
}

func runSyncVersions(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = rt.Close() }()

	path := rt.cfg.Versions.ConfigFile
	if cmd.Flags().Changed("versions-file") {
		path, _ = cmd.Flags().GetString("versions-file")
	}

	cfg, err := versionsync.LoadConfig(appFs, path)
	if err != nil {
		var cfgErr *errors.ConfigError
		switch {
		case errors.Is(err, errors.ErrConfigNotFound):
			rt.printer.Errorf("config file not found: %s", path)
		case errors.As(err, &cfgErr):
			rt.printer.Errorf("invalid config in %s: %s", cfgErr.Path, cfgErr.Error())
		default:
			return printFailure(rt.printer, "cannot load versions config", err)
		}
		return failed("invalid versions config")
	}

	changed, errs := versionsync.NewSyncer(appFs, rt.logger).Apply(cfg.Specs)
	for _, err := range errs {
		rt.printer.Error(err.Error())
	}

	switch {
	case len(errs) > 0:
		return failed(fmt.Sprintf("%d invalid sync_versions entries", len(errs)))
	case changed:
		return failed("versions updated")
	}
	return nil
}
