package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/hookkit/internal/errors"
	"github.com/Iron-Ham/hookkit/internal/precommit"
)

var precommitMetricsCmd = &cobra.Command{
	Use:   "precommit-metrics",
	Short: "Report how many files each pre-commit hook excludes",
	Long: `Resolve the exclude pattern of every hook in .pre-commit-config.yaml against
the repository and print the number of excluded files as JSON:

  {"total_excluded_files": N, "hooks": [{"hook_id": ..., "excluded_files_count": ...}]}

Only hooks excluding at least one file are listed. With --output-file the
report is also written to that path.`,
	Args: cobra.NoArgs,
	RunE: runPrecommitMetrics,
}

var checkUselessExcludesCmd = &cobra.Command{
	Use:   "check-useless-excludes",
	Short: "Fail on pre-commit exclude patterns that match nothing",
	Args:  cobra.NoArgs,
	RunE:  runCheckUselessExcludes,
}

func init() {
	rootCmd.AddCommand(precommitMetricsCmd)
	rootCmd.AddCommand(checkUselessExcludesCmd)

	for _, c := range []*cobra.Command{precommitMetricsCmd, checkUselessExcludesCmd} {
		c.Flags().String("config-file", "", "pre-commit config (default from precommit.config_file)")
		c.Flags().String("repo-root", ".", "repository whose files are matched")
	}
	precommitMetricsCmd.Flags().String("output-file", "", "also write the report to this file")
}

func loadPrecommitHooks(cmd *cobra.Command, rt *runtime) ([]precommit.Hook, error) {
	repoRoot, _ := cmd.Flags().GetString("repo-root")
	configFile := rt.cfg.PreCommit.ConfigFile
	if cmd.Flags().Changed("config-file") {
		configFile, _ = cmd.Flags().GetString("config-file")
	} else {
		configFile = filepath.Join(repoRoot, configFile)
	}

	hooks, err := precommit.LoadHooks(appFs, repoRoot, configFile)
	if err != nil {
		if errors.Is(err, errors.ErrConfigNotFound) {
			rt.printer.Errorf("config file not found: %s", configFile)
			return nil, failed("pre-commit config not found")
		}
		if errors.Is(err, errors.ErrInvalidConfig) {
			return nil, printFailure(rt.printer, "invalid pre-commit config", err)
		}
		return nil, printFailure(rt.printer, "cannot load pre-commit hooks", err)
	}
	rt.logger.Debug("loaded pre-commit hooks", "config", configFile, "hooks", len(hooks))
	return hooks, nil
}

func runPrecommitMetrics(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = rt.Close() }()

	hooks, err := loadPrecommitHooks(cmd, rt)
	if err != nil {
		return err
	}

	report := precommit.NewReport(appFs, hooks)
	data, err := report.JSON()
	if err != nil {
		return err
	}
	rt.printer.Line(string(data))

	outputFile := rt.cfg.PreCommit.OutputFile
	if cmd.Flags().Changed("output-file") {
		outputFile, _ = cmd.Flags().GetString("output-file")
	}
	if outputFile != "" {
		if err := precommit.WriteReport(appFs, report, outputFile); err != nil {
			return err
		}
		rt.logger.WithTool("precommit-metrics").Info("wrote report", "file", outputFile)
	}
	return nil
}

func runCheckUselessExcludes(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = rt.Close() }()

	hooks, err := loadPrecommitHooks(cmd, rt)
	if err != nil {
		return err
	}

	useless := precommit.UselessExcludes(hooks)
	for _, h := range useless {
		rt.printer.Errorf("The exclude pattern '%s' for %s does not match any files", h.Exclude, h.ID)
	}
	if len(useless) > 0 {
		return failed(fmt.Sprintf("%d useless excludes", len(useless)))
	}
	return nil
}
