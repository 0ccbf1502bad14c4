package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/hookkit/internal/checks"
)

var checkTodoCmd = &cobra.Command{
	Use:   "check-todo [files...]",
	Short: "Require TODOs to reference a ticket",
	Long: `Report every TODO that does not follow the TODO(ABC-1234): format.

Mentions of "todo", "to-do" and "TO DO" are checked in any case; longer words
such as "todos" are ignored.`,
	RunE: runCheckTodo,
}

var checkSentencesCmd = &cobra.Command{
	Use:   "check-sentences [files...]",
	Short: "Allow at most one sentence per line",
	Long: `Report lines holding more than one sentence.

With --fix, split such lines in place. Each new line keeps the original
indentation. The command still exits 1 when a file was rewritten so the commit
can be re-staged.`,
	RunE: runCheckSentences,
}

var checkLoadCmd = &cobra.Command{
	Use:   "check-load [files...]",
	Short: "Require a Bazel rule to be loaded from one place",
	Long: `Report Starlark files that load a rule from any label other than the
required one.

--rule-path and --rule-name default to load.rule_path and load.rule_name from
the configuration.`,
	RunE: runCheckLoad,
}

func init() {
	rootCmd.AddCommand(checkTodoCmd)
	rootCmd.AddCommand(checkSentencesCmd)
	rootCmd.AddCommand(checkLoadCmd)

	checkSentencesCmd.Flags().Bool("fix", false, "split offending lines in place")

	checkLoadCmd.Flags().String("rule-path", "", "label the rule must be loaded from, e.g. @rules_python//python:defs.bzl")
	checkLoadCmd.Flags().String("rule-name", "", "loaded symbol, e.g. py_library")
}

func runCheckTodo(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = rt.Close() }()

	files, err := rt.files(args)
	if err != nil {
		return err
	}

	findings, err := checks.FindIncorrectTodos(appFs, files)
	if err != nil {
		return err
	}
	rt.logger.WithTool("check-todo").Debug("scanned files", "files", len(files), "findings", len(findings))

	rt.printer.Findings(checks.TodoHeading, findings)
	if len(findings) > 0 {
		return failed(fmt.Sprintf("%d TODOs without ticket reference", len(findings)))
	}
	return nil
}

func runCheckSentences(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = rt.Close() }()
	logger := rt.logger.WithTool("check-sentences")

	files, err := rt.files(args)
	if err != nil {
		return err
	}

	fix, _ := cmd.Flags().GetBool("fix")
	if fix {
		changed, err := checks.FixMultipleSentences(appFs, files)
		if err != nil {
			return err
		}
		for _, file := range changed {
			logger.WithFile(file).Info("split multi-sentence lines")
		}
		if len(changed) > 0 {
			return failed(fmt.Sprintf("%d files rewritten", len(changed)))
		}
		return nil
	}

	findings, err := checks.FindMultipleSentences(appFs, files)
	if err != nil {
		return err
	}
	rt.printer.Findings(checks.SentenceHeading, findings)
	if len(findings) > 0 {
		return failed(fmt.Sprintf("%d lines with multiple sentences", len(findings)))
	}
	return nil
}

func runCheckLoad(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = rt.Close() }()

	rule := checks.LoadRule{Path: rt.cfg.Load.RulePath, Name: rt.cfg.Load.RuleName}
	if cmd.Flags().Changed("rule-path") {
		rule.Path, _ = cmd.Flags().GetString("rule-path")
	}
	if cmd.Flags().Changed("rule-name") {
		rule.Name, _ = cmd.Flags().GetString("rule-name")
	}
	if rule.Path == "" || rule.Name == "" {
		return fmt.Errorf("--rule-path and --rule-name are required")
	}

	files, err := rt.files(args)
	if err != nil {
		return err
	}

	invalid, err := checks.FindWrongLoadStatements(appFs, files, rule)
	if err != nil {
		return err
	}
	for _, file := range invalid {
		rt.printer.Line(rule.Message(file))
	}
	if len(invalid) > 0 {
		return failed(fmt.Sprintf("%d files load %s from the wrong place", len(invalid), rule.Name))
	}
	return nil
}
