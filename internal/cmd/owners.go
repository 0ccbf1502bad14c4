package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/hookkit/internal/ownership"
)

var ownersCmd = &cobra.Command{
	Use:   "owners [files...]",
	Short: "Show the CODEOWNERS of files",
	Long: `Print the owners of each file according to the repository's CODEOWNERS.

The file is taken from --codeowners, then owners.codeowners_file in the
configuration, then the first of .github/CODEOWNERS, CODEOWNERS and
docs/CODEOWNERS under --repo-root. The last matching rule wins.

With --require-owner the command fails when a file matches no rule. With
--owner it fails when a file is not owned by the given team or user.`,
	RunE: runOwners,
}

func init() {
	rootCmd.AddCommand(ownersCmd)

	ownersCmd.Flags().String("codeowners", "", "path to the CODEOWNERS file")
	ownersCmd.Flags().String("repo-root", ".", "repository root the file paths are relative to")
	ownersCmd.Flags().Bool("require-owner", false, "fail when a file matches no CODEOWNERS rule")
	ownersCmd.Flags().String("owner", "", "fail when a file is not owned by this owner, e.g. @org/team")
}

func runOwners(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = rt.Close() }()
	logger := rt.logger.WithTool("owners")

	codeowners := rt.cfg.Owners.CodeownersFile
	if cmd.Flags().Changed("codeowners") {
		codeowners, _ = cmd.Flags().GetString("codeowners")
	}
	repoRoot, _ := cmd.Flags().GetString("repo-root")
	requireOwner, _ := cmd.Flags().GetBool("require-owner")
	owner, _ := cmd.Flags().GetString("owner")

	own, err := ownership.NewGithubOwnership(appFs, repoRoot, codeowners)
	if err != nil {
		return err
	}
	logger.Debug("loaded CODEOWNERS", "file", own.File())

	files, err := rt.files(args)
	if err != nil {
		return err
	}

	var unowned, foreign []string
	for _, file := range files {
		entry, ok := own.Lookup(file)
		switch {
		case !ok:
			unowned = append(unowned, file)
			rt.printer.KeyValue(file, "no owner", true)
		case len(entry.Owners) == 0:
			rt.printer.KeyValue(file, "no owner", true)
		default:
			rt.printer.KeyValue(file, strings.Join(entry.Owners, " "), false)
		}
		if ok {
			logger.WithFile(file).Debug("matched rule", "pattern", entry.Pattern, "line", entry.Line)
		}

		if owner != "" && !own.IsOwnedBy(file, owner) {
			foreign = append(foreign, file)
		}
	}

	var problems int
	if requireOwner && len(unowned) > 0 {
		rt.printer.Error(fmt.Sprintf("no CODEOWNERS rule in %s matches: %s", own.File(), strings.Join(unowned, ", ")))
		problems += len(unowned)
	}
	if len(foreign) > 0 {
		rt.printer.Error(fmt.Sprintf("not owned by %s: %s", owner, strings.Join(foreign, ", ")))
		problems += len(foreign)
	}
	if problems > 0 {
		return failed(fmt.Sprintf("%d ownership problems", problems))
	}
	return nil
}
