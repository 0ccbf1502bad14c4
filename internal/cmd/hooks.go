package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Iron-Ham/hookkit"
)

var hooksCmd = &cobra.Command{
	Use:   "hooks",
	Short: "List the pre-commit hooks this repository provides",
	Args:  cobra.NoArgs,
	RunE:  runHooks,
}

func init() {
	rootCmd.AddCommand(hooksCmd)
}

func runHooks(cmd *cobra.Command, args []string) error {
	hooks, err := hookkit.Hooks()
	if err != nil {
		return err
	}

	p := newPrinter(cmd)
	for _, h := range hooks {
		p.KeyValue(h.ID, h.Entry, false)
	}
	return nil
}
