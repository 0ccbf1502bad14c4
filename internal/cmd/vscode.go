package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/hookkit/internal/vscode"
)

var syncVSCodeCmd = &cobra.Command{
	Use:   "sync-vscode",
	Short: "Copy devcontainer VS Code customizations into .vscode",
	Long: `Merge customizations.vscode from devcontainer.json into the workspace files.

Settings overwrite existing keys in .vscode/settings.json; every overwritten
value is logged as a warning and the number of overwrites is reported. Extensions are added to the recommendations in
.vscode/extensions.json, dropping entries that start with "-".

Both JSON files may contain comments and trailing commas; they are rewritten as
plain JSON.`,
	Args: cobra.NoArgs,
	RunE: runSyncVSCode,
}

func init() {
	rootCmd.AddCommand(syncVSCodeCmd)

	syncVSCodeCmd.Flags().String("devcontainer-json", "", "path to devcontainer.json")
	syncVSCodeCmd.Flags().String("settings-path", "", "path to the VS Code settings file")
	syncVSCodeCmd.Flags().String("extensions-path", "", "path to the VS Code extensions file")
	syncVSCodeCmd.Flags().Int("indent", 0, "spaces per JSON indentation level")
	syncVSCodeCmd.Flags().Bool("no-sync-settings", false, "leave the settings file alone")
	syncVSCodeCmd.Flags().Bool("no-sync-extensions", false, "leave the extensions file alone")
}

func runSyncVSCode(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = rt.Close() }()

	opts := vscode.Options{
		DevcontainerJSON: rt.cfg.VSCode.DevcontainerJSON,
		SettingsPath:     rt.cfg.VSCode.SettingsPath,
		ExtensionsPath:   rt.cfg.VSCode.ExtensionsPath,
		Indent:           rt.cfg.VSCode.Indent,
		SyncSettings:     true,
		SyncExtensions:   true,
	}

	flags := cmd.Flags()
	if flags.Changed("devcontainer-json") {
		opts.DevcontainerJSON, _ = flags.GetString("devcontainer-json")
	}
	if flags.Changed("settings-path") {
		opts.SettingsPath, _ = flags.GetString("settings-path")
	}
	if flags.Changed("extensions-path") {
		opts.ExtensionsPath, _ = flags.GetString("extensions-path")
	}
	if flags.Changed("indent") {
		opts.Indent, _ = flags.GetInt("indent")
	}
	if skip, _ := flags.GetBool("no-sync-settings"); skip {
		opts.SyncSettings = false
	}
	if skip, _ := flags.GetBool("no-sync-extensions"); skip {
		opts.SyncExtensions = false
	}

	records, err := vscode.NewSyncer(appFs, rt.logger).Sync(opts)
	if err != nil {
		return printFailure(rt.printer, "sync-vscode failed", err)
	}

	if opts.SyncSettings {
		if n := len(records); n > 0 {
			noun := "settings"
			if n == 1 {
				noun = "setting"
			}
			rt.printer.Warning(fmt.Sprintf("overwrote %d existing %s in %s", n, noun, opts.SettingsPath))
		}
		rt.printer.Success(fmt.Sprintf("Synced settings to %s", opts.SettingsPath))
	}
	if opts.SyncExtensions {
		rt.printer.Success(fmt.Sprintf("Synced extension recommendations to %s", opts.ExtensionsPath))
	}
	return nil
}
