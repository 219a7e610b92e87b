package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/soltana/internal/config"
	"github.com/jmylchreest/soltana/internal/tui"
)

var pickOpts struct {
	save bool
}

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Pick a theme interactively",
	Long: `Launch the interactive theme picker.

The highlighted theme's colors are shown next to the list. The selected theme
name is printed to stdout; with --save it also becomes the default theme in
the config file.

Key bindings:
  j/k, ↑/↓    Navigate list
  /           Filter themes
  enter       Select theme
  c           Copy stylesheet to clipboard
  ?           Toggle help
  q, esc      Cancel`,
	Args: cobra.NoArgs,
	RunE: runPick,
}

func init() {
	rootCmd.AddCommand(pickCmd)

	pickCmd.Flags().BoolVar(&pickOpts.save, "save", false,
		"Save the selected theme as the default in the config file")
}

func runPick(cmd *cobra.Command, args []string) error {
	chosen, err := tui.Run(tui.RunOptions{Config: cfg})
	if err != nil {
		return err
	}
	if chosen == "" {
		logger.Debug("picker cancelled")
		return nil
	}

	fmt.Println(chosen)

	if pickOpts.save {
		cfg.Theme.Default = chosen
		path := globalOpts.configPath
		if path == "" {
			path = config.ConfigPath()
		}
		if err := cfg.Save(path); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		logger.Info("saved default theme", "theme", chosen, "path", path)
	}
	return nil
}
