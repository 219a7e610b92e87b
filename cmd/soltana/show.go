package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/soltana/internal/adapter/output"
)

var showOpts struct {
	format  string
	prefix  string
	resolve bool
}

var showCmd = &cobra.Command{
	Use:   "show [theme|style]",
	Short: "Print the parameters a theme sets",
	Long: `Apply a theme or stylesheet to a fresh style engine and print the
resulting parameters.

The argument may be a theme name (dark, light, sepia), a namespaced style
(soltana.dark), "default" for the untouched engine defaults, or a path to a
.mplstyle file. Without an argument the configured default theme is shown.

Examples:
  # Stylesheet text for the sepia theme
  soltana show sepia

  # Axes colors as JSON with auto/inherit resolved
  soltana show dark --format json --prefix axes. --resolve

  # Color swatches in the terminal
  soltana show light --format swatch`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().StringVarP(&showOpts.format, "format", "f", "",
		"Output format: plain, json, yaml, swatch (default from config)")
	showCmd.Flags().StringVar(&showOpts.prefix, "prefix", "",
		"Only show keys with this prefix (e.g. axes.)")
	showCmd.Flags().BoolVar(&showOpts.resolve, "resolve", false,
		"Print colors as resolved hex values")
}

func runShow(cmd *cobra.Command, args []string) error {
	name := cfg.Theme.Default
	if len(args) > 0 {
		name = args[0]
	}

	format := cfg.Output.Format
	if showOpts.format != "" {
		format = showOpts.format
	}
	formatType, err := output.ParseFormat(format)
	if err != nil {
		return err
	}

	params, err := loadParams(name)
	if err != nil {
		return err
	}
	logger.Debug("loaded style", "name", name, "keys", len(params))

	opts := output.FormatterOptions{
		Prefix:  showOpts.prefix,
		Resolve: showOpts.resolve || cfg.Output.Resolve,
	}
	return output.NewFormatter(formatType, opts).Format(os.Stdout, name, params)
}
