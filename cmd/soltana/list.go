package main

import (
	"bytes"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/soltana/internal/style"
	"github.com/jmylchreest/soltana/internal/theme"
)

var listOpts struct {
	quiet bool
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available themes",
	Long: `List the registered themes in registry order.

The configured default theme is marked with '*'. Use --quiet to print only the
theme names, one per line.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolVarP(&listOpts.quiet, "quiet", "q", false,
		"Only print theme names")
}

func runList(cmd *cobra.Command, args []string) error {
	if listOpts.quiet {
		for _, name := range theme.Themes() {
			fmt.Println(name)
		}
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\tTHEME\tSTYLE\tKEYS\tSIZE")
	for _, name := range theme.Themes() {
		data, err := theme.Stylesheet(name)
		if err != nil {
			return err
		}
		sheet, err := style.Parse(name, bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("parse %s: %w", name, err)
		}

		marker := ""
		if name == cfg.Theme.Default {
			marker = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s.%s\t%d\t%s\n", marker, name, theme.PackageName, name,
			len(sheet.Entries), humanize.Bytes(uint64(len(data))))
	}
	return tw.Flush()
}
