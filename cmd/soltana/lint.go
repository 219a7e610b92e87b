package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/soltana/internal/style"
	"github.com/jmylchreest/soltana/internal/theme"
)

var lintCmd = &cobra.Command{
	Use:   "lint [files...]",
	Short: "Check stylesheets for format problems",
	Long: `Check stylesheets against the rc-file format: one "key: value" per line,
known keys only, valid colors, hex instead of rgb() notation.

Without arguments the embedded theme stylesheets are checked, along with
the match between embedded files and registered themes. Exits non-zero when
any issue is found.`,
	RunE: runLint,
}

func init() {
	rootCmd.AddCommand(lintCmd)
}

func runLint(cmd *cobra.Command, args []string) error {
	var (
		issues []style.Issue
		files  int
	)

	if len(args) == 0 {
		issues = theme.LintEmbedded()
		files = len(theme.ListEmbeddedStylesheets())
	} else {
		for _, path := range args {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read stylesheet: %w", err)
			}
			issues = append(issues, style.Lint(path, data)...)
			files++
		}
	}

	for _, issue := range issues {
		fmt.Println(issue)
	}
	if len(issues) > 0 {
		return fmt.Errorf("%d issue(s) found", len(issues))
	}
	logger.Debug("lint passed", "files", files)
	return nil
}
