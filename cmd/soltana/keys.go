package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/soltana/internal/style"
)

var keysCmd = &cobra.Command{
	Use:   "keys [prefix]",
	Short: "List the stylesheet keys the style engine understands",
	Long: `List every supported stylesheet key with its value kind and default.

Keys outside this list are skipped with a warning when a stylesheet is applied
and reported by "soltana lint".`,
	Args: cobra.MaximumNArgs(1),
	RunE: runKeys,
}

func init() {
	rootCmd.AddCommand(keysCmd)
}

func runKeys(cmd *cobra.Command, args []string) error {
	prefix := ""
	if len(args) > 0 {
		prefix = args[0]
	}

	defaults := style.Defaults()
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tKIND\tDEFAULT")
	for _, key := range style.Keys() {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		kind, _ := style.KnownKey(key)
		fmt.Fprintf(tw, "%s\t%s\t%s\n", key, kind, defaults[key])
	}
	return tw.Flush()
}
