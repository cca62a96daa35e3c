// Command searchcli is a cobra-based command line front end over the
// substring search engine: add sources, search across them, fetch a
// slice of a source, and list registered names. A `scan` subcommand
// additionally counts the occurrences of several literal needles in a
// file using Aho-Corasick automata (one per needle) — a CLI-only
// utility, not part of the core search path.
//
// Grounded on the pack's yanferens-go-interview-practice cobra
// challenge submissions for the command tree shape (a root command with
// Short/Long help, one subcommand per operation, flags via
// cmd.Flags()).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var appName = "searchcli"

var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "Exact substring search over named in-memory text sources",
	Long: `searchcli registers named text sources and answers exact
substring queries against them with character offsets.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func main() {
	rootCmd.AddCommand(newAddCmd())
	rootCmd.AddCommand(newSearchCmd())
	rootCmd.AddCommand(newSliceCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newScanCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
