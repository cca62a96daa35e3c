package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/baditaflorin/go_substring_search/internal/adapters/multiscan"
	"github.com/spf13/cobra"
)

func newScanCmd() *cobra.Command {
	var filePath string
	var needles []string

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Count occurrences of several literal needles in a file (Aho-Corasick)",
		Long: `scan is a utility command independent of the core search engine: it
counts the non-overlapping occurrences of each literal needle in a single
file, scanning the file once per needle with an Aho-Corasick automaton,
rather than using the engine's KMP planner. Useful for a quick "which of
these words appear at all" check without registering a source.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if filePath == "" {
				return fmt.Errorf("--file is required")
			}
			if len(needles) == 0 {
				return fmt.Errorf("at least one --needle is required")
			}

			data, err := os.ReadFile(filePath)
			if err != nil {
				return fmt.Errorf("reading %s: %w", filePath, err)
			}

			automaton, err := multiscan.Build(needles)
			if err != nil {
				return fmt.Errorf("building Aho-Corasick automaton: %w", err)
			}
			counts := automaton.Scan(data)

			found := make([]string, 0, len(counts))
			for needle := range counts {
				found = append(found, needle)
			}
			sort.Strings(found)

			if len(found) == 0 {
				cmd.Println("no needles found")
				return nil
			}
			for _, needle := range found {
				cmd.Printf("%s: %d\n", needle, counts[needle])
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&filePath, "file", "", "path to the file to scan")
	cmd.Flags().StringArrayVar(&needles, "needle", nil, "literal needle to check for (repeatable)")
	return cmd
}
