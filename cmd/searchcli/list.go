package main

import (
	"fmt"

	"github.com/baditaflorin/go_substring_search/pkg/search"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	var sourcePaths []string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Register files as sources and list their names and diagnostic stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(sourcePaths) == 0 {
				return fmt.Errorf("at least one --source is required")
			}

			eng, err := search.New()
			if err != nil {
				return err
			}
			for _, path := range sourcePaths {
				if err := addSourceFromFile(eng, path); err != nil {
					return err
				}
			}

			for _, name := range eng.ListNames() {
				cmd.Println(name)
			}

			stats := eng.Stats()
			cmd.Printf("sources=%d bytes=%d indexed_words=%d cached_queries=%d\n",
				stats.SourceCount, stats.ContentBytes, stats.IndexedWords, stats.CachedQueries)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&sourcePaths, "source", nil, "path to a file to register (repeatable)")
	return cmd
}
