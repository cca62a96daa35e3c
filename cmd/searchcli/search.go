package main

import (
	"fmt"
	"sort"

	"github.com/baditaflorin/go_substring_search/pkg/search"
	"github.com/spf13/cobra"
)

func newSearchCmd() *cobra.Command {
	var sourcePaths []string
	var query string

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Register files as sources and search all of them for an exact substring",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(sourcePaths) == 0 {
				return fmt.Errorf("at least one --source is required")
			}
			if query == "" {
				return fmt.Errorf("--query is required")
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

			result := eng.Search(query)
			names := make([]string, 0, len(result))
			for name := range result {
				names = append(names, name)
			}
			sort.Strings(names)

			if len(names) == 0 {
				cmd.Println("no matches")
				return nil
			}
			for _, name := range names {
				cmd.Printf("%s: %v\n", name, result[name])
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&sourcePaths, "source", nil, "path to a file to register (repeatable)")
	cmd.Flags().StringVar(&query, "query", "", "exact substring to search for")
	return cmd
}
