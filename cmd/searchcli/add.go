package main

import (
	"fmt"
	"os"

	"github.com/baditaflorin/go_substring_search/pkg/search"
	"github.com/spf13/cobra"
)

func newAddCmd() *cobra.Command {
	var sourcePaths []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register one or more files as sources and report each registered name",
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
				cmd.Printf("registered %s\n", sourceName(path))
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&sourcePaths, "source", nil, "path to a file to register (repeatable)")
	return cmd
}

func sourceName(path string) string {
	return path
}

func addSourceFromFile(eng *search.Engine, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	if err := eng.AddSource(sourceName(path), f); err != nil {
		return fmt.Errorf("registering %s: %w", path, err)
	}
	return nil
}
