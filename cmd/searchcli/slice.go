package main

import (
	"fmt"

	"github.com/baditaflorin/go_substring_search/pkg/search"
	"github.com/spf13/cobra"
)

func newSliceCmd() *cobra.Command {
	var sourcePath string
	var from, length int

	cmd := &cobra.Command{
		Use:   "slice",
		Short: "Register a file as a source and print a clamped character slice of it",
		RunE: func(cmd *cobra.Command, args []string) error {
			if sourcePath == "" {
				return fmt.Errorf("--source is required")
			}

			eng, err := search.New()
			if err != nil {
				return err
			}
			if err := addSourceFromFile(eng, sourcePath); err != nil {
				return err
			}

			text, ok := eng.GetSlice(sourceName(sourcePath), from, length)
			if !ok {
				return fmt.Errorf("no such source: %s", sourcePath)
			}
			cmd.Println(text)
			return nil
		},
	}

	cmd.Flags().StringVar(&sourcePath, "source", "", "path to the file to register")
	cmd.Flags().IntVar(&from, "from", 0, "starting character offset")
	cmd.Flags().IntVar(&length, "length", 0, "number of characters")
	return cmd
}
