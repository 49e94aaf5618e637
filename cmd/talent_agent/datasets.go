package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/talent-ranker/internal/dataset"
)

var datasetsCmd = &cobra.Command{
	Use:   "datasets",
	Short: "List available datasets",
	Long:  "Lists the dataset files (CSV or JSON) found under the data directory.",
	RunE:  runDatasets,
}

var datasetsDataDir string

func init() {
	datasetsCmd.Flags().StringVar(&datasetsDataDir, "data-dir", "data", "Directory holding dataset files")
	rootCmd.AddCommand(datasetsCmd)
}

func runDatasets(_ *cobra.Command, _ []string) error {
	ids, err := dataset.NewFileProvider(datasetsDataDir).List()
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		fmt.Printf("No datasets found in %s\n", datasetsDataDir)
		return nil
	}
	for _, id := range ids {
		fmt.Println(id)
	}
	return nil
}
