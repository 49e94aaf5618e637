// Package main implements the talent_agent CLI for candidate ranking.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/talent-ranker/internal/config"
	"github.com/jonathan/talent-ranker/internal/dataset"
	"github.com/jonathan/talent-ranker/internal/pipeline"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Rank candidates against a natural language query",
	Long:  "Runs the full ranking pipeline: criteria generation, hard constraint filtering, BM25 lexical ranking, and contextual re-ranking. Results are printed as JSON or written to a file.",
	RunE:  runSearch,
}

var (
	searchQuery    string
	searchDataset  string
	searchDataDir  string
	searchConfig   string
	searchAPIKey   string
	searchProvider string
	searchBaseURL  string
	searchDBURL    string
	searchTopK     int
	searchLimit    int
	searchOutput   string
	searchVerbose  bool
)

func init() {
	searchCmd.Flags().StringVarP(&searchQuery, "query", "q", "", "Natural language search query (required)")
	searchCmd.Flags().StringVarP(&searchDataset, "dataset", "d", "", "Dataset id (file name under the data directory)")
	searchCmd.Flags().StringVar(&searchDataDir, "data-dir", "data", "Directory holding dataset files")
	searchCmd.Flags().StringVarP(&searchConfig, "config", "c", "", "Path to JSON config file")
	searchCmd.Flags().StringVar(&searchAPIKey, "api-key", "", "LLM provider API key (defaults to env)")
	searchCmd.Flags().StringVar(&searchProvider, "provider", "", "LLM provider: gemini or openai (default gemini)")
	searchCmd.Flags().StringVar(&searchBaseURL, "base-url", "", "Override endpoint for OpenAI-compatible servers")
	searchCmd.Flags().StringVar(&searchDBURL, "db-url", "", "PostgreSQL URL for query history (defaults to DATABASE_URL)")
	searchCmd.Flags().IntVar(&searchTopK, "top-k", 0, "Candidates passed to contextual re-ranking (default 50)")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "l", 0, "Final result count (default 10)")
	searchCmd.Flags().StringVarP(&searchOutput, "out", "o", "", "Path to output JSON file (default stdout)")
	searchCmd.Flags().BoolVarP(&searchVerbose, "verbose", "v", false, "Print detailed stage output")

	if err := searchCmd.MarkFlagRequired("query"); err != nil {
		panic(fmt.Sprintf("failed to mark query flag as required: %v", err))
	}

	rootCmd.AddCommand(searchCmd)
}

func runSearch(_ *cobra.Command, _ []string) error {
	cfg := config.Config{
		DataDir:     searchDataDir,
		Dataset:     searchDataset,
		APIKey:      searchAPIKey,
		Provider:    searchProvider,
		BaseURL:     searchBaseURL,
		DatabaseURL: searchDBURL,
		TopK:        searchTopK,
		Limit:       searchLimit,
		Verbose:     searchVerbose,
	}

	// Config file values fill in whatever the flags left empty.
	if searchConfig != "" {
		fileCfg, err := config.LoadConfig(searchConfig)
		if err != nil {
			return err
		}
		cfg = cfg.MergeWithDefaults(*fileCfg)
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Dataset == "" {
		return fmt.Errorf("a dataset is required (--dataset or config file)")
	}

	ctx := contextWithInterrupt()

	client, err := buildClient(ctx, cfg.Provider, cfg.APIKey, cfg.BaseURL)
	if err != nil {
		return err
	}
	if client != nil {
		defer func() { _ = client.Close() }()
	}

	result, err := pipeline.Run(ctx, pipeline.RunOptions{
		Query:       searchQuery,
		DatasetID:   cfg.Dataset,
		Provider:    dataset.NewFileProvider(cfg.DataDir),
		Client:      client,
		TopK:        cfg.TopK,
		Limit:       cfg.Limit,
		DatabaseURL: cfg.DatabaseURL,
		Verbose:     cfg.Verbose,
	})
	if err != nil {
		return err
	}

	jsonOutput, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results to JSON: %w", err)
	}

	if searchOutput == "" {
		fmt.Println(string(jsonOutput))
		return nil
	}

	outputDir := filepath.Dir(searchOutput)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
		}
	}
	if err := os.WriteFile(searchOutput, jsonOutput, 0644); err != nil {
		return fmt.Errorf("failed to write results to output file %s: %w", searchOutput, err)
	}

	fmt.Printf("Wrote %d ranked candidates to %s\n", len(result.Candidates), searchOutput)
	return nil
}
