package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/talent-ranker/internal/criteria"
	"github.com/jonathan/talent-ranker/internal/schemas"
)

var extractCriteriaCmd = &cobra.Command{
	Use:   "extract-criteria",
	Short: "Translate a query into structured search criteria",
	Long:  "Translates a natural language query into structured criteria (hard constraints, keywords, field buckets, weights) without running the full pipeline. Useful for inspecting what a query will actually search for.",
	RunE:  runExtractCriteria,
}

var (
	extractQuery    string
	extractOutput   string
	extractAPIKey   string
	extractProvider string
	extractBaseURL  string
)

func init() {
	extractCriteriaCmd.Flags().StringVarP(&extractQuery, "query", "q", "", "Natural language search query (required)")
	extractCriteriaCmd.Flags().StringVarP(&extractOutput, "out", "o", "", "Path to output criteria JSON file (default stdout)")
	extractCriteriaCmd.Flags().StringVar(&extractAPIKey, "api-key", "", "LLM provider API key (defaults to env)")
	extractCriteriaCmd.Flags().StringVar(&extractProvider, "provider", "", "LLM provider: gemini or openai (default gemini)")
	extractCriteriaCmd.Flags().StringVar(&extractBaseURL, "base-url", "", "Override endpoint for OpenAI-compatible servers")

	if err := extractCriteriaCmd.MarkFlagRequired("query"); err != nil {
		panic(fmt.Sprintf("failed to mark query flag as required: %v", err))
	}

	rootCmd.AddCommand(extractCriteriaCmd)
}

func runExtractCriteria(_ *cobra.Command, _ []string) error {
	ctx := contextWithInterrupt()

	client, err := buildClient(ctx, extractProvider, extractAPIKey, extractBaseURL)
	if err != nil {
		return err
	}
	if client != nil {
		defer func() { _ = client.Close() }()
	}

	crit := criteria.Generate(ctx, client, extractQuery, criteria.GenerateOptions{})

	jsonOutput, err := json.MarshalIndent(crit, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal criteria to JSON: %w", err)
	}

	if extractOutput == "" {
		fmt.Println(string(jsonOutput))
		return nil
	}

	outputDir := filepath.Dir(extractOutput)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
		}
	}
	if err := os.WriteFile(extractOutput, jsonOutput, 0644); err != nil {
		return fmt.Errorf("failed to write criteria to output file %s: %w", extractOutput, err)
	}

	// Validate output against schema (optional - non-fatal)
	schemaPath := schemas.ResolveSchemaPath("schemas/criteria.schema.json")
	if schemaPath != "" {
		if err := schemas.ValidateJSON(schemaPath, extractOutput); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Warning: Output validation failed: %v\n", err)
		}
	}

	fmt.Printf("Wrote search criteria to %s\n", extractOutput)
	return nil
}
