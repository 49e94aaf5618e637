package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/talent-ranker/internal/criteria"
	"github.com/jonathan/talent-ranker/internal/dataset"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Generate follow-up questions to refine a query",
	Long:  "Asks the LLM for clarifying questions whose answers would sharpen the search criteria. Requires an API key; with no client configured the command returns no questions.",
	RunE:  runQuestions,
}

var (
	questionsQuery    string
	questionsDataset  string
	questionsDataDir  string
	questionsAPIKey   string
	questionsProvider string
	questionsBaseURL  string
)

func init() {
	questionsCmd.Flags().StringVarP(&questionsQuery, "query", "q", "", "Natural language search query (required)")
	questionsCmd.Flags().StringVarP(&questionsDataset, "dataset", "d", "", "Dataset id, used to describe available profile fields")
	questionsCmd.Flags().StringVar(&questionsDataDir, "data-dir", "data", "Directory holding dataset files")
	questionsCmd.Flags().StringVar(&questionsAPIKey, "api-key", "", "LLM provider API key (defaults to env)")
	questionsCmd.Flags().StringVar(&questionsProvider, "provider", "", "LLM provider: gemini or openai (default gemini)")
	questionsCmd.Flags().StringVar(&questionsBaseURL, "base-url", "", "Override endpoint for OpenAI-compatible servers")

	if err := questionsCmd.MarkFlagRequired("query"); err != nil {
		panic(fmt.Sprintf("failed to mark query flag as required: %v", err))
	}

	rootCmd.AddCommand(questionsCmd)
}

func runQuestions(_ *cobra.Command, _ []string) error {
	ctx := contextWithInterrupt()

	client, err := buildClient(ctx, questionsProvider, questionsAPIKey, questionsBaseURL)
	if err != nil {
		return err
	}
	if client == nil {
		return fmt.Errorf("question generation requires an API key")
	}
	defer func() { _ = client.Close() }()

	// The dataset schema is optional context; loading failures only mean the
	// questions are asked without knowledge of the available fields.
	var fields []string
	if questionsDataset != "" {
		records, err := dataset.NewFileProvider(questionsDataDir).Load(ctx, questionsDataset)
		if err != nil {
			fmt.Printf("Warning: failed to load dataset for schema context: %v\n", err)
		} else {
			fields = dataset.Fields(records)
		}
	}

	questions, err := criteria.FollowUpQuestions(ctx, client, questionsQuery, fields)
	if err != nil {
		return err
	}

	jsonOutput, err := json.MarshalIndent(map[string]any{"questions": questions}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal questions to JSON: %w", err)
	}
	fmt.Println(string(jsonOutput))
	return nil
}
