package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/talent-ranker/internal/db"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show persisted query history",
	Long:  "Lists recent ranking runs stored in the query history database, or prints the full record of a single run when --id is given.",
	RunE:  runHistory,
}

var (
	historyDBURL string
	historyLimit int
	historyID    string
)

func init() {
	historyCmd.Flags().StringVar(&historyDBURL, "db-url", "", "PostgreSQL URL for query history (defaults to DATABASE_URL)")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "l", 20, "Maximum number of runs to list")
	historyCmd.Flags().StringVar(&historyID, "id", "", "Show the full record of a single run")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(_ *cobra.Command, _ []string) error {
	dbURL := historyDBURL
	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL")
	}
	if dbURL == "" {
		return fmt.Errorf("a database URL is required (--db-url or DATABASE_URL)")
	}

	ctx := contextWithInterrupt()

	database, err := db.Connect(ctx, dbURL)
	if err != nil {
		return err
	}
	defer database.Close()

	if historyID != "" {
		queryID, err := uuid.Parse(historyID)
		if err != nil {
			return fmt.Errorf("invalid run id %q: %w", historyID, err)
		}
		run, err := database.GetQuery(ctx, queryID)
		if err != nil {
			return err
		}
		if run == nil {
			return fmt.Errorf("no run found with id %s", historyID)
		}
		jsonOutput, err := json.MarshalIndent(run, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal run to JSON: %w", err)
		}
		fmt.Println(string(jsonOutput))
		return nil
	}

	runs, err := database.ListQueries(ctx, historyLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded")
		return nil
	}

	for _, run := range runs {
		fmt.Printf("%s  %-10s  %-20s  %s\n",
			run.ID, run.Status, run.CreatedAt.Format("2006-01-02 15:04:05"), run.Query)
	}
	return nil
}
