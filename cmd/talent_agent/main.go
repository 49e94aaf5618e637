// Package main provides the entry point for the talent ranking CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "talent_agent",
	Short: "Natural language candidate search and ranking",
	Long:  "Talent agent ranks candidate profiles against natural language queries using hard constraint filtering, BM25 lexical retrieval, and LLM contextual re-ranking.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// contextWithInterrupt returns a context cancelled on SIGINT/SIGTERM so
// in-flight LLM calls stop cleanly.
func contextWithInterrupt() context.Context {
	ctx, _ := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	return ctx
}
