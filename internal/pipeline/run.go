// Package pipeline provides the high-level orchestration for the candidate
// ranking process: criteria generation, constraint filtering, lexical
// ranking, and contextual re-ranking.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/talent-ranker/internal/criteria"
	"github.com/jonathan/talent-ranker/internal/dataset"
	"github.com/jonathan/talent-ranker/internal/db"
	"github.com/jonathan/talent-ranker/internal/filtering"
	"github.com/jonathan/talent-ranker/internal/lexical"
	"github.com/jonathan/talent-ranker/internal/llm"
	"github.com/jonathan/talent-ranker/internal/observability"
	"github.com/jonathan/talent-ranker/internal/rerank"
	"github.com/jonathan/talent-ranker/internal/types"
)

// Status is the terminal state of a run.
type Status string

// Run statuses. Empty is not an error: it means the pipeline ran to
// completion but no candidate survived filtering or scoring.
const (
	StatusCompleted Status = "completed"
	StatusEmpty     Status = "empty"
	StatusFailed    Status = "failed"
)

// defaultLimit is the number of final results returned when unspecified.
const defaultLimit = 10

// Pipeline stage names, used in progress events and persisted progress.
const (
	StageLoading   = "loading"
	StageCriteria  = "criteria"
	StageFiltering = "filtering"
	StageLexical   = "lexical_ranking"
	StageRerank    = "contextual_reranking"
	StageDone      = "completed"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Stage     string `json:"stage"`
	Message   string `json:"message"`
	Percent   int    `json:"percent"`
	Completed bool   `json:"completed"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// RunOptions holds configuration for running the pipeline
type RunOptions struct {
	Query     string
	DatasetID string

	// Records injects profiles directly; when set, Provider is not consulted.
	Records  []types.Record
	Provider dataset.Provider

	// Criteria skips generation when the caller already has structured
	// criteria (e.g. from a previous run or a refinement flow).
	Criteria *types.Criteria

	// Client powers criteria generation and contextual re-ranking. A nil
	// client degrades both stages deterministically.
	Client llm.Client

	TopK        int // Candidates passed to contextual re-ranking (default 50)
	Limit       int // Final result count (default 10)
	DatabaseURL string
	Verbose     bool
	OnProgress  ProgressCallback
}

// RunMetadata records stage-by-stage provenance for a finished run.
type RunMetadata struct {
	TotalRecords     int      `json:"total_records"`
	AfterConstraints int      `json:"after_constraints"`
	AfterLexical     int      `json:"after_lexical"`
	FinalResults     int      `json:"final_results"`
	ProcessingTime   string   `json:"processing_time"`
	StagesCompleted  []string `json:"stages_completed"`
}

// RunResult is the outcome of a pipeline run.
type RunResult struct {
	Status     Status                  `json:"status"`
	Criteria   *types.Criteria         `json:"criteria"`
	Candidates []types.ScoredCandidate `json:"candidates"`
	Metadata   RunMetadata             `json:"metadata"`
}

// runState bundles the per-run plumbing shared across stages.
type runState struct {
	opts     *RunOptions
	database *db.DB
	queryID  uuid.UUID
}

// emitProgress reports a stage both to the callback and to the database.
// Persistence failures are warnings; progress reporting never fails a run.
func (s *runState) emitProgress(ctx context.Context, stage, message string, percent int, completed bool) {
	if s.opts.OnProgress != nil {
		s.opts.OnProgress(ProgressEvent{
			Stage:     stage,
			Message:   message,
			Percent:   percent,
			Completed: completed,
		})
	}
	if s.database != nil && s.queryID != uuid.Nil {
		if err := s.database.UpdateProgress(ctx, s.queryID, stage, message, percent, completed); err != nil {
			fmt.Printf("Warning: Failed to persist progress: %v\n", err)
		}
	}
}

// fail marks the run failed in the database and returns the error.
func (s *runState) fail(ctx context.Context, err error) (*RunResult, error) {
	if s.database != nil && s.queryID != uuid.Nil {
		_ = s.database.FailQuery(ctx, s.queryID, err.Error())
	}
	return nil, err
}

// Run orchestrates the full ranking pipeline
func Run(ctx context.Context, opts RunOptions) (*RunResult, error) {
	if opts.Query == "" {
		return nil, fmt.Errorf("query is required")
	}
	if len(opts.Records) == 0 && (opts.Provider == nil || opts.DatasetID == "") {
		return nil, fmt.Errorf("either records or a dataset id with a provider is required")
	}
	if opts.Limit <= 0 {
		opts.Limit = defaultLimit
	}

	start := time.Now()
	printer := observability.NewPrinter(os.Stdout)
	state := &runState{opts: &opts}

	// Database persistence is best-effort: a missing or unreachable database
	// never blocks ranking.
	if opts.DatabaseURL != "" {
		database, err := db.Connect(ctx, opts.DatabaseURL)
		if err != nil {
			fmt.Printf("Warning: Failed to connect to database: %v\n", err)
			fmt.Printf("Continuing without query history...\n")
		} else {
			defer database.Close()
			state.database = database
			if queryID, err := database.CreateQuery(ctx, opts.Query, opts.DatasetID); err != nil {
				fmt.Printf("Warning: Failed to create query record: %v\n", err)
			} else {
				state.queryID = queryID
				if opts.Verbose {
					fmt.Printf("[VERBOSE] Created query record: %s\n", queryID)
				}
			}
		}
	}

	// Stage 1: Load records
	records := opts.Records
	if len(records) == 0 {
		fmt.Printf("Stage 1/5: Loading dataset %s...\n", opts.DatasetID)
		var err error
		records, err = opts.Provider.Load(ctx, opts.DatasetID)
		if err != nil {
			return state.fail(ctx, fmt.Errorf("dataset loading failed: %w", err))
		}
	} else {
		fmt.Printf("Stage 1/5: Using %d injected records...\n", len(records))
	}
	state.emitProgress(ctx, StageLoading, fmt.Sprintf("Loaded %d records", len(records)), 10, false)

	metadata := RunMetadata{TotalRecords: len(records)}
	metadata.StagesCompleted = append(metadata.StagesCompleted, StageLoading)

	// Stage 2: Criteria
	crit := opts.Criteria
	if crit == nil {
		fmt.Printf("Stage 2/5: Generating search criteria...\n")
		crit = criteria.Generate(ctx, opts.Client, opts.Query, criteria.GenerateOptions{
			DatasetSchema: dataset.Fields(records),
		})
	} else {
		fmt.Printf("Stage 2/5: Using provided search criteria...\n")
	}
	if opts.Verbose {
		printer.PrintCriteria(crit)
	}
	state.emitProgress(ctx, StageCriteria, "Search criteria ready", 25, false)
	metadata.StagesCompleted = append(metadata.StagesCompleted, StageCriteria)

	// Stage 3: Hard constraint filtering
	fmt.Printf("Stage 3/5: Applying hard constraints...\n")
	admitted := filtering.Admissible(records, crit.HardConstraints)
	metadata.AfterConstraints = len(admitted)
	state.emitProgress(ctx, StageFiltering,
		fmt.Sprintf("%d of %d records satisfy hard constraints", len(admitted), len(records)), 40, false)
	metadata.StagesCompleted = append(metadata.StagesCompleted, StageFiltering)

	if len(admitted) == 0 {
		return state.finish(ctx, StatusEmpty, crit, nil, metadata, start, printer)
	}

	// Stage 4: Lexical ranking
	fmt.Printf("Stage 4/5: Ranking %d candidates lexically...\n", len(admitted))
	ranked, err := lexical.Rank(admitted, crit, opts.TopK)
	if err != nil {
		return state.fail(ctx, fmt.Errorf("lexical ranking failed: %w", err))
	}
	metadata.AfterLexical = len(ranked)
	state.emitProgress(ctx, StageLexical,
		fmt.Sprintf("%d candidates above relevance threshold", len(ranked)), 60, false)
	metadata.StagesCompleted = append(metadata.StagesCompleted, StageLexical)

	if len(ranked) == 0 {
		return state.finish(ctx, StatusEmpty, crit, nil, metadata, start, printer)
	}

	// Stage 5: Contextual re-ranking and score fusion
	fmt.Printf("Stage 5/5: Re-ranking %d candidates contextually...\n", len(ranked))
	final := rerank.New(opts.Client).Rerank(ctx, opts.Query, ranked, crit, opts.Limit)
	metadata.FinalResults = len(final)
	state.emitProgress(ctx, StageRerank,
		fmt.Sprintf("Selected top %d candidates", len(final)), 85, false)
	metadata.StagesCompleted = append(metadata.StagesCompleted, StageRerank)

	return state.finish(ctx, StatusCompleted, crit, final, metadata, start, printer)
}

// finish assembles the result, persists it, and emits the terminal progress
// event. Used for both completed and empty outcomes.
func (s *runState) finish(ctx context.Context, status Status, crit *types.Criteria, candidates []types.ScoredCandidate, metadata RunMetadata, start time.Time, printer *observability.Printer) (*RunResult, error) {
	metadata.ProcessingTime = time.Since(start).Round(time.Millisecond).String()

	result := &RunResult{
		Status:     status,
		Criteria:   crit,
		Candidates: candidates,
		Metadata:   metadata,
	}

	if s.database != nil && s.queryID != uuid.Nil {
		if err := s.database.SaveResults(ctx, s.queryID, string(status), crit, candidates, metadata); err != nil {
			fmt.Printf("Warning: Failed to save results: %v\n", err)
		}
	}

	message := fmt.Sprintf("Ranking complete: %d results", len(candidates))
	if status == StatusEmpty {
		message = "No candidates matched the query"
	}
	s.emitProgress(ctx, StageDone, message, 100, true)

	if s.opts.Verbose {
		printer.PrintRankedCandidates(candidates)
		printer.PrintRunSummary(metadata.TotalRecords, metadata.AfterConstraints,
			metadata.AfterLexical, metadata.FinalResults, metadata.ProcessingTime)
	}
	fmt.Printf("✅ %s\n", message)

	return result, nil
}
