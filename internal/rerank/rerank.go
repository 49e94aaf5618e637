// Package rerank implements the contextual re-ranking stage: batched LLM
// analysis of lexically ranked candidates, score fusion, and the degradation
// paths that keep the pipeline producing ranked output when analysis fails.
package rerank

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/talent-ranker/internal/llm"
	"github.com/jonathan/talent-ranker/internal/types"
)

const (
	defaultBatchTimeout = 60 * time.Second
	defaultConcurrency  = 3
)

// Reranker performs contextual analysis over lexically ranked candidates.
// A nil client is valid and yields lexical-only scoring.
type Reranker struct {
	client      llm.Client
	timeout     time.Duration
	concurrency int
}

// Option customizes a Reranker.
type Option func(*Reranker)

// WithTimeout sets the per-batch analysis timeout.
func WithTimeout(d time.Duration) Option {
	return func(r *Reranker) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithConcurrency sets how many batches are analyzed in parallel.
func WithConcurrency(n int) Option {
	return func(r *Reranker) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// New creates a Reranker backed by the given client.
func New(client llm.Client, opts ...Option) *Reranker {
	r := &Reranker{
		client:      client,
		timeout:     defaultBatchTimeout,
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Rerank analyzes candidates in batches, fuses scores, and returns the top
// `limit` candidates ordered by overall score descending (ties keep lexical
// order). Batch failures degrade that batch to neutral contextual scores;
// they never fail the stage. With no client configured every candidate takes
// the lexical-only scoring path.
func (r *Reranker) Rerank(ctx context.Context, query string, candidates []types.ScoredCandidate, criteria *types.Criteria, limit int) []types.ScoredCandidate {
	if len(candidates) == 0 {
		return nil
	}

	out := make([]types.ScoredCandidate, len(candidates))
	if r.client == nil {
		for i, c := range candidates {
			out[i] = lexicalOnlyCandidate(c)
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(r.concurrency)

		for start := 0; start < len(candidates); start += batchSize {
			start := start
			end := start + batchSize
			if end > len(candidates) {
				end = len(candidates)
			}
			g.Go(func() error {
				r.analyzeBatch(gctx, query, candidates[start:end], criteria, out[start:end])
				return nil
			})
		}
		// Workers only report success; degradation happens inside the batch.
		_ = g.Wait()
	}

	sort.SliceStable(out, func(a, b int) bool {
		return out[a].OverallScore > out[b].OverallScore
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// analyzeBatch runs one analysis call and writes completed candidates into
// dst. Any failure (transport, timeout, unparseable output) degrades the
// whole batch; a parseable response missing an individual candidate degrades
// just that candidate.
func (r *Reranker) analyzeBatch(ctx context.Context, query string, batch []types.ScoredCandidate, criteria *types.Criteria, dst []types.ScoredCandidate) {
	bctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	prompt := buildBatchPrompt(query, criteria, batch)
	raw, err := r.client.GenerateJSON(bctx, prompt, llm.TierAdvanced)
	if err != nil {
		fmt.Printf("Warning: batch analysis failed: %v. Using neutral contextual scores.\n", err)
		for i, c := range batch {
			dst[i] = fallbackCandidate(c, criteria)
		}
		return
	}

	byID, ok := parseBatchAnalysis(raw)
	if !ok {
		fmt.Printf("Warning: batch analysis response did not parse. Using neutral contextual scores.\n")
		for i, c := range batch {
			dst[i] = fallbackCandidate(c, criteria)
		}
		return
	}

	for i, c := range batch {
		if a, exists := byID[c.ID]; exists {
			dst[i] = applyAnalysis(c, a, criteria)
		} else {
			dst[i] = fallbackCandidate(c, criteria)
		}
	}
}
