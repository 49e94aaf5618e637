package rerank

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/talent-ranker/internal/llm"
	"github.com/jonathan/talent-ranker/internal/types"
)

// MockLLMClient implements llm.Client for testing
type MockLLMClient struct {
	GenerateContentFunc func(ctx context.Context, prompt string, tier llm.ModelTier) (string, error)
	GenerateJSONFunc    func(ctx context.Context, prompt string, tier llm.ModelTier) (string, error)
}

func (m *MockLLMClient) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	if m.GenerateContentFunc != nil {
		return m.GenerateContentFunc(ctx, prompt, tier)
	}
	return "", nil
}

func (m *MockLLMClient) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	if m.GenerateJSONFunc != nil {
		return m.GenerateJSONFunc(ctx, prompt, tier)
	}
	return "{}", nil
}

func (m *MockLLMClient) GetModel(_ llm.ModelTier) string { return "mock-model" }

func (m *MockLLMClient) Close() error { return nil }

func lexicalCandidates(n int) []types.ScoredCandidate {
	candidates := make([]types.ScoredCandidate, 0, n)
	for i := 0; i < n; i++ {
		candidates = append(candidates, types.ScoredCandidate{
			ID:           fmt.Sprintf("candidate_%d", i),
			Record:       types.Record{"name": fmt.Sprintf("Person %d", i)},
			LexicalScore: 0.5,
			FieldMatches: map[string][]string{"industries": {"fintech"}},
		})
	}
	return candidates
}

// analysisResponse builds a well-formed batch response for every candidate id
// found in the prompt payload.
func analysisResponse(prompt string, score float64) string {
	var entries []string
	for i := 0; i < 100; i++ {
		id := fmt.Sprintf("candidate_%d", i)
		if !strings.Contains(prompt, `"`+id+`"`) {
			continue
		}
		entries = append(entries, fmt.Sprintf(`{
			"candidate_id": %q,
			"llm_relevance_score": %f,
			"detailed_analysis": "Good fit",
			"match_strengths": ["fintech background"],
			"recommendation": "good_match"
		}`, id, score))
	}
	return fmt.Sprintf(`{"candidates": [%s]}`, strings.Join(entries, ","))
}

func TestRerank_AppliesAnalysisAndFusesScores(t *testing.T) {
	mockClient := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
			return analysisResponse(prompt, 0.9), nil
		},
	}
	criteria := &types.Criteria{}

	result := New(mockClient).Rerank(context.Background(), "fintech founders", lexicalCandidates(3), criteria, 10)

	require.Len(t, result, 3)
	for _, c := range result {
		require.NotNil(t, c.ContextualScore)
		assert.Equal(t, 0.9, *c.ContextualScore)
		// 0.5*0.4 + 0.9*0.5 + 1*0.1*0.1 with default weights
		assert.Equal(t, 0.66, c.OverallScore)
		assert.Equal(t, "Good fit", c.Analysis)
		assert.Equal(t, "good_match", c.Recommendation)
		assert.NotEmpty(t, c.Reasons)
	}
}

func TestRerank_BatchFailureDegradesOnlyThatBatch(t *testing.T) {
	var calls int
	mockClient := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
			calls++
			// First batch holds candidates 0-4; fail it, answer the rest.
			if strings.Contains(prompt, `"candidate_0"`) {
				return "", errors.New("rate limited")
			}
			return analysisResponse(prompt, 0.8), nil
		},
	}
	criteria := &types.Criteria{}

	result := New(mockClient, WithConcurrency(1)).Rerank(context.Background(), "q", lexicalCandidates(7), criteria, 10)

	require.Len(t, result, 7)
	assert.Equal(t, 2, calls)

	var neutral, analyzed int
	for _, c := range result {
		require.NotNil(t, c.ContextualScore)
		switch *c.ContextualScore {
		case neutralContextualScore:
			neutral++
		case 0.8:
			analyzed++
		}
	}
	assert.Equal(t, 5, neutral)
	assert.Equal(t, 2, analyzed)
}

func TestRerank_UnparseableResponseDegrades(t *testing.T) {
	mockClient := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			return "not json at all", nil
		},
	}
	criteria := &types.Criteria{}

	result := New(mockClient).Rerank(context.Background(), "q", lexicalCandidates(2), criteria, 10)

	require.Len(t, result, 2)
	for _, c := range result {
		require.NotNil(t, c.ContextualScore)
		assert.Equal(t, neutralContextualScore, *c.ContextualScore)
		// Fusion still runs, with the lexical-heavy degraded weights:
		// 0.5*0.6 + 0.5*0.3 + 1*0.1*0.1
		assert.Equal(t, 0.46, c.OverallScore)
	}
}

func TestRerank_BatchFailureSynthesizesStrengthsAndConcerns(t *testing.T) {
	candidates := lexicalCandidates(2)
	candidates[0].PreliminaryReasons = []string{
		"Contains required keyword: fintech",
		"Matched industries: fintech",
		"Matched roles: founder",
		"Strong text relevance to search query",
	}

	mockClient := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			return "", errors.New("service unavailable")
		},
	}

	result := New(mockClient).Rerank(context.Background(), "q", candidates, &types.Criteria{}, 10)

	require.Len(t, result, 2)
	var degraded types.ScoredCandidate
	for _, c := range result {
		if c.ID == "candidate_0" {
			degraded = c
		}
	}

	// Strengths are synthesized from the first three preliminary reasons.
	assert.Equal(t, []string{
		"Contains required keyword: fintech",
		"Matched industries: fintech",
		"Matched roles: founder",
	}, degraded.Strengths)
	assert.Equal(t, []string{"Requires manual review"}, degraded.Concerns)
	assert.Contains(t, degraded.Reasons, "Contains required keyword: fintech")
}

func TestRerank_DegradedFusionRespectsExplicitWeights(t *testing.T) {
	mockClient := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			return "", errors.New("timeout")
		},
	}
	criteria := &types.Criteria{
		Weights: types.Weights{BM25Score: 1.0},
	}

	result := New(mockClient).Rerank(context.Background(), "q", lexicalCandidates(1), criteria, 10)

	require.Len(t, result, 1)
	// Pure lexical weighting: the neutral contextual score carries no weight.
	assert.Equal(t, 0.5, result[0].OverallScore)
}

func TestRerank_MissingCandidateInResponseDegradesIt(t *testing.T) {
	mockClient := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			return `{"candidates": [{"candidate_id": "candidate_0", "llm_relevance_score": 1.0, "recommendation": "strong_match"}]}`, nil
		},
	}
	criteria := &types.Criteria{}

	result := New(mockClient).Rerank(context.Background(), "q", lexicalCandidates(2), criteria, 10)

	require.Len(t, result, 2)
	assert.Equal(t, "candidate_0", result[0].ID)
	assert.Equal(t, 1.0, *result[0].ContextualScore)
	assert.Equal(t, neutralContextualScore, *result[1].ContextualScore)
}

func TestRerank_ScoreClampedToUnitInterval(t *testing.T) {
	mockClient := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			return `{"candidates": [{"candidate_id": "candidate_0", "llm_relevance_score": 7.5}]}`, nil
		},
	}
	criteria := &types.Criteria{}

	result := New(mockClient).Rerank(context.Background(), "q", lexicalCandidates(1), criteria, 10)

	require.Len(t, result, 1)
	assert.Equal(t, 1.0, *result[0].ContextualScore)
}

func TestRerank_NilClientUsesLexicalOnlyScoring(t *testing.T) {
	candidates := lexicalCandidates(2)
	candidates[0].PreliminaryReasons = []string{"Matched industries: fintech"}

	result := New(nil).Rerank(context.Background(), "q", candidates, &types.Criteria{}, 10)

	require.Len(t, result, 2)
	for _, c := range result {
		require.NotNil(t, c.ContextualScore)
		assert.Equal(t, neutralContextualScore, *c.ContextualScore)
		// 0.5*0.7 + 1*0.2*0.3
		assert.Equal(t, 0.41, c.OverallScore)
		assert.Equal(t, []string{"Manual review recommended"}, c.Concerns)
	}

	for _, c := range result {
		if c.ID == "candidate_0" {
			assert.Equal(t, []string{"Matched industries: fintech"}, c.Strengths)
		}
	}
}

func TestRerank_SortsByOverallScoreAndTruncates(t *testing.T) {
	candidates := lexicalCandidates(4)
	// Give candidate_2 a decisive lexical edge.
	candidates[2].LexicalScore = 0.95

	mockClient := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
			return analysisResponse(prompt, 0.5), nil
		},
	}
	criteria := &types.Criteria{}

	result := New(mockClient).Rerank(context.Background(), "q", candidates, criteria, 2)

	require.Len(t, result, 2)
	assert.Equal(t, "candidate_2", result[0].ID)
}

func TestBuildBatchPrompt_ContainsCandidatePayload(t *testing.T) {
	criteria := &types.Criteria{
		TextualCriteria: types.TextualCriteria{
			KeywordSearch: types.KeywordSearch{Required: []string{"fintech"}},
		},
	}

	prompt := buildBatchPrompt("fintech founders", criteria, lexicalCandidates(2))

	assert.Contains(t, prompt, "fintech founders")
	assert.Contains(t, prompt, `"candidate_0"`)
	assert.Contains(t, prompt, `"candidate_1"`)
	assert.Contains(t, prompt, `"fintech"`)
}
