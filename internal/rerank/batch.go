package rerank

import (
	"encoding/json"

	"github.com/jonathan/talent-ranker/internal/llm"
	"github.com/jonathan/talent-ranker/internal/prompts"
	"github.com/jonathan/talent-ranker/internal/types"
)

// batchSize is how many candidates one contextual analysis call covers.
const batchSize = 5

// candidateAnalysis is one candidate's judgment inside a batch response.
type candidateAnalysis struct {
	CandidateID       string   `json:"candidate_id"`
	LLMRelevanceScore float64  `json:"llm_relevance_score"`
	DetailedAnalysis  string   `json:"detailed_analysis"`
	MatchStrengths    []string `json:"match_strengths"`
	PotentialConcerns []string `json:"potential_concerns"`
	CulturalFit       string   `json:"cultural_fit_assessment"`
	Recommendation    string   `json:"recommendation"`
}

type batchAnalysis struct {
	Candidates []candidateAnalysis `json:"candidates"`
}

// candidatePayload is one candidate as presented to the analysis prompt.
type candidatePayload struct {
	ID                 string        `json:"id"`
	LexicalScore       float64       `json:"lexical_score"`
	Profile            types.Record  `json:"profile"`
	PreliminaryReasons []string      `json:"preliminary_reasons,omitempty"`
}

// buildBatchPrompt renders the analysis prompt for one batch of candidates.
func buildBatchPrompt(query string, criteria *types.Criteria, batch []types.ScoredCandidate) string {
	payloads := make([]candidatePayload, 0, len(batch))
	for _, c := range batch {
		payloads = append(payloads, candidatePayload{
			ID:                 c.ID,
			LexicalScore:       c.LexicalScore,
			Profile:            c.Record,
			PreliminaryReasons: c.PreliminaryReasons,
		})
	}

	criteriaJSON, _ := json.MarshalIndent(criteria, "", "  ")
	candidatesJSON, _ := json.MarshalIndent(payloads, "", "  ")

	template := prompts.MustGet("rerank.json", "analyze-batch")
	return prompts.Format(template, map[string]string{
		"Query":      query,
		"Criteria":   string(criteriaJSON),
		"Candidates": string(candidatesJSON),
	})
}

// parseBatchAnalysis decodes a batch response into a lookup keyed by
// candidate id. A response that does not parse as the expected shape is
// rejected outright.
func parseBatchAnalysis(raw string) (map[string]candidateAnalysis, bool) {
	cleaned, ok := llm.ExtractJSONObject(llm.CleanJSONBlock(raw))
	if !ok {
		return nil, false
	}

	var parsed batchAnalysis
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, false
	}
	if len(parsed.Candidates) == 0 {
		return nil, false
	}

	byID := make(map[string]candidateAnalysis, len(parsed.Candidates))
	for _, a := range parsed.Candidates {
		if a.CandidateID != "" {
			byID[a.CandidateID] = a
		}
	}
	return byID, true
}

// applyAnalysis completes a candidate from its parsed judgment. Scores are
// clamped into [0, 1] before fusion.
func applyAnalysis(c types.ScoredCandidate, a candidateAnalysis, criteria *types.Criteria) types.ScoredCandidate {
	score := clamp01(a.LLMRelevanceScore)
	c.ContextualScore = &score
	c.Analysis = a.DetailedAnalysis
	c.Strengths = a.MatchStrengths
	c.Concerns = a.PotentialConcerns
	c.CulturalFit = a.CulturalFit
	c.Recommendation = a.Recommendation
	c.OverallScore = Fuse(c.LexicalScore, score, c.FieldBucketCount(), criteria.EffectiveWeights())
	c.Reasons = FinalReasons(&c)
	return c
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
