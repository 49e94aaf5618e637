package rerank

import (
	"github.com/jonathan/talent-ranker/internal/types"
)

// neutralContextualScore is assigned when no contextual judgment is
// available. It neither rewards nor penalizes the candidate.
const neutralContextualScore = 0.5

// degradedWeights returns the fusion weights for candidates completed without
// contextual analysis. Criteria carrying no explicit weights fall back to a
// lexical-heavy weighting instead of the standard default, since the
// contextual signal is only a placeholder.
func degradedWeights(criteria *types.Criteria) types.Weights {
	if criteria.Weights.IsZero() {
		return types.Weights{BM25Score: 0.6, LLMRelevance: 0.3, FieldMatches: 0.1}
	}
	return criteria.Weights
}

// syntheticStrengths stands in for the missing analysis: up to three of the
// candidate's preliminary lexical reasons become its strengths.
func syntheticStrengths(c types.ScoredCandidate) []string {
	n := len(c.PreliminaryReasons)
	if n > 3 {
		n = 3
	}
	if n == 0 {
		return nil
	}
	return append([]string(nil), c.PreliminaryReasons[:n]...)
}

// fallbackCandidate completes a candidate whose batch analysis failed. The
// contextual score is neutral, strengths and concerns are synthesized from
// the preliminary reasons, and the overall score still uses the full fusion
// formula, so a degraded batch stays comparable with analyzed ones.
func fallbackCandidate(c types.ScoredCandidate, criteria *types.Criteria) types.ScoredCandidate {
	score := neutralContextualScore
	c.ContextualScore = &score
	c.Analysis = "Contextual analysis unavailable; ranked on text relevance."
	c.Strengths = syntheticStrengths(c)
	c.Concerns = []string{"Requires manual review"}
	c.Recommendation = "possible_match"
	c.OverallScore = Fuse(c.LexicalScore, score, c.FieldBucketCount(), degradedWeights(criteria))
	c.Reasons = FinalReasons(&c)
	return c
}

// lexicalOnlyCandidate completes a candidate when no contextual service is
// configured at all. The overall score leans on the lexical score with a
// small field-match bonus; the neutral contextual score is reported for
// provenance but carries no weight.
func lexicalOnlyCandidate(c types.ScoredCandidate) types.ScoredCandidate {
	score := neutralContextualScore
	c.ContextualScore = &score
	c.Analysis = "Ranked on text relevance and field matches."
	c.Strengths = syntheticStrengths(c)
	c.Concerns = []string{"Manual review recommended"}
	c.Recommendation = "possible_match"
	c.OverallScore = round3(c.LexicalScore*0.7 + float64(c.FieldBucketCount())*0.2*0.3)
	c.Reasons = FinalReasons(&c)
	return c
}
