package types

// ScoredCandidate is one ranked candidate with full scoring provenance.
// The lexical ranker creates it with LexicalScore, FieldMatches, and
// PreliminaryReasons populated; the contextual re-ranker fills in
// ContextualScore, OverallScore, the analysis fields, and the final Reasons.
type ScoredCandidate struct {
	ID                 string              `json:"id"`
	Record             Record              `json:"record"`
	LexicalScore       float64             `json:"lexical_score"`
	FieldMatches       map[string][]string `json:"field_matches,omitempty"`
	PreliminaryReasons []string            `json:"preliminary_reasons,omitempty"`

	ContextualScore *float64 `json:"contextual_score,omitempty"`
	OverallScore    float64  `json:"overall_score"`
	Analysis        string   `json:"analysis,omitempty"`
	Strengths       []string `json:"strengths,omitempty"`
	Concerns        []string `json:"concerns,omitempty"`
	CulturalFit     string   `json:"cultural_fit,omitempty"`
	Recommendation  string   `json:"recommendation,omitempty"`
	Reasons         []string `json:"reasons,omitempty"`
}

// FieldBucketCount returns the number of field buckets with at least one
// matched term. This is the count used by the fusion formula, not the total
// number of matched terms.
func (c *ScoredCandidate) FieldBucketCount() int {
	return len(c.FieldMatches)
}
