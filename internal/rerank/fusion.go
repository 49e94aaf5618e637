package rerank

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/jonathan/talent-ranker/internal/types"
)

// fieldMatchUnit converts a field-bucket count into the fusion formula's
// third component: each matched bucket is worth 0.1 before weighting.
const fieldMatchUnit = 0.1

// Fuse combines the lexical score, the contextual relevance score, and the
// field-bucket count into one overall score, rounded to 3 decimals:
//
//	overall = lexical*w.BM25Score + contextual*w.LLMRelevance + buckets*0.1*w.FieldMatches
func Fuse(lexical, contextual float64, bucketCount int, w types.Weights) float64 {
	return round3(lexical*w.BM25Score + contextual*w.LLMRelevance + float64(bucketCount)*fieldMatchUnit*w.FieldMatches)
}

// FinalReasons assembles the candidate's displayed match reasons: up to three
// contextual strengths, up to two preliminary lexical reasons, and a summary
// of which criteria buckets matched. Capped at five lines.
func FinalReasons(c *types.ScoredCandidate) []string {
	var reasons []string

	for i, s := range c.Strengths {
		if i == 3 {
			break
		}
		reasons = append(reasons, s)
	}
	for i, r := range c.PreliminaryReasons {
		if i == 2 {
			break
		}
		reasons = append(reasons, r)
	}

	if len(c.FieldMatches) > 0 {
		buckets := make([]string, 0, len(c.FieldMatches))
		for bucket := range c.FieldMatches {
			buckets = append(buckets, bucket)
		}
		sort.Strings(buckets)
		reasons = append(reasons, fmt.Sprintf("Matches in %s criteria", strings.Join(buckets, ", ")))
	}

	if len(reasons) > 5 {
		reasons = reasons[:5]
	}
	return reasons
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
