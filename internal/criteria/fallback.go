package criteria

import (
	"strings"

	"github.com/jonathan/talent-ranker/internal/types"
)

// intentTrigger expands a recognized query word into preferred keywords and a
// field-bucket seed, giving the fallback path a little domain awareness.
type intentTrigger struct {
	keywords []string
	bucket   string
	terms    []string
}

var intentTriggers = map[string]intentTrigger{
	"founder": {
		keywords: []string{"founder", "co-founder", "startup", "entrepreneur"},
		bucket:   "roles",
		terms:    []string{"founder", "co-founder", "ceo"},
	},
	"fintech": {
		keywords: []string{"fintech", "financial", "finance", "banking"},
		bucket:   "industries",
		terms:    []string{"fintech", "financial services", "banking"},
	},
	"raised": {
		keywords: []string{"raised", "funding", "investment", "series", "seed"},
		bucket:   "experience",
		terms:    []string{"fundraising", "investment", "venture capital"},
	},
	"funding": {
		keywords: []string{"raised", "funding", "investment", "series", "seed"},
		bucket:   "experience",
		terms:    []string{"fundraising", "investment", "venture capital"},
	},
}

const maxFallbackKeywords = 5

// Fallback builds a valid, if shallow, Criteria object without any external
// reasoning service: a simple keyword split plus a few hard-coded intent
// triggers. The supplied hard constraints are carried through unchanged.
func Fallback(query string, hc types.HardConstraints) *types.Criteria {
	lower := strings.ToLower(query)

	var preferred []string
	fieldSearch := make(map[string][]string)
	for _, word := range []string{"founder", "fintech", "raised", "funding"} {
		if !strings.Contains(lower, word) {
			continue
		}
		trigger := intentTriggers[word]
		preferred = append(preferred, trigger.keywords...)
		fieldSearch[trigger.bucket] = trigger.terms
	}

	// Plain keyword split, short words dropped.
	var keywords []string
	for _, word := range strings.Fields(lower) {
		if len(word) > 2 {
			keywords = append(keywords, word)
		}
	}
	if len(keywords) > maxFallbackKeywords {
		keywords = keywords[:maxFallbackKeywords]
	}
	preferred = append(preferred, keywords...)

	if len(fieldSearch) == 0 {
		fieldSearch = nil
	}

	return &types.Criteria{
		HardConstraints: hc,
		TextualCriteria: types.TextualCriteria{
			KeywordSearch: types.KeywordSearch{
				Preferred: dedupeStrings(preferred),
			},
			FieldSpecificSearch: fieldSearch,
		},
		ContextualCriteria: types.ContextualCriteria{
			ExperienceLevel: "any",
			CareerStage:     "any",
			WorkingStyle:    "any",
			IntentAnalysis: types.IntentAnalysis{
				PrimaryGoal: query,
			},
		},
		Weights: types.Weights{BM25Score: 0.3, LLMRelevance: 0.6, FieldMatches: 0.1},
	}
}

func dedupeStrings(values []string) []string {
	seen := make(map[string]bool, len(values))
	var out []string
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
