package lexical

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/talent-ranker/internal/types"
)

func TestAnalyzeFieldMatches_PerBucketTerms(t *testing.T) {
	record := types.Record{
		"experience": "Founded a fintech startup",
		"location":   "Austin",
	}
	c := &types.Criteria{
		TextualCriteria: types.TextualCriteria{
			FieldSpecificSearch: map[string][]string{
				"industries": {"fintech", "healthcare"},
				"roles":      {"founder"},
				"locations":  {"Denver"},
			},
		},
	}

	matches := AnalyzeFieldMatches(record, c)

	assert.Equal(t, []string{"fintech"}, matches["industries"])
	// "founder" matches inside "Founded"? No: matching is substring, and
	// "founder" is not a substring of "founded".
	assert.NotContains(t, matches, "roles")
	assert.NotContains(t, matches, "locations")
}

func TestAnalyzeFieldMatches_CaseInsensitive(t *testing.T) {
	record := types.Record{"location": "Austin, TX"}
	c := &types.Criteria{
		TextualCriteria: types.TextualCriteria{
			FieldSpecificSearch: map[string][]string{
				"locations": {"AUSTIN"},
			},
		},
	}

	matches := AnalyzeFieldMatches(record, c)

	assert.Equal(t, []string{"AUSTIN"}, matches["locations"])
}

func TestAnalyzeFieldMatches_NoMatchesReturnsNil(t *testing.T) {
	record := types.Record{"title": "Engineer"}
	c := &types.Criteria{
		TextualCriteria: types.TextualCriteria{
			FieldSpecificSearch: map[string][]string{"roles": {"designer"}},
		},
	}

	assert.Nil(t, AnalyzeFieldMatches(record, c))
	assert.Nil(t, AnalyzeFieldMatches(record, &types.Criteria{}))
}

func TestPreliminaryReasons_Assembly(t *testing.T) {
	record := types.Record{"experience": "Founded a fintech startup in Austin"}
	c := &types.Criteria{
		TextualCriteria: types.TextualCriteria{
			KeywordSearch: types.KeywordSearch{
				Required: []string{"fintech", "healthcare"},
			},
		},
	}
	fieldMatches := map[string][]string{
		"key_skills": {"fintech"},
		"experience": {"startup"},
	}

	reasons := PreliminaryReasons(record, c, fieldMatches)

	assert.Equal(t, []string{
		"Contains required keywords: fintech",
		"Experience match: startup",
		"Key Skills match: fintech",
		"High text relevance score",
	}, reasons)
}
