package lexical

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/talent-ranker/internal/types"
)

// AnalyzeFieldMatches determines, for each field bucket in the criteria's
// field-specific search, which terms appear (case-insensitively) in the
// record's text blob. Buckets with no matched term are omitted.
func AnalyzeFieldMatches(record types.Record, c *types.Criteria) map[string][]string {
	fieldSearch := c.TextualCriteria.FieldSpecificSearch
	if len(fieldSearch) == 0 {
		return nil
	}

	blob := record.Blob()
	matches := make(map[string][]string)
	for bucket, terms := range fieldSearch {
		var matched []string
		for _, term := range terms {
			if term != "" && strings.Contains(blob, strings.ToLower(term)) {
				matched = append(matched, term)
			}
		}
		if len(matched) > 0 {
			matches[bucket] = matched
		}
	}
	if len(matches) == 0 {
		return nil
	}
	return matches
}

// PreliminaryReasons produces human-readable match evidence for a candidate:
// required-keyword hits, per-bucket match summaries, and a generic lexical
// relevance note.
func PreliminaryReasons(record types.Record, c *types.Criteria, fieldMatches map[string][]string) []string {
	var reasons []string
	blob := record.Blob()

	var matchedRequired []string
	for _, kw := range c.TextualCriteria.KeywordSearch.Required {
		if kw != "" && strings.Contains(blob, strings.ToLower(kw)) {
			matchedRequired = append(matchedRequired, kw)
		}
	}
	if len(matchedRequired) > 0 {
		reasons = append(reasons, "Contains required keywords: "+strings.Join(matchedRequired, ", "))
	}

	buckets := make([]string, 0, len(fieldMatches))
	for bucket := range fieldMatches {
		buckets = append(buckets, bucket)
	}
	sort.Strings(buckets)
	for _, bucket := range buckets {
		reasons = append(reasons, fmt.Sprintf("%s match: %s", bucketTitle(bucket), strings.Join(fieldMatches[bucket], ", ")))
	}

	reasons = append(reasons, "High text relevance score")
	return reasons
}

// bucketTitle renders a field-bucket name for display ("key_skills" ->
// "Key Skills").
func bucketTitle(bucket string) string {
	words := strings.Split(strings.ReplaceAll(bucket, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
