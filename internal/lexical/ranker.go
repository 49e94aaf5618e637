package lexical

import (
	"fmt"
	"math"
	"regexp"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/jonathan/talent-ranker/internal/types"
)

const (
	// DefaultTopK is the number of candidates the lexical stage hands to the
	// re-ranker when the caller does not specify one.
	DefaultTopK = 50

	// minScoreThreshold is the score below which lexical evidence is treated
	// as noise, not signal.
	minScoreThreshold = 0.1
)

var idSanitizer = regexp.MustCompile(`[^a-z0-9]+`)

// Rank scores every admissible record against the criteria query and returns
// the top-K candidates above the minimum score threshold, ordered by score
// descending with ties broken by original record order. Each candidate
// carries its lexical score (rounded to 3 decimals), field-match evidence,
// and preliminary reasons.
func Rank(records []types.Record, c *types.Criteria, topK int) ([]types.ScoredCandidate, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}
	if len(records) == 0 {
		return nil, nil
	}

	docs := make([][]string, len(records))
	for i, record := range records {
		docs[i] = Tokenize(BuildDocument(record))
	}
	model := NewBM25(docs)
	query := BuildQueryTokens(c)

	scores, err := scoreAll(model, query, len(records))
	if err != nil {
		return nil, fmt.Errorf("lexical scoring failed: %w", err)
	}

	excluded := c.TextualCriteria.KeywordSearch.Excluded

	type scored struct {
		index int
		score float64
	}
	var kept []scored
	for i, score := range scores {
		if score < minScoreThreshold {
			continue
		}
		// Excluded keywords are hard: any hit removes the record even if it
		// scores high.
		if containsExcluded(records[i], excluded) {
			continue
		}
		kept = append(kept, scored{index: i, score: score})
	}

	// Stable sort keeps repeated runs on identical input deterministic.
	sort.SliceStable(kept, func(a, b int) bool {
		return kept[a].score > kept[b].score
	})
	if len(kept) > topK {
		kept = kept[:topK]
	}

	candidates := make([]types.ScoredCandidate, 0, len(kept))
	for _, s := range kept {
		record := records[s.index]
		fieldMatches := AnalyzeFieldMatches(record, c)
		candidates = append(candidates, types.ScoredCandidate{
			ID:                 candidateID(record, s.index),
			Record:             record,
			LexicalScore:       round3(s.score),
			FieldMatches:       fieldMatches,
			PreliminaryReasons: PreliminaryReasons(record, c, fieldMatches),
		})
	}
	return candidates, nil
}

// scoreAll scores every record against the query. Records are independent, so
// scoring is spread over a worker pool; each worker writes only its own slot.
func scoreAll(model *BM25, query []string, n int) ([]float64, error) {
	scores := make([]float64, n)

	poolSize := runtime.NumCPU()
	if poolSize > n {
		poolSize = n
	}
	if poolSize <= 1 {
		for i := range scores {
			scores[i] = model.ScoreAt(i, query)
		}
		return scores, nil
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		i := i
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			scores[i] = model.ScoreAt(i, query)
		}); err != nil {
			wg.Done()
			return nil, err
		}
	}
	wg.Wait()
	return scores, nil
}

func containsExcluded(record types.Record, excluded []string) bool {
	if len(excluded) == 0 {
		return false
	}
	blob := record.Blob()
	for _, term := range excluded {
		if term != "" && strings.Contains(blob, strings.ToLower(term)) {
			return true
		}
	}
	return false
}

// candidateID builds a stable identifier from the record's display name and
// its position in the input, so repeated runs produce identical ids.
func candidateID(record types.Record, index int) string {
	slug := idSanitizer.ReplaceAllString(strings.ToLower(record.DisplayName()), "_")
	slug = strings.Trim(slug, "_")
	if slug == "" {
		slug = "unknown"
	}
	return fmt.Sprintf("%s_%d", slug, index)
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
