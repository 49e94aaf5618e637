package lexical

import "math"

// BM25 default constants. k1 controls term-frequency saturation, b the degree
// of document-length normalization.
const (
	defaultK1 = 1.5
	defaultB  = 0.75
)

// BM25 is an Okapi BM25 scoring model fitted over a tokenized corpus. The
// model is immutable after fitting and safe for concurrent scoring.
type BM25 struct {
	k1 float64
	b  float64

	termFreqs []map[string]int
	docLens   []int
	avgDocLen float64
	docFreq   map[string]int
	numDocs   int
}

// NewBM25 fits a BM25 model over the tokenized documents using the default
// k1/b constants.
func NewBM25(docs [][]string) *BM25 {
	m := &BM25{
		k1:        defaultK1,
		b:         defaultB,
		termFreqs: make([]map[string]int, len(docs)),
		docLens:   make([]int, len(docs)),
		docFreq:   make(map[string]int),
		numDocs:   len(docs),
	}

	totalLen := 0
	for i, doc := range docs {
		tf := make(map[string]int, len(doc))
		for _, term := range doc {
			tf[term]++
		}
		m.termFreqs[i] = tf
		m.docLens[i] = len(doc)
		totalLen += len(doc)
		for term := range tf {
			m.docFreq[term]++
		}
	}
	if m.numDocs > 0 {
		m.avgDocLen = float64(totalLen) / float64(m.numDocs)
	}
	return m
}

// ScoreAt computes the BM25 relevance of document i against the query tokens.
// Repeated query tokens contribute repeatedly, which is how required keywords
// get their double weight.
func (m *BM25) ScoreAt(i int, query []string) float64 {
	if i < 0 || i >= m.numDocs || m.avgDocLen == 0 {
		return 0
	}

	tf := m.termFreqs[i]
	norm := m.k1 * (1 - m.b + m.b*float64(m.docLens[i])/m.avgDocLen)

	score := 0.0
	for _, term := range query {
		freq := float64(tf[term])
		if freq == 0 {
			continue
		}
		score += m.idf(term) * (freq * (m.k1 + 1)) / (freq + norm)
	}
	return score
}

// Scores computes the relevance of every document against the query tokens.
func (m *BM25) Scores(query []string) []float64 {
	scores := make([]float64, m.numDocs)
	for i := range scores {
		scores[i] = m.ScoreAt(i, query)
	}
	return scores
}

// idf uses the non-negative variant ln(1 + (N - df + 0.5)/(df + 0.5)) so very
// common terms contribute little instead of going negative.
func (m *BM25) idf(term string) float64 {
	df := float64(m.docFreq[term])
	n := float64(m.numDocs)
	return math.Log(1 + (n-df+0.5)/(df+0.5))
}
