// Package lexical implements the deterministic retrieval stage: searchable
// document construction, BM25 scoring, and field-match analysis.
package lexical

import (
	"sort"
	"strings"

	"github.com/jonathan/talent-ranker/internal/types"
)

// BuildDocument renders a record as one lower-cased searchable document.
// Every field contributes both "fieldname: value" and the bare value, so a
// query term can match either as free text or as a qualified field reference.
func BuildDocument(record types.Record) string {
	keys := make([]string, 0, len(record))
	for k := range record {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var parts []string
	for _, k := range keys {
		v := strings.TrimSpace(record[k])
		if v == "" {
			continue
		}
		parts = append(parts, k+": "+v, v)
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// Tokenize splits a document on whitespace. No stemming or stopwording:
// profile text is short and keyword-dense, so precision is favored.
func Tokenize(doc string) []string {
	return strings.Fields(doc)
}

// BuildQueryTokens assembles the BM25 query token stream from criteria.
// Required keywords are added twice for double term-frequency weight,
// preferred keywords once, phrases split into their words (documents are
// whitespace-tokenized, so a multi-word token could never match), and every
// field-bucket term twice: once bare and once prefixed with its bucket name,
// mirroring the document representation. If no explicit terms exist, the
// contextual intent text seeds the query instead.
func BuildQueryTokens(c *types.Criteria) []string {
	var tokens []string
	add := func(s string) {
		tokens = append(tokens, strings.Fields(strings.ToLower(s))...)
	}

	ks := c.TextualCriteria.KeywordSearch
	for _, kw := range ks.Required {
		add(kw)
		add(kw)
	}
	for _, kw := range ks.Preferred {
		add(kw)
	}
	for _, phrase := range ks.Phrases {
		add(phrase)
	}

	buckets := make([]string, 0, len(c.TextualCriteria.FieldSpecificSearch))
	for bucket := range c.TextualCriteria.FieldSpecificSearch {
		buckets = append(buckets, bucket)
	}
	sort.Strings(buckets)
	for _, bucket := range buckets {
		for _, term := range c.TextualCriteria.FieldSpecificSearch[bucket] {
			add(bucket + ": " + term)
			add(term)
		}
	}

	if len(tokens) == 0 {
		add(c.ContextualCriteria.IntentAnalysis.PrimaryGoal)
		add(c.ContextualCriteria.IntentAnalysis.Context)
	}

	return tokens
}
