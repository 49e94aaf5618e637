// Package criteria derives structured search criteria from natural-language
// queries: conservative hard-constraint extraction, an LLM-backed criteria
// generator, and a deterministic fallback builder.
package criteria

import (
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/talent-ranker/internal/types"
)

// Extraction is deliberately conservative: only very explicit patterns fire,
// so false negatives are preferred over false positives. Generic text must
// never produce a hard constraint.

const (
	maxLocationLen = 25
	maxCompanyLen  = 20
)

// locationStopWords are business-domain words that disqualify a captured
// string from being treated as a place name ("based in fintech" is not a
// location).
var locationStopWords = []string{"fintech", "startup", "tech", "raised", "funding"}

// namePatterns match against the lower-cased query.
var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`name is (\w+)`),
	regexp.MustCompile(`named (\w+)`),
	regexp.MustCompile(`person named (\w+)`),
	regexp.MustCompile(`called (\w+)`),
}

// locationPatterns match against the original-case query so proper nouns are
// captured as written.
var locationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`located in ([A-Z][a-zA-Z\s]+)`),
	regexp.MustCompile(`based in ([A-Z][a-zA-Z\s]+)`),
	regexp.MustCompile(`from ([A-Z][a-zA-Z\s]+) and`),
	regexp.MustCompile(`lives in ([A-Z][a-zA-Z\s]+)`),
}

var companyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`works at ([A-Z][a-zA-Z\s&]+)`),
	regexp.MustCompile(`employed at ([A-Z][a-zA-Z\s&]+)`),
	regexp.MustCompile(`currently at ([A-Z][a-zA-Z\s&]+)`),
}

// exclusionPhrases are fixed literals detected as substrings of the
// lower-cased query, mapped to the exclusion term they imply.
var exclusionPhrases = map[string]string{
	"no recruiters":    "recruiters",
	"not consultants":  "consultants",
	"exclude agencies": "agencies",
}

// ExtractHardConstraints derives explicit hard constraints from a raw query.
// Absence of a match yields an empty set for that kind, never an error.
func ExtractHardConstraints(query string) types.HardConstraints {
	lower := strings.ToLower(query)

	var hc types.HardConstraints

	for _, re := range namePatterns {
		for _, m := range re.FindAllStringSubmatch(lower, -1) {
			hc.NameMatches = append(hc.NameMatches, m[1])
		}
	}

	for _, re := range locationPatterns {
		for _, m := range re.FindAllStringSubmatch(query, -1) {
			loc := strings.TrimSpace(m[1])
			if acceptLocation(loc) {
				hc.LocationRequirements = append(hc.LocationRequirements, loc)
			}
		}
	}

	for _, re := range companyPatterns {
		for _, m := range re.FindAllStringSubmatch(query, -1) {
			comp := strings.TrimSpace(m[1])
			if acceptCompany(comp) {
				hc.CompanyRequirements = append(hc.CompanyRequirements, comp)
			}
		}
	}

	for phrase, term := range exclusionPhrases {
		if strings.Contains(lower, phrase) {
			hc.Exclusions = append(hc.Exclusions, term)
		}
	}
	// Map iteration order is random; keep the extracted set deterministic.
	sort.Strings(hc.Exclusions)

	return dedupe(hc)
}

func acceptLocation(loc string) bool {
	if loc == "" || len(loc) >= maxLocationLen {
		return false
	}
	if !startsUpper(loc) {
		return false
	}
	lower := strings.ToLower(loc)
	for _, word := range locationStopWords {
		if strings.Contains(lower, word) {
			return false
		}
	}
	return true
}

func acceptCompany(comp string) bool {
	return comp != "" && len(comp) < maxCompanyLen && startsUpper(comp)
}

func startsUpper(s string) bool {
	return s != "" && s[0] >= 'A' && s[0] <= 'Z'
}

// dedupe removes duplicates and empties from every kind, preserving first-seen
// order.
func dedupe(hc types.HardConstraints) types.HardConstraints {
	return types.HardConstraints{}.Merge(hc)
}
