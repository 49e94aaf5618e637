// Package filtering enforces hard constraints on candidate records.
package filtering

import (
	"strings"

	"github.com/jonathan/talent-ranker/internal/types"
)

// Admissible returns the subset of records satisfying every non-empty hard
// constraint kind. Filtering is zero tolerance: a record failing any active
// kind is removed. With entirely empty constraints every record passes
// unchanged, in the original order.
func Admissible(records []types.Record, hc types.HardConstraints) []types.Record {
	if hc.Empty() {
		return records
	}

	admitted := make([]types.Record, 0, len(records))
	for _, record := range records {
		if satisfies(record, hc) {
			admitted = append(admitted, record)
		}
	}
	return admitted
}

// satisfies checks one record against every active constraint kind. Matching
// is lower-cased substring containment against the record's text blob; name
// constraints check the dedicated name-like fields first and fall back to the
// full blob.
func satisfies(record types.Record, hc types.HardConstraints) bool {
	blob := record.Blob()

	// Any exclusion hit anywhere rejects the record outright.
	for _, term := range hc.Exclusions {
		if term != "" && strings.Contains(blob, strings.ToLower(term)) {
			return false
		}
	}

	if len(hc.NameMatches) > 0 {
		nameText := record.NameText()
		if nameText == "" {
			nameText = blob
		}
		if !containsAny(nameText, hc.NameMatches) {
			return false
		}
	}

	for _, required := range [][]string{
		hc.LocationRequirements,
		hc.TitleRequirements,
		hc.CompanyRequirements,
	} {
		if len(required) > 0 && !containsAny(blob, required) {
			return false
		}
	}

	return true
}

// containsAny reports whether at least one of the values appears as a
// lower-cased substring of text.
func containsAny(text string, values []string) bool {
	for _, v := range values {
		if v != "" && strings.Contains(text, strings.ToLower(v)) {
			return true
		}
	}
	return false
}
