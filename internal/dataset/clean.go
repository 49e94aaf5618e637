// Package dataset loads candidate-profile datasets from files, normalizes
// field names and values, and caches parsed results.
package dataset

import (
	"regexp"
	"strings"

	"github.com/jonathan/talent-ranker/internal/types"
)

// minMeaningfulFields is the minimum number of non-empty fields a row needs
// to count as a usable profile.
const minMeaningfulFields = 2

// nullLike values are treated as absent.
var nullLike = map[string]bool{
	"null":      true,
	"none":      true,
	"n/a":       true,
	"na":        true,
	"nan":       true,
	"undefined": true,
	"-":         true,
}

var fieldNameSanitizer = regexp.MustCompile(`[^a-z0-9]+`)

// CleanFieldName normalizes a raw column header into lowercase_underscore
// form ("Full Name " -> "full_name").
func CleanFieldName(name string) string {
	cleaned := fieldNameSanitizer.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "_")
	return strings.Trim(cleaned, "_")
}

// CleanFieldValue trims a raw value and blanks out null-like placeholders.
func CleanFieldValue(value string) string {
	v := strings.TrimSpace(value)
	if nullLike[strings.ToLower(v)] {
		return ""
	}
	return v
}

// CleanRecord normalizes one raw row into a Record, dropping empty fields.
// Rows with fewer than two meaningful fields are rejected (returns nil);
// they carry too little signal to rank.
func CleanRecord(raw map[string]string) types.Record {
	record := make(types.Record, len(raw))
	for name, value := range raw {
		k := CleanFieldName(name)
		v := CleanFieldValue(value)
		if k == "" || v == "" {
			continue
		}
		record[k] = v
	}
	if len(record) < minMeaningfulFields {
		return nil
	}
	return record
}
