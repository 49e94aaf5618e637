// Package types defines the shared data model for the candidate ranking pipeline.
package types

import (
	"sort"
	"strings"
)

// Record is one candidate profile: a mapping from field name to scalar string
// value. There is no fixed schema; fields vary by dataset. Records are treated
// as immutable once handed to the pipeline.
type Record map[string]string

// nameFields are the field names checked, in order, when a record needs a
// name-like identity (ID generation, name constraint matching).
var nameFields = []string{"name", "full_name", "fullname", "first_name", "last_name"}

// Blob renders the record as a single lower-cased text blob of
// "field: value" pairs, used for substring containment checks.
// Fields are visited in sorted order so the blob is deterministic.
func (r Record) Blob() string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		sb.WriteString(strings.ToLower(k))
		sb.WriteString(": ")
		sb.WriteString(strings.ToLower(r[k]))
		sb.WriteString(" ")
	}
	return sb.String()
}

// NameText returns the lower-cased concatenation of the record's name-like
// fields, or the empty string if none are present.
func (r Record) NameText() string {
	var parts []string
	for _, field := range nameFields {
		if v, ok := r[field]; ok && v != "" {
			parts = append(parts, strings.ToLower(v))
		}
	}
	return strings.Join(parts, " ")
}

// DisplayName returns the first populated name-like field value, or "unknown".
func (r Record) DisplayName() string {
	for _, field := range nameFields {
		if v, ok := r[field]; ok && strings.TrimSpace(v) != "" {
			return v
		}
	}
	return "unknown"
}
