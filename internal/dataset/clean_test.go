package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanFieldName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Full Name", "full_name"},
		{"  Key Skills ", "key_skills"},
		{"Company (current)", "company_current"},
		{"location", "location"},
		{"___", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanFieldName(tt.input))
		})
	}
}

func TestCleanFieldValue_NullLikeBlanked(t *testing.T) {
	for _, v := range []string{"null", "None", "N/A", "na", "NaN", "undefined", "-", "  null  "} {
		assert.Equal(t, "", CleanFieldValue(v), "value %q", v)
	}

	assert.Equal(t, "Austin", CleanFieldValue("  Austin  "))
	assert.Equal(t, "non-applicable", CleanFieldValue("non-applicable"))
}

func TestCleanRecord_DropsSparseRows(t *testing.T) {
	record := CleanRecord(map[string]string{
		"Name":  "Jane Doe",
		"Title": "null",
		"Notes": "",
	})

	// Only one meaningful field survives; the row is rejected.
	assert.Nil(t, record)
}

func TestCleanRecord_NormalizesFieldsAndValues(t *testing.T) {
	record := CleanRecord(map[string]string{
		"Full Name": " Jane Doe ",
		"Job Title": "CTO",
		"Company":   "N/A",
	})

	assert.Equal(t, "Jane Doe", record["full_name"])
	assert.Equal(t, "CTO", record["job_title"])
	assert.NotContains(t, record, "company")
}
