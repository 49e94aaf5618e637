package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV_HeaderCleaningAndRows(t *testing.T) {
	data := []byte("Full Name,Job Title,Location\nJane Doe,CTO,Austin\nTom Lee,null,\n")

	records, err := ParseCSV(data)

	require.NoError(t, err)
	// Tom's row has one meaningful field left after cleaning and is dropped.
	require.Len(t, records, 1)
	assert.Equal(t, "Jane Doe", records[0]["full_name"])
	assert.Equal(t, "Austin", records[0]["location"])
}

func TestParseCSV_RaggedRows(t *testing.T) {
	data := []byte("name,title,location\nJane Doe,CTO\n")

	records, err := ParseCSV(data)

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.NotContains(t, records[0], "location")
}

func TestParseCSV_Latin1Fallback(t *testing.T) {
	// "José,Zürich" in ISO 8859-1: é = 0xE9, ü = 0xFC. Not valid UTF-8.
	data := []byte("name,city\nJos\xe9,Z\xfcrich\n")

	records, err := ParseCSV(data)

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "José", records[0]["name"])
	assert.Equal(t, "Zürich", records[0]["city"])
}

func TestParseCSV_NoDataRows(t *testing.T) {
	_, err := ParseCSV([]byte("name,title\n"))
	assert.Error(t, err)
}

func TestParseJSON_ObjectsAndScalars(t *testing.T) {
	data := []byte(`[
		{"name": "Jane Doe", "title": "CTO", "years": 12, "active": true, "tags": ["a"], "note": null},
		{"name": "Solo"}
	]`)

	records, err := ParseJSON(data)

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Jane Doe", records[0]["name"])
	assert.Equal(t, "12", records[0]["years"])
	assert.Equal(t, "true", records[0]["active"])
	// Nested values and nulls are skipped.
	assert.NotContains(t, records[0], "tags")
	assert.NotContains(t, records[0], "note")
}

func TestParseJSON_Malformed(t *testing.T) {
	_, err := ParseJSON([]byte(`{"not": "an array"}`))
	assert.Error(t, err)
}
