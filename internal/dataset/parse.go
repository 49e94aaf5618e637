package dataset

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/jonathan/talent-ranker/internal/types"
)

// ParseCSV parses CSV bytes into cleaned records. The first row is the
// header. Exports from older tooling are sometimes Latin-1; invalid UTF-8
// input is transparently re-decoded as ISO 8859-1 rather than rejected.
func ParseCSV(data []byte) ([]types.Record, error) {
	if !utf8.Valid(data) {
		decoded, err := io.ReadAll(charmap.ISO8859_1.NewDecoder().Reader(bytes.NewReader(data)))
		if err != nil {
			return nil, fmt.Errorf("failed to decode CSV as ISO 8859-1: %w", err)
		}
		data = decoded
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("CSV has no data rows")
	}

	header := rows[0]
	var records []types.Record
	for _, row := range rows[1:] {
		raw := make(map[string]string, len(header))
		for i, value := range row {
			if i >= len(header) {
				break
			}
			raw[header[i]] = value
		}
		if record := CleanRecord(raw); record != nil {
			records = append(records, record)
		}
	}
	return records, nil
}

// ParseJSON parses a JSON array of flat objects into cleaned records.
// Non-string scalar values are stringified; nested structures are skipped.
func ParseJSON(data []byte) ([]types.Record, error) {
	var rows []map[string]any
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse JSON dataset: %w", err)
	}

	var records []types.Record
	for _, row := range rows {
		raw := make(map[string]string, len(row))
		for name, value := range row {
			if s, ok := stringifyValue(value); ok {
				raw[name] = s
			}
		}
		if record := CleanRecord(raw); record != nil {
			records = append(records, record)
		}
	}
	return records, nil
}

func stringifyValue(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	case nil:
		return "", false
	default:
		return "", false
	}
}
