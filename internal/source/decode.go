package source

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"lifespanchart/internal/record"
)

// DecodeJSON reads a JSON array of objects. Numbers are kept as json.Number
// so large integral values survive unchanged.
func DecodeJSON(r io.Reader) ([]record.Raw, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var rows []map[string]any
	if err := dec.Decode(&rows); err != nil {
		return nil, fmt.Errorf("error parsing JSON: %w", err)
	}
	out := make([]record.Raw, len(rows))
	for i, row := range rows {
		out[i] = record.Raw(row)
	}
	return out, nil
}

// DecodeCSV reads a CSV file with a header row. Header names are trimmed;
// empty cells are left out of the row so they read as missing.
func DecodeCSV(r io.Reader) ([]record.Raw, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading CSV header: %w", err)
	}
	for i, col := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(col, "\ufeff"))
	}

	var rows []record.Raw
	for {
		line, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}
		row := make(record.Raw, len(header))
		for i, col := range header {
			if i >= len(line) {
				break
			}
			if v := strings.TrimSpace(line[i]); v != "" {
				row[col] = v
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
