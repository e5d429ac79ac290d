// Package ingest reads the three flat CSV inputs into raw domain rows.
// Schema problems (a missing required column) are fatal here; value-level
// problems are left to the cleaning pipeline, which resolves them to nil
// measurements or dropped rows.
package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// table is a header-indexed CSV file: each row maps column name to its raw
// cell value.
type table struct {
	columns map[string]struct{}
	rows    []map[string]string
}

// readTable loads and indexes a CSV file. Header cells are
// whitespace-stripped before indexing because some sources pad them. A file
// with a header but zero data rows is valid and yields an empty table.
func readTable(path string) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // ragged rows are tolerated; missing cells read as empty
	all, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("read %s: no header row", path)
	}

	header := make([]string, len(all[0]))
	columns := make(map[string]struct{}, len(all[0]))
	for i, h := range all[0] {
		header[i] = strings.TrimSpace(h)
		columns[header[i]] = struct{}{}
	}

	t := &table{columns: columns, rows: make([]map[string]string, 0, len(all)-1)}
	for _, row := range all[1:] {
		fields := make(map[string]string, len(header))
		for j, h := range header {
			if j < len(row) {
				fields[h] = row[j]
			}
		}
		t.rows = append(t.rows, fields)
	}
	return t, nil
}

// requireColumns reports the first required column absent from the header,
// as a configuration error naming the source and the column.
func (t *table) requireColumns(source string, columns ...string) error {
	for _, c := range columns {
		if _, ok := t.columns[c]; !ok {
			return fmt.Errorf("%s source: missing required column %q", source, c)
		}
	}
	return nil
}
