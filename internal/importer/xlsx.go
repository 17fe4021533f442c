package importer

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// RowMap is one spreadsheet row keyed by the header row's column names.
type RowMap map[string]string

// ParseWorkbook reads the first sheet of an XLSX workbook into row maps. The
// first row supplies the keys; rows shorter than the header are padded with
// empty strings and fully empty rows are skipped. No guarantee is made about
// the key set, so downstream mapping must tolerate missing or extra columns.
func ParseWorkbook(r io.Reader) ([]RowMap, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, nil
	}

	header := rows[0]
	out := make([]RowMap, 0, len(rows)-1)
	for _, cells := range rows[1:] {
		row := make(RowMap, len(header))
		empty := true
		for i, name := range header {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			var v string
			if i < len(cells) {
				v = strings.TrimSpace(cells[i])
			}
			if v != "" {
				empty = false
			}
			row[name] = v
		}
		if !empty {
			out = append(out, row)
		}
	}
	return out, nil
}
