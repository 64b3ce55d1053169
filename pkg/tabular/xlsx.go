package tabular

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/schoolsuite/reportcard-api/internal/models"
)

// Sheet is the parsed first worksheet of an uploaded workbook.
type Sheet struct {
	Headers []string
	Rows    []models.RawRow
}

// XLSXReader parses .xlsx workbooks into raw rows keyed by header string.
// Only the first sheet is read. Blank header cells become positional
// "__EMPTY_<index>" keys so columns without a header remain addressable.
type XLSXReader struct{}

// NewXLSXReader constructs a reader.
func NewXLSXReader() *XLSXReader {
	return &XLSXReader{}
}

// Read parses the workbook. An unreadable file is a single fatal error for
// the whole ingestion run; no partial rows are returned.
func (x *XLSXReader) Read(src io.Reader) (*Sheet, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close() //nolint:errcheck

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	grid, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(grid) == 0 {
		return &Sheet{}, nil
	}

	headers := make([]string, len(grid[0]))
	for i, cell := range grid[0] {
		header := strings.TrimSpace(cell)
		if header == "" {
			header = fmt.Sprintf("__EMPTY_%d", i)
		}
		headers[i] = header
	}

	rows := make([]models.RawRow, 0, len(grid)-1)
	for _, line := range grid[1:] {
		row := make(models.RawRow, len(headers))
		for i, header := range headers {
			// excelize trims trailing blank cells; pad so every header
			// column exists in every row.
			if i < len(line) {
				row[header] = line[i]
			} else {
				row[header] = ""
			}
		}
		rows = append(rows, row)
	}
	return &Sheet{Headers: headers, Rows: rows}, nil
}
