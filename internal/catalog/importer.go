package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	// ErrMissingColumn is returned when a spreadsheet lacks a required column.
	ErrMissingColumn = errors.New("missing column")
	// ErrEmptySheet is returned when a spreadsheet has no header row.
	ErrEmptySheet = errors.New("spreadsheet has no header row")
)

var numericFields = map[string]bool{FieldAge: true, FieldRating: true}

// ReadFile parses a book spreadsheet, choosing the format from the file extension:
// .xlsx/.xlsm workbooks are read directly, anything else as CSV.
func ReadFile(path string) ([]Book, []int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return ReadXLSX(f)
	default:
		return ReadCSV(f)
	}
}

// ReadXLSX parses the first sheet of a workbook. See ReadCSV for the row rules.
func ReadXLSX(r io.Reader) ([]Book, []int, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, ErrEmptySheet
	}
	rows, err := wb.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return parseRows(rows)
}

// ReadCSV parses a spreadsheet export with a header row into catalog records.
// Header names are matched case-insensitively, so an "Author" column lands in author;
// title and author columns are required. Only the filterable fields are imported.
// Rows without a title are skipped and their 1-based row numbers returned.
func ReadCSV(r io.Reader) ([]Book, []int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read csv: %w", err)
	}
	return parseRows(rows)
}

func parseRows(rows [][]string) ([]Book, []int, error) {
	if len(rows) == 0 {
		return nil, nil, ErrEmptySheet
	}
	cols := map[string]int{}
	for i, h := range rows[0] {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		switch name {
		case FieldAge, FieldRating, FieldGenre, FieldAuthor, FieldTitle:
			cols[name] = i
		}
	}
	for _, req := range []string{FieldTitle, FieldAuthor} {
		if _, ok := cols[req]; !ok {
			return nil, nil, fmt.Errorf("%w %q", ErrMissingColumn, req)
		}
	}

	var books []Book
	var skipped []int
	for i, rec := range rows[1:] {
		b := Book{}
		for field, idx := range cols {
			if idx >= len(rec) {
				continue
			}
			v := strings.TrimSpace(rec[idx])
			if v == "" {
				continue
			}
			if numericFields[field] {
				if n, err := strconv.ParseFloat(v, 64); err == nil {
					b[field] = n
					continue
				}
			}
			b[field] = v
		}
		if _, ok := b[FieldTitle]; !ok {
			// header is row 1
			skipped = append(skipped, i+2)
			continue
		}
		books = append(books, b)
	}
	return books, skipped, nil
}
