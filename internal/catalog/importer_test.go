package catalog

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReadCSV(t *testing.T) {
	in := "title,rating,Author,publisher\n" +
		"Dune,4.5,Frank Herbert,Chilton\n" +
		",3,Nobody,X\n" +
		"Emma,n/a,Jane Austen,Murray\n"

	books, skipped, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, []int{3}, skipped)
	require.Equal(t, []Book{
		{"title": "Dune", "rating": 4.5, "author": "Frank Herbert"},
		{"title": "Emma", "rating": "n/a", "author": "Jane Austen"},
	}, books)
}

func TestReadCSV_MissingAuthorColumn(t *testing.T) {
	_, _, err := ReadCSV(strings.NewReader("title,rating\nDune,4\n"))
	require.ErrorIs(t, err, ErrMissingColumn)
}

func TestReadCSV_Empty(t *testing.T) {
	_, _, err := ReadCSV(strings.NewReader(""))
	require.ErrorIs(t, err, ErrEmptySheet)
}

// workbook builds an in-memory .xlsx whose first sheet holds rows.
func workbook(t *testing.T, rows ...[]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestReadXLSX(t *testing.T) {
	data := workbook(t,
		[]interface{}{"title", "rating", "Author"},
		[]interface{}{"Dune", 4.5, "Frank Herbert"},
		[]interface{}{"", 3, "Nobody"},
		[]interface{}{"Emma", 4, "Jane Austen"},
	)

	books, skipped, err := ReadXLSX(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, []int{3}, skipped)
	require.Equal(t, []Book{
		{"title": "Dune", "rating": 4.5, "author": "Frank Herbert"},
		{"title": "Emma", "rating": float64(4), "author": "Jane Austen"},
	}, books)
}

func TestReadXLSX_MissingAuthorColumn(t *testing.T) {
	data := workbook(t, []interface{}{"title", "rating"}, []interface{}{"Dune", 4})
	_, _, err := ReadXLSX(bytes.NewReader(data))
	require.ErrorIs(t, err, ErrMissingColumn)
}

func TestReadXLSX_NotAWorkbook(t *testing.T) {
	_, _, err := ReadXLSX(strings.NewReader("title,author\n"))
	require.Error(t, err)
}

func TestReadFile_DispatchesOnExtension(t *testing.T) {
	dir := t.TempDir()
	xlsx := filepath.Join(dir, "bookall.xlsx")
	require.NoError(t, os.WriteFile(xlsx, workbook(t,
		[]interface{}{"title", "author"},
		[]interface{}{"Hobbit", "Tolkien"},
	), 0o600))
	csvPath := filepath.Join(dir, "books.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("title,author\nEmma,Austen\n"), 0o600))

	books, _, err := ReadFile(xlsx)
	require.NoError(t, err)
	require.Equal(t, []Book{{"title": "Hobbit", "author": "Tolkien"}}, books)

	books, _, err = ReadFile(csvPath)
	require.NoError(t, err)
	require.Equal(t, []Book{{"title": "Emma", "author": "Austen"}}, books)

	_, _, err = ReadFile(filepath.Join(dir, "missing.xlsx"))
	require.True(t, os.IsNotExist(err))
}
