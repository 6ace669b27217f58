package spreadsheet

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteThenReadRoundTrip(t *testing.T) {
	out, err := WriteXLSX(Table{
		Sheet:   "Customers",
		Headers: []string{"ID", "Name", "Phone"},
		Rows: [][]any{
			{int64(1), "Ana Petrova", "+359 88 123 4567"},
			{int64(2), "Ivan Ivanov", ""},
		},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, "Customers", f.GetSheetName(0))

	rows, err := ReadRows(bytes.NewReader(out), "export.xlsx")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"ID", "Name", "Phone"}, rows[0])
	assert.Equal(t, "Ana Petrova", rows[1][1])
	assert.Equal(t, "2", rows[2][0])
}

func TestWriteDefaultsSheetName(t *testing.T) {
	out, err := WriteXLSX(Table{Headers: []string{"A"}})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, "Report", f.GetSheetName(0))
}

func TestReadRowsRejectsGarbage(t *testing.T) {
	_, err := ReadRows(strings.NewReader("not a workbook"), "customers.xlsx")
	assert.Error(t, err)
}

func TestReadRowsEmptySheet(t *testing.T) {
	f := excelize.NewFile()
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	_, err = ReadRows(bytes.NewReader(buf.Bytes()), "empty.xlsx")
	assert.ErrorIs(t, err, ErrEmptyWorksheet)
}

func TestHeaderIndexAndCell(t *testing.T) {
	idx := HeaderIndex([]string{" Username ", "EMAIL", "", "email"})
	assert.Equal(t, 0, idx["username"])
	assert.Equal(t, 1, idx["email"])
	_, ok := idx[""]
	assert.False(t, ok)

	row := []string{" ana ", "ana@example.com"}
	assert.Equal(t, "ana", Cell(row, 0))
	assert.Equal(t, "", Cell(row, 5))
	assert.Equal(t, "", Cell(row, -1))
}
