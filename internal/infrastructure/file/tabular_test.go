package file_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mohammadpnp/appraisal-import/internal/infrastructure/file"
)

func TestDetectFormat(t *testing.T) {
	t.Parallel()

	format, err := file.DetectFormat("Appraisals.XLSX")
	require.NoError(t, err)
	assert.Equal(t, file.FormatXLSX, format)

	_, err = file.DetectFormat("appraisals.pdf")
	require.ErrorIs(t, err, file.ErrUnsupportedFormat)
}

func TestReadRowsCSV(t *testing.T) {
	t.Parallel()

	data := "\ufeffStreet Address,Appraisal Date,Stage\n" +
		"\"12 Smith St, Glen Eden\",21/03/2024,vap\n" +
		",,\n" +
		"14 Smith St,22/03/2024\n"

	rows, err := file.ReadRows(file.FormatCSV, strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "12 Smith St, Glen Eden", rows[0]["Street Address"])
	assert.Equal(t, "vap", rows[0]["Stage"])
	assert.True(t, rows[1].Blank())
	assert.Equal(t, "14 Smith St", rows[2]["Street Address"])
	assert.Equal(t, "", rows[2]["Stage"])
}

func TestReadRowsRepeatedHeaderKeepsFirstValue(t *testing.T) {
	t.Parallel()

	data := "Email,Phone,Phone\n" +
		"ana@example.com,021 555 0101,\n" +
		"bo@example.com,,022 555 0202\n"

	rows, err := file.ReadRows(file.FormatCSV, strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "021 555 0101", rows[0]["Phone"])
	assert.Equal(t, "022 555 0202", rows[1]["Phone"])
}

func TestReadRowsMissingHeader(t *testing.T) {
	t.Parallel()

	_, err := file.ReadRows(file.FormatCSV, strings.NewReader(""))
	require.ErrorIs(t, err, file.ErrMissingHeader)

	_, err = file.ReadRows(file.FormatCSV, strings.NewReader(" , \n1,2\n"))
	require.ErrorIs(t, err, file.ErrMissingHeader)

	_, err = file.ReadRows(file.FormatJSON, strings.NewReader("[]"))
	require.ErrorIs(t, err, file.ErrMissingHeader)
}

func TestReadRowsJSON(t *testing.T) {
	t.Parallel()

	data := `[
	  {"Address": "1 Main St, Avondale", "Beds": 3, "Estimate": 950000.5, "Notes": null},
	  {"Address": "", "Beds": null}
	]`

	rows, err := file.ReadRows(file.FormatJSON, strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "3", rows[0]["Beds"])
	assert.Equal(t, "950000.5", rows[0]["Estimate"])
	assert.Equal(t, "", rows[0]["Notes"])
	assert.True(t, rows[1].Blank())
}

func TestReadRowsXLSX(t *testing.T) {
	t.Parallel()

	book := excelize.NewFile()
	sheet := book.GetSheetName(0)
	require.NoError(t, book.SetSheetRow(sheet, "A1", &[]any{"First Name", "Email", "Role"}))
	require.NoError(t, book.SetSheetRow(sheet, "A2", &[]any{"Ana", "ana@example.com", "Team Leader"}))
	require.NoError(t, book.SetSheetRow(sheet, "A3", &[]any{"Bo", "bo@example.com"}))
	buf, err := book.WriteToBuffer()
	require.NoError(t, err)

	rows, err := file.ReadRows(file.FormatXLSX, buf)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Team Leader", rows[0]["Role"])
	assert.Equal(t, "", rows[1]["Role"])
}

func TestLocalSourceReadRows(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "roster.csv"), []byte("Email,First Name\nana@example.com,Ana\n"), 0o600))

	rows, err := file.NewLocalSource(dir).ReadRows(context.Background(), "roster.csv")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Ana", rows[0]["First Name"])

	_, err = file.NewLocalSource(dir).ReadRows(context.Background(), "missing.csv")
	require.Error(t, err)
}
