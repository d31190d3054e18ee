package file

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/mohammadpnp/appraisal-import/internal/application/ingest"
)

var (
	ErrMissingHeader     = errors.New("file has no header row")
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatJSON Format = "json"
)

// DetectFormat picks the format from the file name's extension.
func DetectFormat(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".txt":
		return FormatCSV, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(name))
	}
}

// ReadRows decodes a whole file into raw rows keyed by header. Blank rows
// are kept so that a row's position matches its place in the file; callers
// skip them with RawRow.Blank. When a header repeats, the first non-empty
// cell under it wins.
func ReadRows(format Format, r io.Reader) ([]ingest.RawRow, error) {
	switch format {
	case FormatCSV:
		return readCSV(r)
	case FormatXLSX:
		return readXLSX(r)
	case FormatJSON:
		return readJSON(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func readCSV(r io.Reader) ([]ingest.RawRow, error) {
	reader := csv.NewReader(stripBOM(r))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return fromRecords(records)
}

func readXLSX(r io.Reader) ([]ingest.RawRow, error) {
	book, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer book.Close()

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrMissingHeader
	}
	records, err := book.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return fromRecords(records)
}

// readJSON accepts an array of flat objects. Non-string values keep their
// JSON text so numbers and booleans survive as cell strings.
func readJSON(r io.Reader) ([]ingest.RawRow, error) {
	var objects []map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&objects); err != nil {
		return nil, fmt.Errorf("decode json rows: %w", err)
	}
	if len(objects) == 0 {
		return nil, ErrMissingHeader
	}

	rows := make([]ingest.RawRow, 0, len(objects))
	for _, object := range objects {
		row := make(ingest.RawRow, len(object))
		for key, value := range object {
			row[key] = jsonCell(value)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func jsonCell(value json.RawMessage) string {
	var s string
	if err := json.Unmarshal(value, &s); err == nil {
		return s
	}
	text := strings.TrimSpace(string(value))
	if text == "null" {
		return ""
	}
	return text
}

func fromRecords(records [][]string) ([]ingest.RawRow, error) {
	if len(records) == 0 {
		return nil, ErrMissingHeader
	}

	header := make([]string, len(records[0]))
	named := false
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(h)
		if header[i] != "" {
			named = true
		}
	}
	if !named {
		return nil, ErrMissingHeader
	}

	rows := make([]ingest.RawRow, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(ingest.RawRow, len(header))
		for i, name := range header {
			if name == "" {
				name = "column_" + strconv.Itoa(i+1)
			}
			cell := ""
			if i < len(record) {
				cell = record[i]
			}
			if prior, seen := row[name]; seen && strings.TrimSpace(prior) != "" {
				continue
			}
			row[name] = cell
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func stripBOM(r io.Reader) io.Reader {
	const bom = "\ufeff"
	buf := make([]byte, len(bom))
	n, err := io.ReadFull(r, buf)
	if err != nil {
		return io.MultiReader(strings.NewReader(string(buf[:n])), r)
	}
	if string(buf) == bom {
		return r
	}
	return io.MultiReader(strings.NewReader(string(buf)), r)
}
