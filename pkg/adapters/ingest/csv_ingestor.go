// Package ingest adapts external upload formats into the shapes the core
// consumes: tabular files become ParsedFile for classification and
// aggregation, structured JSON becomes canonical partials directly.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/eaip/passport-core/pkg/core/ports"
)

// CsvFileReader reads one CSV upload into a single-sheet ParsedFile.
// Cells stay as raw strings; numeric and month normalization happen
// downstream where locale rules live.
type CsvFileReader struct {
	// Separator overrides the field delimiter; zero means comma with a
	// semicolon retry, since regional spreadsheet exports use either.
	Separator rune
}

// Read consumes the stream and returns the parsed file, named after the
// upload. Short rows are legal; completely empty rows are dropped.
func (c *CsvFileReader) Read(filename string, stream io.Reader) (ports.ParsedFile, error) {
	data, err := io.ReadAll(stream)
	if err != nil {
		return ports.ParsedFile{}, fmt.Errorf("read csv upload: %w", err)
	}

	rows, err := c.parse(data, c.Separator)
	if err != nil && c.Separator == 0 {
		rows, err = c.parse(data, ';')
	}
	if err != nil {
		return ports.ParsedFile{}, fmt.Errorf("parse %s: %w", filename, err)
	}

	sheetName := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return ports.ParsedFile{
		Filename: filename,
		Sheets: []ports.ParsedSheet{{
			Name: sheetName,
			Rows: rows,
		}},
	}, nil
}

func (c *CsvFileReader) parse(data []byte, sep rune) ([][]any, error) {
	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	if sep != 0 {
		reader.Comma = sep
	}

	var rows [][]any
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row := make([]any, 0, len(record))
		empty := true
		for _, cell := range record {
			if strings.TrimSpace(cell) != "" {
				empty = false
			}
			row = append(row, cell)
		}
		if !empty {
			rows = append(rows, row)
		}
	}
	return rows, nil
}
