package ingest

import (
	"encoding/csv"
	"io"
	"os"

	"finhealth/pkg/core/table"
)

// CSVReader parses a comma-separated file into a single RawTable. The first
// record is the column header; every cell stays a string and numeric
// interpretation is left to the table package.
type CSVReader struct{}

func (r *CSVReader) Read(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}
	defer f.Close()

	return r.readFrom(path, f)
}

func (r *CSVReader) readFrom(path string, src io.Reader) (*Source, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1 // statements exported by hand are often ragged
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}
	if len(records) == 0 {
		return nil, &ReadError{Path: path, Err: io.ErrUnexpectedEOF}
	}

	header := records[0]
	rows := make([][]table.Cell, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make([]table.Cell, len(record))
		for i, cell := range record {
			row[i] = cell
		}
		rows = append(rows, row)
	}

	return &Source{Tables: []table.RawTable{table.New(header, rows)}}, nil
}
