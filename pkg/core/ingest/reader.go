// Package ingest reads uploaded statement files into RawTables. It is the
// only part of the pipeline doing blocking I/O; the analysis packages behind
// it never touch the filesystem.
package ingest

import (
	"fmt"
	"strings"

	"finhealth/pkg/core/table"
)

// Source is the format-independent read result: zero or more tables plus any
// free text the file carried (PDF pages). Extraction treats the text as
// metric-free; tables are the signal.
type Source struct {
	Tables []table.RawTable
	Text   string
}

// Reader parses one file into a Source. Implementations exist for CSV, PDF,
// and HTML; spreadsheet formats are supplied by an external collaborator
// implementing this interface.
type Reader interface {
	Read(path string) (*Source, error)
}

// ReadError is a structural read failure: the bytes could not be parsed into
// any table at all. It is the only ingest outcome that crosses the pipeline
// boundary as an error — missing line items inside a readable file never do.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("unreadable source %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// ReaderFor selects a Reader by file type (extension without the dot).
func ReaderFor(fileType string) (Reader, error) {
	switch strings.ToLower(fileType) {
	case "csv":
		return &CSVReader{}, nil
	case "pdf":
		return &PDFReader{}, nil
	case "html", "htm":
		return &HTMLReader{}, nil
	default:
		return nil, fmt.Errorf("unsupported file type: %s", fileType)
	}
}
