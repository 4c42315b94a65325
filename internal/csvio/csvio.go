// Package csvio implements the CSV reader/writer boundary of the design
// section 6: a configurable-encoding reader that decodes the header row
// into a record.Schema, and a writer that re-encodes rows with CRLF line
// terminators in the Excel dialect. Grounded on
// internal/engine/exporter.go (encoding/csv over os.Create/os.Open,
// fmt.Errorf-wrapped errors) and csv.py's
// Reader/Writer/Projection trio, generalised from
// ASCII-only assumption to the encodings the design requires.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/ehdc-llpg/linkage/internal/record"
)

// Encoding names a supported byte encoding for CSV boundary I/O.
type Encoding int

const (
	// Windows1252 is the default, matching LLPG exports and
	// csv.py default codec.
	Windows1252 Encoding = iota
	UTF8
)

func (e Encoding) textEncoding() (encoding.Encoding, error) {
	switch e {
	case Windows1252:
		return charmap.Windows1252, nil
	case UTF8:
		return unicode.UTF8, nil
	default:
		return nil, fmt.Errorf("csvio: unknown encoding %d", e)
	}
}

// ReadFile reads a CSV file at path, decoding it with enc, and returns
// the schema built from the header row plus every data row as a Record.
// An empty header field name is an error.
func ReadFile(path string, enc Encoding) (*record.Schema, []record.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("csvio: open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f, enc)
}

// Read decodes a CSV stream from r. Without headerOverride the first row
// is the header and every subsequent row is data; when headerOverride is
// given it supplies the field names and every row, the first included,
// is read as data.
func Read(r io.Reader, enc Encoding, headerOverride...[]string) (*record.Schema, []record.Record, error) {
	textEnc, err := enc.textEncoding()
	if err != nil {
		return nil, nil, err
	}
	decoded := textEnc.NewDecoder().Reader(r)
	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = -1

	var header []string
	if len(headerOverride) > 0 && headerOverride[0] != nil {
		header = headerOverride[0]
	} else {
		header, err = reader.Read()
		if err != nil {
			return nil, nil, fmt.Errorf("csvio: read header: %w", err)
		}
	}

	schema, err := record.NewSchema(header)
	if err != nil {
		return nil, nil, fmt.Errorf("csvio: %w", err)
	}

	var records []record.Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("csvio: read row: %w", err)
		}
		records = append(records, record.New(schema, row))
	}
	return schema, records, nil
}

// WriteFile writes header and rows to a new CSV file at path, encoded
// with enc and CRLF line terminators (the Excel dialect).
func WriteFile(path string, header []string, rows [][]string, enc Encoding) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csvio: create %s: %w", path, err)
	}
	defer f.Close()
	return Write(f, header, rows, enc)
}

// Write encodes header and rows to w.
func Write(w io.Writer, header []string, rows [][]string, enc Encoding) error {
	textEnc, err := enc.textEncoding()
	if err != nil {
		return err
	}
	encoded := textEnc.NewEncoder().Writer(w)
	writer := csv.NewWriter(encoded)
	writer.UseCRLF = true

	if header != nil {
		if err := writer.Write(header); err != nil {
			return fmt.Errorf("csvio: write header: %w", err)
		}
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("csvio: write row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("csvio: flush: %w", err)
	}
	return nil
}

// WriteRecords is WriteFile specialised for []record.Record, writing the
// schema's field names as the header.
func WriteRecords(path string, schema *record.Schema, records []record.Record, enc Encoding) error {
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = r.Values
	}
	return WriteFile(path, schema.Names(), rows, enc)
}
