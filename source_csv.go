package annuaire

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// utf8BOM is stripped from the head of the snapshot when present; spreadsheet
// exports routinely prepend it.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVReader reads the bundled dataset snapshot: a header-keyed UTF-8 CSV file
// at a fixed path. Files that are not valid UTF-8 are re-decoded as
// Windows-1252, the encoding legacy exports of the snapshot were produced in.
type CSVReader struct {
	path string
}

// NewCSVReader creates a reader for the snapshot at path.
func NewCSVReader(path string) *CSVReader {
	return &CSVReader{path: path}
}

// Source implements Reader.
func (r *CSVReader) Source() SourceID { return SourceCSV }

// Read parses the snapshot into one CSVRow per data row. Malformed input maps
// to ErrParseFailure, a header-only file to ErrEmptyResult.
func (r *CSVReader) Read(ctx context.Context) ([]RawEntry, error) {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrParseFailure, r.path, err)
	}
	return parseSnapshot(ctx, raw)
}

func parseSnapshot(ctx context.Context, raw []byte) ([]RawEntry, error) {
	raw = bytes.TrimPrefix(raw, utf8BOM)
	if !utf8.Valid(raw) {
		decoded, err := io.ReadAll(transform.NewReader(bytes.NewReader(raw), charmap.Windows1252.NewDecoder()))
		if err != nil {
			return nil, fmt.Errorf("%w: decoding legacy encoding: %v", ErrParseFailure, err)
		}
		raw = decoded
	}

	cr := csv.NewReader(bytes.NewReader(raw))
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrEmptyResult
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", ErrParseFailure, err)
	}
	for i, h := range header {
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}

	var entries []RawEntry
	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParseFailure, err)
		}
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrParseFailure, len(entries)+2, err)
		}

		row := make(CSVRow, len(header))
		for i, h := range header {
			if i < len(record) {
				row[h] = strings.TrimSpace(record[i])
			}
		}
		entries = append(entries, row)
	}

	if len(entries) == 0 {
		return nil, ErrEmptyResult
	}
	return entries, nil
}
