package data

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strings"
)

var (
	// ErrLoad is returned when the dataset file is missing, unreadable or not valid CSV.
	ErrLoad = errors.New("load dataset")
	// ErrSchema is returned when required columns are absent.
	ErrSchema = errors.New("dataset schema")
)

// Dataset is an ordered collection of CSV records sharing one header.
type Dataset struct {
	Headers []string
	Rows    [][]string
}

// LoadCSV reads the whole file at path. The first record is the header.
func LoadCSV(path string) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	defer file.Close()

	reader := csv.NewReader(bufio.NewReader(file))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoad, path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s: no header row", ErrLoad, path)
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.TrimSpace(h)
	}
	// Excel exports prefix the first header with a BOM.
	headers[0] = strings.TrimPrefix(headers[0], "\ufeff")

	// Short rows read as missing trailing cells; long rows have nowhere to go.
	for i, rec := range records[1:] {
		if len(rec) > len(headers) {
			return nil, fmt.Errorf("%w: %s: record %d has %d fields, header has %d",
				ErrLoad, path, i+1, len(rec), len(headers))
		}
	}

	return &Dataset{Headers: headers, Rows: records[1:]}, nil
}

// NumRows returns the number of data records.
func (d *Dataset) NumRows() int { return len(d.Rows) }

// NumCols returns the number of header columns.
func (d *Dataset) NumCols() int { return len(d.Headers) }

// Index returns the position of the named column, or -1.
func (d *Dataset) Index(name string) int {
	for i, h := range d.Headers {
		if h == name {
			return i
		}
	}
	return -1
}

// RequireColumns reports every column in cols that the header lacks.
func (d *Dataset) RequireColumns(cols ...string) error {
	var missing []string
	for _, c := range cols {
		if d.Index(c) < 0 {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required columns %v (required: %v)", ErrSchema, missing, cols)
	}
	return nil
}

// Column copies out the values of the named column. Rows too short to
// reach it yield "".
func (d *Dataset) Column(name string) ([]string, error) {
	idx := d.Index(name)
	if idx < 0 {
		return nil, fmt.Errorf("%w: no column %q", ErrSchema, name)
	}
	col := make([]string, len(d.Rows))
	for i, rec := range d.Rows {
		if idx < len(rec) {
			col[i] = strings.TrimSpace(rec[idx])
		}
	}
	return col, nil
}
