package kohonen

// rowsource.go implements the Processor's row-level input contract and a
// CSV-backed implementation. Wire-format I/O is intentionally a thin
// stdlib layer: the Processor treats every cell as a raw string and is
// responsible for all parsing/validation semantics.

import (
	"encoding/csv"
	"io"
	"os"
)

// RowSource supplies a header and a two-pass stream of raw string
// records to a Processor. Implementations must support being rewound:
// the Processor reads every row once to learn categorical levels, then
// again to fill the data matrix.
type RowSource interface {
	// Header returns the column names, in record order.
	Header() ([]string, error)
	// Rewind resets the source so the next Next() call returns the first
	// data record again.
	Rewind() error
	// Next returns the next record, or ok=false once the source is
	// exhausted.
	Next() (record []string, ok bool, err error)
}

// CSVRowSource is a RowSource backed by a delimited text file whose first
// line is the header.
type CSVRowSource struct {
	path      string
	delimiter rune

	file   *os.File
	reader *csv.Reader
	header []string
}

// NewCSVRowSource opens path and reads its header line. The file remains
// open until Close is called.
func NewCSVRowSource(path string, delimiter rune) (*CSVRowSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Wrapper(&IoError{Err: err}, "NewCSVRowSource")
	}

	src := &CSVRowSource{path: path, delimiter: delimiter, file: f}
	if err := src.reset(); err != nil {
		_ = f.Close()
		return nil, err
	}

	return src, nil
}

func (c *CSVRowSource) reset() error {
	if _, err := c.file.Seek(0, io.SeekStart); err != nil {
		return Wrapper(&IoError{Err: err}, "CSVRowSource: seek")
	}

	r := csv.NewReader(c.file)
	r.Comma = c.delimiter
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return Wrapper(&IoError{Err: err}, "CSVRowSource: read header")
	}

	c.header = header
	c.reader = r

	return nil
}

// Header implements RowSource.
func (c *CSVRowSource) Header() ([]string, error) {
	return c.header, nil
}

// Rewind implements RowSource by seeking back to the start of the file
// and re-reading (and discarding) the header line.
func (c *CSVRowSource) Rewind() error {
	return c.reset()
}

// Next implements RowSource.
func (c *CSVRowSource) Next() ([]string, bool, error) {
	rec, err := c.reader.Read()
	if err == io.EOF {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, Wrapper(&IoError{Err: err}, "CSVRowSource: read record")
	}

	return rec, true, nil
}

// Close releases the underlying file handle.
func (c *CSVRowSource) Close() error {
	return c.file.Close()
}
