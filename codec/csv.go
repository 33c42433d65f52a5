package codec

import (
	"cmp"
	"encoding/csv"
	"io"
)

// CSVOptions configures the CSV codec. The zero value reads and writes
// RFC 4180 CSV with a comma separator.
type CSVOptions struct {
	Comma      rune // field delimiter, ',' when zero
	Comment    rune // lines starting with Comment are skipped when reading
	LazyQuotes bool
	UseCRLF    bool // write "\r\n" line endings
}

type csvCodec struct {
	opts CSVOptions
}

// CSV returns a codec where every CSV row is a []string record.
func CSV(opts CSVOptions) Codec[[]string] {
	return csvCodec{opts: opts}
}

func (c csvCodec) NewReader(r io.Reader) Reader[[]string] {
	cr := csv.NewReader(r)
	if c.opts.Comma != 0 {
		cr.Comma = c.opts.Comma
	}
	cr.Comment = c.opts.Comment
	cr.LazyQuotes = c.opts.LazyQuotes
	cr.FieldsPerRecord = -1
	return cr
}

func (c csvCodec) NewWriter(w io.Writer) Writer[[]string] {
	cw := csv.NewWriter(w)
	if c.opts.Comma != 0 {
		cw.Comma = c.opts.Comma
	}
	cw.UseCRLF = c.opts.UseCRLF
	return &csvWriter{w: cw}
}

type csvWriter struct {
	w *csv.Writer
}

func (c *csvWriter) Write(rec []string) error {
	return c.w.Write(rec)
}

func (c *csvWriter) Close() error {
	c.w.Flush()
	return c.w.Error()
}

// CompareColumn returns a comparison function ordering CSV rows by the
// string value of column i. Rows without column i sort first.
func CompareColumn(i int) func(a, b []string) int {
	return func(a, b []string) int {
		switch {
		case len(a) <= i && len(b) <= i:
			return 0
		case len(a) <= i:
			return -1
		case len(b) <= i:
			return 1
		}
		return cmp.Compare(a[i], b[i])
	}
}
