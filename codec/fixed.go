package codec

import (
	"bufio"
	"fmt"
	"io"
)

type fixedSize struct {
	size int
}

// FixedSize returns a codec for binary records that are exactly size bytes
// long with no framing between them. It panics if size is not positive.
func FixedSize(size int) Codec[[]byte] {
	if size <= 0 {
		panic("codec: fixed record size must be positive")
	}
	return fixedSize{size: size}
}

func (c fixedSize) NewReader(r io.Reader) Reader[[]byte] {
	return &fixedReader{r: r, size: c.size}
}

func (c fixedSize) NewWriter(w io.Writer) Writer[[]byte] {
	return &fixedWriter{w: bufio.NewWriter(w), size: c.size}
}

type fixedReader struct {
	r    io.Reader
	size int
}

func (f *fixedReader) Read() ([]byte, error) {
	// each record gets its own slice, records are held in chunks
	rec := make([]byte, f.size)
	_, err := io.ReadFull(f.r, rec)
	if err == io.ErrUnexpectedEOF {
		return nil, ErrShortRecord
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

type fixedWriter struct {
	w    *bufio.Writer
	size int
}

func (f *fixedWriter) Write(rec []byte) error {
	if len(rec) != f.size {
		return fmt.Errorf("codec: record is %d bytes, want %d", len(rec), f.size)
	}
	_, err := f.w.Write(rec)
	return err
}

func (f *fixedWriter) Close() error {
	return f.w.Flush()
}
