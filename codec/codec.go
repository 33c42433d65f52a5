// Package codec defines how records are encoded to and decoded from the
// byte streams that filesort reads as input, spills as temporary files and
// publishes as output. Built-in codecs cover newline delimited text, fixed
// size binary records, CSV, JSON arrays and gob.
package codec

import (
	"errors"
	"io"
)

// ErrShortRecord is returned by a fixed size reader when the stream ends in
// the middle of a record.
var ErrShortRecord = errors.New("codec: stream ended inside a fixed size record")

// Reader decodes records one at a time from an underlying stream.
// Read returns io.EOF once the stream is exhausted.
type Reader[T any] interface {
	Read() (T, error)
}

// Writer encodes records to an underlying stream.
// Close flushes buffered data and writes any trailing framing. It does not
// close the underlying io.Writer, which stays owned by the caller.
type Writer[T any] interface {
	Write(T) error
	Close() error
}

// Codec creates readers and writers for records of type T.
// Implementations must be stateless so one Codec can be shared by every
// reader and writer of a sort.
type Codec[T any] interface {
	NewReader(r io.Reader) Reader[T]
	NewWriter(w io.Writer) Writer[T]
}
