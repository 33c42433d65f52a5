package filesort

import (
	"bufio"

	"github.com/spf13/afero"
)

// sortedFile is a temp file being filled with records in sorted order.
type sortedFile[T any] struct {
	file   afero.File
	buf    *bufio.Writer
	out    uniqWriter[T]
	closed bool
}

// createSorted allocates a new temp file and wraps it in the codec writer.
func (s *Sorter[T]) createSorted() (*sortedFile[T], error) {
	f, err := s.temp.Create()
	if err != nil {
		return nil, NewDiskError(err, "create temp file", s.temp.Dir())
	}
	buf := bufio.NewWriterSize(f, s.config.BufferSize)
	return &sortedFile[T]{
		file: f,
		buf:  buf,
		out: uniqWriter[T]{
			w:       s.codec.NewWriter(buf),
			compare: s.compare,
			unique:  s.config.Unique,
		},
	}, nil
}

func (o *sortedFile[T]) name() string {
	return o.file.Name()
}

func (o *sortedFile[T]) write(rec T) error {
	if err := o.out.Write(rec); err != nil {
		return NewSerializationError(err, o.name())
	}
	return nil
}

// finish flushes every buffered byte and closes the file.
func (o *sortedFile[T]) finish() error {
	o.closed = true
	if err := o.out.w.Close(); err != nil {
		_ = o.file.Close()
		return NewSerializationError(err, o.name())
	}
	if err := o.buf.Flush(); err != nil {
		_ = o.file.Close()
		return NewDiskError(err, "write", o.name())
	}
	if err := o.file.Close(); err != nil {
		return NewDiskError(err, "close", o.name())
	}
	return nil
}

// abort closes and deletes a file that will not be completed.
func (s *Sorter[T]) abort(o *sortedFile[T]) {
	if !o.closed {
		o.closed = true
		_ = o.file.Close()
	}
	_ = s.temp.Remove(o.name())
}
