package filesort

import (
	"io"
	"iter"

	"github.com/lanrat/filesort/codec"
)

// Transform rewrites the stream of records decoded from an input before
// they are chunked. Transforms are applied lazily, once per input stream.
// A returned reader that holds resources should implement io.Closer; the
// sorter closes it when the input is done or on error.
type Transform[T any] func(codec.Reader[T]) codec.Reader[T]

// Chain composes transforms so they apply left to right. Nil transforms are skipped.
func Chain[T any](transforms ...Transform[T]) Transform[T] {
	return func(r codec.Reader[T]) codec.Reader[T] {
		for _, t := range transforms {
			if t != nil {
				r = t(r)
			}
		}
		return r
	}
}

// Filter drops every record for which keep returns false.
func Filter[T any](keep func(T) bool) Transform[T] {
	return func(r codec.Reader[T]) codec.Reader[T] {
		return &filterReader[T]{src: r, keep: keep}
	}
}

// Map replaces every record with fn(record).
func Map[T any](fn func(T) T) Transform[T] {
	return func(r codec.Reader[T]) codec.Reader[T] {
		return &mapReader[T]{src: r, fn: fn}
	}
}

// FlatMap replaces every record with the zero or more records fn returns.
func FlatMap[T any](fn func(T) []T) Transform[T] {
	return func(r codec.Reader[T]) codec.Reader[T] {
		return &flatMapReader[T]{src: r, fn: fn}
	}
}

// Stream applies an arbitrary transformation over the whole sequence of
// records. If reading the input fails, fn's sequence is stopped and the
// error is returned by the reader.
func Stream[T any](fn func(iter.Seq[T]) iter.Seq[T]) Transform[T] {
	return func(r codec.Reader[T]) codec.Reader[T] {
		s := &streamReader[T]{src: r}
		seq := func(yield func(T) bool) {
			for {
				v, err := s.src.Read()
				if err != nil {
					if err != io.EOF {
						s.err = err
					}
					return
				}
				if !yield(v) {
					return
				}
			}
		}
		s.next, s.stop = iter.Pull(fn(seq))
		return s
	}
}

// closeReader closes r if it holds resources.
func closeReader(r any) error {
	if c, ok := r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

type filterReader[T any] struct {
	src  codec.Reader[T]
	keep func(T) bool
}

func (f *filterReader[T]) Read() (T, error) {
	for {
		v, err := f.src.Read()
		if err != nil || f.keep(v) {
			return v, err
		}
	}
}

func (f *filterReader[T]) Close() error {
	return closeReader(f.src)
}

type mapReader[T any] struct {
	src codec.Reader[T]
	fn  func(T) T
}

func (m *mapReader[T]) Read() (T, error) {
	v, err := m.src.Read()
	if err != nil {
		return v, err
	}
	return m.fn(v), nil
}

func (m *mapReader[T]) Close() error {
	return closeReader(m.src)
}

type flatMapReader[T any] struct {
	src     codec.Reader[T]
	fn      func(T) []T
	pending []T
}

func (f *flatMapReader[T]) Read() (T, error) {
	for len(f.pending) == 0 {
		v, err := f.src.Read()
		if err != nil {
			var zero T
			return zero, err
		}
		f.pending = f.fn(v)
	}
	v := f.pending[0]
	f.pending = f.pending[1:]
	return v, nil
}

func (f *flatMapReader[T]) Close() error {
	f.pending = nil
	return closeReader(f.src)
}

type streamReader[T any] struct {
	src  codec.Reader[T]
	next func() (T, bool)
	stop func()
	err  error
}

func (s *streamReader[T]) Read() (T, error) {
	v, ok := s.next()
	if s.err != nil {
		var zero T
		return zero, s.err
	}
	if !ok {
		return v, io.EOF
	}
	return v, nil
}

func (s *streamReader[T]) Close() error {
	s.stop()
	return closeReader(s.src)
}
