package codec

import (
	"bufio"
	"encoding/gob"
	"io"
)

type gobCodec[T any] struct{}

// Gob returns a codec storing records as a gob stream. It works for any
// type gob can encode and is the simplest choice for Go structs that have
// no external file format.
func Gob[T any]() Codec[T] {
	return gobCodec[T]{}
}

func (gobCodec[T]) NewReader(r io.Reader) Reader[T] {
	return &gobReader[T]{dec: gob.NewDecoder(r)}
}

func (gobCodec[T]) NewWriter(w io.Writer) Writer[T] {
	bw := bufio.NewWriter(w)
	return &gobWriter[T]{w: bw, enc: gob.NewEncoder(bw)}
}

type gobReader[T any] struct {
	dec *gob.Decoder
}

func (g *gobReader[T]) Read() (T, error) {
	var v T
	err := g.dec.Decode(&v)
	return v, err
}

type gobWriter[T any] struct {
	w   *bufio.Writer
	enc *gob.Encoder
}

func (g *gobWriter[T]) Write(v T) error {
	return g.enc.Encode(v)
}

func (g *gobWriter[T]) Close() error {
	return g.w.Flush()
}
