package codec

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
)

type jsonArray[T any] struct{}

// JSONArray returns a codec for a stream holding a single JSON array where
// each element is a record decoded into T. An empty stream reads as an
// empty array.
func JSONArray[T any]() Codec[T] {
	return jsonArray[T]{}
}

func (jsonArray[T]) NewReader(r io.Reader) Reader[T] {
	return &jsonArrayReader[T]{dec: json.NewDecoder(r)}
}

func (jsonArray[T]) NewWriter(w io.Writer) Writer[T] {
	return &jsonArrayWriter[T]{w: bufio.NewWriter(w)}
}

type jsonArrayReader[T any] struct {
	dec     *json.Decoder
	started bool
	done    bool
}

func (j *jsonArrayReader[T]) Read() (T, error) {
	var v T
	if j.done {
		return v, io.EOF
	}
	if !j.started {
		tok, err := j.dec.Token()
		if err == io.EOF {
			j.done = true
			return v, io.EOF
		}
		if err != nil {
			return v, err
		}
		if d, ok := tok.(json.Delim); !ok || d != '[' {
			return v, fmt.Errorf("codec: expected start of JSON array, got %v", tok)
		}
		j.started = true
	}
	if !j.dec.More() {
		// consume the closing bracket
		if _, err := j.dec.Token(); err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return v, err
		}
		j.done = true
		return v, io.EOF
	}
	if err := j.dec.Decode(&v); err != nil {
		return v, err
	}
	return v, nil
}

type jsonArrayWriter[T any] struct {
	w *bufio.Writer
	n int
}

func (j *jsonArrayWriter[T]) Write(v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	sep := ",\n"
	if j.n == 0 {
		sep = "[\n"
	}
	if _, err = j.w.WriteString(sep); err != nil {
		return err
	}
	if _, err = j.w.Write(data); err != nil {
		return err
	}
	j.n++
	return nil
}

func (j *jsonArrayWriter[T]) Close() error {
	end := "\n]\n"
	if j.n == 0 {
		end = "[]\n"
	}
	if _, err := j.w.WriteString(end); err != nil {
		return err
	}
	return j.w.Flush()
}
