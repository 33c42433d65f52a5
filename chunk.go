package filesort

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"time"
)

// splitAndSort reads every input in turn into chunks of at most
// MaxItemsPerFile records, sorts each chunk and spills it to a temp file.
// The end of each input also ends the current chunk.
// It returns the spilled files in the order they were written.
func (s *Sorter[T]) splitAndSort(ctx context.Context, inputs []Input, transform Transform[T]) ([]string, error) {
	var files []string
	for i, input := range inputs {
		var err error
		files, err = s.readInput(ctx, fmt.Sprintf("input %d", i), input, transform, files)
		if err != nil {
			return files, err
		}
	}
	return files, nil
}

// readInput chunks a single input, appending the spilled files to files.
func (s *Sorter[T]) readInput(ctx context.Context, desc string, input Input, transform Transform[T], files []string) (_ []string, err error) {
	rc, err := input()
	if err != nil {
		return files, NewDiskError(err, "open", desc)
	}
	defer func() {
		if cerr := rc.Close(); cerr != nil && err == nil {
			err = NewDiskError(cerr, "close", desc)
		}
	}()

	r := s.codec.NewReader(bufio.NewReaderSize(rc, s.config.BufferSize))
	if transform != nil {
		r = transform(r)
	}
	defer func() {
		if cerr := closeReader(r); cerr != nil && err == nil {
			err = NewDeserializationError(cerr, desc)
		}
	}()

	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return files, NewDeserializationError(err, desc)
		}
		s.chunk = append(s.chunk, rec)
		if len(s.chunk) >= s.config.MaxItemsPerFile {
			name, err := s.spill(ctx)
			if err != nil {
				return files, err
			}
			files = append(files, name)
		}
	}
	if len(s.chunk) > 0 {
		name, err := s.spill(ctx)
		if err != nil {
			return files, err
		}
		files = append(files, name)
	}
	return files, nil
}

// spill sorts the current chunk, writes it to a new temp file and empties
// the chunk so its memory is reused for the next one.
func (s *Sorter[T]) spill(ctx context.Context) (string, error) {
	defer func() {
		clear(s.chunk) // drop references so spilled records can be collected
		s.chunk = s.chunk[:0]
	}()
	if err := ctx.Err(); err != nil {
		return "", err
	}

	start := time.Now()
	if err := s.sortChunk(); err != nil {
		return "", err
	}

	out, err := s.createSorted()
	if err != nil {
		return "", err
	}
	for _, rec := range s.chunk {
		if err = out.write(rec); err != nil {
			s.abort(out)
			return "", err
		}
	}
	if err = out.finish(); err != nil {
		s.abort(out)
		return "", err
	}

	name := out.name()
	s.records[name] = out.out.written
	s.count += int64(len(s.chunk))
	s.log("total=%d, sorted %d records to file %s in %.3fs",
		s.count, len(s.chunk), filepath.Base(name), time.Since(start).Seconds())
	return name, nil
}

// sortChunk sorts the chunk in place, turning a panic in the comparison
// function into a ComparisonError.
func (s *Sorter[T]) sortChunk() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = NewComparisonError(r, "sortChunk")
		}
	}()
	slices.SortStableFunc(s.chunk, s.compare)
	return nil
}
