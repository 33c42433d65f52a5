// Package filesort implements an external sort of record files that do not
// fit in memory. Records are read from the inputs in chunks, each chunk is
// sorted in memory and spilled to a temporary file, and the temporary files
// are merged with a bounded fan-in k-way merge until a single sorted file
// remains. That file is then renamed over the destination, so the
// destination is either untouched or holds the complete sorted output.
//
// Memory use is bounded by one chunk of Config.MaxItemsPerFile records
// while splitting, and by Config.MaxFilesPerMerge open files with one
// buffered record each while merging.
package filesort

import (
	"cmp"
	"context"
	"fmt"
	"time"

	"github.com/lanrat/filesort/codec"
	"github.com/lanrat/filesort/tempfile"
)

// Sorter sorts inputs of records of type T into an output file.
// A Sorter may be reused for several sorts, one at a time; it is not safe
// for concurrent use.
type Sorter[T any] struct {
	config  Config
	codec   codec.Codec[T]
	compare CompareFunc[T]

	// per sort state
	temp    *tempfile.Manager
	chunk   []T
	count   int64
	records map[string]int64 // records held by each live sorted file
	rounds  []int64          // records after each merge round
}

// New returns a Sorter reading and writing records with c and ordering
// them with compare. config can be nil to use the defaults, or only set the
// non-default values desired. Invalid settings are reported as a
// *ConfigError before any file is touched.
func New[T any](c codec.Codec[T], compare CompareFunc[T], config *Config) (*Sorter[T], error) {
	if c == nil {
		return nil, &ConfigError{Field: "codec", Value: nil, Reason: "must not be nil"}
	}
	if compare == nil {
		return nil, &ConfigError{Field: "compare", Value: nil, Reason: "must not be nil"}
	}
	merged, err := mergeConfig(config)
	if err != nil {
		return nil, err
	}
	return &Sorter[T]{
		config:  *merged,
		codec:   c,
		compare: compare,
	}, nil
}

// Config returns the effective configuration, with defaults applied.
func (s *Sorter[T]) Config() Config {
	return s.config
}

// Count returns the number of records read by the last call to Sort,
// after transforms and before duplicates are removed.
func (s *Sorter[T]) Count() int64 {
	return s.count
}

// Sort reads every input, applies transforms to each input's records, and
// writes all records in sorted order to output, replacing any existing
// file there.
//
// On success exactly one file exists at output and every temp file has been
// removed. On failure the error is returned, output is left untouched, and
// the temp files created by this sort are removed. Errors caused by I/O
// match ErrIO. The context is checked between chunks and merge groups.
func (s *Sorter[T]) Sort(ctx context.Context, inputs []Input, output string, transforms ...Transform[T]) (err error) {
	if output == "" {
		return &ConfigError{Field: "output", Value: output, Reason: "must not be empty"}
	}
	start := time.Now()
	s.count = 0
	s.records = make(map[string]int64)
	s.rounds = s.rounds[:0]

	s.temp, err = tempfile.New(s.config.Fs, s.config.TempFilesDir, s.config.MergeFilenamePrefix)
	if err != nil {
		return NewDiskError(err, "create temp directory", tempfile.Dir(s.config.TempFilesDir))
	}
	defer func() {
		if err == nil {
			return
		}
		if cerr := s.temp.Cleanup(); cerr != nil {
			s.log("failed to remove temp files: %v", cerr)
		}
	}()

	s.log("starting sort")
	s.log("unique = %t", s.config.Unique)

	files, err := s.splitAndSort(ctx, inputs, Chain(transforms...))
	s.chunk = nil
	if err != nil {
		return err
	}
	s.log("completed initial split and sort, starting merge")

	result, err := s.merge(ctx, files)
	if err != nil {
		return err
	}

	if err = s.temp.Publish(result, output); err != nil {
		return NewDiskError(err, "publish", output)
	}
	s.log("sort of %d records completed in %.3fs", s.count, time.Since(start).Seconds())
	return nil
}

func (s *Sorter[T]) log(format string, args ...any) {
	if s.config.Logger != nil {
		s.config.Logger(fmt.Sprintf(format, args...))
	}
}

// SortLines sorts UTF-8 text inputs line by line in natural string order
// and writes the result to output.
func SortLines(ctx context.Context, inputs []Input, output string, config *Config) error {
	s, err := New(codec.Lines(), cmp.Compare[string], config)
	if err != nil {
		return err
	}
	return s.Sort(ctx, inputs, output)
}
