package diff

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/lanrat/filesort/codec"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

// readAheadSize is the number of decoded records buffered per file.
const readAheadSize = 1024

// Files compares two files, each sorted by compare and encoded with c, and
// calls resultFunc for every record in merged order. Both files are decoded
// concurrently in their own goroutines while the comparison runs in the
// caller's. A nil fs uses the OS filesystem.
func Files[T any](ctx context.Context, fs afero.Fs, a, b string, c codec.Codec[T], compare CompareFunc[T], resultFunc ResultFunc[T]) (Result, error) {
	if c == nil || compare == nil || resultFunc == nil {
		return Result{}, fmt.Errorf("arguments must not be nil")
	}
	if fs == nil {
		fs = afero.NewOsFs()
	}

	g, gctx := errgroup.WithContext(ctx)
	aChan := make(chan T, readAheadSize)
	bChan := make(chan T, readAheadSize)
	g.Go(func() error {
		return decodeFile(gctx, fs, a, c, aChan)
	})
	g.Go(func() error {
		return decodeFile(gctx, fs, b, c, bChan)
	})

	var r Result
	g.Go(func() error {
		var err error
		r, err = Channels(gctx, aChan, bChan, compare, resultFunc)
		return err
	})

	err := g.Wait()
	return r, err
}

// decodeFile sends every record of the named file to out and closes out.
func decodeFile[T any](ctx context.Context, fs afero.Fs, name string, c codec.Codec[T], out chan<- T) (err error) {
	defer close(out)
	f, err := fs.Open(name)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	r := c.NewReader(bufio.NewReader(f))
	for {
		rec, err := r.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading %s: %w", name, err)
		}
		select {
		case out <- rec:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
