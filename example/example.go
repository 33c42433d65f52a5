package main

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/lanrat/filesort"
	"github.com/lanrat/filesort/codec"
)

var count = int(1e6) // 1M

const recordSize = 8

func main() {
	dir, err := os.MkdirTemp("", "filesort-example-")
	if err != nil {
		fmt.Printf("err: %s\n", err.Error())
		os.Exit(1)
	}
	defer os.RemoveAll(dir)

	// write unsorted fixed size records, big endian so bytes.Compare orders them numerically
	input := filepath.Join(dir, "input.bin")
	if err := writeRandom(input); err != nil {
		fmt.Printf("err: %s\n", err.Error())
		return
	}

	// create the sorter and start sorting
	sorter, err := filesort.New(codec.FixedSize(recordSize), bytes.Compare, &filesort.Config{
		MaxItemsPerFile: 100000,
		TempFilesDir:    dir,
		Logger:          filesort.StdoutLogger(),
	})
	if err != nil {
		fmt.Printf("err: %s\n", err.Error())
		return
	}
	output := filepath.Join(dir, "sorted.bin")
	if err := sorter.Sort(context.Background(), filesort.FileInputs(nil, input), output); err != nil {
		fmt.Printf("err: %s\n", err.Error())
		return
	}

	// print the head of the sorted data
	f, err := os.Open(output)
	if err != nil {
		fmt.Printf("err: %s\n", err.Error())
		return
	}
	defer f.Close()
	r := codec.FixedSize(recordSize).NewReader(f)
	for i := 0; i < 10; i++ {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			fmt.Printf("err: %s\n", err.Error())
			return
		}
		fmt.Printf("%d\n", binary.BigEndian.Uint64(rec))
	}
}

func writeRandom(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := codec.FixedSize(recordSize).NewWriter(f)
	rec := make([]byte, recordSize)
	for i := 0; i < count; i++ {
		binary.BigEndian.PutUint64(rec, rand.Uint64())
		if err := w.Write(rec); err != nil {
			f.Close()
			return err
		}
	}
	if err := w.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
