package filesort

import (
	"bufio"
	"cmp"
	"context"
	"io"

	"github.com/lanrat/filesort/codec"
	"github.com/lanrat/filesort/queue"
	"github.com/spf13/afero"
)

// merge folds sorted files together, at most MaxFilesPerMerge at a time,
// until one file remains, and returns its name. Every input file is deleted
// once it has been fully read. With no files it returns a new empty file.
func (s *Sorter[T]) merge(ctx context.Context, files []string) (string, error) {
	if len(files) == 0 {
		return s.writeEmpty()
	}
	fanIn := s.config.MaxFilesPerMerge
	for round := 1; len(files) > 1; round++ {
		next := make([]string, 0, (len(files)+fanIn-1)/fanIn)
		for i := 0; i < len(files); i += fanIn {
			name, err := s.mergeGroup(ctx, files[i:min(i+fanIn, len(files))])
			if err != nil {
				return "", err
			}
			next = append(next, name)
		}
		var total int64
		for _, name := range next {
			total += s.records[name]
		}
		s.rounds = append(s.rounds, total)
		s.log("merge round %d reduced %d files to %d holding %d records", round, len(files), len(next), total)
		files = next
	}
	return files[0], nil
}

// writeEmpty creates a temp file holding no records. It goes through the
// codec so formats with framing stay valid.
func (s *Sorter[T]) writeEmpty() (string, error) {
	out, err := s.createSorted()
	if err != nil {
		return "", err
	}
	if err = out.finish(); err != nil {
		s.abort(out)
		return "", err
	}
	s.records[out.name()] = 0
	return out.name(), nil
}

// mergeFile represents each sorted file on disk and its next value
type mergeFile[T any] struct {
	name    string
	ord     int // position in the group, breaks ties between equal records
	file    afero.File
	reader  codec.Reader[T]
	nextRec T
}

func (s *Sorter[T]) openMergeFile(name string, ord int) (*mergeFile[T], error) {
	f, err := s.temp.Open(name)
	if err != nil {
		return nil, NewDiskError(err, "open", name)
	}
	return &mergeFile[T]{
		name:   name,
		ord:    ord,
		file:   f,
		reader: s.codec.NewReader(bufio.NewReaderSize(f, s.config.BufferSize)),
	}, nil
}

// getNext loads the next record into nextRec.
// It returns false once the file is exhausted.
func (m *mergeFile[T]) getNext() (bool, error) {
	rec, err := m.reader.Read()
	if err == io.EOF {
		return false, nil
	}
	if err != nil {
		return false, NewDeserializationError(err, m.name)
	}
	m.nextRec = rec
	return true, nil
}

func (m *mergeFile[T]) close() error {
	if m.file == nil {
		return nil
	}
	err := m.file.Close()
	m.file = nil
	return err
}

// consumed closes an exhausted merge file and deletes it.
func (s *Sorter[T]) consumed(m *mergeFile[T]) error {
	if err := m.close(); err != nil {
		return NewDiskError(err, "close", m.name)
	}
	if err := s.temp.Remove(m.name); err != nil {
		return NewDiskError(err, "remove", m.name)
	}
	delete(s.records, m.name)
	return nil
}

// mergeGroup k-way merges the files of one group into a new temp file.
// A group of one file is returned unchanged. All files opened here are
// closed on every return path, and the output is deleted on failure.
func (s *Sorter[T]) mergeGroup(ctx context.Context, group []string) (name string, err error) {
	s.log("merging %d files", len(group))
	if len(group) == 1 {
		return group[0], nil
	}
	if err = ctx.Err(); err != nil {
		return "", err
	}

	var cursors []*mergeFile[T]
	defer func() {
		for _, m := range cursors {
			_ = m.close()
		}
	}()

	out, err := s.createSorted()
	if err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			s.abort(out)
		}
	}()
	// runs first, so the cleanup above sees the error
	defer func() {
		if r := recover(); r != nil {
			err = NewComparisonError(r, "mergeGroup")
		}
	}()

	pq := queue.NewPriorityQueue(func(a, b *mergeFile[T]) int {
		if c := s.compare(a.nextRec, b.nextRec); c != 0 {
			return c
		}
		return cmp.Compare(a.ord, b.ord)
	})

	// start the merge by preloading the first record of every file
	for i, fileName := range group {
		m, err := s.openMergeFile(fileName, i)
		if err != nil {
			return "", err
		}
		cursors = append(cursors, m)
		more, err := m.getNext()
		if err != nil {
			return "", err
		}
		if !more {
			if err = s.consumed(m); err != nil {
				return "", err
			}
			continue
		}
		pq.Push(m)
	}

	for pq.Len() > 0 {
		m := pq.Peek()
		if err = out.write(m.nextRec); err != nil {
			return "", err
		}
		more, err := m.getNext()
		if err != nil {
			return "", err
		}
		if more {
			pq.PeekUpdate()
			continue
		}
		pq.Pop()
		if err = s.consumed(m); err != nil {
			return "", err
		}
	}

	if err = out.finish(); err != nil {
		return "", err
	}
	s.records[out.name()] = out.out.written
	return out.name(), nil
}
