package filesort

import (
	"cmp"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lanrat/filesort/codec"
	"github.com/lanrat/filesort/tempfile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	msgs []string
}

func (r *recorder) log(msg string) {
	r.msgs = append(r.msgs, msg)
}

func (r *recorder) count(prefix string) int {
	n := 0
	for _, m := range r.msgs {
		if strings.HasPrefix(m, prefix) {
			n++
		}
	}
	return n
}

func newLineSorter(t *testing.T, config *Config) *Sorter[string] {
	t.Helper()
	s, err := New(codec.Lines(), cmp.Compare[string], config)
	require.NoError(t, err)
	return s
}

func assertEmptyDir(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "temp files left behind")
}

func TestMergeRoundsThreeChunks(t *testing.T) {
	dir := t.TempDir()
	tmp := filepath.Join(dir, "tmp")
	var rec recorder
	s := newLineSorter(t, &Config{
		MaxItemsPerFile:  1,
		MaxFilesPerMerge: 2,
		TempFilesDir:     tmp,
		Logger:           rec.log,
	})

	out := filepath.Join(dir, "out.txt")
	require.NoError(t, s.Sort(context.Background(), StringInputs("3\n1\n2\n"), out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "1\n2\n3\n", string(data))

	assert.Equal(t, 3, rec.count("total="), "one spill per record")
	assert.Equal(t, []int64{3, 3}, s.rounds, "two merge rounds, records conserved")
	assertEmptyDir(t, tmp)
}

func TestMergeRoundsFiveChunks(t *testing.T) {
	dir := t.TempDir()
	tmp := filepath.Join(dir, "tmp")
	s := newLineSorter(t, &Config{MaxItemsPerFile: 1, MaxFilesPerMerge: 2, TempFilesDir: tmp})

	out := filepath.Join(dir, "out.txt")
	require.NoError(t, s.Sort(context.Background(), StringInputs("5\n4\n3\n2\n1\n"), out))

	// 5 files -> 3 -> 2 -> 1
	assert.Equal(t, []int64{5, 5, 5}, s.rounds)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "1\n2\n3\n4\n5\n", string(data))
	assertEmptyDir(t, tmp)
}

func TestMergeRoundsUniqueAcrossChunks(t *testing.T) {
	dir := t.TempDir()
	s := newLineSorter(t, &Config{
		MaxItemsPerFile:  1,
		MaxFilesPerMerge: 2,
		TempFilesDir:     filepath.Join(dir, "tmp"),
		Unique:           true,
	})

	out := filepath.Join(dir, "out.txt")
	require.NoError(t, s.Sort(context.Background(), StringInputs("a\na\nb\na\n"), out))

	// round 1: {a,a}->a and {b,a}->a,b ; round 2: {a},{a,b} -> a,b
	assert.Equal(t, []int64{3, 2}, s.rounds)
	assert.Equal(t, int64(4), s.Count())
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "a\nb\n", string(data))
}

func TestSingleChunkNeedsNoMerge(t *testing.T) {
	dir := t.TempDir()
	var rec recorder
	s := newLineSorter(t, &Config{
		TempFilesDir: filepath.Join(dir, "tmp"),
		Unique:       true,
		Logger:       rec.log,
	})

	out := filepath.Join(dir, "out.txt")
	require.NoError(t, s.Sort(context.Background(), StringInputs("b\na\nb\n"), out))

	assert.Empty(t, s.rounds)
	assert.Equal(t, 0, rec.count("merging"))
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "a\nb\n", string(data))
}

func TestMergeGroupSkipsEmptyFiles(t *testing.T) {
	dir := t.TempDir()
	s := newLineSorter(t, &Config{TempFilesDir: dir})
	s.records = make(map[string]int64)

	var err error
	s.temp, err = tempfile.New(s.config.Fs, s.config.TempFilesDir, s.config.MergeFilenamePrefix)
	require.NoError(t, err)

	empty, err := s.writeEmpty()
	require.NoError(t, err)

	s.chunk = []string{"c", "a"}
	full, err := s.spill(context.Background())
	require.NoError(t, err)

	merged, err := s.mergeGroup(context.Background(), []string{empty, full})
	require.NoError(t, err)

	data, err := os.ReadFile(merged)
	require.NoError(t, err)
	assert.Equal(t, "a\nc\n", string(data))
	assert.Equal(t, int64(2), s.records[merged])

	// inputs were consumed and deleted
	assert.Equal(t, []string{merged}, s.temp.Files())
	_, err = os.Stat(empty)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(full)
	assert.True(t, os.IsNotExist(err))
}
