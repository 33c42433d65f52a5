package filesort_test

import (
	"cmp"
	"context"
	"errors"
	"io"
	"iter"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lanrat/filesort"
	"github.com/lanrat/filesort/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll[T any](t *testing.T, r codec.Reader[T]) []T {
	t.Helper()
	var out []T
	for {
		v, err := r.Read()
		if err == io.EOF {
			return out
		}
		require.NoError(t, err)
		out = append(out, v)
	}
}

func lines(s string) codec.Reader[string] {
	return codec.Lines().NewReader(strings.NewReader(s))
}

func TestFilter(t *testing.T) {
	r := filesort.Filter(func(s string) bool { return s != "drop" })(lines("a\ndrop\nb\ndrop\n"))
	assert.Equal(t, []string{"a", "b"}, readAll(t, r))
}

func TestMap(t *testing.T) {
	r := filesort.Map(strings.ToUpper)(lines("a\nb\n"))
	assert.Equal(t, []string{"A", "B"}, readAll(t, r))
}

func TestFlatMap(t *testing.T) {
	r := filesort.FlatMap(func(s string) []string { return strings.Split(s, ",") })(lines("a,b\n\nc\nd,e,f\n"))
	assert.Equal(t, []string{"a", "b", "", "c", "d", "e", "f"}, readAll(t, r))

	r = filesort.FlatMap(func(string) []string { return nil })(lines("a\nb\n"))
	assert.Empty(t, readAll(t, r))
}

func take(n int) func(iter.Seq[string]) iter.Seq[string] {
	return func(seq iter.Seq[string]) iter.Seq[string] {
		return func(yield func(string) bool) {
			i := 0
			for v := range seq {
				if i >= n || !yield(v) {
					return
				}
				i++
			}
		}
	}
}

func TestStream(t *testing.T) {
	r := filesort.Stream(take(2))(lines("a\nb\nc\nd\n"))
	assert.Equal(t, []string{"a", "b"}, readAll(t, r))
	require.NoError(t, r.(io.Closer).Close())
}

type failAfter struct {
	n   int
	err error
}

func (f *failAfter) Read() (string, error) {
	if f.n == 0 {
		return "", f.err
	}
	f.n--
	return "ok", nil
}

func TestStreamSourceError(t *testing.T) {
	boom := errors.New("boom")
	r := filesort.Stream(take(10))(&failAfter{n: 2, err: boom})
	v, err := r.Read()
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	_, err = r.Read()
	require.NoError(t, err)
	_, err = r.Read()
	assert.ErrorIs(t, err, boom)
	require.NoError(t, r.(io.Closer).Close())
}

func TestChainOrder(t *testing.T) {
	chain := filesort.Chain(
		filesort.Map(func(s string) string { return s + "!" }),
		nil,
		filesort.Filter(func(s string) bool { return s != "b!" }),
		filesort.FlatMap(func(s string) []string { return []string{s, s} }),
	)
	assert.Equal(t, []string{"a!", "a!", "c!", "c!"}, readAll(t, chain(lines("a\nb\nc\n"))))
}

func TestSortWithTransforms(t *testing.T) {
	dir := t.TempDir()
	s, err := filesort.New(codec.Lines(), cmp.Compare[string], &filesort.Config{
		MaxItemsPerFile:  2,
		MaxFilesPerMerge: 2,
		TempFilesDir:     dir,
		Unique:           true,
	})
	require.NoError(t, err)

	out := filepath.Join(dir, "out.txt")
	err = s.Sort(context.Background(), filesort.StringInputs("pear,fig\n#skip\napple\n", "fig,kiwi\n"), out,
		filesort.Filter(func(s string) bool { return !strings.HasPrefix(s, "#") }),
		filesort.FlatMap(func(s string) []string { return strings.Split(s, ",") }),
		filesort.Map(strings.ToUpper),
		filesort.Stream(take(3)), // applied per input stream
	)
	require.NoError(t, err)
	// stream 1: PEAR FIG APPLE ; stream 2: FIG KIWI
	assert.Equal(t, "APPLE\nFIG\nKIWI\nPEAR\n", readString(t, out))
	assert.Equal(t, int64(5), s.Count())
}
