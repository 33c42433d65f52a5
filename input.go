package filesort

import (
	"io"
	"strings"

	"github.com/spf13/afero"
)

// Input supplies one stream of encoded records. Inputs are opened one at a
// time, in order, when the sort reaches them, and closed once read.
type Input func() (io.ReadCloser, error)

// FileInput returns an Input reading the file at path on fs.
// A nil fs uses the OS filesystem.
func FileInput(fs afero.Fs, path string) Input {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return func() (io.ReadCloser, error) {
		return fs.Open(path)
	}
}

// FileInputs returns a FileInput for every path.
func FileInputs(fs afero.Fs, paths ...string) []Input {
	inputs := make([]Input, 0, len(paths))
	for _, p := range paths {
		inputs = append(inputs, FileInput(fs, p))
	}
	return inputs
}

// ReaderInput returns an Input reading from r. The sort does not close r.
func ReaderInput(r io.Reader) Input {
	return func() (io.ReadCloser, error) {
		return io.NopCloser(r), nil
	}
}

// StringInputs returns one Input per string, each reading the string's
// bytes as a separate stream.
func StringInputs(s ...string) []Input {
	inputs := make([]Input, 0, len(s))
	for _, str := range s {
		inputs = append(inputs, ReaderInput(strings.NewReader(str)))
	}
	return inputs
}
