// Package tempfile manages the intermediate files of an external sort.
// Every file it creates is tracked until it is removed or published, so a
// failed sort can delete everything it left behind. Publishing renames the
// finished file over its destination, which is atomic on POSIX filesystems:
// readers of the destination see either the old file or the complete new one.
package tempfile

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/afero"
)

// DefaultPrefix is the filename prefix used when none is given.
var DefaultPrefix = fmt.Sprintf("filesort_%d_", os.Getpid())

// PublishMode is the permission published files get. Temp files are
// created readable by the owner only.
const PublishMode os.FileMode = 0o644

// Manager allocates, tracks and deletes temporary files in one directory.
// A Manager is not safe for concurrent use.
type Manager struct {
	fs     afero.Fs
	dir    string
	prefix string
	live   map[string]struct{}
}

// New returns a Manager creating files named prefix* inside dir on fs.
// dir and its parents are created if missing. A nil fs uses the OS
// filesystem, an empty dir the OS temp directory (see Dir).
func New(fs afero.Fs, dir, prefix string) (*Manager, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	dir = Dir(dir)
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Manager{
		fs:     fs,
		dir:    dir,
		prefix: prefix,
		live:   make(map[string]struct{}),
	}, nil
}

// Fs returns the filesystem the manager works on.
func (m *Manager) Fs() afero.Fs {
	return m.fs
}

// Dir returns the directory new files are created in.
func (m *Manager) Dir() string {
	return m.dir
}

// Create opens a new, uniquely named, empty file for writing and starts
// tracking it.
func (m *Manager) Create() (afero.File, error) {
	f, err := afero.TempFile(m.fs, m.dir, m.prefix)
	if err != nil {
		return nil, err
	}
	m.live[f.Name()] = struct{}{}
	return f, nil
}

// Open opens a file for reading.
func (m *Manager) Open(name string) (afero.File, error) {
	return m.fs.Open(name)
}

// Remove deletes a tracked file and stops tracking it.
// A file that is already gone is not an error.
func (m *Manager) Remove(name string) error {
	err := m.fs.Remove(name)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	delete(m.live, name)
	return nil
}

// Publish atomically renames name to dest, replacing any file at dest, and
// stops tracking it. There is no copy fallback: if the filesystem cannot
// rename (for example dest is on another device) the error is returned and
// name is kept.
func (m *Manager) Publish(name, dest string) error {
	if err := m.fs.Chmod(name, PublishMode); err != nil {
		return err
	}
	if err := m.fs.Rename(name, dest); err != nil {
		return err
	}
	delete(m.live, name)
	return nil
}

// Len returns the number of tracked files.
func (m *Manager) Len() int {
	return len(m.live)
}

// Files returns the names of all tracked files in lexical order.
func (m *Manager) Files() []string {
	names := make([]string, 0, len(m.live))
	for name := range m.live {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Cleanup removes every tracked file. All removals are attempted; the
// returned error joins any failures.
func (m *Manager) Cleanup() error {
	var errs []error
	for _, name := range m.Files() {
		if err := m.Remove(name); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
