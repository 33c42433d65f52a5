package tempfile

import (
	"os"
	"path/filepath"
)

// Dir returns the directory temp files should be created in. An empty dir
// means the OS default temp directory (os.TempDir, which honours $TMPDIR).
// Relative paths are made absolute so the result does not change if the
// working directory does.
func Dir(dir string) string {
	if dir == "" {
		return os.TempDir()
	}
	if abs, err := filepath.Abs(dir); err == nil {
		return abs
	}
	return dir
}
