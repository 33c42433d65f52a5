package filesort

import (
	"github.com/lanrat/filesort/tempfile"
	"github.com/spf13/afero"
)

// Config holds configuration settings for filesort
type Config struct {
	MaxItemsPerFile     int      // amount of records to store in each chunk which will be written to disk
	MaxFilesPerMerge    int      // maximum number of files merged at once, must be at least 2
	BufferSize          int      // file IO buffer size for every file read or written
	TempFilesDir        string   // empty for use OS default ex: /tmp
	MergeFilenamePrefix string   // filename prefix for files put in temp directory
	Unique              bool     // keep only the first of records that compare equal
	Logger              Logger   // receives progress messages, nil to disable
	Fs                  afero.Fs // filesystem for temp files and the output, nil for the OS filesystem
}

// DefaultConfig returns the default configuration options used if none provided
func DefaultConfig() *Config {
	return &Config{
		MaxItemsPerFile:     100000,
		MaxFilesPerMerge:    100,
		BufferSize:          8192,
		TempFilesDir:        "",
		MergeFilenamePrefix: tempfile.DefaultPrefix,
	}
}

// mergeConfig returns a copy of c with any values not set replaced by the
// defaults, or a *ConfigError if a value is set but invalid.
func mergeConfig(c *Config) (*Config, error) {
	d := DefaultConfig()
	if c == nil {
		d.Fs = afero.NewOsFs()
		return d, nil
	}
	merged := *c
	if merged.MaxItemsPerFile == 0 {
		merged.MaxItemsPerFile = d.MaxItemsPerFile
	}
	if merged.MaxFilesPerMerge == 0 {
		merged.MaxFilesPerMerge = d.MaxFilesPerMerge
	}
	if merged.BufferSize == 0 {
		merged.BufferSize = d.BufferSize
	}
	if merged.MergeFilenamePrefix == "" {
		merged.MergeFilenamePrefix = d.MergeFilenamePrefix
	}
	if merged.Fs == nil {
		merged.Fs = afero.NewOsFs()
	}
	// skipping TempFilesDir as it is the empty string
	if err := merged.validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

func (c *Config) validate() error {
	if c.MaxItemsPerFile <= 0 {
		return &ConfigError{Field: "MaxItemsPerFile", Value: c.MaxItemsPerFile, Reason: "must be greater than 0"}
	}
	if c.MaxFilesPerMerge <= 1 {
		return &ConfigError{Field: "MaxFilesPerMerge", Value: c.MaxFilesPerMerge, Reason: "must be greater than 1"}
	}
	if c.BufferSize <= 0 {
		return &ConfigError{Field: "BufferSize", Value: c.BufferSize, Reason: "must be greater than 0"}
	}
	return nil
}
