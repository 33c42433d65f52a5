package filesort_test

import (
	"cmp"
	"context"
	"testing"

	"github.com/lanrat/filesort"
	"github.com/lanrat/filesort/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	s, err := filesort.New(codec.Lines(), cmp.Compare[string], nil)
	require.NoError(t, err)
	c := s.Config()
	assert.Equal(t, 100000, c.MaxItemsPerFile)
	assert.Equal(t, 100, c.MaxFilesPerMerge)
	assert.Equal(t, 8192, c.BufferSize)
	assert.False(t, c.Unique)
	assert.NotEmpty(t, c.MergeFilenamePrefix)
	assert.NotNil(t, c.Fs)

	// zero values are replaced, set values are kept
	s, err = filesort.New(codec.Lines(), cmp.Compare[string], &filesort.Config{MaxFilesPerMerge: 7})
	require.NoError(t, err)
	assert.Equal(t, 7, s.Config().MaxFilesPerMerge)
	assert.Equal(t, 100000, s.Config().MaxItemsPerFile)
}

func TestConfigErrors(t *testing.T) {
	tests := []struct {
		name   string
		config filesort.Config
		field  string
	}{
		{name: "fan-in of one", config: filesort.Config{MaxFilesPerMerge: 1}, field: "MaxFilesPerMerge"},
		{name: "negative fan-in", config: filesort.Config{MaxFilesPerMerge: -3}, field: "MaxFilesPerMerge"},
		{name: "negative chunk", config: filesort.Config{MaxItemsPerFile: -1}, field: "MaxItemsPerFile"},
		{name: "negative buffer", config: filesort.Config{BufferSize: -1}, field: "BufferSize"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := filesort.New(codec.Lines(), cmp.Compare[string], &tt.config)
			var cerr *filesort.ConfigError
			require.ErrorAs(t, err, &cerr)
			assert.Equal(t, tt.field, cerr.Field)
		})
	}
}

func TestNilArguments(t *testing.T) {
	var cerr *filesort.ConfigError

	_, err := filesort.New[string](nil, cmp.Compare[string], nil)
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "codec", cerr.Field)

	_, err = filesort.New(codec.Lines(), nil, nil)
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "compare", cerr.Field)

	s, err := filesort.New(codec.Lines(), cmp.Compare[string], nil)
	require.NoError(t, err)
	err = s.Sort(context.Background(), nil, "")
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "output", cerr.Field)
}

func TestConfigNotMutated(t *testing.T) {
	config := &filesort.Config{MaxItemsPerFile: 5}
	_, err := filesort.New(codec.Lines(), cmp.Compare[string], config)
	require.NoError(t, err)
	assert.Equal(t, 0, config.MaxFilesPerMerge)
	assert.Nil(t, config.Fs)
}
