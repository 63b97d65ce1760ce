package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	util "github.com/bietkhonhungvandi212/virtmem/internal/utils"
)

func TestParseArgs(t *testing.T) {
	t.Run("Positionals", func(t *testing.T) {
		opts, err := parseArgs([]string{"-seed", "9", "100", "10", "fifo", "scan"}, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Equal(t, 100, opts.Pages)
		assert.Equal(t, 10, opts.Frames)
		assert.Equal(t, "fifo", opts.Policy)
		assert.Equal(t, "scan", opts.Program)
		assert.Equal(t, int64(9), opts.Seed)
		assert.Equal(t, util.DefaultDiskPath, opts.DiskPath)
	})

	t.Run("ConfigFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "virtmem.yaml")
		content := "pages: 8\nframes: 2\npolicy: lru\nprogram: focus\nseed: 5\ndisk: other.disk\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		opts, err := parseArgs([]string{"-config", path, "-disk", "flag.disk"}, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Equal(t, 8, opts.Pages)
		assert.Equal(t, "lru", opts.Policy)
		assert.Equal(t, int64(5), opts.Seed, "file value kept")
		assert.Equal(t, "flag.disk", opts.DiskPath, "flag wins")

		opts, err = parseArgs([]string{"-config", path, "16", "4", "rand", "sort"}, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Equal(t, 16, opts.Pages)
		assert.Equal(t, "rand", opts.Policy)
		assert.Equal(t, "sort", opts.Program)
	})

	t.Run("Trace", func(t *testing.T) {
		opts, err := parseArgs([]string{"-trace", "4", "2", "fifo", "scan"}, &bytes.Buffer{})
		require.NoError(t, err)
		assert.True(t, opts.Trace)
		assert.Equal(t, "trace", opts.LogLevel)
	})

	bad := []struct {
		name string
		args []string
	}{
		{"NoArgs", nil},
		{"TooFew", []string{"10", "3", "fifo"}},
		{"TooMany", []string{"10", "3", "fifo", "scan", "x"}},
		{"PagesNotNumber", []string{"ten", "3", "fifo", "scan"}},
		{"FramesNotNumber", []string{"10", "3.5", "fifo", "scan"}},
		{"ZeroFrames", []string{"10", "0", "fifo", "scan"}},
		{"NegativePages", []string{"-1", "3", "fifo", "scan"}},
		{"UnknownPolicy", []string{"10", "3", "clock", "scan"}},
		{"UnknownProgram", []string{"10", "3", "fifo", "matmul"}},
		{"UnknownFlag", []string{"-verbose", "10", "3", "fifo", "scan"}},
		{"MissingConfig", []string{"-config", "/nonexistent/virtmem.yaml"}},
	}
	for _, tt := range bad {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseArgs(tt.args, &bytes.Buffer{})
			assert.Error(t, err)
		})
	}
}

func TestRun(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		summary string
		result  string
	}{
		{
			name:    "FullMemory",
			args:    []string{"3", "3", "fifo", "scan"},
			summary: "\nSUMMARY:\nNo. of page faults:3\nNo. of disk reads:0\nNo. of disk writes:0\n",
			result:  "scan result is 15667200\n",
		},
		{
			name:    "FIFOThrashing",
			args:    []string{"4", "2", "fifo", "scan"},
			summary: "\nSUMMARY:\nNo. of page faults:44\nNo. of disk reads:44\nNo. of disk writes:42\n",
			result:  "scan result is 20889600\n",
		},
		{
			name:    "LRUThrashing",
			args:    []string{"4", "2", "lru", "scan"},
			summary: "\nSUMMARY:\nNo. of page faults:44\nNo. of disk reads:44\nNo. of disk writes:42\n",
			result:  "scan result is 20889600\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			disk := filepath.Join(t.TempDir(), "virtmem.disk")
			var stdout, stderr bytes.Buffer

			code := run(append([]string{"-disk", disk}, tt.args...), &stdout, &stderr)
			require.Equal(t, 0, code, stderr.String())
			assert.Equal(t, tt.result+tt.summary, stdout.String())
		})
	}

	t.Run("RandomPolicy", func(t *testing.T) {
		disk := filepath.Join(t.TempDir(), "virtmem.disk")
		var stdout, stderr bytes.Buffer

		code := run([]string{"-disk", disk, "-seed", "3", "6", "3", "rand", "focus"}, &stdout, &stderr)
		require.Equal(t, 0, code, stderr.String())
		assert.Contains(t, stdout.String(), "focus result is ")
		assert.Contains(t, stdout.String(), "SUMMARY:")
	})

	t.Run("UsageOnBadArgs", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		code := run([]string{"10", "3", "clock", "scan"}, &stdout, &stderr)
		assert.Equal(t, 1, code)
		assert.Contains(t, stderr.String(), usage)
		assert.Empty(t, stdout.String())
	})

	t.Run("DiskCreationFails", func(t *testing.T) {
		disk := filepath.Join(t.TempDir(), "missing", "dir", "virtmem.disk")
		var stdout, stderr bytes.Buffer
		code := run([]string{"-disk", disk, "4", "2", "fifo", "scan"}, &stdout, &stderr)
		assert.Equal(t, 1, code)
		assert.Contains(t, stderr.String(), "couldn't create virtual disk")
	})
}
