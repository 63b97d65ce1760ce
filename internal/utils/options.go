package util

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultDiskPath is the backing file used when none is configured
const DefaultDiskPath = "myvirtualdisk"

// Options represents simulation configuration options
type Options struct {
	DiskPath string `yaml:"disk"`
	Pages    int    `yaml:"pages"`
	Frames   int    `yaml:"frames"`
	Policy   string `yaml:"policy"`
	Program  string `yaml:"program"`
	Seed     int64  `yaml:"seed"`
	LogLevel string `yaml:"log_level"`
	Trace    bool   `yaml:"trace"`
}

// DefaultOptions returns default simulation options
func DefaultOptions() Options {
	return Options{
		DiskPath: DefaultDiskPath,
		Seed:     1,
		LogLevel: "warn",
	}
}

// LoadOptions reads a YAML file on top of DefaultOptions. Keys missing from
// the file keep their default value.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()

	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("parse config %s: %w", path, err)
	}

	return opts, nil
}

// Validate checks the sizes. Policy and program names are checked by the
// packages that own them.
func (o Options) Validate() error {
	if o.Pages <= 0 {
		return ErrInvalidPageCount
	}
	if o.Frames <= 0 {
		return ErrInvalidFrameCount
	}
	return nil
}
