package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v2"
)

const CONFIG_FILE = "ftype.yml"

type Configuration struct {
	Separator string   `yaml:"separator"`
	Jobs      int      `yaml:"jobs"`
	Backend   string   `yaml:"backend"`
	Brief     bool     `yaml:"brief"`
	Excludes  []string `yaml:"excludes"`
}

func Default() *Configuration {
	return &Configuration{
		Separator: ":",
		Jobs:      0,
		Backend:   "extension",
		Brief:     false,
		Excludes:  []string{},
	}
}

// Load reads the configuration at filePath on top of the defaults. A
// missing file is not an error.
func Load(filePath string) (*Configuration, error) {
	config := Default()

	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return config, nil
		}
		return nil, err
	}

	if err := yaml.UnmarshalStrict(data, config); err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}
	return config, nil
}

func (c *Configuration) Validate() error {
	if c.Jobs < 0 {
		return fmt.Errorf("jobs must not be negative, got %d", c.Jobs)
	}
	return nil
}
