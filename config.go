package pagina

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tsawler/pagina/classify"
	"github.com/tsawler/pagina/figure"
	"github.com/tsawler/pagina/heading"
	"github.com/tsawler/pagina/list"
	"github.com/tsawler/pagina/table"
)

// Config holds configuration for the whole pipeline
type Config struct {
	// Workers is the number of pages classified concurrently. Zero or
	// negative means one worker per CPU.
	Workers int `yaml:"workers"`

	// Classify configures the per-page block classifier
	Classify classify.Config `yaml:"classify"`

	// Table configures the table structure builder
	Table table.Config `yaml:"table"`

	// Heading configures the heading hierarchy builder
	Heading heading.Config `yaml:"heading"`

	// List configures the list grouper
	List list.Config `yaml:"list"`

	// Figure configures the figure-caption associator
	Figure figure.Config `yaml:"figure"`
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		Workers:  0,
		Classify: classify.DefaultConfig(),
		Table:    table.DefaultConfig(),
		Heading:  heading.DefaultConfig(),
		List:     list.DefaultConfig(),
		Figure:   figure.DefaultConfig(),
	}
}

// LoadConfig reads a YAML configuration file, overlaying it on the
// defaults. Fields absent from the file keep their default values.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("parsing config: %w", err)
	}
	return config, nil
}
