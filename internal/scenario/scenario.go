// Package scenario loads named trial configurations from HCL files so
// repeated analysis runs don't have to be re-specified flag by flag.
package scenario

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// File represents a parsed scenario file
type File struct {
	Scenarios []Scenario `hcl:"scenario,block"`
}

// Scenario defines one named trial configuration
type Scenario struct {
	Name     string `hcl:"name,label"`
	Trials   int    `hcl:"trials,optional"`
	DeckSize int    `hcl:"deck_size,optional"`
	Batch    int    `hcl:"batch,optional"`
	Seed     int64  `hcl:"seed,optional"`
	Workers  int    `hcl:"workers,optional"`
}

// Default returns the configuration used when no scenario file exists.
func Default() *File {
	return &File{
		Scenarios: []Scenario{
			{
				Name:     "default",
				Trials:   10000,
				DeckSize: 52,
				Batch:    3,
			},
		},
	}
}

// Load parses a scenario file. A missing file yields the defaults.
func Load(filename string) (*File, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var f File
	diags = gohcl.DecodeBody(file.Body, nil, &f)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Apply defaults for missing values
	for i := range f.Scenarios {
		if f.Scenarios[i].Trials == 0 {
			f.Scenarios[i].Trials = 10000
		}
		if f.Scenarios[i].DeckSize == 0 {
			f.Scenarios[i].DeckSize = 52
		}
		if f.Scenarios[i].Batch == 0 {
			f.Scenarios[i].Batch = 3
		}
	}

	return &f, nil
}

// Validate validates the scenario file
func (f *File) Validate() error {
	if len(f.Scenarios) == 0 {
		return fmt.Errorf("at least one scenario must be configured")
	}

	seen := make(map[string]bool)
	for _, s := range f.Scenarios {
		if seen[s.Name] {
			return fmt.Errorf("scenario %s: duplicate name", s.Name)
		}
		seen[s.Name] = true

		if s.Trials <= 0 {
			return fmt.Errorf("scenario %s: trials must be positive", s.Name)
		}
		if s.DeckSize < 0 {
			return fmt.Errorf("scenario %s: deck_size must be non-negative", s.Name)
		}
		if s.Batch <= 0 {
			return fmt.Errorf("scenario %s: batch must be positive", s.Name)
		}
		if s.Workers < 0 {
			return fmt.Errorf("scenario %s: workers must be non-negative", s.Name)
		}
	}
	return nil
}

// Get returns a scenario by name, or nil if it doesn't exist.
func (f *File) Get(name string) *Scenario {
	for i := range f.Scenarios {
		if f.Scenarios[i].Name == name {
			return &f.Scenarios[i]
		}
	}
	return nil
}
