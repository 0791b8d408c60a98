// Package catalog loads the image pairs that back a grid.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/raphaelgruber/imagegrid/internal/grid"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultColumns is the column count of the original 3×3 layout.
	DefaultColumns = 3
	// DefaultTitle is the header shown above the grid.
	DefaultTitle = "Perfect 3×3 Grid — Tap to Swap & Scale (max 2×)"
)

//go:embed default.yaml
var defaultYAML []byte

// File is the on-disk catalog format.
//
//	title: My grid
//	columns: 3
//	pairs:
//	  - id: "1"
//	    primary: https://...
//	    alternate: https://...
type File struct {
	Title   string           `yaml:"title"`
	Columns int              `yaml:"columns"`
	Pairs   []grid.ImagePair `yaml:"pairs"`
}

// Default returns the built-in catalog of nine image pairs.
func Default() *File {
	f, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded default is invalid: %v", err))
	}
	return f
}

// Load reads a catalog file. An empty path returns the built-in catalog.
func Load(path string) (*File, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return f, nil
}

// Parse decodes and validates a catalog document, filling in defaults.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	f.Title = strings.TrimSpace(f.Title)
	if f.Title == "" {
		f.Title = DefaultTitle
	}
	if f.Columns < 0 {
		return nil, fmt.Errorf("%w: columns must be positive, got %d", grid.ErrInvalidCatalog, f.Columns)
	}
	if f.Columns == 0 {
		f.Columns = DefaultColumns
	}

	for i := range f.Pairs {
		p := &f.Pairs[i]
		p.ID = strings.TrimSpace(p.ID)
		p.PrimaryURI = strings.TrimSpace(p.PrimaryURI)
		p.AlternateURI = strings.TrimSpace(p.AlternateURI)
	}

	if err := Validate(f.Pairs); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks that the pairs can back a grid: non-empty, unique non-blank
// ids, and both locators set. Errors wrap grid.ErrInvalidCatalog.
func Validate(pairs []grid.ImagePair) error {
	if _, err := grid.Initialize(pairs); err != nil {
		return err
	}
	for _, p := range pairs {
		if p.PrimaryURI == "" {
			return fmt.Errorf("%w: pair %q has no primary image", grid.ErrInvalidCatalog, p.ID)
		}
		if p.AlternateURI == "" {
			return fmt.Errorf("%w: pair %q has no alternate image", grid.ErrInvalidCatalog, p.ID)
		}
	}
	return nil
}

// Rows returns the number of rows needed to lay out the catalog.
func (f *File) Rows() int {
	if f.Columns <= 0 {
		return 0
	}
	return (len(f.Pairs) + f.Columns - 1) / f.Columns
}
