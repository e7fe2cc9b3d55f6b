// Package catalog loads drug catalogs and recurring-order books for a
// pharmacy run. Two formats are supported: semicolon-delimited CSV files
// with a header row, and a single strict YAML document carrying both.
package catalog

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pharmasim/pharmasim/sim"
)

// ErrCatalogLoad wraps every catalog read or parse failure.
var ErrCatalogLoad = errors.New("catalog load failed")

// Book is everything a pharmacy needs from its catalog sources.
type Book struct {
	Drugs     []sim.DrugSpec      `yaml:"drugs"`
	Recurring []sim.RecurringSpec `yaml:"recurring"`
}

// Load reads a drug catalog, choosing the parser by extension: .yaml and
// .yml go through LoadYAML, anything else is read as a drugs CSV.
func Load(path string) (*Book, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadYAML(path)
	default:
		drugs, err := LoadDrugsCSV(path)
		if err != nil {
			return nil, err
		}
		return &Book{Drugs: drugs}, nil
	}
}

// Validate checks every record. Recurring orders are checked against the
// drugs of the same book.
func (b *Book) Validate() error {
	c, err := sim.NewCatalog(b.Drugs)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCatalogLoad, err)
	}
	for i, r := range b.Recurring {
		if err := r.Validate(i, c); err != nil {
			return fmt.Errorf("%w: %w", ErrCatalogLoad, err)
		}
	}
	return nil
}

func loadErr(path, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrCatalogLoad, path, fmt.Sprintf(format, args...))
}
