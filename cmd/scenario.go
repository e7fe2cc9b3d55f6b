package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/pharmasim/pharmasim/sim"
	"github.com/pharmasim/pharmasim/sim/catalog"
)

// Scenario is the full description of one run, as read from a scenario
// YAML file and then overridden by explicitly set CLI flags.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type Scenario struct {
	Seed          int64      `yaml:"seed"`
	Config        sim.Config `yaml:"config"`
	Policy        sim.Policy `yaml:"policy"`
	DrugsFile     string     `yaml:"drugs_file"`
	RecurringFile string     `yaml:"recurring_file"`
	TraceLevel    string     `yaml:"trace_level"`
}

// defaultScenario mirrors the CLI flag defaults.
func defaultScenario() Scenario {
	return Scenario{
		Seed: 42,
		Config: sim.Config{
			DayCount:           30,
			DemandDensity:      40,
			CardDiscountPct:    5,
			CourierCount:       2,
			MinRestockQuantity: 10,
			CardProbability:    0.3,
		},
		Policy:     sim.DefaultPolicy(),
		TraceLevel: "none",
	}
}

// loadScenario parses a scenario file on top of the defaults, so omitted
// fields keep their default values. Relative catalog paths are resolved
// against the scenario file's directory.
// Uses strict field checking: typos must cause errors.
func loadScenario(path string) (Scenario, error) {
	sc := defaultScenario()
	data, err := os.ReadFile(path)
	if err != nil {
		return sc, fmt.Errorf("reading scenario: %w", err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&sc); err != nil {
		return sc, fmt.Errorf("parsing scenario %s: %w", path, err)
	}
	dir := filepath.Dir(path)
	sc.DrugsFile = resolveRelative(dir, sc.DrugsFile)
	sc.RecurringFile = resolveRelative(dir, sc.RecurringFile)
	return sc, nil
}

func resolveRelative(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// loadBook reads the drug catalog and, when given, the recurring-order CSV.
// A YAML drugs file may carry its own recurring orders; a separate
// recurring file replaces them.
func loadBook(drugsFile, recurringFile string) (*catalog.Book, error) {
	if drugsFile == "" {
		return nil, fmt.Errorf("%w: no drug catalog given", catalog.ErrCatalogLoad)
	}
	book, err := catalog.Load(drugsFile)
	if err != nil {
		return nil, err
	}
	if recurringFile != "" {
		if book.Recurring, err = catalog.LoadRecurringCSV(recurringFile); err != nil {
			return nil, err
		}
	}
	if err := book.Validate(); err != nil {
		return nil, err
	}
	return book, nil
}
