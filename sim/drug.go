package sim

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// DrugSpec is one catalog record as supplied by the catalog source.
type DrugSpec struct {
	Name             string  `yaml:"name"`
	BasePrice        int64   `yaml:"base_price"`
	BaseMarkup       float64 `yaml:"base_markup"`
	StandardQuantity int     `yaml:"standard_quantity"`
	ShelfLifeDays    int     `yaml:"shelf_life_days"`
}

// Validate checks a single record; idx is used for error context only.
func (s DrugSpec) Validate(idx int) error {
	prefix := fmt.Sprintf("drug[%d]", idx)
	if s.Name == "" {
		return fmt.Errorf("%w: %s: name must not be empty", ErrInvalidCatalog, prefix)
	}
	if s.BasePrice <= 0 {
		return fmt.Errorf("%w: %s (%s): base_price must be positive, got %d", ErrInvalidCatalog, prefix, s.Name, s.BasePrice)
	}
	if math.IsNaN(s.BaseMarkup) || math.IsInf(s.BaseMarkup, 0) || s.BaseMarkup <= 0 {
		return fmt.Errorf("%w: %s (%s): base_markup must be a positive finite number, got %f", ErrInvalidCatalog, prefix, s.Name, s.BaseMarkup)
	}
	if s.StandardQuantity < 0 {
		return fmt.Errorf("%w: %s (%s): standard_quantity must be non-negative, got %d", ErrInvalidCatalog, prefix, s.Name, s.StandardQuantity)
	}
	if s.ShelfLifeDays < 0 {
		return fmt.Errorf("%w: %s (%s): shelf_life_days must be non-negative, got %d", ErrInvalidCatalog, prefix, s.Name, s.ShelfLifeDays)
	}
	return nil
}

// Drug is a catalog entry. Everything except CurrentPrice and CurrentMarkup
// is fixed after load; those two are owned by PricingEngine.
type Drug struct {
	Name             string
	BasePrice        decimal.Decimal
	BaseMarkup       float64
	StandardQuantity int
	ShelfLifeDays    int

	CurrentPrice  decimal.Decimal
	CurrentMarkup float64

	normalPrice decimal.Decimal
}

func newDrug(s DrugSpec) *Drug {
	base := decimal.NewFromInt(s.BasePrice)
	normal := base.Mul(decimal.NewFromFloat(s.BaseMarkup))
	return &Drug{
		Name:             s.Name,
		BasePrice:        base,
		BaseMarkup:       s.BaseMarkup,
		StandardQuantity: s.StandardQuantity,
		ShelfLifeDays:    s.ShelfLifeDays,
		CurrentPrice:     normal,
		CurrentMarkup:    s.BaseMarkup,
		normalPrice:      normal,
	}
}

// NormalPrice is base_price × base_markup, the price outside of a markdown.
func (d *Drug) NormalPrice() decimal.Decimal {
	return d.normalPrice
}

// MarkedDown reports whether a markdown is in effect.
func (d *Drug) MarkedDown() bool {
	return d.CurrentPrice.LessThan(d.normalPrice)
}

// Catalog is the ordered set of drugs. Order is the load order and defines
// drug indices for demand generation and snapshot layout.
type Catalog struct {
	drugs []*Drug
	index map[string]int
}

// NewCatalog validates specs and builds a Catalog.
func NewCatalog(specs []DrugSpec) (*Catalog, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("%w: catalog has no drugs", ErrInvalidCatalog)
	}
	c := &Catalog{
		drugs: make([]*Drug, 0, len(specs)),
		index: make(map[string]int, len(specs)),
	}
	for i, s := range specs {
		if err := s.Validate(i); err != nil {
			return nil, err
		}
		if _, dup := c.index[s.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate drug name %q", ErrInvalidCatalog, s.Name)
		}
		c.index[s.Name] = len(c.drugs)
		c.drugs = append(c.drugs, newDrug(s))
	}
	return c, nil
}

// Len returns the number of drugs.
func (c *Catalog) Len() int { return len(c.drugs) }

// Get looks a drug up by name.
func (c *Catalog) Get(name string) (*Drug, bool) {
	i, ok := c.index[name]
	if !ok {
		return nil, false
	}
	return c.drugs[i], true
}

// At returns the drug at index i in catalog order.
func (c *Catalog) At(i int) *Drug { return c.drugs[i] }
