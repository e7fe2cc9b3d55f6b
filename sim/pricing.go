package sim

import (
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var two = decimal.NewFromInt(2)

// PricingEngine is the only writer of Drug.CurrentPrice and CurrentMarkup.
type PricingEngine struct {
	catalog *Catalog
}

// NewPricingEngine creates a PricingEngine over a catalog.
func NewPricingEngine(catalog *Catalog) *PricingEngine {
	return &PricingEngine{catalog: catalog}
}

// ApplyMarkdown halves the markup of each named drug.
func (p *PricingEngine) ApplyMarkdown(names []string) {
	for _, name := range names {
		d, ok := p.catalog.Get(name)
		if !ok {
			continue
		}
		d.CurrentPrice = d.NormalPrice().Div(two)
		d.CurrentMarkup = d.CurrentPrice.Div(d.BasePrice).InexactFloat64()
		logrus.Debugf("markdown %s: price %s, markup %.4f", name, d.CurrentPrice, d.CurrentMarkup)
	}
}

// ClearMarkdown restores the normal price of each named drug.
func (p *PricingEngine) ClearMarkdown(names []string) {
	for _, name := range names {
		d, ok := p.catalog.Get(name)
		if !ok {
			continue
		}
		d.CurrentPrice = d.NormalPrice()
		d.CurrentMarkup = d.BaseMarkup
		logrus.Debugf("markdown cleared %s: price %s", name, d.CurrentPrice)
	}
}

// Markups returns current markups in catalog order.
func (p *PricingEngine) Markups() []float64 {
	out := make([]float64, p.catalog.Len())
	for i := range out {
		out[i] = p.catalog.At(i).CurrentMarkup
	}
	return out
}

// Prices returns a copy of the current price of every drug.
func (p *PricingEngine) Prices() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, p.catalog.Len())
	for i := 0; i < p.catalog.Len(); i++ {
		d := p.catalog.At(i)
		out[d.Name] = d.CurrentPrice
	}
	return out
}
