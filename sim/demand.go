package sim

import (
	"math"
	"math/rand/v2"
	"strconv"

	"gonum.org/v1/gonum/stat/distuv"
)

// OrderDraft is a generated basket before it becomes a ClientOrder.
type OrderDraft struct {
	Customer Customer
	CardID   string
	Drugs    map[string]int
}

// DemandGenerator draws each day's client baskets from purchase-rate curves.
//
// The daily pool of unit purchases per drug is Poisson with mean
// PurchaseRate(base price, current markup, density). Baskets are then cut
// from the pool one at a time, picking drugs in proportion to what is left.
type DemandGenerator struct {
	catalog         *Catalog
	policy          Policy
	density         float64
	cardProbability float64
	basePrices      []float64
	markups         []float64
	rng             *rand.Rand // demand stream
	leadRNG         *rand.Rand // delivery stream
}

// NewDemandGenerator creates a generator seeded from the given streams.
func NewDemandGenerator(catalog *Catalog, policy Policy, cfg Config, demandRNG, deliveryRNG *rand.Rand) *DemandGenerator {
	g := &DemandGenerator{
		catalog:         catalog,
		policy:          policy,
		density:         cfg.DemandDensity,
		cardProbability: cfg.CardProbability,
		basePrices:      make([]float64, catalog.Len()),
		markups:         make([]float64, catalog.Len()),
		rng:             demandRNG,
		leadRNG:         deliveryRNG,
	}
	for i := 0; i < catalog.Len(); i++ {
		d := catalog.At(i)
		g.basePrices[i] = d.BasePrice.InexactFloat64()
		g.markups[i] = d.CurrentMarkup
	}
	return g
}

// PurchaseRate is the expected number of units bought per day:
// scale · sigmoid(12 − 2·ln(price·markup²)). It decreases in both price and markup.
func PurchaseRate(price, markup, scale float64) float64 {
	arg := -math.Log(price*markup*markup)*2 + 12
	return scale * sigmoid(arg)
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// UpdateMarkups replaces the markup vector (catalog order) used for the next day.
func (g *DemandGenerator) UpdateMarkups(markups []float64) {
	copy(g.markups, markups)
}

// ExpectedRates returns today's expected purchase rate per drug, catalog order.
func (g *DemandGenerator) ExpectedRates() []float64 {
	rates := make([]float64, len(g.basePrices))
	for i := range rates {
		rates[i] = PurchaseRate(g.basePrices[i], g.markups[i], g.density)
	}
	return rates
}

// NextDay generates the day's orders. The list ends at the first empty
// basket, which happens once the pool runs dry or a basket size of zero is drawn.
func (g *DemandGenerator) NextDay() []OrderDraft {
	rates := g.ExpectedRates()
	pool := make([]float64, len(rates))
	total := 0.0
	for i, r := range rates {
		if r > 0 && !math.IsNaN(r) {
			pool[i] = distuv.Poisson{Lambda: r, Src: g.rng}.Rand()
		}
		total += pool[i]
	}
	if total == 0 {
		return nil
	}

	picker := distuv.NewCategorical(pool, g.rng)
	basket := distuv.Normal{Mu: g.policy.BasketMean, Sigma: g.policy.BasketStdDev, Src: g.rng}

	var drafts []OrderDraft
	for {
		card := g.cardID()
		size := int(math.Round(basket.Rand()))
		drugs := make(map[string]int)
		for i := 0; i < size && total > 0; i++ {
			id := int(picker.Rand())
			drugs[g.catalog.At(id).Name]++
			pool[id]--
			total--
			// Reweight panics once every weight is zero.
			if total > 0 {
				picker.Reweight(id, pool[id])
			}
		}
		if len(drugs) == 0 {
			break
		}
		drafts = append(drafts, OrderDraft{Customer: placeholderCustomer, CardID: card, Drugs: drugs})
	}
	return drafts
}

func (g *DemandGenerator) cardID() string {
	if g.rng.Float64() >= g.cardProbability {
		return ""
	}
	return strconv.Itoa(1 + g.rng.IntN(g.policy.MaxCardID-1))
}

// LeadTime draws a restock lead time uniformly from [LeadTimeMin, LeadTimeMax].
func (g *DemandGenerator) LeadTime() int {
	span := g.policy.LeadTimeMax - g.policy.LeadTimeMin + 1
	return g.policy.LeadTimeMin + g.leadRNG.IntN(span)
}
