package sim

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// oneDrug is the single-drug catalog used by the scenario tests:
// price 100, markup 1.2, standard lot 50, shelf life 10 days.
func oneDrug() []DrugSpec {
	return []DrugSpec{{Name: "D", BasePrice: 100, BaseMarkup: 1.2, StandardQuantity: 50, ShelfLifeDays: 10}}
}

func threeDrugs() []DrugSpec {
	return []DrugSpec{
		{Name: "aspirin", BasePrice: 20, BaseMarkup: 1.5, StandardQuantity: 120, ShelfLifeDays: 60},
		{Name: "insulin", BasePrice: 400, BaseMarkup: 1.1, StandardQuantity: 30, ShelfLifeDays: 20},
		{Name: "vitamin_c", BasePrice: 5, BaseMarkup: 2.0, StandardQuantity: 200, ShelfLifeDays: 90},
	}
}

func defaultTestConfig() Config {
	return Config{
		DayCount:           30,
		DemandDensity:      40,
		CardDiscountPct:    5,
		CourierCount:       2,
		MinRestockQuantity: 10,
		CardProbability:    0.3,
	}
}

func mustCatalog(t *testing.T, specs []DrugSpec) *Catalog {
	t.Helper()
	c, err := NewCatalog(specs)
	require.NoError(t, err)
	return c
}

func newTestPharmacy(t *testing.T, specs []DrugSpec, recurring []RecurringSpec, seed int64, opts ...Option) *Pharmacy {
	t.Helper()
	p, err := NewPharmacy(specs, recurring, NewSimulationKey(seed), opts...)
	require.NoError(t, err)
	return p
}

// recordingSink keeps every snapshot it receives.
type recordingSink struct {
	daily []DailySnapshot
	final []FinalSnapshot
}

func (r *recordingSink) OnDailySnapshot(s DailySnapshot) { r.daily = append(r.daily, s) }
func (r *recordingSink) OnFinalSnapshot(s FinalSnapshot) { r.final = append(r.final, s) }

func order(drugs map[string]int) *ClientOrder {
	return &ClientOrder{Customer: placeholderCustomer, Drugs: drugs}
}
