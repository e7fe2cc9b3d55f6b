package sim

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Customer is the contact triple attached to an order.
type Customer struct {
	Name    string
	Address string
	Phone   string
}

// placeholderCustomer is used for generated demand; realistic metadata is
// not modeled.
var placeholderCustomer = Customer{Name: "A", Address: "B", Phone: "C"}

// ClientOrder is one customer basket. It lives for a single simulated day.
type ClientOrder struct {
	ID       uuid.UUID
	Customer Customer
	CardID   string         // empty when the client has no loyalty card
	Drugs    map[string]int // requested quantity per drug
	Loyal    bool           // emitted by a RecurringOrder

	Fulfilled   map[string]int // quantity actually withdrawn per drug
	Discount    decimal.Decimal // rate in [0, MaxDiscount]
	TotalProfit decimal.Decimal
	Delivered   bool
}

// HasCard reports whether the order carries a loyalty card.
func (o *ClientOrder) HasCard() bool {
	return o.CardID != ""
}

// Clone returns a deep copy; maps are never shared with the receiver.
func (o *ClientOrder) Clone() *ClientOrder {
	c := *o
	c.Drugs = copyQuantities(o.Drugs)
	c.Fulfilled = copyQuantities(o.Fulfilled)
	return &c
}

func copyQuantities(m map[string]int) map[string]int {
	if m == nil {
		return nil
	}
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// RecurringSpec is one recurring-order record as supplied by the catalog source.
type RecurringSpec struct {
	Drugs    map[string]int `yaml:"drugs"`
	Period   int            `yaml:"period"`
	Customer string         `yaml:"customer"`
	Address  string         `yaml:"address"`
	Phone    string         `yaml:"phone"`
	CardID   string         `yaml:"card_id"`
}

// Validate checks a record against the catalog; idx is used for error context.
func (s RecurringSpec) Validate(idx int, catalog *Catalog) error {
	prefix := fmt.Sprintf("recurring[%d]", idx)
	if s.Period <= 0 {
		return fmt.Errorf("%w: %s: period must be positive, got %d", ErrInvalidCatalog, prefix, s.Period)
	}
	if len(s.Drugs) == 0 {
		return fmt.Errorf("%w: %s: order has no drugs", ErrInvalidCatalog, prefix)
	}
	for name, qty := range s.Drugs {
		if _, ok := catalog.Get(name); !ok {
			return fmt.Errorf("%w: %s: unknown drug %q", ErrInvalidCatalog, prefix, name)
		}
		if qty <= 0 {
			return fmt.Errorf("%w: %s: quantity of %q must be positive, got %d", ErrInvalidCatalog, prefix, name, qty)
		}
	}
	return nil
}

// RecurringOrder re-emits a copy of its template every Period days.
type RecurringOrder struct {
	template  ClientOrder
	Period    int
	lastFired int
	fired     bool
}

// NewRecurringOrder builds a loyal template from a spec.
func NewRecurringOrder(s RecurringSpec) *RecurringOrder {
	return &RecurringOrder{
		template: ClientOrder{
			Customer: Customer{Name: s.Customer, Address: s.Address, Phone: s.Phone},
			CardID:   s.CardID,
			Drugs:    copyQuantities(s.Drugs),
			Loyal:    true,
		},
		Period: s.Period,
	}
}

// Due reports whether the order fires on day.
func (r *RecurringOrder) Due(day int) bool {
	return !r.fired || day-r.lastFired >= r.Period
}

// Fire records the firing day and returns a fresh order value.
func (r *RecurringOrder) Fire(day int, id uuid.UUID) *ClientOrder {
	r.fired = true
	r.lastFired = day
	o := r.template.Clone()
	o.ID = id
	return o
}

