// Implements the InventoryStore: per-drug FIFO queues of expiring batches.

package sim

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// StockState tracks whether a drug is waiting on a restock delivery.
type StockState int

const (
	// Stocked means no restock is outstanding.
	Stocked StockState = iota
	// PendingRestock means a RestockRequest was emitted and not yet delivered.
	PendingRestock
)

func (s StockState) String() string {
	switch s {
	case Stocked:
		return "stocked"
	case PendingRestock:
		return "pending_restock"
	default:
		return fmt.Sprintf("StockState(%d)", int(s))
	}
}

// Batch is a dated lot of one drug.
type Batch struct {
	Quantity  int
	ExpiryDay int
}

// RestockRequest asks the supplier for one standard lot of a drug.
type RestockRequest struct {
	Drug string
}

// Expiry describes a batch removed by ExpireSweep.
type Expiry struct {
	Drug     string
	Quantity int
	Loss     decimal.Decimal
}

type shelf struct {
	drug    *Drug
	batches []Batch // ascending ExpiryDay, oldest first
	state   StockState
}

func (s *shelf) total() int {
	sum := 0
	for _, b := range s.batches {
		sum += b.Quantity
	}
	return sum
}

// InventoryStore holds the batch queues for every catalog drug.
type InventoryStore struct {
	catalog   *Catalog
	shelves   []*shelf
	lostValue decimal.Decimal
}

// NewInventoryStore stocks each drug with one standard lot expiring at
// day 0 + shelf life.
func NewInventoryStore(catalog *Catalog) *InventoryStore {
	inv := &InventoryStore{
		catalog: catalog,
		shelves: make([]*shelf, catalog.Len()),
	}
	for i := 0; i < catalog.Len(); i++ {
		d := catalog.At(i)
		s := &shelf{drug: d, state: Stocked}
		if d.StandardQuantity > 0 {
			s.batches = append(s.batches, Batch{Quantity: d.StandardQuantity, ExpiryDay: d.ShelfLifeDays})
		}
		inv.shelves[i] = s
	}
	return inv
}

func (inv *InventoryStore) shelf(name string) *shelf {
	i, ok := inv.catalog.index[name]
	if !ok {
		return nil
	}
	return inv.shelves[i]
}

// Withdraw removes up to quantity units, oldest batch first, and returns how
// many were actually taken. A shortfall is a normal outcome.
func (inv *InventoryStore) Withdraw(name string, quantity int) int {
	s := inv.shelf(name)
	if s == nil || quantity <= 0 {
		return 0
	}
	taken := 0
	for len(s.batches) > 0 && taken < quantity {
		front := &s.batches[0]
		n := min(quantity-taken, front.Quantity)
		front.Quantity -= n
		taken += n
		if front.Quantity == 0 {
			s.batches = s.batches[1:]
		}
	}
	return taken
}

// ExpireSweep removes batches that expired yesterday (ExpiryDay == day-1)
// and books their value at base price as lost. Only queue fronts are
// inspected, which relies on ascending expiry order.
func (inv *InventoryStore) ExpireSweep(day int) []Expiry {
	var expired []Expiry
	for _, s := range inv.shelves {
		for len(s.batches) > 0 && s.batches[0].ExpiryDay == day-1 {
			b := s.batches[0]
			s.batches = s.batches[1:]
			loss := s.drug.BasePrice.Mul(decimal.NewFromInt(int64(b.Quantity)))
			inv.lostValue = inv.lostValue.Add(loss)
			expired = append(expired, Expiry{Drug: s.drug.Name, Quantity: b.Quantity, Loss: loss})
			logrus.Debugf("[day %04d] expired %d x %s, loss %s", day, b.Quantity, s.drug.Name, loss)
		}
	}
	return expired
}

// Restock appends a standard lot expiring at day + shelf life and returns
// the drug to Stocked.
func (inv *InventoryStore) Restock(name string, day int) {
	s := inv.shelf(name)
	if s == nil {
		panic(fmt.Sprintf("inventory: restock of unknown drug %q", name))
	}
	if s.state != PendingRestock {
		panic(fmt.Sprintf("inventory: restock of %q without a pending request", name))
	}
	expiry := day + s.drug.ShelfLifeDays
	if n := len(s.batches); n > 0 && s.batches[n-1].ExpiryDay > expiry {
		panic(fmt.Sprintf("inventory: batch order violated for %q: expiry %d after %d", name, expiry, s.batches[n-1].ExpiryDay))
	}
	if s.drug.StandardQuantity > 0 {
		s.batches = append(s.batches, Batch{Quantity: s.drug.StandardQuantity, ExpiryDay: expiry})
	}
	s.state = Stocked
}

// NearExpiryCheck splits drugs into those that should be marked down (oldest
// batch expires within threshold days and no markdown yet) and those whose
// markdown should be cleared (out of stock, or oldest batch beyond threshold).
func (inv *InventoryStore) NearExpiryCheck(day, threshold int) (markdown, restore []string) {
	for _, s := range inv.shelves {
		if len(s.batches) > 0 && s.batches[0].ExpiryDay-day <= threshold {
			if !s.drug.MarkedDown() {
				markdown = append(markdown, s.drug.Name)
			}
			continue
		}
		if s.drug.MarkedDown() {
			restore = append(restore, s.drug.Name)
		}
	}
	return markdown, restore
}

// LowStockCheck emits a RestockRequest for every Stocked drug whose total
// quantity is at or below minQuantity, and marks it PendingRestock.
func (inv *InventoryStore) LowStockCheck(minQuantity int) []RestockRequest {
	var reqs []RestockRequest
	for _, s := range inv.shelves {
		if s.state == PendingRestock || s.total() > minQuantity {
			continue
		}
		s.state = PendingRestock
		reqs = append(reqs, RestockRequest{Drug: s.drug.Name})
	}
	return reqs
}

// Remaining returns the total quantity on the shelf for a drug.
func (inv *InventoryStore) Remaining(name string) int {
	s := inv.shelf(name)
	if s == nil {
		return 0
	}
	return s.total()
}

// Batches returns a copy of a drug's batch queue.
func (inv *InventoryStore) Batches(name string) []Batch {
	s := inv.shelf(name)
	if s == nil {
		return nil
	}
	return append([]Batch(nil), s.batches...)
}

// State returns a drug's restock state.
func (inv *InventoryStore) State(name string) StockState {
	s := inv.shelf(name)
	if s == nil {
		return Stocked
	}
	return s.state
}

// LostValue is the accumulated base-price value of all expired stock.
func (inv *InventoryStore) LostValue() decimal.Decimal {
	return inv.lostValue
}
