package sim

import "github.com/shopspring/decimal"

// ProcessResult is the outcome of one day of order processing.
type ProcessResult struct {
	// Ready holds orders that fulfilled at least one unit, in input order.
	// The first Delivered of them carry Delivered == true.
	Ready     []*ClientOrder
	Delivered int
	// Profit is the summed TotalProfit of delivered orders.
	Profit decimal.Decimal
	// Requested is the quantity asked for per drug, regardless of fulfillment.
	Requested map[string]int
	Submitted int
}

// Undelivered returns the ready orders that exceeded courier capacity.
func (r ProcessResult) Undelivered() []*ClientOrder {
	return r.Ready[r.Delivered:]
}

// OrderProcessor resolves orders against inventory and applies the discount
// policy.
type OrderProcessor struct {
	inventory  *InventoryStore
	catalog    *Catalog
	capacity   int
	bigOrderAt decimal.Decimal

	// Rates are converted one by one so that stacking them stays exact.
	cardRate  decimal.Decimal
	bigRate   decimal.Decimal
	loyalRate decimal.Decimal
	maxRate   decimal.Decimal
}

// NewOrderProcessor creates an OrderProcessor for a configured pharmacy.
func NewOrderProcessor(inv *InventoryStore, catalog *Catalog, policy Policy, cfg Config) *OrderProcessor {
	return &OrderProcessor{
		inventory:  inv,
		catalog:    catalog,
		capacity:   policy.CourierCapacity(cfg.CourierCount),
		bigOrderAt: decimal.NewFromInt(policy.BigOrderThreshold),
		cardRate:   cfg.CardDiscountRate(),
		bigRate:    decimal.NewFromFloat(policy.BigOrderDiscount),
		loyalRate:  decimal.NewFromFloat(policy.LoyalDiscount),
		maxRate:    decimal.NewFromFloat(policy.MaxDiscount),
	}
}

// Capacity returns the courier capacity in orders per day.
func (op *OrderProcessor) Capacity() int {
	return op.capacity
}

// Discount computes the discount rate for an order given its undiscounted
// current income. The result is always in [0, MaxDiscount].
func (op *OrderProcessor) Discount(o *ClientOrder, currentIncome decimal.Decimal) decimal.Decimal {
	rate := decimal.Zero
	if o.HasCard() {
		rate = op.cardRate
	} else if currentIncome.GreaterThan(op.bigOrderAt) {
		rate = op.bigRate
	}
	if o.Loyal {
		rate = decimal.Min(op.maxRate, rate.Add(op.loyalRate))
	}
	return decimal.Max(decimal.Zero, decimal.Min(op.maxRate, rate))
}

// Process withdraws stock for every order in sequence, prices them, and
// flags the first Capacity() ready orders as delivered. Stock withdrawn for
// orders beyond capacity stays consumed.
func (op *OrderProcessor) Process(orders []*ClientOrder) ProcessResult {
	res := ProcessResult{
		Requested: make(map[string]int, op.catalog.Len()),
		Submitted: len(orders),
	}
	for _, o := range orders {
		if op.resolve(o, res.Requested) {
			res.Ready = append(res.Ready, o)
		}
	}
	for _, o := range res.Ready {
		if res.Delivered >= op.capacity {
			break
		}
		o.Delivered = true
		res.Profit = res.Profit.Add(o.TotalProfit)
		res.Delivered++
	}
	return res
}

// resolve fills in Fulfilled, Discount and TotalProfit, and reports whether
// the order has any discounted income left.
func (op *OrderProcessor) resolve(o *ClientOrder, requested map[string]int) bool {
	o.Fulfilled = make(map[string]int, len(o.Drugs))
	baseIncome, currentIncome := decimal.Zero, decimal.Zero

	// Withdrawal order follows the catalog so that a seeded run does not
	// depend on map iteration order.
	for i := 0; i < op.catalog.Len(); i++ {
		d := op.catalog.At(i)
		want, ok := o.Drugs[d.Name]
		if !ok {
			continue
		}
		requested[d.Name] += want
		got := op.inventory.Withdraw(d.Name, want)
		if got <= 0 {
			continue
		}
		qty := decimal.NewFromInt(int64(got))
		baseIncome = baseIncome.Add(d.BasePrice.Mul(qty))
		currentIncome = currentIncome.Add(d.CurrentPrice.Mul(qty))
		o.Fulfilled[d.Name] = got
	}

	o.Discount = op.Discount(o, currentIncome)
	discounted := currentIncome.Sub(currentIncome.Mul(o.Discount))
	o.TotalProfit = discounted.Sub(baseIncome)
	return !discounted.IsZero()
}
