// Pharmacy is the day-cycle orchestrator: it owns every piece of mutable
// simulation state and advances it one day per call.

package sim

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/pharmasim/pharmasim/sim/trace"
)

// State is the lifecycle stage of a Pharmacy.
type State int

const (
	StateConfiguring State = iota
	StateRunning
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateConfiguring:
		return "configuring"
	case StateRunning:
		return "running"
	case StateFinished:
		return "finished"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Option customizes a Pharmacy at construction.
type Option func(*Pharmacy)

// WithSink sets the display sink. Defaults to NopSink.
func WithSink(s Sink) Option {
	return func(p *Pharmacy) { p.sink = s }
}

// WithPolicy replaces DefaultPolicy.
func WithPolicy(policy Policy) Option {
	return func(p *Pharmacy) { p.policy = policy }
}

// WithTrace attaches a decision trace. Records are only collected when the
// trace level is decisions.
func WithTrace(st *trace.SimulationTrace) Option {
	return func(p *Pharmacy) { p.trace = st }
}

// Pharmacy runs the simulation. It is not safe for concurrent use.
type Pharmacy struct {
	catalog   *Catalog
	recurring []*RecurringOrder
	rng       *PartitionedRNG
	ids       io.Reader
	sink      Sink
	trace     *trace.SimulationTrace
	policy    Policy

	state      State
	cfg        Config
	inventory  *InventoryStore
	pricing    *PricingEngine
	demand     *DemandGenerator
	processor  *OrderProcessor
	deliveries *DeliveryScheduler

	day              int
	totalProfit      decimal.Decimal
	deliveredHistory []int
	courierLoad      []int
	submittedHistory []int
	restockHistory   []int
	requestedTotal   map[string]int
}

// NewPharmacy builds a pharmacy from catalog records. Initial stock is one
// standard lot per drug. The pharmacy must be configured before it advances.
func NewPharmacy(drugs []DrugSpec, recurring []RecurringSpec, key SimulationKey, opts ...Option) (*Pharmacy, error) {
	catalog, err := NewCatalog(drugs)
	if err != nil {
		return nil, err
	}
	p := &Pharmacy{
		catalog:    catalog,
		rng:        NewPartitionedRNG(key),
		sink:       NopSink{},
		policy:     DefaultPolicy(),
		state:      StateConfiguring,
		inventory:  NewInventoryStore(catalog),
		pricing:    NewPricingEngine(catalog),
		deliveries: NewDeliveryScheduler(),

		requestedTotal: make(map[string]int, catalog.Len()),
	}
	for _, opt := range opts {
		opt(p)
	}
	if err := p.policy.Validate(); err != nil {
		return nil, err
	}
	for i, spec := range recurring {
		if err := spec.Validate(i, catalog); err != nil {
			return nil, err
		}
		p.recurring = append(p.recurring, NewRecurringOrder(spec))
	}
	p.ids = rngReader{rng: p.rng.ForSubsystem(SubsystemIDs)}
	return p, nil
}

// Configure applies the run parameters. It succeeds exactly once; later
// calls return ErrAlreadyConfigured and change nothing.
func (p *Pharmacy) Configure(cfg Config) error {
	if p.state != StateConfiguring {
		return ErrAlreadyConfigured
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	p.cfg = cfg
	p.demand = NewDemandGenerator(p.catalog, p.policy, cfg,
		p.rng.ForSubsystem(SubsystemDemand), p.rng.ForSubsystem(SubsystemDelivery))
	p.processor = NewOrderProcessor(p.inventory, p.catalog, p.policy, cfg)
	p.state = StateRunning
	logrus.Infof("Configured pharmacy: %d drugs, %d recurring orders, %d days, courier capacity %d, seed %d",
		p.catalog.Len(), len(p.recurring), cfg.DayCount, p.processor.Capacity(), p.rng.Key())
	return nil
}

// Advance simulates one day and emits its DailySnapshot. Once every
// configured day has run, the next call emits the FinalSnapshot instead;
// after that Advance does nothing.
func (p *Pharmacy) Advance() error {
	switch p.state {
	case StateConfiguring:
		return ErrNotConfigured
	case StateFinished:
		return nil
	}
	if p.day >= p.cfg.DayCount {
		p.finish()
		return nil
	}
	p.sink.OnDailySnapshot(p.step())
	return nil
}

// AdvanceToEnd runs every remaining day without daily snapshots and emits
// the FinalSnapshot.
func (p *Pharmacy) AdvanceToEnd() error {
	switch p.state {
	case StateConfiguring:
		return ErrNotConfigured
	case StateFinished:
		return nil
	}
	for p.day < p.cfg.DayCount {
		p.step()
	}
	p.finish()
	return nil
}

func (p *Pharmacy) step() DailySnapshot {
	start := p.day

	for _, r := range p.deliveries.PopDue(start) {
		p.inventory.Restock(r.Drug, start)
		if p.trace.Enabled() {
			p.trace.RecordDelivery(trace.DeliveryRecord{Drug: r.Drug, Day: start})
		}
	}

	drafts := p.demand.NextDay()
	orders := make([]*ClientOrder, 0, len(drafts)+len(p.recurring))
	for _, d := range drafts {
		orders = append(orders, &ClientOrder{
			ID:       p.newID(),
			Customer: d.Customer,
			CardID:   d.CardID,
			Drugs:    d.Drugs,
		})
	}

	p.day++
	day := p.day
	for _, r := range p.recurring {
		if r.Due(day) {
			orders = append(orders, r.Fire(day, p.newID()))
		}
	}

	res := p.processor.Process(orders)
	p.totalProfit = p.totalProfit.Add(res.Profit)
	p.deliveredHistory = append(p.deliveredHistory, len(res.Ready))
	p.courierLoad = append(p.courierLoad, res.Delivered)
	p.submittedHistory = append(p.submittedHistory, res.Submitted)
	for name, n := range res.Requested {
		p.requestedTotal[name] += n
	}
	if over := res.Undelivered(); len(over) > 0 {
		logrus.Debugf("[day %04d] %d ready orders over courier capacity %d", day, len(over), p.processor.Capacity())
		if p.trace.Enabled() {
			for _, o := range over {
				p.trace.RecordOverflow(trace.OverflowRecord{OrderID: o.ID.String(), Day: day, Profit: o.TotalProfit})
			}
		}
	}

	expired := p.inventory.ExpireSweep(day)
	markdown, restore := p.inventory.NearExpiryCheck(day, p.policy.NearExpiryDays)
	restocks := p.inventory.LowStockCheck(p.cfg.MinRestockQuantity)

	p.pricing.ApplyMarkdown(markdown)
	p.pricing.ClearMarkdown(restore)
	p.demand.UpdateMarkups(p.pricing.Markups())

	scheduled := p.deliveries.Schedule(restocks, start, p.demand.LeadTime)
	p.restockHistory = append(p.restockHistory, len(scheduled))

	lossToday := decimal.Zero
	for _, e := range expired {
		lossToday = lossToday.Add(e.Loss)
	}
	if p.trace.Enabled() {
		p.recordDecisions(day, expired, markdown, restore, scheduled)
	}

	logrus.Debugf("[day %04d] submitted=%d ready=%d delivered=%d profit=%s expired=%s restocks=%d",
		day, res.Submitted, len(res.Ready), res.Delivered, res.Profit, lossToday, len(scheduled))

	return p.dailySnapshot(day, res, lossToday, len(scheduled))
}

func (p *Pharmacy) recordDecisions(day int, expired []Expiry, markdown, restore []string, scheduled []ScheduledDelivery) {
	for _, e := range expired {
		p.trace.RecordExpiry(trace.ExpiryRecord{Drug: e.Drug, Day: day, Quantity: e.Quantity, Loss: e.Loss})
	}
	for _, name := range markdown {
		d, _ := p.catalog.Get(name)
		p.trace.RecordPrice(trace.PriceRecord{Drug: name, Day: day, MarkedDown: true, Price: d.CurrentPrice})
	}
	for _, name := range restore {
		d, _ := p.catalog.Get(name)
		p.trace.RecordPrice(trace.PriceRecord{Drug: name, Day: day, MarkedDown: false, Price: d.CurrentPrice})
	}
	for _, s := range scheduled {
		p.trace.RecordRestock(trace.RestockRecord{Drug: s.Request.Drug, Day: day, DueDay: s.DueDay})
	}
}

// drugStats reports every drug in catalog order with the given requested counts.
func (p *Pharmacy) drugStats(requested map[string]int) []DrugStat {
	prices := p.pricing.Prices()
	drugs := make([]DrugStat, p.catalog.Len())
	for i := range drugs {
		d := p.catalog.At(i)
		drugs[i] = DrugStat{
			Name:       d.Name,
			Price:      prices[d.Name],
			Markup:     d.CurrentMarkup,
			Requested:  requested[d.Name],
			Remaining:  p.inventory.Remaining(d.Name),
			MarkedDown: d.MarkedDown(),
		}
	}
	return drugs
}

func (p *Pharmacy) dailySnapshot(day int, res ProcessResult, loss decimal.Decimal, restocks int) DailySnapshot {
	return DailySnapshot{
		Day:                  day,
		CourierCapacity:      p.processor.Capacity(),
		OrdersDeliveredToday: res.Delivered,
		OrdersRequestedToday: len(res.Ready),
		OrdersSubmittedToday: res.Submitted,
		ProfitToday:          res.Profit,
		ExpiryLossToday:      loss,
		RestocksScheduled:    restocks,
		DeliveriesInFlight:   p.deliveries.Pending(),
		Drugs:                p.drugStats(res.Requested),
	}
}

func (p *Pharmacy) finish() {
	p.state = StateFinished
	final := p.FinalSnapshot()
	logrus.Debugf("[day %04d] Simulation ended: profit=%s expiry_loss=%s", p.day, final.TotalProfit, final.TotalExpiryLoss)
	p.sink.OnFinalSnapshot(final)
}

// FinalSnapshot builds the aggregate statistics for the days run so far.
func (p *Pharmacy) FinalSnapshot() FinalSnapshot {
	capacity := 0
	if p.processor != nil {
		capacity = p.processor.Capacity()
	}
	return FinalSnapshot{
		Days:                  p.day,
		TotalProfit:           p.totalProfit,
		TotalExpiryLoss:       p.inventory.LostValue(),
		CourierCapacity:       capacity,
		DeliveredCountHistory: append([]int(nil), p.deliveredHistory...),
		CourierLoadHistory:    append([]int(nil), p.courierLoad...),
		SubmittedHistory:      append([]int(nil), p.submittedHistory...),
		RestockHistory:        append([]int(nil), p.restockHistory...),
		DeliveriesInFlight:    p.deliveries.Pending(),
		Drugs:                 p.drugStats(p.requestedTotal),
	}
}

func (p *Pharmacy) newID() uuid.UUID {
	id, err := uuid.NewRandomFromReader(p.ids)
	if err != nil {
		panic(fmt.Sprintf("pharmacy: order id generation failed: %v", err))
	}
	return id
}

// Day returns the number of days simulated so far.
func (p *Pharmacy) Day() int { return p.day }

// State returns the lifecycle stage.
func (p *Pharmacy) State() State { return p.state }

// Inventory exposes the store for inspection.
func (p *Pharmacy) Inventory() *InventoryStore { return p.inventory }

// Catalog exposes the drug catalog for inspection.
func (p *Pharmacy) Catalog() *Catalog { return p.catalog }
