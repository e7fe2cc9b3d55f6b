package sim

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Config groups the user-supplied run parameters. It is applied once per
// Pharmacy via Configure.
type Config struct {
	DayCount           int     `yaml:"day_count"`            // days to simulate (> 0)
	DemandDensity      float64 `yaml:"demand_density"`       // demand curve scale (> 0)
	CardDiscountPct    float64 `yaml:"card_discount_pct"`    // loyalty card discount, percent in [0, 100]
	CourierCount       int     `yaml:"courier_count"`        // couriers available per day (>= 0)
	MinRestockQuantity int     `yaml:"min_restock_quantity"` // restock when stock falls to this level (>= 0)
	CardProbability    float64 `yaml:"card_probability"`     // chance a generated client has a card, in [0, 1]
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if c.DayCount <= 0 {
		return fmt.Errorf("%w: day_count must be positive, got %d", ErrInvalidConfig, c.DayCount)
	}
	if err := validateFinitePositive("demand_density", c.DemandDensity); err != nil {
		return err
	}
	if err := validateFiniteRange("card_discount_pct", c.CardDiscountPct, 0, 100); err != nil {
		return err
	}
	if c.CourierCount < 0 {
		return fmt.Errorf("%w: courier_count must be non-negative, got %d", ErrInvalidConfig, c.CourierCount)
	}
	if c.MinRestockQuantity < 0 {
		return fmt.Errorf("%w: min_restock_quantity must be non-negative, got %d", ErrInvalidConfig, c.MinRestockQuantity)
	}
	return validateFiniteRange("card_probability", c.CardProbability, 0, 1)
}

// CardDiscountRate converts the percentage to an exact rate in [0, 1].
func (c Config) CardDiscountRate() decimal.Decimal {
	return decimal.NewFromFloat(c.CardDiscountPct).Div(hundred)
}

var hundred = decimal.NewFromInt(100)

// Policy groups the economic and timing constants of the pharmacy.
type Policy struct {
	BigOrderThreshold   int64   `yaml:"big_order_threshold"`    // current income above which the big-order discount applies
	BigOrderDiscount    float64 `yaml:"big_order_discount"`     // rate for big orders without a card
	LoyalDiscount       float64 `yaml:"loyal_discount"`         // rate added for recurring clients
	MaxDiscount         float64 `yaml:"max_discount"`           // upper bound for any order's discount
	MaxOrdersPerCourier int     `yaml:"max_orders_per_courier"` // deliveries one courier makes per day
	NearExpiryDays      int     `yaml:"near_expiry_days"`       // markdown when oldest batch expires within this many days
	LeadTimeMin         int     `yaml:"lead_time_min"`          // restock lead time lower bound, days
	LeadTimeMax         int     `yaml:"lead_time_max"`          // restock lead time upper bound, days
	BasketMean          float64 `yaml:"basket_mean"`            // mean drugs per generated order
	BasketStdDev        float64 `yaml:"basket_std_dev"`         // std dev of drugs per generated order
	MaxCardID           int     `yaml:"max_card_id"`            // card ids are drawn from [1, MaxCardID)
}

// DefaultPolicy returns the standard pharmacy constants.
func DefaultPolicy() Policy {
	return Policy{
		BigOrderThreshold:   1000,
		BigOrderDiscount:    0.03,
		LoyalDiscount:       0.05,
		MaxDiscount:         0.09,
		MaxOrdersPerCourier: 7,
		NearExpiryDays:      29,
		LeadTimeMin:         1,
		LeadTimeMax:         3,
		BasketMean:          3,
		BasketStdDev:        1,
		MaxCardID:           10000,
	}
}

// Validate reports the first invalid field.
func (p Policy) Validate() error {
	if p.BigOrderThreshold < 0 {
		return fmt.Errorf("%w: big_order_threshold must be non-negative, got %d", ErrInvalidConfig, p.BigOrderThreshold)
	}
	if err := validateFiniteRange("max_discount", p.MaxDiscount, 0, 1); err != nil {
		return err
	}
	if err := validateFiniteRange("big_order_discount", p.BigOrderDiscount, 0, 1); err != nil {
		return err
	}
	if err := validateFiniteRange("loyal_discount", p.LoyalDiscount, 0, 1); err != nil {
		return err
	}
	if p.MaxOrdersPerCourier < 0 {
		return fmt.Errorf("%w: max_orders_per_courier must be non-negative, got %d", ErrInvalidConfig, p.MaxOrdersPerCourier)
	}
	if p.NearExpiryDays < 0 {
		return fmt.Errorf("%w: near_expiry_days must be non-negative, got %d", ErrInvalidConfig, p.NearExpiryDays)
	}
	if p.LeadTimeMin < 1 || p.LeadTimeMax < p.LeadTimeMin {
		return fmt.Errorf("%w: lead time range must satisfy 1 <= min <= max, got [%d, %d]", ErrInvalidConfig, p.LeadTimeMin, p.LeadTimeMax)
	}
	if err := validateFiniteRange("basket_mean", p.BasketMean, 0, math.MaxFloat64); err != nil {
		return err
	}
	if err := validateFiniteRange("basket_std_dev", p.BasketStdDev, 0, math.MaxFloat64); err != nil {
		return err
	}
	if p.MaxCardID < 2 {
		return fmt.Errorf("%w: max_card_id must be at least 2, got %d", ErrInvalidConfig, p.MaxCardID)
	}
	return nil
}

// CourierCapacity is the number of orders deliverable per day.
func (p Policy) CourierCapacity(couriers int) int {
	return couriers * p.MaxOrdersPerCourier
}

func validateFinitePositive(name string, val float64) error {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return fmt.Errorf("%w: %s must be a finite number, got %f", ErrInvalidConfig, name, val)
	}
	if val <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %f", ErrInvalidConfig, name, val)
	}
	return nil
}

func validateFiniteRange(name string, val, lo, hi float64) error {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return fmt.Errorf("%w: %s must be a finite number, got %f", ErrInvalidConfig, name, val)
	}
	if val < lo || val > hi {
		return fmt.Errorf("%w: %s must be in [%g, %g], got %g", ErrInvalidConfig, name, lo, hi, val)
	}
	return nil
}
