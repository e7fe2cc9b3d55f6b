package sim

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmasim/pharmasim/sim/internal/testutil"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"zero couriers allowed", func(c *Config) { c.CourierCount = 0 }, false},
		{"zero restock threshold allowed", func(c *Config) { c.MinRestockQuantity = 0 }, false},
		{"card discount 100 allowed", func(c *Config) { c.CardDiscountPct = 100 }, false},
		{"zero days", func(c *Config) { c.DayCount = 0 }, true},
		{"zero density", func(c *Config) { c.DemandDensity = 0 }, true},
		{"NaN density", func(c *Config) { c.DemandDensity = math.NaN() }, true},
		{"infinite density", func(c *Config) { c.DemandDensity = math.Inf(1) }, true},
		{"negative card discount", func(c *Config) { c.CardDiscountPct = -1 }, true},
		{"card discount over 100", func(c *Config) { c.CardDiscountPct = 101 }, true},
		{"negative couriers", func(c *Config) { c.CourierCount = -1 }, true},
		{"negative restock threshold", func(c *Config) { c.MinRestockQuantity = -1 }, true},
		{"card probability over 1", func(c *Config) { c.CardProbability = 1.5 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultTestConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_CardDiscountRate(t *testing.T) {
	cfg := defaultTestConfig()
	cfg.CardDiscountPct = 7
	testutil.AssertDecimalEqual(t, "card rate", decimal.RequireFromString("0.07"), cfg.CardDiscountRate())
}

func TestDefaultPolicy_IsValid(t *testing.T) {
	p := DefaultPolicy()
	require.NoError(t, p.Validate())
	assert.Equal(t, 14, p.CourierCapacity(2))
	assert.Equal(t, 0, p.CourierCapacity(0))
}

func TestPolicy_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Policy)
	}{
		{"negative threshold", func(p *Policy) { p.BigOrderThreshold = -1 }},
		{"max discount over 1", func(p *Policy) { p.MaxDiscount = 1.1 }},
		{"negative loyal discount", func(p *Policy) { p.LoyalDiscount = -0.1 }},
		{"NaN big order discount", func(p *Policy) { p.BigOrderDiscount = math.NaN() }},
		{"negative orders per courier", func(p *Policy) { p.MaxOrdersPerCourier = -1 }},
		{"negative near expiry", func(p *Policy) { p.NearExpiryDays = -1 }},
		{"zero lead time", func(p *Policy) { p.LeadTimeMin = 0 }},
		{"inverted lead time", func(p *Policy) { p.LeadTimeMin, p.LeadTimeMax = 3, 2 }},
		{"negative basket mean", func(p *Policy) { p.BasketMean = -1 }},
		{"card id range too small", func(p *Policy) { p.MaxCardID = 1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultPolicy()
			tt.mutate(&p)
			assert.ErrorIs(t, p.Validate(), ErrInvalidConfig)
		})
	}
}
