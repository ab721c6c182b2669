package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ChannelPolicy carries the per-channel amount bounds, fixed fee and rolling
// limits, all in minor units.
type ChannelPolicy struct {
	MinAmount    int64
	MaxAmount    int64
	FixedFee     int64
	DailyLimit   int64
	MonthlyLimit int64
}

// CrossBorderFees composes the cross-border fee: fixed network fee plus a
// corridor-specific correspondent percentage plus a regulatory fee.
type CrossBorderFees struct {
	NetworkFee    int64
	RegulatoryFee int64
	CorridorPct   map[string]decimal.Decimal // destination country -> pct
	DefaultPct    decimal.Decimal
}

// Fee returns the composite fee for amount to the given destination country.
func (f CrossBorderFees) Fee(amount int64, country string) int64 {
	pct, ok := f.CorridorPct[strings.ToUpper(strings.TrimSpace(country))]
	if !ok {
		pct = f.DefaultPct
	}

	correspondent := decimal.NewFromInt(amount).
		Mul(pct).
		Div(decimal.NewFromInt(100)).
		Round(0).
		IntPart()

	return f.NetworkFee + correspondent + f.RegulatoryFee
}

// Policies bundles the channel policies and cross-border fee table.
type Policies struct {
	Channels    map[Channel]ChannelPolicy
	CrossBorder CrossBorderFees
}

// DefaultPolicies returns the stock policy table. Amounts are minor units.
func DefaultPolicies() Policies {
	return Policies{
		Channels: map[Channel]ChannelPolicy{
			ChannelInternal: {
				MinAmount:    100,
				MaxAmount:    500_000_000,
				FixedFee:     0,
				DailyLimit:   100_000_000,
				MonthlyLimit: 1_000_000_000,
			},
			ChannelInterbank: {
				MinAmount:    100,
				MaxAmount:    100_000_000,
				FixedFee:     2_500,
				DailyLimit:   50_000_000,
				MonthlyLimit: 500_000_000,
			},
			ChannelCrossBorder: {
				MinAmount:    10_000,
				MaxAmount:    50_000_000,
				FixedFee:     0, // composed via CrossBorderFees
				DailyLimit:   25_000_000,
				MonthlyLimit: 100_000_000,
			},
			ChannelBiller: {
				MinAmount:    100,
				MaxAmount:    10_000_000,
				FixedFee:     1_000,
				DailyLimit:   20_000_000,
				MonthlyLimit: 100_000_000,
			},
		},
		CrossBorder: CrossBorderFees{
			NetworkFee:    150_000,
			RegulatoryFee: 5_000,
			CorridorPct: map[string]decimal.Decimal{
				"US": decimal.RequireFromString("0.5"),
				"GB": decimal.RequireFromString("0.6"),
				"DE": decimal.RequireFromString("0.6"),
				"CN": decimal.RequireFromString("0.9"),
			},
			DefaultPct: decimal.RequireFromString("1.0"),
		},
	}
}

// ConvertAmount applies an FX rate to a minor-unit amount, rounding half up to
// destination minor units.
func ConvertAmount(amount int64, rate decimal.Decimal) int64 {
	return decimal.NewFromInt(amount).Mul(rate).Round(0).IntPart()
}
