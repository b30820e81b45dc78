package core

import "github.com/shopspring/decimal"

// AMCCombinedBase is the cost figure the AMC rate applies to: base cost plus
// customization cost, each clamped to be non-negative.
func AMCCombinedBase(baseCost, customizationCost decimal.Decimal) decimal.Decimal {
	return clampNonNegative(baseCost).Add(clampNonNegative(customizationCost))
}

// RecomputeAMCRate reacts to a change in either cost component: the stored
// percentage is sticky and the amount follows.
// When the combined cost is zero the amount is forced to zero regardless of
// percentage, and no division is attempted anywhere on this path.
func RecomputeAMCRate(baseCost, customizationCost decimal.Decimal, rate RateAmount) RateAmount {
	combined := AMCCombinedBase(baseCost, customizationCost)
	if combined.IsZero() {
		return RateAmount{Percentage: rate.Percentage, Amount: decimal.Zero}
	}
	return rate.Reapply(combined)
}

// EditAMCRate applies a direct user edit to the AMC rate pair. Editing the
// percentage re-derives the amount; editing the amount runs the derivation in
// reverse against the combined cost.
func EditAMCRate(baseCost, customizationCost decimal.Decimal, edit FieldEdit) RateAmount {
	return ApplyEdit(AMCCombinedBase(baseCost, customizationCost), edit)
}
