package core

import "github.com/shopspring/decimal"

// hundred is the percentage scale factor.
var hundred = decimal.NewFromInt(100)

// RateAmount pairs a percentage with the amount it derives from a base cost.
// After any edit to either side, Amount == base × Percentage / 100 holds
// (to 2 decimal places).
type RateAmount struct {
	Percentage decimal.Decimal `json:"percentage"`
	Amount     decimal.Decimal `json:"amount"`
}

// EditKind identifies which side of a RateAmount the user touched.
type EditKind int

const (
	EditPercentage EditKind = iota
	EditAmount
)

// FieldEdit is a single user edit to a percentage/amount pair. Modeling the
// edited side explicitly removes any ambiguity about which field is
// authoritative: the edited one is, and when callers construct an edit with
// both kinds conflated, percentage wins.
type FieldEdit struct {
	Kind  EditKind
	Value decimal.Decimal
}

// PercentageEdited builds an edit where the percentage is authoritative.
func PercentageEdited(v decimal.Decimal) FieldEdit {
	return FieldEdit{Kind: EditPercentage, Value: v}
}

// AmountEdited builds an edit where the amount is authoritative.
func AmountEdited(v decimal.Decimal) FieldEdit {
	return FieldEdit{Kind: EditAmount, Value: v}
}

// clampNonNegative coerces negative or otherwise unusable values to zero.
// Money and percentages in this domain are never negative.
func clampNonNegative(v decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return decimal.Zero
	}
	return v
}

// DeriveFromPercentage returns base × percentage / 100, rounded to 2 decimal
// places. Negative inputs are clamped to zero before computing.
func DeriveFromPercentage(base, percentage decimal.Decimal) decimal.Decimal {
	base = clampNonNegative(base)
	percentage = clampNonNegative(percentage)
	return base.Mul(percentage).Div(hundred).Round(2)
}

// DeriveFromAmount returns amount / base × 100, rounded to 2 decimal places.
// A zero base yields zero: the division is never attempted, so callers get a
// usable percentage instead of a division error.
func DeriveFromAmount(base, amount decimal.Decimal) decimal.Decimal {
	base = clampNonNegative(base)
	amount = clampNonNegative(amount)
	if base.IsZero() {
		return decimal.Zero
	}
	return amount.Div(base).Mul(hundred).Round(2)
}

// ApplyEdit resolves a single user edit against the given base, returning the
// reconciled percentage/amount pair. The edited side is kept verbatim
// (clamped); the other side is re-derived.
func ApplyEdit(base decimal.Decimal, edit FieldEdit) RateAmount {
	switch edit.Kind {
	case EditAmount:
		amount := clampNonNegative(edit.Value)
		return RateAmount{
			Percentage: DeriveFromAmount(base, amount),
			Amount:     amount,
		}
	default:
		pct := clampNonNegative(edit.Value)
		return RateAmount{
			Percentage: pct,
			Amount:     DeriveFromPercentage(base, pct),
		}
	}
}

// Reapply re-derives the amount from the stored percentage against a new
// base. The percentage is sticky; only the amount follows the base.
func (r RateAmount) Reapply(base decimal.Decimal) RateAmount {
	return RateAmount{
		Percentage: r.Percentage,
		Amount:     DeriveFromPercentage(base, r.Percentage),
	}
}
