package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentTerm is one installment of an order's base cost, expressed as a
// percentage of the base and a derived amount. Terms are created empty,
// mutated freely while the form is open, and validated only at submit time.
type PaymentTerm struct {
	ID                     int             `json:"id"`
	OrderID                int             `json:"order_id"`
	Name                   string          `json:"name"`
	PercentageFromBaseCost decimal.Decimal `json:"percentage_from_base_cost"`
	CalculatedAmount       decimal.Decimal `json:"calculated_amount"`
	Status                 PaymentStatus   `json:"status"`
	InvoiceNumber          *string         `json:"invoice_number,omitempty"`
	InvoiceDate            *time.Time      `json:"invoice_date,omitempty"`
	PaymentReceiveDate     *time.Time      `json:"payment_receive_date,omitempty"`
}

// NewPaymentTerm returns an empty PENDING term, as created by the
// "add term" user action.
func NewPaymentTerm() PaymentTerm {
	return PaymentTerm{Status: PaymentPending}
}

// TermPercentageEdit applies a percentage keystroke to terms[index],
// re-deriving its amount from base. The stored percentage is authoritative.
func TermPercentageEdit(terms []PaymentTerm, index int, pct, base decimal.Decimal) error {
	if index < 0 || index >= len(terms) {
		return preconditionErrorf("payment term %d not found", index)
	}
	ra := ApplyEdit(base, PercentageEdited(pct))
	terms[index].PercentageFromBaseCost = ra.Percentage
	terms[index].CalculatedAmount = ra.Amount
	return nil
}

// TermAmountEdit applies an amount keystroke to terms[index], re-deriving its
// percentage from base.
func TermAmountEdit(terms []PaymentTerm, index int, amount, base decimal.Decimal) error {
	if index < 0 || index >= len(terms) {
		return preconditionErrorf("payment term %d not found", index)
	}
	ra := ApplyEdit(base, AmountEdited(amount))
	terms[index].PercentageFromBaseCost = ra.Percentage
	terms[index].CalculatedAmount = ra.Amount
	return nil
}

// RecalculateTerms re-derives every term's amount from its stored percentage
// against a new base cost. Called when the base cost itself changes; the
// percentages are left untouched.
func RecalculateTerms(terms []PaymentTerm, newBase decimal.Decimal) {
	for i := range terms {
		terms[i].CalculatedAmount = DeriveFromPercentage(newBase, terms[i].PercentageFromBaseCost)
	}
}

// SumTermPercentages returns the sum of percentage_from_base_cost across terms.
func SumTermPercentages(terms []PaymentTerm) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range terms {
		sum = sum.Add(t.PercentageFromBaseCost)
	}
	return sum
}

// ValidateTerms runs the submit-time checks on a set of payment terms:
//
//   - percentages must sum to 100 after rounding to the nearest integer
//     (sums like 99.6 or 100.4 are accepted — the rounding tolerance is
//     deliberate, see DESIGN.md);
//   - every term needs a name and non-zero percentage and amount;
//   - a PAID term must carry a payment receive date;
//   - a PENDING term's receive date is force-cleared, not rejected.
//
// The slice is mutated only by the PENDING clearing rule.
func ValidateTerms(terms []PaymentTerm) error {
	if len(terms) == 0 {
		return validationErrorf("at least one payment term is required")
	}

	for i := range terms {
		t := &terms[i]
		if t.Name == "" {
			return validationErrorf("payment term %d: missing required field name", i+1)
		}
		if t.PercentageFromBaseCost.IsZero() {
			return validationErrorf("payment term %q: missing required field percentage", t.Name)
		}
		if t.CalculatedAmount.IsZero() {
			return validationErrorf("payment term %q: missing required field amount", t.Name)
		}
		switch t.Status {
		case PaymentPaid:
			if t.PaymentReceiveDate == nil {
				return validationErrorf("payment term %q: receive date required when status is PAID", t.Name)
			}
		case PaymentPending:
			t.PaymentReceiveDate = nil
		}
	}

	if !SumTermPercentages(terms).Round(0).Equal(hundred) {
		return validationErrorf("payment terms must sum to 100%% of the base cost, got %s%%", SumTermPercentages(terms))
	}
	return nil
}
