package core

import "github.com/shopspring/decimal"

// OrderForm is the canonical in-session record behind the order entry form.
// Every user edit funnels through one of the Set/Edit methods, each of which
// ends in a single deterministic recompute pass over all dependent fields.
// This replaces per-field reactive callbacks: with one recompute order there
// is no ambiguity when several fields hang off the same base value.
//
// The form is owned by a single editing session and is not safe for
// concurrent use.
type OrderForm struct {
	ClientCode        string                `json:"client_code"`
	OrderDate         string                `json:"order_date"` // YYYY-MM-DD
	ProductCodes      []string              `json:"product_codes"`
	BaseCost          decimal.Decimal       `json:"base_cost"`
	CustomizationCost decimal.Decimal       `json:"customization_cost"`
	AMCRate           RateAmount            `json:"amc_rate"`
	Terms             []PaymentTerm         `json:"terms"`
	Separation        []CostSeparationEntry `json:"separation"`
	Notes             string                `json:"notes"`
	DocumentFile      string                `json:"document_file"`
}

// SetBaseCost updates the base cost and cascades: AMC amount, every payment
// term amount, and every cost separation amount are re-derived from their
// stored percentages.
func (f *OrderForm) SetBaseCost(v decimal.Decimal) {
	f.BaseCost = clampNonNegative(v)
	f.recompute()
}

// SetCustomizationCost updates the customization cost; only the AMC amount
// depends on it.
func (f *OrderForm) SetCustomizationCost(v decimal.Decimal) {
	f.CustomizationCost = clampNonNegative(v)
	f.recompute()
}

// SetProducts replaces the selected product list and reconciles the cost
// separation entries with it. Separation only exists on multi-product
// orders; a single product implicitly owns the whole base cost, so dropping
// to one product clears the entries.
func (f *OrderForm) SetProducts(codes []string) {
	f.ProductCodes = codes
	if len(codes) <= 1 {
		f.Separation = nil
	} else {
		f.Separation, _, _ = SyncSeparationEntries(codes, f.Separation)
	}
	f.recompute()
}

// EditAMCRate applies a direct user edit to the AMC percentage or amount.
func (f *OrderForm) EditAMCRate(edit FieldEdit) {
	f.AMCRate = EditAMCRate(f.BaseCost, f.CustomizationCost, edit)
	f.recompute()
}

// AddTerm appends an empty payment term.
func (f *OrderForm) AddTerm() {
	f.Terms = append(f.Terms, NewPaymentTerm())
}

// RemoveTerm deletes the term at index.
func (f *OrderForm) RemoveTerm(index int) error {
	if index < 0 || index >= len(f.Terms) {
		return preconditionErrorf("payment term %d not found", index)
	}
	f.Terms = append(f.Terms[:index], f.Terms[index+1:]...)
	return nil
}

// EditTerm applies a percentage or amount keystroke to the term at index.
func (f *OrderForm) EditTerm(index int, edit FieldEdit) error {
	var err error
	if edit.Kind == EditAmount {
		err = TermAmountEdit(f.Terms, index, edit.Value, f.BaseCost)
	} else {
		err = TermPercentageEdit(f.Terms, index, edit.Value, f.BaseCost)
	}
	if err != nil {
		return err
	}
	f.recompute()
	return nil
}

// EditSeparation applies a percentage or amount keystroke to the cost
// separation entry at index.
func (f *OrderForm) EditSeparation(index int, edit FieldEdit) error {
	var err error
	if edit.Kind == EditAmount {
		err = SeparationAmountEdit(f.Separation, index, edit.Value, f.BaseCost)
	} else {
		err = SeparationPercentageEdit(f.Separation, index, edit.Value, f.BaseCost)
	}
	if err != nil {
		return err
	}
	f.recompute()
	return nil
}

// recompute is the single cascade pass: with percentages as the stored
// source of truth, every derived amount is recalculated from the current
// cost figures. Running it after any edit keeps the whole form consistent
// regardless of which field changed.
func (f *OrderForm) recompute() {
	f.AMCRate = RecomputeAMCRate(f.BaseCost, f.CustomizationCost, f.AMCRate)
	RecalculateTerms(f.Terms, f.BaseCost)
	ReapplySeparationBase(f.Separation, f.BaseCost)
}

// Validate runs the submit-time gate. It mutates the form only through the
// PENDING receive-date clearing rule of ValidateTerms.
func (f *OrderForm) Validate() error {
	if f.ClientCode == "" {
		return validationErrorf("missing required field client")
	}
	if f.OrderDate == "" {
		return validationErrorf("missing required field order date")
	}
	if len(f.ProductCodes) == 0 {
		return validationErrorf("at least one product is required")
	}
	if f.BaseCost.IsZero() {
		return validationErrorf("missing required field base cost")
	}
	if err := ValidateTerms(f.Terms); err != nil {
		return err
	}
	// Separation entries only exist on multi-product orders.
	if len(f.ProductCodes) <= 1 && len(f.Separation) > 0 {
		return validationErrorf("cost separation applies only to multi-product orders")
	}
	return nil
}
