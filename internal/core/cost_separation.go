package core

import "github.com/shopspring/decimal"

// CostSeparationEntry records one selected product's share of an order's base
// cost. Entries exist only while the order carries more than one product;
// a single-product order implicitly assigns the whole base cost to it.
type CostSeparationEntry struct {
	ProductCode string          `json:"product_code"`
	Percentage  decimal.Decimal `json:"percentage"`
	Amount      decimal.Decimal `json:"amount"`
}

// SyncSeparationEntries reconciles the entry list with the currently selected
// products: newly selected products gain a zero entry, deselected products
// lose theirs, and surviving entries keep their figures. The added and
// removed product codes are returned for the caller's bookkeeping.
func SyncSeparationEntries(selected []string, entries []CostSeparationEntry) (out []CostSeparationEntry, added, removed []string) {
	selectedSet := make(map[string]bool, len(selected))
	for _, code := range selected {
		selectedSet[code] = true
	}

	existing := make(map[string]bool, len(entries))
	for _, e := range entries {
		existing[e.ProductCode] = true
		if selectedSet[e.ProductCode] {
			out = append(out, e)
		} else {
			removed = append(removed, e.ProductCode)
		}
	}

	for _, code := range selected {
		if !existing[code] {
			out = append(out, CostSeparationEntry{ProductCode: code})
			added = append(added, code)
		}
	}
	return out, added, removed
}

// ReapplySeparationBase re-derives every entry's amount from its stored
// percentage against a new base cost.
func ReapplySeparationBase(entries []CostSeparationEntry, newBase decimal.Decimal) {
	for i := range entries {
		entries[i].Amount = DeriveFromPercentage(newBase, entries[i].Percentage)
	}
}

// SeparationPercentageEdit applies a percentage keystroke to entries[index].
func SeparationPercentageEdit(entries []CostSeparationEntry, index int, pct, base decimal.Decimal) error {
	if index < 0 || index >= len(entries) {
		return preconditionErrorf("cost separation entry %d not found", index)
	}
	ra := ApplyEdit(base, PercentageEdited(pct))
	entries[index].Percentage = ra.Percentage
	entries[index].Amount = ra.Amount
	return nil
}

// SeparationAmountEdit applies an amount keystroke to entries[index].
func SeparationAmountEdit(entries []CostSeparationEntry, index int, amount, base decimal.Decimal) error {
	if index < 0 || index >= len(entries) {
		return preconditionErrorf("cost separation entry %d not found", index)
	}
	ra := ApplyEdit(base, AmountEdited(amount))
	entries[index].Percentage = ra.Percentage
	entries[index].Amount = ra.Amount
	return nil
}
