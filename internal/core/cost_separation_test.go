package core_test

import (
	"errors"
	"testing"

	"vendordesk/internal/core"
)

func TestSyncSeparationEntries(t *testing.T) {
	entries := []core.CostSeparationEntry{
		{ProductCode: "ERP", Percentage: dec("60"), Amount: dec("600")},
		{ProductCode: "CRM", Percentage: dec("40"), Amount: dec("400")},
	}

	t.Run("newly selected product gains a zero entry", func(t *testing.T) {
		out, added, removed := core.SyncSeparationEntries([]string{"ERP", "CRM", "POS"}, entries)
		if len(out) != 3 {
			t.Fatalf("got %d entries, want 3", len(out))
		}
		if len(added) != 1 || added[0] != "POS" {
			t.Errorf("added = %v, want [POS]", added)
		}
		if len(removed) != 0 {
			t.Errorf("removed = %v, want none", removed)
		}
		if !out[2].Percentage.IsZero() || !out[2].Amount.IsZero() {
			t.Errorf("new entry must start at zero, got %s%% / %s", out[2].Percentage, out[2].Amount)
		}
	})

	t.Run("deselected product loses its entry", func(t *testing.T) {
		out, added, removed := core.SyncSeparationEntries([]string{"ERP"}, entries)
		if len(out) != 1 || out[0].ProductCode != "ERP" {
			t.Fatalf("got %v, want only ERP", out)
		}
		if len(added) != 0 {
			t.Errorf("added = %v, want none", added)
		}
		if len(removed) != 1 || removed[0] != "CRM" {
			t.Errorf("removed = %v, want [CRM]", removed)
		}
	})

	t.Run("surviving entries keep their figures", func(t *testing.T) {
		out, _, _ := core.SyncSeparationEntries([]string{"ERP", "CRM"}, entries)
		if !out[0].Percentage.Equal(dec("60")) || !out[0].Amount.Equal(dec("600")) {
			t.Errorf("ERP entry changed: %s%% / %s", out[0].Percentage, out[0].Amount)
		}
	})
}

// Base cost 1000 split 30/70 re-derives to 600/1400 at base 2000 with the
// percentages untouched.
func TestReapplySeparationBase(t *testing.T) {
	entries := []core.CostSeparationEntry{
		{ProductCode: "ERP", Percentage: dec("30"), Amount: dec("300")},
		{ProductCode: "CRM", Percentage: dec("70"), Amount: dec("700")},
	}

	core.ReapplySeparationBase(entries, dec("2000"))

	if !entries[0].Amount.Equal(dec("600")) || !entries[1].Amount.Equal(dec("1400")) {
		t.Errorf("amounts = %s / %s, want 600 / 1400", entries[0].Amount, entries[1].Amount)
	}
	if !entries[0].Percentage.Equal(dec("30")) || !entries[1].Percentage.Equal(dec("70")) {
		t.Errorf("percentages must stay 30 / 70")
	}
}

func TestSeparationEntryEdits(t *testing.T) {
	base := dec("1000")

	t.Run("percentage edit", func(t *testing.T) {
		entries := []core.CostSeparationEntry{{ProductCode: "ERP"}}
		if err := core.SeparationPercentageEdit(entries, 0, dec("45"), base); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !entries[0].Amount.Equal(dec("450")) {
			t.Errorf("amount = %s, want 450", entries[0].Amount)
		}
	})

	t.Run("amount edit", func(t *testing.T) {
		entries := []core.CostSeparationEntry{{ProductCode: "ERP"}}
		if err := core.SeparationAmountEdit(entries, 0, dec("450"), base); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !entries[0].Percentage.Equal(dec("45")) {
			t.Errorf("percentage = %s, want 45", entries[0].Percentage)
		}
	})

	t.Run("stale index", func(t *testing.T) {
		err := core.SeparationAmountEdit(nil, 0, dec("450"), base)
		var pe *core.PreconditionError
		if !errors.As(err, &pe) {
			t.Fatalf("expected PreconditionError, got %v", err)
		}
	})
}
