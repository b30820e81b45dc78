package core_test

import (
	"testing"

	"vendordesk/internal/core"

	"github.com/shopspring/decimal"
)

func TestRecomputeAMCRate(t *testing.T) {
	t.Run("amount follows the combined cost", func(t *testing.T) {
		rate := core.RateAmount{Percentage: dec("20"), Amount: dec("200")}

		// base 1000, customization 0 → 20% of 1000
		got := core.RecomputeAMCRate(dec("1000"), decimal.Zero, rate)
		if !got.Amount.Equal(dec("200")) {
			t.Fatalf("amount = %s, want 200", got.Amount)
		}

		// customization rises to 500 → 20% of 1500, percentage sticky
		got = core.RecomputeAMCRate(dec("1000"), dec("500"), got)
		if !got.Amount.Equal(dec("300")) {
			t.Errorf("amount = %s, want 300", got.Amount)
		}
		if !got.Percentage.Equal(dec("20")) {
			t.Errorf("percentage = %s, want 20 (sticky)", got.Percentage)
		}
	})

	t.Run("zero combined cost forces zero amount", func(t *testing.T) {
		rate := core.RateAmount{Percentage: dec("20"), Amount: dec("300")}
		got := core.RecomputeAMCRate(decimal.Zero, decimal.Zero, rate)
		if !got.Amount.IsZero() {
			t.Errorf("amount = %s, want 0", got.Amount)
		}
		if !got.Percentage.Equal(dec("20")) {
			t.Errorf("percentage = %s, want 20", got.Percentage)
		}
	})
}

func TestEditAMCRate(t *testing.T) {
	t.Run("percentage edit derives amount from combined cost", func(t *testing.T) {
		got := core.EditAMCRate(dec("1000"), dec("500"), core.PercentageEdited(dec("10")))
		if !got.Amount.Equal(dec("150")) {
			t.Errorf("amount = %s, want 150", got.Amount)
		}
	})

	t.Run("amount edit runs the derivation in reverse", func(t *testing.T) {
		got := core.EditAMCRate(dec("1000"), dec("500"), core.AmountEdited(dec("150")))
		if !got.Percentage.Equal(dec("10")) {
			t.Errorf("percentage = %s, want 10", got.Percentage)
		}
	})

	t.Run("amount edit with zero combined cost never divides", func(t *testing.T) {
		got := core.EditAMCRate(decimal.Zero, decimal.Zero, core.AmountEdited(dec("150")))
		if !got.Percentage.IsZero() {
			t.Errorf("percentage = %s, want 0", got.Percentage)
		}
	})
}
