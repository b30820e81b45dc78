package app_test

import (
	"context"
	"errors"
	"testing"

	"vendordesk/internal/app"
	"vendordesk/internal/core"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// engineOnly builds a facade with no persistence behind it; the form
// endpoints never touch the database.
func engineOnly() app.ApplicationService {
	return app.NewAppService(nil, nil, nil, nil, nil, zerolog.Nop())
}

func sampleRequest() app.OrderFormRequest {
	return app.OrderFormRequest{
		ClientCode:        "C001",
		OrderDate:         "2025-06-15",
		ProductCodes:      []string{"ERP-CORE", "ERP-HR"},
		BaseCost:          dec("100000"),
		CustomizationCost: dec("20000"),
		AMCPercentage:     dec("10"),
		Terms: []app.TermInput{
			{Name: "Advance", Percentage: dec("40"), Status: core.PaymentPending},
			{Name: "On delivery", Percentage: dec("60"), Status: core.PaymentPending},
		},
		Separation: []app.SeparationInput{
			{ProductCode: "ERP-CORE", Percentage: dec("70")},
			{ProductCode: "ERP-HR", Percentage: dec("30")},
		},
	}
}

func TestRecomputeOrderForm_DerivesAllAmounts(t *testing.T) {
	svc := engineOnly()

	// A base-cost edit cascades into AMC, terms, and separation amounts.
	result, err := svc.RecomputeOrderForm(context.Background(), sampleRequest(), app.FormEdit{
		Field: "base_cost",
		Value: dec("200000"),
	})
	if err != nil {
		t.Fatalf("RecomputeOrderForm failed: %v", err)
	}
	form := result.Form

	if !form.AMCRate.Amount.Equal(dec("22000")) {
		t.Errorf("AMC amount: expected 22000 (10%% of 220000), got %s", form.AMCRate.Amount)
	}
	if !form.Terms[0].CalculatedAmount.Equal(dec("80000")) {
		t.Errorf("First term: expected 80000, got %s", form.Terms[0].CalculatedAmount)
	}
	if !form.Separation[1].Amount.Equal(dec("60000")) {
		t.Errorf("Separation ERP-HR: expected 60000, got %s", form.Separation[1].Amount)
	}
}

func TestRecomputeOrderForm_AmountEditBackDerivesPercentage(t *testing.T) {
	svc := engineOnly()

	result, err := svc.RecomputeOrderForm(context.Background(), sampleRequest(), app.FormEdit{
		Field: "term",
		Kind:  "amount",
		Index: 0,
		Value: dec("25000"),
	})
	if err != nil {
		t.Fatalf("RecomputeOrderForm failed: %v", err)
	}
	if !result.Form.Terms[0].PercentageFromBaseCost.Equal(dec("25")) {
		t.Errorf("Expected back-derived 25%%, got %s", result.Form.Terms[0].PercentageFromBaseCost)
	}
}

func TestRecomputeOrderForm_ProductEditSyncsSeparation(t *testing.T) {
	svc := engineOnly()

	// Widening the selection grows a zeroed entry for the new product.
	result, err := svc.RecomputeOrderForm(context.Background(), sampleRequest(), app.FormEdit{
		Field:    "products",
		Products: []string{"ERP-CORE", "ERP-HR", "ERP-INV"},
	})
	if err != nil {
		t.Fatalf("RecomputeOrderForm failed: %v", err)
	}
	if len(result.Form.Separation) != 3 {
		t.Fatalf("Expected three separation entries after widening products, got %d", len(result.Form.Separation))
	}
	if result.Form.Separation[2].ProductCode != "ERP-INV" {
		t.Errorf("Expected a fresh ERP-INV entry, got %s", result.Form.Separation[2].ProductCode)
	}

	// Narrowing to a single product retires the separation outright, so the
	// resulting form is valid without any further edits.
	result, err = svc.RecomputeOrderForm(context.Background(), sampleRequest(), app.FormEdit{
		Field:    "products",
		Products: []string{"ERP-CORE"},
	})
	if err != nil {
		t.Fatalf("RecomputeOrderForm failed: %v", err)
	}
	if len(result.Form.Separation) != 0 {
		t.Fatalf("Expected no separation entries on a single-product form, got %d", len(result.Form.Separation))
	}
	if err := result.Form.Validate(); err != nil {
		t.Errorf("Single-product form must validate, got %v", err)
	}
}

func TestRecomputeOrderForm_Errors(t *testing.T) {
	svc := engineOnly()
	ctx := context.Background()

	// Unknown field.
	_, err := svc.RecomputeOrderForm(ctx, sampleRequest(), app.FormEdit{Field: "discount"})
	var validationErr *core.ValidationError
	if !errors.As(err, &validationErr) {
		t.Errorf("Expected a validation error for an unknown field, got %v", err)
	}

	// Out-of-range term index.
	_, err = svc.RecomputeOrderForm(ctx, sampleRequest(), app.FormEdit{Field: "term", Index: 5, Value: dec("10")})
	var preconditionErr *core.PreconditionError
	if !errors.As(err, &preconditionErr) {
		t.Errorf("Expected a precondition error for a stale term index, got %v", err)
	}
}

func TestValidateOrderForm(t *testing.T) {
	svc := engineOnly()
	ctx := context.Background()

	if err := svc.ValidateOrderForm(ctx, sampleRequest()); err != nil {
		t.Fatalf("Balanced form should validate, got %v", err)
	}

	unbalanced := sampleRequest()
	unbalanced.Terms[0].Percentage = dec("10")
	if err := svc.ValidateOrderForm(ctx, unbalanced); err == nil {
		t.Fatal("Unbalanced terms should fail validation")
	}

	missingClient := sampleRequest()
	missingClient.ClientCode = ""
	if err := svc.ValidateOrderForm(ctx, missingClient); err == nil {
		t.Fatal("Missing client should fail validation")
	}
}
