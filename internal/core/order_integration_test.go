package core_test

import (
	"context"
	"os"
	"strings"
	"testing"

	"vendordesk/internal/core"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	_ = godotenv.Load("../../.env")

	// Use a dedicated TEST database to avoid wiping the live app database.
	// Set TEST_DATABASE_URL in your .env or environment to run integration tests.
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set — skipping integration test to protect live database")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	// Clean and seed test DB
	_, err = pool.Exec(ctx, `
		TRUNCATE TABLE amc_payments, amcs, cost_separation_entries, payment_terms,
			order_products, orders, order_sequences, products, clients CASCADE;

		INSERT INTO clients (code, name, contact_person, email, city) VALUES
		('C001', 'Acme Corp',       'R. Shah',  'billing@acme.example', 'Bengaluru'),
		('C002', 'Beta Industries', 'M. Iyer',  'billing@beta.example', 'Mumbai');

		INSERT INTO products (code, name) VALUES
		('ERP-CORE', 'ERP Core Suite'),
		('ERP-HR',   'HR & Payroll Module'),
		('ERP-INV',  'Inventory Module');
	`)
	if err != nil {
		t.Fatalf("Failed to seed test database: %v", err)
	}

	return pool
}

// draftForm builds a balanced two-term single-product form via the engine,
// the same way the web adapter does before persisting.
func draftForm(client, orderDate string) *core.OrderForm {
	f := &core.OrderForm{ClientCode: client, OrderDate: orderDate}
	f.SetProducts([]string{"ERP-CORE"})
	f.AddTerm()
	f.AddTerm()
	f.Terms[0].Name = "Advance"
	f.Terms[1].Name = "On delivery"
	_ = f.EditTerm(0, core.PercentageEdited(dec("40")))
	_ = f.EditTerm(1, core.PercentageEdited(dec("60")))
	f.EditAMCRate(core.PercentageEdited(dec("15")))
	f.SetBaseCost(dec("100000"))
	return f
}

func TestOrderService_FullLifecycle(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	ctx := context.Background()
	svc := core.NewOrderService(pool)

	// 1. Create a draft order
	order, err := svc.CreateOrder(ctx, draftForm("C001", "2025-06-15"))
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}
	if order.Status != core.OrderDraft {
		t.Errorf("Expected DRAFT, got %s", order.Status)
	}
	if order.OrderNumber != "" {
		t.Errorf("DRAFT order should have no order number, got %q", order.OrderNumber)
	}
	if len(order.Terms) != 2 {
		t.Fatalf("Expected 2 terms, got %d", len(order.Terms))
	}
	if !order.Terms[0].CalculatedAmount.Equal(dec("40000")) {
		t.Errorf("Expected first term amount 40000, got %s", order.Terms[0].CalculatedAmount)
	}
	if !order.AMCAmount.Equal(dec("15000")) {
		t.Errorf("Expected AMC amount 15000, got %s", order.AMCAmount)
	}

	// 2. Confirm → assigns gapless FY order number (June 2025 → FY starting 2025)
	order, err = svc.ConfirmOrder(ctx, order.ID)
	if err != nil {
		t.Fatalf("ConfirmOrder failed: %v", err)
	}
	if order.Status != core.OrderConfirmed {
		t.Errorf("Expected CONFIRMED, got %s", order.Status)
	}
	if order.OrderNumber != "ORD-202526-00001" {
		t.Errorf("Expected ORD-202526-00001, got %q", order.OrderNumber)
	}
	if order.ConfirmedAt == nil {
		t.Error("CONFIRMED order must have confirmed_at timestamp")
	}

	// 3. Close is rejected while terms remain unpaid
	if _, err = svc.CloseOrder(ctx, order.ID); err == nil {
		t.Fatal("CloseOrder should fail with unpaid terms")
	}

	// 4. Mark both terms PAID, then close
	for _, term := range order.Terms {
		inv := "INV-1"
		recv := date(2025, 7, 1)
		if _, err := svc.UpdateTermStatus(ctx, term.ID, core.PaymentPaid, &inv, nil, &recv); err != nil {
			t.Fatalf("UpdateTermStatus failed: %v", err)
		}
	}
	order, err = svc.CloseOrder(ctx, order.ID)
	if err != nil {
		t.Fatalf("CloseOrder failed: %v", err)
	}
	if order.Status != core.OrderClosed {
		t.Errorf("Expected CLOSED, got %s", order.Status)
	}
}

func TestOrderService_SequencePerFinancialYear(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	ctx := context.Background()
	svc := core.NewOrderService(pool)

	// Two orders in the same FY share a counter; a March order falls into the
	// previous FY and starts its own.
	cases := []struct {
		orderDate string
		want      string
	}{
		{"2025-06-15", "ORD-202526-00001"},
		{"2026-01-10", "ORD-202526-00002"},
		{"2025-03-20", "ORD-202425-00001"},
	}
	for _, tc := range cases {
		order, err := svc.CreateOrder(ctx, draftForm("C001", tc.orderDate))
		if err != nil {
			t.Fatalf("CreateOrder(%s) failed: %v", tc.orderDate, err)
		}
		order, err = svc.ConfirmOrder(ctx, order.ID)
		if err != nil {
			t.Fatalf("ConfirmOrder(%s) failed: %v", tc.orderDate, err)
		}
		if order.OrderNumber != tc.want {
			t.Errorf("Order dated %s: expected %s, got %s", tc.orderDate, tc.want, order.OrderNumber)
		}
	}
}

func TestOrderService_CancelOnlyDrafts(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	ctx := context.Background()
	svc := core.NewOrderService(pool)

	order, err := svc.CreateOrder(ctx, draftForm("C002", "2025-05-01"))
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}
	if _, err = svc.ConfirmOrder(ctx, order.ID); err != nil {
		t.Fatalf("ConfirmOrder failed: %v", err)
	}

	_, err = svc.CancelOrder(ctx, order.ID)
	if err == nil {
		t.Fatal("CancelOrder should reject a confirmed order")
	}
	if !strings.Contains(err.Error(), "DRAFT") {
		t.Errorf("Expected a status error mentioning DRAFT, got: %v", err)
	}

	draft, err := svc.CreateOrder(ctx, draftForm("C002", "2025-05-02"))
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}
	draft, err = svc.CancelOrder(ctx, draft.ID)
	if err != nil {
		t.Fatalf("CancelOrder failed: %v", err)
	}
	if draft.Status != core.OrderCancelled {
		t.Errorf("Expected CANCELLED, got %s", draft.Status)
	}
}

func TestOrderService_PendingTermsByFinancialYear(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	ctx := context.Background()
	svc := core.NewOrderService(pool)

	// Pending listings only cover confirmed orders, so confirm both.
	for _, tc := range []struct{ client, orderDate string }{
		{"C001", "2025-06-15"},
		{"C002", "2024-09-01"},
	} {
		order, err := svc.CreateOrder(ctx, draftForm(tc.client, tc.orderDate))
		if err != nil {
			t.Fatalf("CreateOrder failed: %v", err)
		}
		if _, err := svc.ConfirmOrder(ctx, order.ID); err != nil {
			t.Fatalf("ConfirmOrder failed: %v", err)
		}
	}

	years := core.DefaultFinancialYears(date(2026, 1, 1))
	fy, ok := core.FinancialYearByID(years, "FY2025-2026")
	if !ok {
		t.Fatal("FY2025-2026 missing from generated years")
	}

	pending, err := svc.ListPendingTerms(ctx, &fy)
	if err != nil {
		t.Fatalf("ListPendingTerms failed: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("Expected 2 pending terms in FY2025-2026, got %d", len(pending))
	}
	for _, p := range pending {
		if p.ClientName != "Acme Corp" {
			t.Errorf("Expected Acme Corp pending terms only, got %s", p.ClientName)
		}
	}

	all, err := svc.ListPendingTerms(ctx, nil)
	if err != nil {
		t.Fatalf("ListPendingTerms(all) failed: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("Expected 4 pending terms across all years, got %d", len(all))
	}
}
