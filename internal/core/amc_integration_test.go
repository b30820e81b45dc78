package core_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"vendordesk/internal/core"

	"github.com/jackc/pgx/v5/pgxpool"
)

// confirmedOrder creates and confirms a standard order for AMC tests.
func confirmedOrder(t *testing.T, pool *pgxpool.Pool, client, orderDate string) *core.Order {
	t.Helper()
	ctx := context.Background()
	svc := core.NewOrderService(pool)

	order, err := svc.CreateOrder(ctx, draftForm(client, orderDate))
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}
	order, err = svc.ConfirmOrder(ctx, order.ID)
	if err != nil {
		t.Fatalf("ConfirmOrder failed: %v", err)
	}
	return order
}

func TestAMCService_FullCycle(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	ctx := context.Background()
	order := confirmedOrder(t, pool, "C001", "2025-06-15")
	svc := core.NewAMCService(pool)

	// 1. Attach a yearly AMC; rate and combined base are snapshotted.
	amc, err := svc.CreateForOrder(ctx, order.ID, date(2025, 7, 1), 12)
	if err != nil {
		t.Fatalf("CreateForOrder failed: %v", err)
	}
	if !amc.RatePercentage.Equal(dec("15")) {
		t.Errorf("Expected snapshotted rate 15%%, got %s", amc.RatePercentage)
	}
	if !amc.TotalCost.Equal(dec("100000")) {
		t.Errorf("Expected combined base 100000, got %s", amc.TotalCost)
	}

	// A second AMC on the same order is rejected.
	if _, err := svc.CreateForOrder(ctx, order.ID, date(2026, 7, 1), 12); err == nil {
		t.Fatal("CreateForOrder should reject a second AMC on the same order")
	}

	// 2. Propose a schedule through 2026 → two contiguous yearly periods.
	proposals, err := svc.ProposeSchedule(ctx, amc.ID, 2026)
	if err != nil {
		t.Fatalf("ProposeSchedule failed: %v", err)
	}
	if len(proposals) != 2 {
		t.Fatalf("Expected 2 proposals, got %d", len(proposals))
	}
	if !proposals[0].FromDate.Equal(date(2025, 7, 1)) || !proposals[1].FromDate.Equal(date(2026, 7, 1)) {
		t.Errorf("Unexpected proposal periods: %v, %v", proposals[0].FromDate, proposals[1].FromDate)
	}

	// 3. Commit the proposals.
	payments, err := svc.CommitPayments(ctx, amc.ID, proposals)
	if err != nil {
		t.Fatalf("CommitPayments failed: %v", err)
	}
	if len(payments) != 2 {
		t.Fatalf("Expected 2 persisted payments, got %d", len(payments))
	}
	if payments[0].Status != core.PaymentPending {
		t.Errorf("Expected committed payments to start PENDING, got %s", payments[0].Status)
	}

	// Committing the same periods again hits the overlap guard.
	if _, err := svc.CommitPayments(ctx, amc.ID, proposals); err == nil {
		t.Fatal("CommitPayments should reject overlapping periods")
	}

	// 4. A fresh proposal skips the covered periods entirely.
	more, err := svc.ProposeSchedule(ctx, amc.ID, 2027)
	if err != nil {
		t.Fatalf("ProposeSchedule failed: %v", err)
	}
	if len(more) != 1 || !more[0].FromDate.Equal(date(2027, 7, 1)) {
		t.Fatalf("Expected one proposal starting 2027-07-01, got %v", more)
	}

	// 5. Mark the first payment PAID.
	inv := "AMC-INV-1"
	recv := date(2025, 8, 1)
	paid, err := svc.UpdatePayment(ctx, payments[0].ID, core.PaymentPaid, &inv, nil, &recv)
	if err != nil {
		t.Fatalf("UpdatePayment failed: %v", err)
	}
	if paid.PaymentReceiveDate == nil {
		t.Error("PAID payment must keep its receive date")
	}

	// PAID without a receive date is rejected before touching the database.
	_, err = svc.UpdatePayment(ctx, payments[1].ID, core.PaymentPaid, &inv, nil, nil)
	if err == nil {
		t.Fatal("UpdatePayment should require a receive date for PAID")
	}
	var validationErr *core.ValidationError
	if !errors.As(err, &validationErr) {
		t.Errorf("Expected a validation error, got %v", err)
	}
}

func TestAMCService_DeletePaymentsAggregatesFailures(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	ctx := context.Background()
	order := confirmedOrder(t, pool, "C001", "2025-06-15")
	svc := core.NewAMCService(pool)

	amc, err := svc.CreateForOrder(ctx, order.ID, date(2025, 7, 1), 6)
	if err != nil {
		t.Fatalf("CreateForOrder failed: %v", err)
	}
	proposals, err := svc.ProposeSchedule(ctx, amc.ID, 2025)
	if err != nil {
		t.Fatalf("ProposeSchedule failed: %v", err)
	}
	payments, err := svc.CommitPayments(ctx, amc.ID, proposals)
	if err != nil {
		t.Fatalf("CommitPayments failed: %v", err)
	}
	if len(payments) < 1 {
		t.Fatal("Expected at least one committed payment")
	}

	// One real id plus two that do not exist: every miss shows up in the one
	// aggregate error while the valid deletion stands.
	err = svc.DeletePayments(ctx, []int{payments[0].ID, 999998, 999999})
	if err == nil {
		t.Fatal("DeletePayments should report the missing payments")
	}
	if !strings.Contains(err.Error(), "999998") || !strings.Contains(err.Error(), "999999") {
		t.Errorf("Expected the aggregate error to name every missing id, got: %v", err)
	}

	remaining, err := svc.GetPayments(ctx, amc.ID)
	if err != nil {
		t.Fatalf("GetPayments failed: %v", err)
	}
	for _, p := range remaining {
		if p.ID == payments[0].ID {
			t.Error("Valid deletion should stand despite the batch error")
		}
	}
}

func TestReportingService_RevenueReport(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	ctx := context.Background()
	order := confirmedOrder(t, pool, "C001", "2025-06-15")

	orderSvc := core.NewOrderService(pool)
	inv := "INV-1"
	recv := date(2025, 7, 1)
	if _, err := orderSvc.UpdateTermStatus(ctx, order.Terms[0].ID, core.PaymentPaid, &inv, nil, &recv); err != nil {
		t.Fatalf("UpdateTermStatus failed: %v", err)
	}

	amcSvc := core.NewAMCService(pool)
	amc, err := amcSvc.CreateForOrder(ctx, order.ID, date(2025, 7, 1), 12)
	if err != nil {
		t.Fatalf("CreateForOrder failed: %v", err)
	}
	proposals, err := amcSvc.ProposeSchedule(ctx, amc.ID, 2025)
	if err != nil {
		t.Fatalf("ProposeSchedule failed: %v", err)
	}
	if _, err := amcSvc.CommitPayments(ctx, amc.ID, proposals); err != nil {
		t.Fatalf("CommitPayments failed: %v", err)
	}

	years := core.DefaultFinancialYears(date(2026, 1, 1))
	fy, ok := core.FinancialYearByID(years, "FY2025-2026")
	if !ok {
		t.Fatal("FY2025-2026 missing from generated years")
	}

	report, err := core.NewReportingService(pool).GetRevenueReport(ctx, fy)
	if err != nil {
		t.Fatalf("GetRevenueReport failed: %v", err)
	}
	if report.OrdersBooked != 1 {
		t.Errorf("Expected 1 order booked, got %d", report.OrdersBooked)
	}
	if !report.BaseCostTotal.Equal(dec("100000")) {
		t.Errorf("Expected base cost total 100000, got %s", report.BaseCostTotal)
	}
	if !report.TermsReceived.Equal(dec("40000")) {
		t.Errorf("Expected terms received 40000, got %s", report.TermsReceived)
	}
	if !report.TermsPending.Equal(dec("60000")) {
		t.Errorf("Expected terms pending 60000, got %s", report.TermsPending)
	}
	if !report.AMCBilled.Equal(dec("15000")) {
		t.Errorf("Expected AMC billed 15000, got %s", report.AMCBilled)
	}
	if !report.TotalReceived.Equal(dec("40000")) {
		t.Errorf("Expected total received 40000, got %s", report.TotalReceived)
	}
	if !report.TotalPending.Equal(dec("75000")) {
		t.Errorf("Expected total pending 75000, got %s", report.TotalPending)
	}
}
