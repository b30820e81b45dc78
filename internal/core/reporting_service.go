package core

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// RevenueReport aggregates one financial year of business. Order figures are
// bucketed by order date; term and AMC figures by receive/period dates.
type RevenueReport struct {
	FinancialYearID    string          `json:"financial_year_id"`
	Label              string          `json:"label"`
	OrdersBooked       int             `json:"orders_booked"`
	BaseCostTotal      decimal.Decimal `json:"base_cost_total"`
	CustomizationTotal decimal.Decimal `json:"customization_total"`
	TermsReceived      decimal.Decimal `json:"terms_received"`
	TermsPending       decimal.Decimal `json:"terms_pending"`
	AMCBilled          decimal.Decimal `json:"amc_billed"`
	AMCReceived        decimal.Decimal `json:"amc_received"`
	AMCPending         decimal.Decimal `json:"amc_pending"`
	TotalReceived      decimal.Decimal `json:"total_received"`
	TotalPending       decimal.Decimal `json:"total_pending"`
}

// ReportingService provides read-only revenue aggregates.
type ReportingService interface {
	// GetRevenueReport aggregates the given financial year. Cancelled orders
	// are excluded everywhere.
	GetRevenueReport(ctx context.Context, fy FinancialYear) (*RevenueReport, error)
}

type reportingService struct {
	pool *pgxpool.Pool
}

func NewReportingService(pool *pgxpool.Pool) ReportingService {
	return &reportingService{pool: pool}
}

func (s *reportingService) GetRevenueReport(ctx context.Context, fy FinancialYear) (*RevenueReport, error) {
	r := &RevenueReport{FinancialYearID: fy.ID, Label: fy.Label}

	err := s.pool.QueryRow(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(base_cost), 0),
		       COALESCE(SUM(customization_cost), 0)
		FROM orders
		WHERE status <> 'CANCELLED'
		  AND order_date >= $1 AND order_date <= $2
	`, fy.StartDate, fy.EndDate).Scan(&r.OrdersBooked, &r.BaseCostTotal, &r.CustomizationTotal)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate orders: %w", err)
	}

	err = s.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(pt.calculated_amount) FILTER (WHERE pt.status = 'PAID'), 0),
		       COALESCE(SUM(pt.calculated_amount) FILTER (WHERE pt.status <> 'PAID'), 0)
		FROM payment_terms pt
		JOIN orders o ON o.id = pt.order_id
		WHERE o.status <> 'CANCELLED'
		  AND o.order_date >= $1 AND o.order_date <= $2
	`, fy.StartDate, fy.EndDate).Scan(&r.TermsReceived, &r.TermsPending)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate payment terms: %w", err)
	}

	err = s.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(amc_rate_amount), 0),
		       COALESCE(SUM(amc_rate_amount) FILTER (WHERE status = 'PAID'), 0),
		       COALESCE(SUM(amc_rate_amount) FILTER (WHERE status <> 'PAID'), 0)
		FROM amc_payments
		WHERE from_date >= $1 AND from_date <= $2
	`, fy.StartDate, fy.EndDate).Scan(&r.AMCBilled, &r.AMCReceived, &r.AMCPending)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate AMC payments: %w", err)
	}

	r.TotalReceived = r.TermsReceived.Add(r.AMCReceived)
	r.TotalPending = r.TermsPending.Add(r.AMCPending)
	return r, nil
}
