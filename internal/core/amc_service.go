package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// AMCService manages annual maintenance contracts and their payment
// schedules.
type AMCService interface {
	// CreateForOrder attaches an AMC to a confirmed order, snapshotting the
	// order's current rate and combined cost. One AMC per order.
	CreateForOrder(ctx context.Context, orderID int, startDate time.Time, frequencyMonths int) (*AMC, error)
	GetByOrder(ctx context.Context, orderID int) (*AMC, error)
	GetAMCs(ctx context.Context) ([]AMC, error)

	// ProposeSchedule returns uncommitted payment proposals covering the
	// contract through the end of tillYear, skipping periods already covered
	// by persisted payments.
	ProposeSchedule(ctx context.Context, amcID int, tillYear int) ([]AMCPayment, error)
	// CommitPayments persists a reviewed proposal list in one transaction.
	CommitPayments(ctx context.Context, amcID int, proposals []AMCPayment) ([]AMCPayment, error)

	GetPayments(ctx context.Context, amcID int) ([]AMCPayment, error)
	UpdatePayment(ctx context.Context, paymentID int, status PaymentStatus, invoiceNumber *string, invoiceDate, receiveDate *time.Time) (*AMCPayment, error)
	// DeletePayments removes several payments concurrently and reports any
	// failures as one aggregate error.
	DeletePayments(ctx context.Context, paymentIDs []int) error
	// ListPendingPayments returns unpaid AMC payments, optionally restricted
	// to periods starting inside one financial year.
	ListPendingPayments(ctx context.Context, fy *FinancialYear) ([]PendingAMCPayment, error)
}

// PendingAMCPayment is one row of the pending-payments listing for AMC
// schedules.
type PendingAMCPayment struct {
	Payment     AMCPayment `json:"payment"`
	AMCID       int        `json:"amc_id"`
	OrderNumber string     `json:"order_number"`
	ClientName  string     `json:"client_name"`
}

type amcService struct {
	pool *pgxpool.Pool
}

func NewAMCService(pool *pgxpool.Pool) AMCService {
	return &amcService{pool: pool}
}

func (s *amcService) CreateForOrder(ctx context.Context, orderID int, startDate time.Time, frequencyMonths int) (*AMC, error) {
	if frequencyMonths <= 0 {
		return nil, validationErrorf("AMC frequency must be a positive number of months")
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var status string
	var amcPct, amcAmt, baseCost, customizationCost decimal.Decimal
	err = tx.QueryRow(ctx, `
		SELECT status, amc_percentage, amc_amount, base_cost, customization_cost
		FROM orders WHERE id = $1 FOR UPDATE
	`, orderID).Scan(&status, &amcPct, &amcAmt, &baseCost, &customizationCost)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("order %d not found", orderID)
		}
		return nil, fmt.Errorf("failed to fetch order %d: %w", orderID, err)
	}
	if status != string(OrderConfirmed) {
		return nil, validationErrorf("order %d must be CONFIRMED before attaching an AMC, status is %s", orderID, status)
	}

	var existing int
	if err := tx.QueryRow(ctx, "SELECT COUNT(*) FROM amcs WHERE order_id = $1", orderID).Scan(&existing); err != nil {
		return nil, fmt.Errorf("failed to check existing AMC: %w", err)
	}
	if existing > 0 {
		return nil, validationErrorf("order %d already has an AMC", orderID)
	}

	totalCost := AMCCombinedBase(baseCost, customizationCost)
	var amcID int
	err = tx.QueryRow(ctx, `
		INSERT INTO amcs (order_id, start_date, frequency_months, rate_percentage, rate_amount, total_cost)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, orderID, startDate, frequencyMonths, amcPct, amcAmt, totalCost).Scan(&amcID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert AMC: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit AMC creation: %w", err)
	}

	return s.getAMC(ctx, amcID)
}

const amcSelect = `
	SELECT a.id, a.order_id, COALESCE(o.order_number, ''), c.name,
	       a.start_date, a.frequency_months, a.rate_percentage, a.rate_amount, a.total_cost, a.created_at
	FROM amcs a
	JOIN orders o ON o.id = a.order_id
	JOIN clients c ON c.id = o.client_id
`

func scanAMC(row pgx.Row) (*AMC, error) {
	var a AMC
	if err := row.Scan(
		&a.ID, &a.OrderID, &a.OrderNumber, &a.ClientName,
		&a.StartDate, &a.FrequencyMonths, &a.RatePercentage, &a.RateAmount, &a.TotalCost, &a.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *amcService) getAMC(ctx context.Context, amcID int) (*AMC, error) {
	a, err := scanAMC(s.pool.QueryRow(ctx, amcSelect+" WHERE a.id = $1", amcID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("AMC %d not found", amcID)
		}
		return nil, fmt.Errorf("failed to fetch AMC %d: %w", amcID, err)
	}
	return a, nil
}

func (s *amcService) GetByOrder(ctx context.Context, orderID int) (*AMC, error) {
	a, err := scanAMC(s.pool.QueryRow(ctx, amcSelect+" WHERE a.order_id = $1", orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("order %d has no AMC", orderID)
		}
		return nil, fmt.Errorf("failed to fetch AMC for order %d: %w", orderID, err)
	}
	return a, nil
}

func (s *amcService) GetAMCs(ctx context.Context) ([]AMC, error) {
	rows, err := s.pool.Query(ctx, amcSelect+" ORDER BY a.id DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query AMCs: %w", err)
	}
	defer rows.Close()

	var amcs []AMC
	for rows.Next() {
		a, err := scanAMC(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan AMC: %w", err)
		}
		amcs = append(amcs, *a)
	}
	return amcs, nil
}

func (s *amcService) ProposeSchedule(ctx context.Context, amcID int, tillYear int) ([]AMCPayment, error) {
	amc, err := s.getAMC(ctx, amcID)
	if err != nil {
		return nil, err
	}
	existing, err := s.GetPayments(ctx, amcID)
	if err != nil {
		return nil, err
	}
	return ProposeSchedule(amc, tillYear, existing), nil
}

func (s *amcService) CommitPayments(ctx context.Context, amcID int, proposals []AMCPayment) ([]AMCPayment, error) {
	if len(proposals) == 0 {
		return nil, validationErrorf("no payments to commit")
	}
	for i := range proposals {
		if err := ValidatePaymentDates(proposals[i]); err != nil {
			return nil, err
		}
		if err := ValidatePaymentStatus(&proposals[i]); err != nil {
			return nil, err
		}
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Reject proposals overlapping an already persisted period; the review
	// list may be stale by the time the user commits.
	existing, err := fetchPayments(ctx, tx, amcID)
	if err != nil {
		return nil, err
	}
	for _, p := range proposals {
		for _, e := range existing {
			if e.overlaps(p.FromDate, p.ToDate) {
				return nil, preconditionErrorf("period %s – %s is already covered by payment %d",
					p.FromDate.Format("2006-01-02"), p.ToDate.Format("2006-01-02"), e.ID)
			}
		}
	}

	for i, p := range proposals {
		if _, err := tx.Exec(ctx, `
			INSERT INTO amc_payments (amc_id, from_date, to_date, status, amc_rate_applied,
			                          amc_rate_amount, total_cost, frequency_months,
			                          invoice_number, invoice_date, payment_receive_date)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`, amcID, p.FromDate, p.ToDate, string(p.Status), p.AMCRateApplied,
			p.AMCRateAmount, p.TotalCost, p.FrequencyMonths,
			p.InvoiceNumber, p.InvoiceDate, p.PaymentReceiveDate,
		); err != nil {
			return nil, fmt.Errorf("failed to insert AMC payment %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit AMC payments: %w", err)
	}

	return s.GetPayments(ctx, amcID)
}

func (s *amcService) GetPayments(ctx context.Context, amcID int) ([]AMCPayment, error) {
	return fetchPayments(ctx, s.pool, amcID)
}

func fetchPayments(ctx context.Context, q pgxQuerier, amcID int) ([]AMCPayment, error) {
	rows, err := q.Query(ctx, `
		SELECT id, amc_id, from_date, to_date, status, amc_rate_applied,
		       amc_rate_amount, total_cost, frequency_months,
		       invoice_number, invoice_date, payment_receive_date
		FROM amc_payments
		WHERE amc_id = $1
		ORDER BY from_date
	`, amcID)
	if err != nil {
		return nil, fmt.Errorf("failed to query AMC payments: %w", err)
	}
	defer rows.Close()

	var payments []AMCPayment
	for rows.Next() {
		var p AMCPayment
		if err := rows.Scan(
			&p.ID, &p.AMCID, &p.FromDate, &p.ToDate, &p.Status, &p.AMCRateApplied,
			&p.AMCRateAmount, &p.TotalCost, &p.FrequencyMonths,
			&p.InvoiceNumber, &p.InvoiceDate, &p.PaymentReceiveDate,
		); err != nil {
			return nil, fmt.Errorf("failed to scan AMC payment: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, nil
}

func (s *amcService) UpdatePayment(ctx context.Context, paymentID int, status PaymentStatus, invoiceNumber *string, invoiceDate, receiveDate *time.Time) (*AMCPayment, error) {
	probe := AMCPayment{Status: status, PaymentReceiveDate: receiveDate}
	if err := ValidatePaymentStatus(&probe); err != nil {
		return nil, err
	}

	var p AMCPayment
	err := s.pool.QueryRow(ctx, `
		UPDATE amc_payments
		SET status = $1, invoice_number = $2, invoice_date = $3, payment_receive_date = $4
		WHERE id = $5
		RETURNING id, amc_id, from_date, to_date, status, amc_rate_applied,
		          amc_rate_amount, total_cost, frequency_months,
		          invoice_number, invoice_date, payment_receive_date
	`, string(status), invoiceNumber, invoiceDate, probe.PaymentReceiveDate, paymentID).Scan(
		&p.ID, &p.AMCID, &p.FromDate, &p.ToDate, &p.Status, &p.AMCRateApplied,
		&p.AMCRateAmount, &p.TotalCost, &p.FrequencyMonths,
		&p.InvoiceNumber, &p.InvoiceDate, &p.PaymentReceiveDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, preconditionErrorf("payment not found: %d", paymentID)
		}
		return nil, fmt.Errorf("failed to update AMC payment %d: %w", paymentID, err)
	}
	return &p, nil
}

// DeletePayments fires one DELETE per payment concurrently and joins every
// per-item failure into a single aggregate error; one bad id does not stop
// the rest of the batch. Deletions that did succeed stay deleted, matching
// the one-toast-per-batch surface of the UI.
func (s *amcService) DeletePayments(ctx context.Context, paymentIDs []int) error {
	if len(paymentIDs) == 0 {
		return validationErrorf("no payments selected for deletion")
	}

	var g errgroup.Group
	errs := make([]error, len(paymentIDs))
	for i, id := range paymentIDs {
		i, id := i, id
		g.Go(func() error {
			tag, err := s.pool.Exec(ctx, "DELETE FROM amc_payments WHERE id = $1", id)
			if err != nil {
				errs[i] = fmt.Errorf("payment %d: %w", id, err)
			} else if tag.RowsAffected() == 0 {
				errs[i] = preconditionErrorf("payment not found: %d", id)
			}
			return nil
		})
	}
	_ = g.Wait()
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("failed to delete AMC payments: %w", err)
	}
	return nil
}

func (s *amcService) ListPendingPayments(ctx context.Context, fy *FinancialYear) ([]PendingAMCPayment, error) {
	query := `
		SELECT ap.id, ap.amc_id, ap.from_date, ap.to_date, ap.status, ap.amc_rate_applied,
		       ap.amc_rate_amount, ap.total_cost, ap.frequency_months,
		       ap.invoice_number, ap.invoice_date, ap.payment_receive_date,
		       COALESCE(o.order_number, ''), c.name
		FROM amc_payments ap
		JOIN amcs a ON a.id = ap.amc_id
		JOIN orders o ON o.id = a.order_id
		JOIN clients c ON c.id = o.client_id
		WHERE ap.status <> 'PAID'
	`
	args := []any{}
	if fy != nil {
		query += " AND ap.from_date >= $1 AND ap.from_date <= $2"
		args = append(args, fy.StartDate, fy.EndDate)
	}
	query += " ORDER BY ap.from_date, ap.id"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending AMC payments: %w", err)
	}
	defer rows.Close()

	var pending []PendingAMCPayment
	for rows.Next() {
		var p PendingAMCPayment
		if err := rows.Scan(
			&p.Payment.ID, &p.Payment.AMCID, &p.Payment.FromDate, &p.Payment.ToDate,
			&p.Payment.Status, &p.Payment.AMCRateApplied, &p.Payment.AMCRateAmount,
			&p.Payment.TotalCost, &p.Payment.FrequencyMonths,
			&p.Payment.InvoiceNumber, &p.Payment.InvoiceDate, &p.Payment.PaymentReceiveDate,
			&p.OrderNumber, &p.ClientName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan pending AMC payment: %w", err)
		}
		p.AMCID = p.Payment.AMCID
		pending = append(pending, p)
	}
	return pending, nil
}
