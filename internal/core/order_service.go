package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// OrderService manages the order lifecycle and the persisted output of the
// reconciliation engine. Derived figures are recomputed server-side on every
// write; the client's numbers are never trusted as-is.
type OrderService interface {
	// Catalog
	GetProducts(ctx context.Context) ([]Product, error)

	// Order lifecycle
	CreateOrder(ctx context.Context, form *OrderForm) (*Order, error)
	// ConfirmOrder transitions DRAFT → CONFIRMED and assigns a gapless
	// per-financial-year order number.
	ConfirmOrder(ctx context.Context, orderID int) (*Order, error)
	// CloseOrder transitions CONFIRMED → CLOSED once every payment term is PAID.
	CloseOrder(ctx context.Context, orderID int) (*Order, error)
	// CancelOrder transitions DRAFT → CANCELLED.
	CancelOrder(ctx context.Context, orderID int) (*Order, error)

	// Payment terms
	UpdateTermStatus(ctx context.Context, termID int, status PaymentStatus, invoiceNumber *string, invoiceDate, receiveDate *time.Time) (*PaymentTerm, error)
	// ListPendingTerms returns unpaid terms of confirmed orders, optionally
	// restricted to orders dated inside one financial year.
	ListPendingTerms(ctx context.Context, fy *FinancialYear) ([]PendingTerm, error)

	// Queries
	GetOrder(ctx context.Context, orderID int) (*Order, error)
	GetOrders(ctx context.Context, status *OrderStatus) ([]Order, error)
}

// PendingTerm is one row of the pending-payments listing: a payment term
// joined with its order and client context.
type PendingTerm struct {
	Term        PaymentTerm `json:"term"`
	OrderID     int         `json:"order_id"`
	OrderNumber string      `json:"order_number"`
	OrderDate   string      `json:"order_date"`
	ClientName  string      `json:"client_name"`
}

type orderService struct {
	pool *pgxpool.Pool
}

func NewOrderService(pool *pgxpool.Pool) OrderService {
	return &orderService{pool: pool}
}

// pgxQuerier is satisfied by both *pgxpool.Pool and pgx.Tx, enabling shared
// query helpers.
type pgxQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// ── Catalog ──────────────────────────────────────────────────────────────────

func (s *orderService) GetProducts(ctx context.Context) ([]Product, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, code, name, is_active, created_at
		FROM products
		WHERE is_active = true
		ORDER BY code
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Code, &p.Name, &p.IsActive, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, nil
}

// resolveProductID looks up a product by code inside the caller's tx.
func resolveProductID(ctx context.Context, q pgxQuerier, code string) (int, error) {
	var id int
	err := q.QueryRow(ctx, "SELECT id FROM products WHERE code = $1 AND is_active = true", code).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("product code %s not found", code)
		}
		return 0, fmt.Errorf("failed to resolve product %s: %w", code, err)
	}
	return id, nil
}

// ── Order Lifecycle ──────────────────────────────────────────────────────────

func (s *orderService) CreateOrder(ctx context.Context, form *OrderForm) (*Order, error) {
	// Run the reconciliation engine once more against the canonical figures,
	// then gate on the submit-time checks before touching the database.
	form.SetBaseCost(form.BaseCost)
	if err := form.Validate(); err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Resolve client
	var clientID int
	err = tx.QueryRow(ctx, "SELECT id FROM clients WHERE code = $1", form.ClientCode).Scan(&clientID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("client code %s not found", form.ClientCode)
		}
		return nil, fmt.Errorf("failed to resolve client: %w", err)
	}

	// Insert order header
	var orderID int
	err = tx.QueryRow(ctx, `
		INSERT INTO orders (client_id, status, order_date, base_cost, customization_cost,
		                    amc_percentage, amc_amount, notes, document_file)
		VALUES ($1, 'DRAFT', $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, clientID, form.OrderDate, form.BaseCost, form.CustomizationCost,
		form.AMCRate.Percentage, form.AMCRate.Amount, form.Notes, form.DocumentFile).Scan(&orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	// Insert selected products
	for _, code := range form.ProductCodes {
		productID, err := resolveProductID(ctx, tx, code)
		if err != nil {
			return nil, err
		}
		if _, err := tx.Exec(ctx,
			"INSERT INTO order_products (order_id, product_id) VALUES ($1, $2)",
			orderID, productID,
		); err != nil {
			return nil, fmt.Errorf("failed to insert order product %s: %w", code, err)
		}
	}

	// Insert payment terms
	for i, t := range form.Terms {
		if _, err := tx.Exec(ctx, `
			INSERT INTO payment_terms (order_id, position, name, percentage_from_base_cost,
			                           calculated_amount, status, invoice_number, invoice_date, payment_receive_date)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, orderID, i+1, t.Name, t.PercentageFromBaseCost, t.CalculatedAmount,
			string(t.Status), t.InvoiceNumber, t.InvoiceDate, t.PaymentReceiveDate,
		); err != nil {
			return nil, fmt.Errorf("failed to insert payment term %d: %w", i+1, err)
		}
	}

	// Insert cost separation entries (multi-product orders only)
	for _, e := range form.Separation {
		productID, err := resolveProductID(ctx, tx, e.ProductCode)
		if err != nil {
			return nil, err
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO cost_separation_entries (order_id, product_id, percentage, amount)
			VALUES ($1, $2, $3, $4)
		`, orderID, productID, e.Percentage, e.Amount,
		); err != nil {
			return nil, fmt.Errorf("failed to insert cost separation entry for %s: %w", e.ProductCode, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit order creation: %w", err)
	}

	return s.GetOrder(ctx, orderID)
}

func (s *orderService) ConfirmOrder(ctx context.Context, orderID int) (*Order, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var status string
	var orderDate string
	err = tx.QueryRow(ctx,
		"SELECT status, order_date::text FROM orders WHERE id = $1 FOR UPDATE",
		orderID,
	).Scan(&status, &orderDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("order %d not found", orderID)
		}
		return nil, fmt.Errorf("failed to fetch order %d: %w", orderID, err)
	}
	if status != string(OrderDraft) {
		return nil, validationErrorf("order %d cannot be confirmed: status is %s (must be DRAFT)", orderID, status)
	}

	// Gapless numbering, keyed by the financial year of the order date.
	fyStart, err := financialYearStart(orderDate)
	if err != nil {
		return nil, err
	}
	var lastNumber int64
	err = tx.QueryRow(ctx, `
		INSERT INTO order_sequences (financial_year, last_number)
		VALUES ($1, 1)
		ON CONFLICT (financial_year)
		DO UPDATE SET last_number = order_sequences.last_number + 1
		RETURNING last_number
	`, fyStart).Scan(&lastNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to generate order sequence number: %w", err)
	}
	orderNumber := fmt.Sprintf("ORD-%d%02d-%05d", fyStart, (fyStart+1)%100, lastNumber)

	if _, err = tx.Exec(ctx, `
		UPDATE orders
		SET status = 'CONFIRMED', order_number = $1, confirmed_at = NOW()
		WHERE id = $2
	`, orderNumber, orderID); err != nil {
		return nil, fmt.Errorf("failed to confirm order %d: %w", orderID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit order confirmation: %w", err)
	}

	return s.GetOrder(ctx, orderID)
}

// financialYearStart returns the April–March FY start year for an order date.
func financialYearStart(orderDate string) (int, error) {
	d, err := time.Parse("2006-01-02", orderDate)
	if err != nil {
		return 0, fmt.Errorf("invalid order date %q: %w", orderDate, err)
	}
	if d.Month() < time.April {
		return d.Year() - 1, nil
	}
	return d.Year(), nil
}

func (s *orderService) CloseOrder(ctx context.Context, orderID int) (*Order, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var status string
	err = tx.QueryRow(ctx,
		"SELECT status FROM orders WHERE id = $1 FOR UPDATE",
		orderID,
	).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("order %d not found", orderID)
		}
		return nil, fmt.Errorf("failed to fetch order %d: %w", orderID, err)
	}
	if status != string(OrderConfirmed) {
		return nil, validationErrorf("order %d cannot be closed: status is %s (must be CONFIRMED)", orderID, status)
	}

	var unpaid int
	err = tx.QueryRow(ctx,
		"SELECT COUNT(*) FROM payment_terms WHERE order_id = $1 AND status <> 'PAID'",
		orderID,
	).Scan(&unpaid)
	if err != nil {
		return nil, fmt.Errorf("failed to count unpaid terms: %w", err)
	}
	if unpaid > 0 {
		return nil, validationErrorf("order %d cannot be closed: %d payment terms are not PAID", orderID, unpaid)
	}

	if _, err = tx.Exec(ctx,
		"UPDATE orders SET status = 'CLOSED' WHERE id = $1",
		orderID,
	); err != nil {
		return nil, fmt.Errorf("failed to close order %d: %w", orderID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit close order: %w", err)
	}

	return s.GetOrder(ctx, orderID)
}

func (s *orderService) CancelOrder(ctx context.Context, orderID int) (*Order, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var status string
	err = tx.QueryRow(ctx,
		"SELECT status FROM orders WHERE id = $1 FOR UPDATE",
		orderID,
	).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("order %d not found", orderID)
		}
		return nil, fmt.Errorf("failed to fetch order %d: %w", orderID, err)
	}
	if status != string(OrderDraft) {
		return nil, validationErrorf("order %d cannot be cancelled: status is %s (only DRAFT orders can be cancelled)", orderID, status)
	}

	if _, err = tx.Exec(ctx,
		"UPDATE orders SET status = 'CANCELLED' WHERE id = $1",
		orderID,
	); err != nil {
		return nil, fmt.Errorf("failed to cancel order %d: %w", orderID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit cancel order: %w", err)
	}

	return s.GetOrder(ctx, orderID)
}

// ── Payment terms ────────────────────────────────────────────────────────────

func (s *orderService) UpdateTermStatus(ctx context.Context, termID int, status PaymentStatus, invoiceNumber *string, invoiceDate, receiveDate *time.Time) (*PaymentTerm, error) {
	if !ValidPaymentStatus(status) {
		return nil, validationErrorf("unknown payment status %q", status)
	}
	if status == PaymentPaid && receiveDate == nil {
		return nil, validationErrorf("receive date required when payment term status is PAID")
	}
	if status == PaymentPending {
		// Receive dates only make sense once money has moved.
		receiveDate = nil
	}

	var t PaymentTerm
	err := s.pool.QueryRow(ctx, `
		UPDATE payment_terms
		SET status = $1, invoice_number = $2, invoice_date = $3, payment_receive_date = $4
		WHERE id = $5
		RETURNING id, order_id, name, percentage_from_base_cost, calculated_amount,
		          status, invoice_number, invoice_date, payment_receive_date
	`, string(status), invoiceNumber, invoiceDate, receiveDate, termID).Scan(
		&t.ID, &t.OrderID, &t.Name, &t.PercentageFromBaseCost, &t.CalculatedAmount,
		&t.Status, &t.InvoiceNumber, &t.InvoiceDate, &t.PaymentReceiveDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, preconditionErrorf("payment term %d not found", termID)
		}
		return nil, fmt.Errorf("failed to update payment term %d: %w", termID, err)
	}
	return &t, nil
}

func (s *orderService) ListPendingTerms(ctx context.Context, fy *FinancialYear) ([]PendingTerm, error) {
	query := `
		SELECT pt.id, pt.order_id, pt.name, pt.percentage_from_base_cost, pt.calculated_amount,
		       pt.status, pt.invoice_number, pt.invoice_date, pt.payment_receive_date,
		       COALESCE(o.order_number, ''), o.order_date::text, c.name
		FROM payment_terms pt
		JOIN orders o ON o.id = pt.order_id
		JOIN clients c ON c.id = o.client_id
		WHERE pt.status <> 'PAID' AND o.status = 'CONFIRMED'
	`
	args := []any{}
	if fy != nil {
		query += " AND o.order_date >= $1 AND o.order_date <= $2"
		args = append(args, fy.StartDate, fy.EndDate)
	}
	query += " ORDER BY o.order_date, pt.order_id, pt.position"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending terms: %w", err)
	}
	defer rows.Close()

	var pending []PendingTerm
	for rows.Next() {
		var p PendingTerm
		if err := rows.Scan(
			&p.Term.ID, &p.Term.OrderID, &p.Term.Name, &p.Term.PercentageFromBaseCost, &p.Term.CalculatedAmount,
			&p.Term.Status, &p.Term.InvoiceNumber, &p.Term.InvoiceDate, &p.Term.PaymentReceiveDate,
			&p.OrderNumber, &p.OrderDate, &p.ClientName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan pending term: %w", err)
		}
		p.OrderID = p.Term.OrderID
		pending = append(pending, p)
	}
	return pending, nil
}

// ── Queries ──────────────────────────────────────────────────────────────────

func (s *orderService) GetOrder(ctx context.Context, orderID int) (*Order, error) {
	var o Order
	err := s.pool.QueryRow(ctx, `
		SELECT o.id, COALESCE(o.order_number, ''), o.client_id, c.code, c.name,
		       o.status, o.order_date::text, o.base_cost, o.customization_cost,
		       o.amc_percentage, o.amc_amount, o.notes, COALESCE(o.document_file, ''),
		       o.created_at, o.confirmed_at
		FROM orders o
		JOIN clients c ON c.id = o.client_id
		WHERE o.id = $1
	`, orderID).Scan(
		&o.ID, &o.OrderNumber, &o.ClientID, &o.ClientCode, &o.ClientName,
		&o.Status, &o.OrderDate, &o.BaseCost, &o.CustomizationCost,
		&o.AMCPercentage, &o.AMCAmount, &o.Notes, &o.DocumentFile,
		&o.CreatedAt, &o.ConfirmedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("order %d not found", orderID)
		}
		return nil, fmt.Errorf("failed to fetch order %d: %w", orderID, err)
	}

	if o.ProductCodes, err = fetchOrderProducts(ctx, s.pool, orderID); err != nil {
		return nil, err
	}
	if o.Terms, err = fetchOrderTerms(ctx, s.pool, orderID); err != nil {
		return nil, err
	}
	if o.Separation, err = fetchOrderSeparation(ctx, s.pool, orderID); err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *orderService) GetOrders(ctx context.Context, status *OrderStatus) ([]Order, error) {
	query := `
		SELECT o.id, COALESCE(o.order_number, ''), o.client_id, c.code, c.name,
		       o.status, o.order_date::text, o.base_cost, o.customization_cost,
		       o.amc_percentage, o.amc_amount, o.notes, COALESCE(o.document_file, ''),
		       o.created_at, o.confirmed_at
		FROM orders o
		JOIN clients c ON c.id = o.client_id
	`
	args := []any{}
	if status != nil {
		query += " WHERE o.status = $1"
		args = append(args, string(*status))
	}
	query += " ORDER BY o.id DESC"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(
			&o.ID, &o.OrderNumber, &o.ClientID, &o.ClientCode, &o.ClientName,
			&o.Status, &o.OrderDate, &o.BaseCost, &o.CustomizationCost,
			&o.AMCPercentage, &o.AMCAmount, &o.Notes, &o.DocumentFile,
			&o.CreatedAt, &o.ConfirmedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func fetchOrderProducts(ctx context.Context, q pgxQuerier, orderID int) ([]string, error) {
	rows, err := q.Query(ctx, `
		SELECT p.code
		FROM order_products op
		JOIN products p ON p.id = op.product_id
		WHERE op.order_id = $1
		ORDER BY p.code
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query order products: %w", err)
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("failed to scan order product: %w", err)
		}
		codes = append(codes, code)
	}
	return codes, nil
}

func fetchOrderTerms(ctx context.Context, q pgxQuerier, orderID int) ([]PaymentTerm, error) {
	rows, err := q.Query(ctx, `
		SELECT id, order_id, name, percentage_from_base_cost, calculated_amount,
		       status, invoice_number, invoice_date, payment_receive_date
		FROM payment_terms
		WHERE order_id = $1
		ORDER BY position
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payment terms: %w", err)
	}
	defer rows.Close()

	var terms []PaymentTerm
	for rows.Next() {
		var t PaymentTerm
		if err := rows.Scan(
			&t.ID, &t.OrderID, &t.Name, &t.PercentageFromBaseCost, &t.CalculatedAmount,
			&t.Status, &t.InvoiceNumber, &t.InvoiceDate, &t.PaymentReceiveDate,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payment term: %w", err)
		}
		terms = append(terms, t)
	}
	return terms, nil
}

func fetchOrderSeparation(ctx context.Context, q pgxQuerier, orderID int) ([]CostSeparationEntry, error) {
	rows, err := q.Query(ctx, `
		SELECT p.code, cse.percentage, cse.amount
		FROM cost_separation_entries cse
		JOIN products p ON p.id = cse.product_id
		WHERE cse.order_id = $1
		ORDER BY p.code
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cost separation entries: %w", err)
	}
	defer rows.Close()

	var entries []CostSeparationEntry
	for rows.Next() {
		var e CostSeparationEntry
		if err := rows.Scan(&e.ProductCode, &e.Percentage, &e.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan cost separation entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
