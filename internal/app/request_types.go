package app

import (
	"time"

	"vendordesk/internal/core"

	"github.com/shopspring/decimal"
)

// TermInput is a payment term as submitted by the form. The percentage is
// the authoritative figure; the server re-derives the amount.
type TermInput struct {
	Name               string             `json:"name"`
	Percentage         decimal.Decimal    `json:"percentage"`
	Status             core.PaymentStatus `json:"status"`
	InvoiceNumber      *string            `json:"invoice_number,omitempty"`
	InvoiceDate        *time.Time         `json:"invoice_date,omitempty"`
	PaymentReceiveDate *time.Time         `json:"payment_receive_date,omitempty"`
}

// SeparationInput is one cost separation percentage per product code.
type SeparationInput struct {
	ProductCode string          `json:"product_code"`
	Percentage  decimal.Decimal `json:"percentage"`
}

// OrderFormRequest is the full form payload for creating, validating, or
// recomputing an order. Only percentages and cost figures are taken from the
// client; every derived amount is recomputed server-side.
type OrderFormRequest struct {
	ClientCode        string            `json:"client_code"`
	OrderDate         string            `json:"order_date"` // YYYY-MM-DD
	ProductCodes      []string          `json:"product_codes"`
	BaseCost          decimal.Decimal   `json:"base_cost"`
	CustomizationCost decimal.Decimal   `json:"customization_cost"`
	AMCPercentage     decimal.Decimal   `json:"amc_percentage"`
	Terms             []TermInput       `json:"terms"`
	Separation        []SeparationInput `json:"separation"`
	Notes             string            `json:"notes"`
	DocumentFile      string            `json:"document_file"`
}

// FormEdit is a single user edit applied via the recompute endpoint.
// Field selects the target; Kind distinguishes percentage from amount edits
// on rate pairs; Index addresses a term or separation entry.
type FormEdit struct {
	Field    string          `json:"field"` // base_cost, customization_cost, products, amc_rate, term, term_add, term_remove, separation
	Kind     string          `json:"kind"`  // percentage (default) or amount
	Index    int             `json:"index"`
	Value    decimal.Decimal `json:"value"`
	Products []string        `json:"products,omitempty"` // for Field == "products"
}

// UpdateTermRequest updates a persisted payment term's billing state.
type UpdateTermRequest struct {
	TermID             int                `json:"-"`
	Status             core.PaymentStatus `json:"status"`
	InvoiceNumber      *string            `json:"invoice_number,omitempty"`
	InvoiceDate        *time.Time         `json:"invoice_date,omitempty"`
	PaymentReceiveDate *time.Time         `json:"payment_receive_date,omitempty"`
}

// CreateAMCRequest attaches an AMC to a confirmed order.
type CreateAMCRequest struct {
	OrderID         int       `json:"order_id"`
	StartDate       time.Time `json:"start_date"`
	FrequencyMonths int       `json:"frequency_months"`
}

// CommitPaymentsRequest persists a reviewed AMC payment schedule.
type CommitPaymentsRequest struct {
	AMCID    int               `json:"-"`
	Payments []core.AMCPayment `json:"payments"`
}

// UpdateAMCPaymentRequest updates a persisted AMC payment's billing state.
type UpdateAMCPaymentRequest struct {
	PaymentID          int                `json:"-"`
	Status             core.PaymentStatus `json:"status"`
	InvoiceNumber      *string            `json:"invoice_number,omitempty"`
	InvoiceDate        *time.Time         `json:"invoice_date,omitempty"`
	PaymentReceiveDate *time.Time         `json:"payment_receive_date,omitempty"`
}
