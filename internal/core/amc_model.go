package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// AMC is the annual maintenance contract attached to an order. The rate
// percentage applies to the order's combined cost (base + customization);
// FrequencyMonths is the billing period length.
type AMC struct {
	ID              int             `json:"id"`
	OrderID         int             `json:"order_id"`
	OrderNumber     string          `json:"order_number"` // joined from orders
	ClientName      string          `json:"client_name"`  // joined from clients
	StartDate       time.Time       `json:"start_date"`
	FrequencyMonths int             `json:"frequency_months"`
	RatePercentage  decimal.Decimal `json:"rate_percentage"`
	RateAmount      decimal.Decimal `json:"rate_amount"`
	TotalCost       decimal.Decimal `json:"total_cost"` // base + customization at last recompute
	CreatedAt       time.Time       `json:"created_at"`
}

// Rate returns the contract's percentage/amount pair.
func (a *AMC) Rate() RateAmount {
	return RateAmount{Percentage: a.RatePercentage, Amount: a.RateAmount}
}

// AMCPayment is one billing period of an AMC. The rate fields are a snapshot
// of the contract rate at proposal time. FromDate is inclusive, ToDate is
// exclusive; successive payments in a schedule are contiguous, each period's
// ToDate equal to the next period's FromDate.
type AMCPayment struct {
	ID                 int             `json:"id"`
	AMCID              int             `json:"amc_id"`
	FromDate           time.Time       `json:"from_date"`
	ToDate             time.Time       `json:"to_date"`
	Status             PaymentStatus   `json:"status"`
	AMCRateApplied     decimal.Decimal `json:"amc_rate_applied"`
	AMCRateAmount      decimal.Decimal `json:"amc_rate_amount"`
	TotalCost          decimal.Decimal `json:"total_cost"`
	FrequencyMonths    int             `json:"amc_frequency"`
	InvoiceNumber      *string         `json:"invoice_number,omitempty"`
	InvoiceDate        *time.Time      `json:"invoice_date,omitempty"`
	PaymentReceiveDate *time.Time      `json:"payment_receive_date,omitempty"`
}

// overlaps reports whether the payment's [FromDate, ToDate) period intersects
// the given one.
func (p AMCPayment) overlaps(from, to time.Time) bool {
	return p.FromDate.Before(to) && from.Before(p.ToDate)
}

// ValidatePaymentDates enforces the period ordering invariant.
func ValidatePaymentDates(p AMCPayment) error {
	if !p.FromDate.Before(p.ToDate) {
		return validationErrorf("payment period start %s must precede end %s",
			p.FromDate.Format("2006-01-02"), p.ToDate.Format("2006-01-02"))
	}
	return nil
}

// ValidatePaymentStatus enforces the status-dependent field policy shared by
// payment terms and AMC payments: PAID requires a receive date, PENDING
// clears it.
func ValidatePaymentStatus(p *AMCPayment) error {
	if !ValidPaymentStatus(p.Status) {
		return validationErrorf("unknown payment status %q", p.Status)
	}
	switch p.Status {
	case PaymentPaid:
		if p.PaymentReceiveDate == nil {
			return validationErrorf("receive date required when payment status is PAID")
		}
	case PaymentPending:
		p.PaymentReceiveDate = nil
	}
	return nil
}
