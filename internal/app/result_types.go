package app

import "vendordesk/internal/core"

// ClientListResult is returned by ListClients.
type ClientListResult struct {
	Clients []core.Client
}

// ClientResult is returned by single-client operations.
type ClientResult struct {
	Client *core.Client
}

// ProductListResult is returned by ListProducts.
type ProductListResult struct {
	Products []core.Product
}

// OrderResult is returned by order lifecycle operations.
type OrderResult struct {
	Order *core.Order
}

// OrderListResult is returned by ListOrders.
type OrderListResult struct {
	Orders []core.Order
}

// FormStateResult is the recomputed form returned by RecomputeOrderForm.
type FormStateResult struct {
	Form *core.OrderForm
}

// AMCResult is returned by AMC operations.
type AMCResult struct {
	AMC      *core.AMC         `json:"amc"`
	Payments []core.AMCPayment `json:"payments"`
}

// AMCListResult is returned by ListAMCs.
type AMCListResult struct {
	AMCs []core.AMC
}

// ScheduleResult is returned by ProposeAMCSchedule.
type ScheduleResult struct {
	AMC       *core.AMC         `json:"amc,omitempty"`
	Proposals []core.AMCPayment `json:"proposals"`
}

// PendingPaymentsResult groups the two pending-payment listings, optionally
// scoped to one financial year.
type PendingPaymentsResult struct {
	FinancialYearID string                   `json:"financial_year_id,omitempty"`
	Terms           []core.PendingTerm       `json:"terms"`
	AMCPayments     []core.PendingAMCPayment `json:"amc_payments"`
}

// RevenueReportResult is returned by GetRevenueReport. Narrative is a
// markdown commentary produced by the external AI service, empty unless
// requested and configured.
type RevenueReportResult struct {
	Report    *core.RevenueReport `json:"report"`
	Narrative string              `json:"narrative,omitempty"`
}
