package app

import (
	"context"

	"vendordesk/internal/core"
)

// ApplicationService is the single interface the web adapter calls. It
// decouples presentation from business logic; implementations contain no
// display logic of any kind.
type ApplicationService interface {
	// Clients
	ListClients(ctx context.Context) (*ClientListResult, error)
	GetClient(ctx context.Context, clientID int) (*ClientResult, error)
	CreateClient(ctx context.Context, c core.Client) (*ClientResult, error)
	UpdateClient(ctx context.Context, c core.Client) (*ClientResult, error)

	// Catalog
	ListProducts(ctx context.Context) (*ProductListResult, error)

	// Order form engine. RecomputeOrderForm applies one edit to the supplied
	// form state and returns the fully reconciled result; ValidateOrderForm
	// runs the submit-time gate without persisting anything.
	RecomputeOrderForm(ctx context.Context, req OrderFormRequest, edit FormEdit) (*FormStateResult, error)
	ValidateOrderForm(ctx context.Context, req OrderFormRequest) error

	// Orders
	CreateOrder(ctx context.Context, req OrderFormRequest) (*OrderResult, error)
	GetOrder(ctx context.Context, orderID int) (*OrderResult, error)
	ListOrders(ctx context.Context, status *core.OrderStatus) (*OrderListResult, error)
	ConfirmOrder(ctx context.Context, orderID int) (*OrderResult, error)
	CloseOrder(ctx context.Context, orderID int) (*OrderResult, error)
	CancelOrder(ctx context.Context, orderID int) (*OrderResult, error)
	UpdateTermStatus(ctx context.Context, req UpdateTermRequest) (*OrderResult, error)

	// AMC
	CreateAMC(ctx context.Context, req CreateAMCRequest) (*AMCResult, error)
	GetAMCByOrder(ctx context.Context, orderID int) (*AMCResult, error)
	ListAMCs(ctx context.Context) (*AMCListResult, error)
	ProposeAMCSchedule(ctx context.Context, amcID, tillYear int) (*ScheduleResult, error)
	CommitAMCPayments(ctx context.Context, req CommitPaymentsRequest) (*AMCResult, error)
	UpdateAMCPayment(ctx context.Context, req UpdateAMCPaymentRequest) (*AMCResult, error)
	// DeleteAMCPayments removes a batch of payments; a partial failure is
	// reported as one aggregate error.
	DeleteAMCPayments(ctx context.Context, paymentIDs []int) error

	// Financial years and reporting
	ListFinancialYears(ctx context.Context) ([]core.FinancialYear, error)
	// ListPendingPayments returns unpaid terms and AMC payments; fyID of ""
	// means all years.
	ListPendingPayments(ctx context.Context, fyID string) (*PendingPaymentsResult, error)
	// GetRevenueReport aggregates one financial year; withNarrative adds the
	// AI-written markdown commentary when the service is configured.
	GetRevenueReport(ctx context.Context, fyID string, withNarrative bool) (*RevenueReportResult, error)
}
