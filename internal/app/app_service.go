package app

import (
	"context"
	"time"

	"vendordesk/internal/core"

	"github.com/rs/zerolog"
)

// NarrativeGenerator writes a short markdown commentary for a revenue
// report. Implemented by internal/ai; nil disables narratives.
type NarrativeGenerator interface {
	RevenueNarrative(ctx context.Context, fy core.FinancialYear, report *core.RevenueReport) (string, error)
}

type appService struct {
	clients   core.ClientService
	orders    core.OrderService
	amcs      core.AMCService
	reporting core.ReportingService
	narrator  NarrativeGenerator
	log       zerolog.Logger
}

// NewAppService wires the domain services behind the application facade.
// narrator may be nil when no AI backend is configured.
func NewAppService(clients core.ClientService, orders core.OrderService, amcs core.AMCService, reporting core.ReportingService, narrator NarrativeGenerator, log zerolog.Logger) ApplicationService {
	return &appService{
		clients:   clients,
		orders:    orders,
		amcs:      amcs,
		reporting: reporting,
		narrator:  narrator,
		log:       log,
	}
}

func (s *appService) ListClients(ctx context.Context) (*ClientListResult, error) {
	clients, err := s.clients.GetClients(ctx)
	if err != nil {
		return nil, err
	}
	return &ClientListResult{Clients: clients}, nil
}

func (s *appService) GetClient(ctx context.Context, clientID int) (*ClientResult, error) {
	c, err := s.clients.GetClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return &ClientResult{Client: c}, nil
}

func (s *appService) CreateClient(ctx context.Context, c core.Client) (*ClientResult, error) {
	created, err := s.clients.CreateClient(ctx, c)
	if err != nil {
		return nil, err
	}
	return &ClientResult{Client: created}, nil
}

func (s *appService) UpdateClient(ctx context.Context, c core.Client) (*ClientResult, error) {
	updated, err := s.clients.UpdateClient(ctx, c)
	if err != nil {
		return nil, err
	}
	return &ClientResult{Client: updated}, nil
}

func (s *appService) ListProducts(ctx context.Context) (*ProductListResult, error) {
	products, err := s.orders.GetProducts(ctx)
	if err != nil {
		return nil, err
	}
	return &ProductListResult{Products: products}, nil
}

// buildForm reconstructs the form engine state from a request payload.
// Percentages are the figures taken from the client; the cascade at the end
// re-derives every amount, so a tampered amount in the payload is harmless.
func buildForm(req OrderFormRequest) *core.OrderForm {
	form := &core.OrderForm{
		ClientCode:        req.ClientCode,
		OrderDate:         req.OrderDate,
		CustomizationCost: req.CustomizationCost,
		AMCRate:           core.RateAmount{Percentage: req.AMCPercentage},
		Notes:             req.Notes,
		DocumentFile:      req.DocumentFile,
	}
	for _, t := range req.Terms {
		form.Terms = append(form.Terms, core.PaymentTerm{
			Name:                   t.Name,
			PercentageFromBaseCost: t.Percentage,
			Status:                 t.Status,
			InvoiceNumber:          t.InvoiceNumber,
			InvoiceDate:            t.InvoiceDate,
			PaymentReceiveDate:     t.PaymentReceiveDate,
		})
	}
	for _, e := range req.Separation {
		form.Separation = append(form.Separation, core.CostSeparationEntry{
			ProductCode: e.ProductCode,
			Percentage:  e.Percentage,
		})
	}
	form.SetProducts(req.ProductCodes)
	form.SetBaseCost(req.BaseCost)
	return form
}

// applyEdit dispatches one form edit to the engine.
func applyEdit(form *core.OrderForm, edit FormEdit) error {
	fieldEdit := core.PercentageEdited(edit.Value)
	if edit.Kind == "amount" {
		fieldEdit = core.AmountEdited(edit.Value)
	}
	switch edit.Field {
	case "base_cost":
		form.SetBaseCost(edit.Value)
	case "customization_cost":
		form.SetCustomizationCost(edit.Value)
	case "products":
		form.SetProducts(edit.Products)
	case "amc_rate":
		form.EditAMCRate(fieldEdit)
	case "term":
		return form.EditTerm(edit.Index, fieldEdit)
	case "term_add":
		form.AddTerm()
	case "term_remove":
		return form.RemoveTerm(edit.Index)
	case "separation":
		return form.EditSeparation(edit.Index, fieldEdit)
	default:
		return &core.ValidationError{Msg: "unknown form field " + edit.Field}
	}
	return nil
}

func (s *appService) RecomputeOrderForm(ctx context.Context, req OrderFormRequest, edit FormEdit) (*FormStateResult, error) {
	form := buildForm(req)
	if err := applyEdit(form, edit); err != nil {
		return nil, err
	}
	return &FormStateResult{Form: form}, nil
}

func (s *appService) ValidateOrderForm(ctx context.Context, req OrderFormRequest) error {
	return buildForm(req).Validate()
}

func (s *appService) CreateOrder(ctx context.Context, req OrderFormRequest) (*OrderResult, error) {
	order, err := s.orders.CreateOrder(ctx, buildForm(req))
	if err != nil {
		return nil, err
	}
	s.log.Info().Int("order_id", order.ID).Str("client", order.ClientCode).Msg("order created")
	return &OrderResult{Order: order}, nil
}

func (s *appService) GetOrder(ctx context.Context, orderID int) (*OrderResult, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return &OrderResult{Order: order}, nil
}

func (s *appService) ListOrders(ctx context.Context, status *core.OrderStatus) (*OrderListResult, error) {
	orders, err := s.orders.GetOrders(ctx, status)
	if err != nil {
		return nil, err
	}
	return &OrderListResult{Orders: orders}, nil
}

func (s *appService) ConfirmOrder(ctx context.Context, orderID int) (*OrderResult, error) {
	order, err := s.orders.ConfirmOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int("order_id", order.ID).Str("order_number", order.OrderNumber).Msg("order confirmed")
	return &OrderResult{Order: order}, nil
}

func (s *appService) CloseOrder(ctx context.Context, orderID int) (*OrderResult, error) {
	order, err := s.orders.CloseOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return &OrderResult{Order: order}, nil
}

func (s *appService) CancelOrder(ctx context.Context, orderID int) (*OrderResult, error) {
	order, err := s.orders.CancelOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return &OrderResult{Order: order}, nil
}

func (s *appService) UpdateTermStatus(ctx context.Context, req UpdateTermRequest) (*OrderResult, error) {
	term, err := s.orders.UpdateTermStatus(ctx, req.TermID, req.Status, req.InvoiceNumber, req.InvoiceDate, req.PaymentReceiveDate)
	if err != nil {
		return nil, err
	}
	return s.GetOrder(ctx, term.OrderID)
}

func (s *appService) CreateAMC(ctx context.Context, req CreateAMCRequest) (*AMCResult, error) {
	amc, err := s.amcs.CreateForOrder(ctx, req.OrderID, req.StartDate, req.FrequencyMonths)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int("amc_id", amc.ID).Int("order_id", amc.OrderID).Msg("amc created")
	return &AMCResult{AMC: amc}, nil
}

func (s *appService) GetAMCByOrder(ctx context.Context, orderID int) (*AMCResult, error) {
	amc, err := s.amcs.GetByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	payments, err := s.amcs.GetPayments(ctx, amc.ID)
	if err != nil {
		return nil, err
	}
	return &AMCResult{AMC: amc, Payments: payments}, nil
}

func (s *appService) ListAMCs(ctx context.Context) (*AMCListResult, error) {
	amcs, err := s.amcs.GetAMCs(ctx)
	if err != nil {
		return nil, err
	}
	return &AMCListResult{AMCs: amcs}, nil
}

func (s *appService) ProposeAMCSchedule(ctx context.Context, amcID, tillYear int) (*ScheduleResult, error) {
	proposals, err := s.amcs.ProposeSchedule(ctx, amcID, tillYear)
	if err != nil {
		return nil, err
	}
	return &ScheduleResult{Proposals: proposals}, nil
}

func (s *appService) CommitAMCPayments(ctx context.Context, req CommitPaymentsRequest) (*AMCResult, error) {
	payments, err := s.amcs.CommitPayments(ctx, req.AMCID, req.Payments)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int("amc_id", req.AMCID).Int("count", len(payments)).Msg("amc payments committed")
	return &AMCResult{Payments: payments}, nil
}

func (s *appService) UpdateAMCPayment(ctx context.Context, req UpdateAMCPaymentRequest) (*AMCResult, error) {
	payment, err := s.amcs.UpdatePayment(ctx, req.PaymentID, req.Status, req.InvoiceNumber, req.InvoiceDate, req.PaymentReceiveDate)
	if err != nil {
		return nil, err
	}
	payments, err := s.amcs.GetPayments(ctx, payment.AMCID)
	if err != nil {
		return nil, err
	}
	return &AMCResult{Payments: payments}, nil
}

func (s *appService) DeleteAMCPayments(ctx context.Context, paymentIDs []int) error {
	if len(paymentIDs) == 0 {
		return &core.ValidationError{Msg: "no payment ids given"}
	}
	return s.amcs.DeletePayments(ctx, paymentIDs)
}

func (s *appService) ListFinancialYears(ctx context.Context) ([]core.FinancialYear, error) {
	return core.DefaultFinancialYears(time.Now()), nil
}

func (s *appService) ListPendingPayments(ctx context.Context, fyID string) (*PendingPaymentsResult, error) {
	var fy *core.FinancialYear
	if fyID != "" {
		match, ok := core.FinancialYearByID(core.DefaultFinancialYears(time.Now()), fyID)
		if !ok {
			return nil, &core.ValidationError{Msg: "unknown financial year " + fyID}
		}
		fy = &match
	}
	terms, err := s.orders.ListPendingTerms(ctx, fy)
	if err != nil {
		return nil, err
	}
	amcPayments, err := s.amcs.ListPendingPayments(ctx, fy)
	if err != nil {
		return nil, err
	}
	return &PendingPaymentsResult{FinancialYearID: fyID, Terms: terms, AMCPayments: amcPayments}, nil
}

func (s *appService) GetRevenueReport(ctx context.Context, fyID string, withNarrative bool) (*RevenueReportResult, error) {
	fy, ok := core.FinancialYearByID(core.DefaultFinancialYears(time.Now()), fyID)
	if !ok {
		return nil, &core.ValidationError{Msg: "unknown financial year " + fyID}
	}
	report, err := s.reporting.GetRevenueReport(ctx, fy)
	if err != nil {
		return nil, err
	}
	result := &RevenueReportResult{Report: report}
	if withNarrative && s.narrator != nil {
		narrative, err := s.narrator.RevenueNarrative(ctx, fy, report)
		if err != nil {
			// The report itself is authoritative; a narrative failure is
			// logged and surfaced as an empty commentary.
			s.log.Warn().Err(err).Str("fy", fyID).Msg("narrative generation failed")
		} else {
			result.Narrative = narrative
		}
	}
	return result, nil
}

