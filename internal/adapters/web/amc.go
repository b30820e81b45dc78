package web

import (
	"net/http"
	"strconv"
	"time"

	"vendordesk/internal/app"
)

// apiListAMCs handles GET /api/amc.
func (h *Handler) apiListAMCs(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListAMCs(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.AMCs)
}

// apiCreateAMC handles POST /api/amc.
// Body: { order_id, start_date, frequency_months }.
func (h *Handler) apiCreateAMC(w http.ResponseWriter, r *http.Request) {
	var body app.CreateAMCRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	if body.OrderID == 0 {
		writeError(w, r, "order_id is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	if body.FrequencyMonths <= 0 {
		writeError(w, r, "frequency_months must be positive", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	result, err := h.svc.CreateAMC(r.Context(), body)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, result.AMC)
}

// apiGetAMC handles GET /api/amc/{orderID}: the contract plus its payments.
func (h *Handler) apiGetAMC(w http.ResponseWriter, r *http.Request) {
	orderID, ok := urlID(r, "orderID")
	if !ok {
		writeError(w, r, "invalid order id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	result, err := h.svc.GetAMCByOrder(r.Context(), orderID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// apiProposeSchedule handles GET /api/amc/{orderID}/schedule?till=2027.
// Proposals cover uncovered periods up to the till year; nothing is persisted.
func (h *Handler) apiProposeSchedule(w http.ResponseWriter, r *http.Request) {
	orderID, ok := urlID(r, "orderID")
	if !ok {
		writeError(w, r, "invalid order id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	tillYear, err := strconv.Atoi(r.URL.Query().Get("till"))
	if err != nil {
		tillYear = time.Now().Year() + 1
	}
	amc, err := h.svc.GetAMCByOrder(r.Context(), orderID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	result, err := h.svc.ProposeAMCSchedule(r.Context(), amc.AMC.ID, tillYear)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Proposals)
}

// apiCommitPayments handles POST /api/amc/{orderID}/payments.
// Body: { payments: [...] } — the reviewed proposal list to persist.
func (h *Handler) apiCommitPayments(w http.ResponseWriter, r *http.Request) {
	orderID, ok := urlID(r, "orderID")
	if !ok {
		writeError(w, r, "invalid order id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	var body app.CommitPaymentsRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	if len(body.Payments) == 0 {
		writeError(w, r, "at least one payment is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	amc, err := h.svc.GetAMCByOrder(r.Context(), orderID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	body.AMCID = amc.AMC.ID
	result, err := h.svc.CommitAMCPayments(r.Context(), body)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, result.Payments)
}

// apiUpdateAMCPayment handles PATCH /api/amc/payments/{id}.
// Body: { status, invoice_number?, invoice_date?, payment_receive_date? }.
func (h *Handler) apiUpdateAMCPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		writeError(w, r, "invalid payment id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	var body app.UpdateAMCPaymentRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	body.PaymentID = id
	result, err := h.svc.UpdateAMCPayment(r.Context(), body)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Payments)
}

// apiDeleteAMCPayments handles POST /api/amc/payments/delete.
// Body: { payment_ids: [...] }. Deletions run concurrently; a partial
// failure is reported as one aggregate error while completed deletions stand.
func (h *Handler) apiDeleteAMCPayments(w http.ResponseWriter, r *http.Request) {
	var body struct {
		PaymentIDs []int `json:"payment_ids"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	if err := h.svc.DeleteAMCPayments(r.Context(), body.PaymentIDs); err != nil {
		writeServiceError(w, r, err)
		return
	}
	type response struct {
		Deleted int `json:"deleted"`
	}
	writeJSON(w, response{Deleted: len(body.PaymentIDs)})
}
