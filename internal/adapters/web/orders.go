package web

import (
	"net/http"

	"vendordesk/internal/app"
	"vendordesk/internal/core"
)

// apiListOrders handles GET /api/orders?status=DRAFT.
func (h *Handler) apiListOrders(w http.ResponseWriter, r *http.Request) {
	var statusPtr *core.OrderStatus
	if s := r.URL.Query().Get("status"); s != "" {
		status := core.OrderStatus(s)
		statusPtr = &status
	}
	result, err := h.svc.ListOrders(r.Context(), statusPtr)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Orders)
}

// apiGetOrder handles GET /api/orders/{id}.
func (h *Handler) apiGetOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		writeError(w, r, "invalid order id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	result, err := h.svc.GetOrder(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Order)
}

// apiCreateOrder handles POST /api/orders. The body carries the full form
// payload; derived amounts are recomputed server-side before validation.
func (h *Handler) apiCreateOrder(w http.ResponseWriter, r *http.Request) {
	var body app.OrderFormRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	result, err := h.svc.CreateOrder(r.Context(), body)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, result.Order)
}

// apiValidateOrder handles POST /api/orders/validate: runs the submit-time
// gate on the posted form without persisting anything.
func (h *Handler) apiValidateOrder(w http.ResponseWriter, r *http.Request) {
	var body app.OrderFormRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	if err := h.svc.ValidateOrderForm(r.Context(), body); err != nil {
		writeServiceError(w, r, err)
		return
	}
	type response struct {
		Valid bool `json:"valid"`
	}
	writeJSON(w, response{Valid: true})
}

// apiRecomputeOrder handles POST /api/orders/{id}/recompute.
// Body: { form: <full form payload>, edit: {field, kind, index, value, products} }.
// The response is the fully reconciled form state; draft sessions pass id 0.
func (h *Handler) apiRecomputeOrder(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Form app.OrderFormRequest `json:"form"`
		Edit app.FormEdit         `json:"edit"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	result, err := h.svc.RecomputeOrderForm(r.Context(), body.Form, body.Edit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Form)
}

// apiConfirmOrder handles POST /api/orders/{id}/confirm.
func (h *Handler) apiConfirmOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		writeError(w, r, "invalid order id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	result, err := h.svc.ConfirmOrder(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Order)
}

// apiCloseOrder handles POST /api/orders/{id}/close.
func (h *Handler) apiCloseOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		writeError(w, r, "invalid order id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	result, err := h.svc.CloseOrder(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Order)
}

// apiCancelOrder handles POST /api/orders/{id}/cancel.
func (h *Handler) apiCancelOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		writeError(w, r, "invalid order id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	result, err := h.svc.CancelOrder(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Order)
}

// apiUpdateTerm handles PATCH /api/orders/terms/{id}.
// Body: { status, invoice_number?, invoice_date?, payment_receive_date? }.
func (h *Handler) apiUpdateTerm(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		writeError(w, r, "invalid term id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	var body app.UpdateTermRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	body.TermID = id
	result, err := h.svc.UpdateTermStatus(r.Context(), body)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Order)
}
