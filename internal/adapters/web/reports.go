package web

import "net/http"

// apiListFinancialYears handles GET /api/financial-years.
func (h *Handler) apiListFinancialYears(w http.ResponseWriter, r *http.Request) {
	years, err := h.svc.ListFinancialYears(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, years)
}

// apiPendingPayments handles GET /api/payments/pending?fy=FY2024-2025.
// Without fy, pending terms and AMC payments across all years are returned.
func (h *Handler) apiPendingPayments(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListPendingPayments(r.Context(), r.URL.Query().Get("fy"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// apiRevenueReport handles GET /api/reports/revenue?fy=FY2024-2025&narrative=1.
func (h *Handler) apiRevenueReport(w http.ResponseWriter, r *http.Request) {
	fy := r.URL.Query().Get("fy")
	if fy == "" {
		writeError(w, r, "fy query parameter is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	withNarrative := r.URL.Query().Get("narrative") == "1"
	result, err := h.svc.GetRevenueReport(r.Context(), fy, withNarrative)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}
