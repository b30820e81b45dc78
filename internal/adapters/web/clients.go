package web

import (
	"net/http"

	"vendordesk/internal/core"
)

// apiListClients handles GET /api/clients.
func (h *Handler) apiListClients(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListClients(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Clients)
}

// apiGetClient handles GET /api/clients/{id}.
func (h *Handler) apiGetClient(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		writeError(w, r, "invalid client id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	result, err := h.svc.GetClient(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Client)
}

// apiCreateClient handles POST /api/clients.
// Body: { code, name, contact_person?, email?, phone?, address?, city?, gst_number? }
func (h *Handler) apiCreateClient(w http.ResponseWriter, r *http.Request) {
	var body core.Client
	if !decodeJSON(w, r, &body) {
		return
	}
	result, err := h.svc.CreateClient(r.Context(), body)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, result.Client)
}

// apiUpdateClient handles PUT /api/clients/{id}.
func (h *Handler) apiUpdateClient(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		writeError(w, r, "invalid client id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	var body core.Client
	if !decodeJSON(w, r, &body) {
		return
	}
	body.ID = id
	result, err := h.svc.UpdateClient(r.Context(), body)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Client)
}

// apiListProducts handles GET /api/products.
func (h *Handler) apiListProducts(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListProducts(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Products)
}
