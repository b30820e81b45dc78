package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strconv"

	"vendordesk/internal/app"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handler holds the ApplicationService behind the HTTP endpoints.
type Handler struct {
	svc       app.ApplicationService
	log       zerolog.Logger
	uploadDir string // directory for order document uploads
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, allowedOrigins string, log zerolog.Logger) http.Handler {
	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = os.TempDir()
	}

	h := &Handler{
		svc:       svc,
		log:       log,
		uploadDir: uploadDir,
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger(log))
	r.Use(Recoverer(log))
	r.Use(CORS(allowedOrigins))

	r.Get("/api/health", h.health)

	// File upload: body limit is managed inside the handler (multipart, up to 25 MB).
	r.Post("/api/uploads", h.upload)

	// All other endpoints: 1 MB body limit to prevent unbounded request abuse.
	r.Group(func(r chi.Router) {
		r.Use(RequestBodyLimit(1 << 20)) // 1 MB

		// Clients
		r.Get("/api/clients", h.apiListClients)
		r.Post("/api/clients", h.apiCreateClient)
		r.Get("/api/clients/{id}", h.apiGetClient)
		r.Put("/api/clients/{id}", h.apiUpdateClient)

		// Catalog
		r.Get("/api/products", h.apiListProducts)

		// Orders and the form engine
		r.Get("/api/orders", h.apiListOrders)
		r.Post("/api/orders", h.apiCreateOrder)
		r.Post("/api/orders/validate", h.apiValidateOrder)
		r.Get("/api/orders/{id}", h.apiGetOrder)
		r.Post("/api/orders/{id}/recompute", h.apiRecomputeOrder)
		r.Post("/api/orders/{id}/confirm", h.apiConfirmOrder)
		r.Post("/api/orders/{id}/close", h.apiCloseOrder)
		r.Post("/api/orders/{id}/cancel", h.apiCancelOrder)
		r.Patch("/api/orders/terms/{id}", h.apiUpdateTerm)

		// AMC
		r.Get("/api/amc", h.apiListAMCs)
		r.Post("/api/amc", h.apiCreateAMC)
		r.Get("/api/amc/{orderID}", h.apiGetAMC)
		r.Get("/api/amc/{orderID}/schedule", h.apiProposeSchedule)
		r.Post("/api/amc/{orderID}/payments", h.apiCommitPayments)
		r.Patch("/api/amc/payments/{id}", h.apiUpdateAMCPayment)
		r.Post("/api/amc/payments/delete", h.apiDeleteAMCPayments)

		// Financial years and reporting
		r.Get("/api/financial-years", h.apiListFinancialYears)
		r.Get("/api/payments/pending", h.apiPendingPayments)
		r.Get("/api/reports/revenue", h.apiRevenueReport)
	})

	return r
}

// health returns service status.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	type response struct {
		Status string `json:"status"`
	}
	writeJSON(w, response{Status: "ok"})
}

// urlID extracts a numeric URL parameter; the second return is false when
// the parameter is absent or not an integer.
func urlID(r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		return 0, false
	}
	return id, true
}

// decodeJSON decodes the request body into v and returns false + writes an appropriate
// error response on failure. Returns HTTP 413 when the body exceeds the size limit set
// by RequestBodyLimit middleware; HTTP 400 for all other decode errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, "request body too large", "REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge)
			return false
		}
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return false
	}
	return true
}
