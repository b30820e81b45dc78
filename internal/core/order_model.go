package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// Client is a customer master record of the software vendor.
type Client struct {
	ID            int       `json:"id"`
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	ContactPerson string    `json:"contact_person"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Address       string    `json:"address"`
	City          string    `json:"city"`
	GSTNumber     string    `json:"gst_number"`
	CreatedAt     time.Time `json:"created_at"`
}

// Product is an entry in the vendor's software catalog.
type Product struct {
	ID        int       `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// Order is a purchase order header together with its dependent financial
// records. The derived fields (AMC amount, term amounts, separation amounts)
// are always the output of the reconciliation engine; the database stores
// what the engine last produced.
type Order struct {
	ID                int                   `json:"id"`
	OrderNumber       string                `json:"order_number"` // assigned at CONFIRMED
	ClientID          int                   `json:"client_id"`
	ClientCode        string                `json:"client_code"` // joined from clients
	ClientName        string                `json:"client_name"` // joined from clients
	Status            OrderStatus           `json:"status"`
	OrderDate         string                `json:"order_date"` // YYYY-MM-DD
	BaseCost          decimal.Decimal       `json:"base_cost"`
	CustomizationCost decimal.Decimal       `json:"customization_cost"`
	AMCPercentage     decimal.Decimal       `json:"amc_percentage"`
	AMCAmount         decimal.Decimal       `json:"amc_amount"`
	Notes             string                `json:"notes"`
	DocumentFile      string                `json:"document_file,omitempty"` // stored upload filename
	ProductCodes      []string              `json:"product_codes"`
	Terms             []PaymentTerm         `json:"terms"`
	Separation        []CostSeparationEntry `json:"cost_separation"`
	CreatedAt         time.Time             `json:"created_at"`
	ConfirmedAt       *time.Time            `json:"confirmed_at,omitempty"`
}
