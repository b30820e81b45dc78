package core

// PaymentStatus is the lifecycle of a payment term or an AMC payment.
//
//	PENDING → PROFORMA → INVOICE → PAID
//
// PROFORMA and INVOICE are interim billing states; a receive date is
// mandatory only at PAID and is force-cleared at PENDING.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentProforma PaymentStatus = "PROFORMA"
	PaymentInvoice  PaymentStatus = "INVOICE"
	PaymentPaid     PaymentStatus = "PAID"
)

// ValidPaymentStatus reports whether s is a known lifecycle state.
func ValidPaymentStatus(s PaymentStatus) bool {
	switch s {
	case PaymentPending, PaymentProforma, PaymentInvoice, PaymentPaid:
		return true
	}
	return false
}

// OrderStatus is the lifecycle of an order header.
//
//	DRAFT → CONFIRMED → CLOSED
//	DRAFT → CANCELLED
type OrderStatus string

const (
	OrderDraft     OrderStatus = "DRAFT"
	OrderConfirmed OrderStatus = "CONFIRMED"
	OrderClosed    OrderStatus = "CLOSED"
	OrderCancelled OrderStatus = "CANCELLED"
)
