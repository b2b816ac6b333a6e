package models

import "time"

type PaymentMethod string

const (
	PaymentMethodCreditCard PaymentMethod = "CREDIT_CARD"
	PaymentMethodDebitCard  PaymentMethod = "DEBIT_CARD"
	PaymentMethodPSE        PaymentMethod = "PSE"
	PaymentMethodCash       PaymentMethod = "CASH"
)

// IsCard indica si el método exige datos de tarjeta
func (m PaymentMethod) IsCard() bool {
	return m == PaymentMethodCreditCard || m == PaymentMethodDebitCard
}

type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "PENDING"
	PaymentStatusProcessing PaymentStatus = "PROCESSING"
	PaymentStatusCompleted  PaymentStatus = "COMPLETED"
	PaymentStatusFailed     PaymentStatus = "FAILED"
	PaymentStatusRefunded   PaymentStatus = "REFUNDED"
)

type Payment struct {
	ID            int64         `json:"id"`
	OrderID       int64         `json:"orderId"`
	Amount        int64         `json:"amount"`
	Method        PaymentMethod `json:"method"`
	Status        PaymentStatus `json:"status"`
	TransactionID string        `json:"transactionId,omitempty"`
	Message       string        `json:"message,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
}

// CardDetails usa los nombres internos; la traducción al contrato del
// backend (expirationDate → expiryDate) es responsabilidad del cliente HTTP.
type CardDetails struct {
	Number         string `json:"cardNumber"`
	HolderName     string `json:"cardHolderName"`
	ExpirationDate string `json:"expirationDate"`
	CVV            string `json:"cvv"`
}
