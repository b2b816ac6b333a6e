package clients

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"servimarket_bff/internal/models"
)

// PaymentsClient envuelve el API de pagos del backend (modo sandbox)
type PaymentsClient struct {
	*Client
}

func NewPaymentsClient(baseURL string, timeout time.Duration) *PaymentsClient {
	return &PaymentsClient{Client: New(baseURL, timeout)}
}

// paymentWire usa los nombres exactos que el backend valida: "paymentMethod"
// y "expiryDate" (internamente es ExpirationDate). El backend rechaza el
// esquema si la traducción no es exacta.
type paymentWire struct {
	OrderID        int64                `json:"orderId"`
	PaymentMethod  models.PaymentMethod `json:"paymentMethod"`
	CardNumber     string               `json:"cardNumber,omitempty"`
	CardHolderName string               `json:"cardHolderName,omitempty"`
	ExpiryDate     string               `json:"expiryDate,omitempty"`
	CVV            string               `json:"cvv,omitempty"`
}

// ProcessPayment somete el pago de una orden ya creada. card es nil para
// métodos sin tarjeta (PSE, efectivo).
func (c *PaymentsClient) ProcessPayment(ctx context.Context, token string, orderID int64, method models.PaymentMethod, card *models.CardDetails) (*models.Payment, error) {
	body := paymentWire{
		OrderID:       orderID,
		PaymentMethod: method,
	}
	if card != nil {
		body.CardNumber = strings.ReplaceAll(card.Number, " ", "")
		body.CardHolderName = card.HolderName
		body.ExpiryDate = card.ExpirationDate
		body.CVV = card.CVV
	}

	var payment models.Payment
	if err := c.post(ctx, "/api/payments/process", token, body, &payment, uuid.NewString()); err != nil {
		return nil, err
	}

	log.Printf("💳 Pago %d para orden %d: %s", payment.ID, orderID, payment.Status)
	return &payment, nil
}

// GetPaymentByOrder lo usa la vista de detalle de orden tras el redirect
func (c *PaymentsClient) GetPaymentByOrder(ctx context.Context, token string, orderID int64) (*models.Payment, error) {
	var payment models.Payment
	if err := c.get(ctx, fmt.Sprintf("/api/payments/order/%d", orderID), token, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

func (c *PaymentsClient) GetPayment(ctx context.Context, token string, id int64) (*models.Payment, error) {
	var payment models.Payment
	if err := c.get(ctx, fmt.Sprintf("/api/payments/%d", id), token, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}
