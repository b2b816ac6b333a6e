package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"servimarket_bff/internal/clients"
	"servimarket_bff/internal/models"
	"servimarket_bff/internal/utils"
)

type PaymentsHandler struct {
	payments *clients.PaymentsClient
}

func NewPaymentsHandler(payments *clients.PaymentsClient) *PaymentsHandler {
	return &PaymentsHandler{payments: payments}
}

// GET /api/payments/order/:orderId: estado del pago para la vista de
// detalle de orden después del redirect
func (h *PaymentsHandler) GetByOrder(c *gin.Context) {
	token := c.GetString("token")

	orderID, err := strconv.ParseInt(c.Param("orderId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID de orden inválido"})
		return
	}

	payment, err := h.payments.GetPaymentByOrder(c.Request.Context(), token, orderID)
	if err != nil {
		respondUpstreamError(c, err, "Pago no encontrado")
		return
	}

	c.JSON(http.StatusOK, payment)
}

// GET /api/payments/:id/qr: código de pago en efectivo para puntos
// autorizados (Efecty, Baloto, Su Red)
func (h *PaymentsHandler) QR(c *gin.Context) {
	token := c.GetString("token")

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID de pago inválido"})
		return
	}

	payment, err := h.payments.GetPayment(c.Request.Context(), token, id)
	if err != nil {
		respondUpstreamError(c, err, "Pago no encontrado")
		return
	}

	if payment.Method != models.PaymentMethodCash {
		c.JSON(http.StatusBadRequest, gin.H{"error": "El pago no es en efectivo"})
		return
	}
	if payment.Status != models.PaymentStatusPending {
		c.JSON(http.StatusBadRequest, gin.H{"error": "El pago ya no está pendiente"})
		return
	}

	reference := payment.TransactionID
	if reference == "" {
		reference = fmt.Sprintf("PAGO-%d-%d", payment.OrderID, payment.ID)
	}

	png, err := utils.GeneratePaymentQR(reference, payment.Amount)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error generando el código de pago"})
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
