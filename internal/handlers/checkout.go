package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"servimarket_bff/internal/checkout"
	"servimarket_bff/internal/models"
	"servimarket_bff/internal/utils"
)

type CheckoutHandler struct {
	orch *checkout.Orchestrator
}

func NewCheckoutHandler(orch *checkout.Orchestrator) *CheckoutHandler {
	return &CheckoutHandler{orch: orch}
}

// 💳 POST /api/checkout
//
// Ejecuta el intento completo: guardas → validación → orden → pago. La
// respuesta trae el estado terminal y, si aplica, la intención de
// redirección que el front ejecuta tras mostrar la confirmación.
func (h *CheckoutHandler) Submit(c *gin.Context) {
	var input struct {
		PaymentMethod  models.PaymentMethod `json:"paymentMethod"`
		CardNumber     string               `json:"cardNumber"`
		CardHolderName string               `json:"cardHolderName"`
		ExpirationDate string               `json:"expirationDate"`
		CVV            string               `json:"cvv"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos"})
		return
	}

	req := checkout.Request{
		UserID: c.GetString("user_id"),
		Email:  c.GetString("email"),
		Token:  c.GetString("token"),
		Method: input.PaymentMethod,
		Card: models.CardDetails{
			Number:         input.CardNumber,
			HolderName:     input.CardHolderName,
			ExpirationDate: input.ExpirationDate,
			CVV:            input.CVV,
		},
	}

	utils.LogAction(c, utils.ActionCheckoutSubmit, utils.ResourceCheckout, "", "", true, "")
	result := h.orch.Submit(c.Request.Context(), req)

	if result.Order != nil {
		utils.LogAction(c, utils.ActionOrderCreate, utils.ResourceOrder, result.Order.OrderNumber, result.AttemptID, true, "")
	}

	switch result.State {
	case checkout.StateIdle:
		// Guarda violada o envío duplicado: nunca se tocó la red
		body := gin.H{"error": result.Message}
		if result.Redirect != nil {
			body["redirect"] = result.Redirect.To
		}
		c.JSON(http.StatusConflict, body)

	case checkout.StateValidating:
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  result.Message,
			"fields": result.FieldErrors,
		})

	case checkout.StateSucceeded, checkout.StatePendingConfirmation:
		action := utils.ActionCheckoutSucceeded
		if result.State == checkout.StatePendingConfirmation {
			action = utils.ActionCheckoutPending
		}
		utils.LogAction(c, action, utils.ResourceOrder, result.Order.OrderNumber, result.AttemptID, true, "")

		if result.State == checkout.StateSucceeded {
			go notifyPurchase(*result.Order, req.Token)
		}

		c.JSON(http.StatusOK, gin.H{
			"status":      result.State,
			"message":     result.Message,
			"order":       result.Order,
			"payment":     result.Payment,
			"cartCleared": result.CartCleared,
			"redirect": gin.H{
				"to":      result.Redirect.To,
				"afterMs": result.Redirect.After.Milliseconds(),
			},
		})

	case checkout.StateFailed:
		utils.LogAction(c, utils.ActionCheckoutFailed, utils.ResourceCheckout, "", result.AttemptID, false, result.Message)

		if result.Payment != nil {
			// El pago respondió FAILED (o un estado no reconocido): el
			// carrito queda intacto y el usuario puede reintentar
			c.JSON(http.StatusOK, gin.H{
				"status":  result.State,
				"message": result.Message,
				"order":   result.Order,
				"payment": result.Payment,
			})
			return
		}

		c.JSON(http.StatusBadGateway, gin.H{
			"status": result.State,
			"error":  result.Message,
		})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": checkout.MsgGenericFailure})
	}
}

// notifyPurchase envía la confirmación por correo con el recibo adjunto.
// Mejor esfuerzo: la compra ya está cerrada.
func notifyPurchase(order models.Order, token string) {
	pdf, err := utils.RenderReceiptPDF(order.ID, token)
	if err != nil {
		log.Printf("⚠️  No se pudo generar el recibo de la orden %d: %v", order.ID, err)
		pdf = nil
	}

	html := utils.GenerateOrderConfirmationHTML(order)
	subject := "Confirmación de tu compra #" + order.OrderNumber
	if err := utils.SendConfirmationEmail(order.UserEmail, subject, html, pdf); err != nil {
		log.Printf("❌ Error enviando confirmación de la orden %d: %v", order.ID, err)
	}
}
