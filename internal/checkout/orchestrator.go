package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"servimarket_bff/internal/clients"
	"servimarket_bff/internal/models"
)

// Estados de un intento de checkout
type State string

const (
	StateIdle                State = "IDLE"
	StateValidating          State = "VALIDATING"
	StateCreatingOrder       State = "CREATING_ORDER"
	StateProcessingPayment   State = "PROCESSING_PAYMENT"
	StateSucceeded           State = "SUCCEEDED"
	StatePendingConfirmation State = "PENDING_CONFIRMATION"
	StateFailed              State = "FAILED"
)

// Mensajes que ve el usuario
const (
	MsgEmptyCart         = "El carrito está vacío"
	MsgLoginRequired     = "Debes iniciar sesión para continuar"
	MsgAlreadyInFlight   = "Ya hay un pago en proceso. Espera a que termine."
	MsgPurchaseSucceeded = "¡Compra realizada con éxito!"
	MsgPaymentRejected   = "Pago rechazado. Por favor, intenta con otro método de pago."
	MsgPaymentPending    = "Pago pendiente de confirmación. Te notificaremos cuando se complete."
	MsgPaymentUnknown    = "Estado de pago desconocido. Por favor, verifica tu orden."
	MsgGenericFailure    = "Error al procesar la compra. Por favor, intenta de nuevo."
)

type OrdersAPI interface {
	CreateOrder(ctx context.Context, token string, items []models.OrderItemRequest) (*models.Order, error)
}

type PaymentsAPI interface {
	ProcessPayment(ctx context.Context, token string, orderID int64, method models.PaymentMethod, card *models.CardDetails) (*models.Payment, error)
}

// CartStore es lo que el orquestador necesita del carrito
type CartStore interface {
	Items(ctx context.Context, userID string) []models.CartItem
	Clear(ctx context.Context, userID string) error
}

// Request es un intento de checkout de un usuario autenticado
type Request struct {
	UserID string
	Email  string
	Token  string
	Method models.PaymentMethod
	Card   models.CardDetails
}

// Redirect es una intención de navegación: el orquestador nunca navega ni
// duerme, solo indica a dónde y después de cuánto.
type Redirect struct {
	To    string        `json:"to"`
	After time.Duration `json:"-"`
}

// Result es el desenlace de un intento
type Result struct {
	State       State
	AttemptID   string
	Order       *models.Order
	Payment     *models.Payment
	Message     string
	FieldErrors map[string]string
	Redirect    *Redirect
	CartCleared bool
}

// Orchestrator secuencia carrito → creación de orden → pago → desenlace.
// Un usuario no puede tener dos intentos en vuelo (flag de reentrada).
type Orchestrator struct {
	orders   OrdersAPI
	payments PaymentsAPI
	cart     CartStore

	successDelay time.Duration
	pendingDelay time.Duration

	mu       sync.Mutex
	inFlight map[string]bool
}

func NewOrchestrator(orders OrdersAPI, payments PaymentsAPI, cart CartStore, successDelay, pendingDelay time.Duration) *Orchestrator {
	return &Orchestrator{
		orders:       orders,
		payments:     payments,
		cart:         cart,
		successDelay: successDelay,
		pendingDelay: pendingDelay,
		inFlight:     make(map[string]bool),
	}
}

func orderDetailPath(orderID int64) string {
	return fmt.Sprintf("/dashboard/ordenes/%d", orderID)
}

// Submit ejecuta un intento completo. Todos los errores remotos se convierten
// en avisos para el usuario; nada de este flujo tumba la petición.
func (o *Orchestrator) Submit(ctx context.Context, req Request) Result {
	attemptID := uuid.NewString()

	// Flag de reentrada: mientras hay una petición en vuelo no se aceptan
	// envíos duplicados
	o.mu.Lock()
	if o.inFlight[req.UserID] {
		o.mu.Unlock()
		return Result{State: StateIdle, AttemptID: attemptID, Message: MsgAlreadyInFlight}
	}
	o.inFlight[req.UserID] = true
	o.mu.Unlock()

	defer func() {
		o.mu.Lock()
		delete(o.inFlight, req.UserID)
		o.mu.Unlock()
	}()

	// Guardas: violación ⇒ redirect, sin entrar a más estados
	if req.UserID == "" || req.Token == "" {
		return Result{
			State:     StateIdle,
			AttemptID: attemptID,
			Message:   MsgLoginRequired,
			Redirect:  &Redirect{To: "/"},
		}
	}

	items := o.cart.Items(ctx, req.UserID)
	if len(items) == 0 {
		return Result{
			State:     StateIdle,
			AttemptID: attemptID,
			Message:   MsgEmptyCart,
			Redirect:  &Redirect{To: "/dashboard/carrito"},
		}
	}

	// VALIDATING: errores de campo se quedan acá, sin tocar la red
	if fieldErrs := ValidateCard(req.Method, req.Card); len(fieldErrs) > 0 {
		return Result{
			State:       StateValidating,
			AttemptID:   attemptID,
			FieldErrors: fieldErrs,
			Message:     firstError(fieldErrs),
		}
	}

	// CREATING_ORDER
	orderItems := make([]models.OrderItemRequest, 0, len(items))
	for _, item := range items {
		orderItems = append(orderItems, models.OrderItemRequest{
			ServiceID: item.ServiceID,
			Quantity:  item.Quantity,
		})
	}

	log.Printf("🛒 Checkout %s: creando orden para %s (%d renglones)", attemptID, req.UserID, len(orderItems))
	order, err := o.orders.CreateOrder(ctx, req.Token, orderItems)
	if err != nil {
		log.Printf("❌ Checkout %s: error creando orden: %v", attemptID, err)
		return Result{
			State:     StateFailed,
			AttemptID: attemptID,
			Message:   upstreamMessage(err),
		}
	}

	// PROCESSING_PAYMENT: nunca antes de tener un id de orden válido
	var card *models.CardDetails
	if req.Method.IsCard() {
		card = &req.Card
	}

	payment, err := o.payments.ProcessPayment(ctx, req.Token, order.ID, req.Method, card)
	if err != nil {
		log.Printf("❌ Checkout %s: error procesando pago orden %d: %v", attemptID, order.ID, err)
		return Result{
			State:     StateFailed,
			AttemptID: attemptID,
			Order:     order,
			Message:   upstreamMessage(err),
		}
	}

	switch payment.Status {
	case models.PaymentStatusCompleted, models.PaymentStatusProcessing:
		o.clearCart(ctx, req.UserID, attemptID)
		return Result{
			State:       StateSucceeded,
			AttemptID:   attemptID,
			Order:       order,
			Payment:     payment,
			Message:     MsgPurchaseSucceeded,
			CartCleared: true,
			Redirect:    &Redirect{To: orderDetailPath(order.ID), After: o.successDelay},
		}

	case models.PaymentStatusPending:
		// Pendiente navega igual que el éxito, con delay más largo
		o.clearCart(ctx, req.UserID, attemptID)
		return Result{
			State:       StatePendingConfirmation,
			AttemptID:   attemptID,
			Order:       order,
			Payment:     payment,
			Message:     MsgPaymentPending,
			CartCleared: true,
			Redirect:    &Redirect{To: orderDetailPath(order.ID), After: o.pendingDelay},
		}

	case models.PaymentStatusFailed:
		// Carrito intacto: el usuario puede reintentar con otro método
		return Result{
			State:     StateFailed,
			AttemptID: attemptID,
			Order:     order,
			Payment:   payment,
			Message:   MsgPaymentRejected,
		}

	default:
		// Estado no reconocido: conservador, la orden queda y se apunta al
		// historial; el carrito no se toca
		log.Printf("⚠️  Checkout %s: estado de pago no reconocido %q (orden %d)", attemptID, payment.Status, order.ID)
		return Result{
			State:     StateFailed,
			AttemptID: attemptID,
			Order:     order,
			Payment:   payment,
			Message:   MsgPaymentUnknown,
		}
	}
}

func (o *Orchestrator) clearCart(ctx context.Context, userID, attemptID string) {
	if err := o.cart.Clear(ctx, userID); err != nil {
		// La compra ya está hecha; un carrito sin vaciar no la invalida
		log.Printf("⚠️  Checkout %s: no se pudo vaciar el carrito de %s: %v", attemptID, userID, err)
	}
}

func upstreamMessage(err error) string {
	if errors.Is(err, clients.ErrSessionExpired) {
		return MsgLoginRequired
	}
	if msg := clients.Message(err); msg != "" {
		return msg
	}
	return MsgGenericFailure
}

func firstError(fieldErrs map[string]string) string {
	// Prioridad estable para el aviso principal
	for _, field := range []string{"cardNumber", "cardHolderName", "expirationDate", "cvv"} {
		if msg, ok := fieldErrs[field]; ok {
			return msg
		}
	}
	for _, msg := range fieldErrs {
		return msg
	}
	return ""
}
