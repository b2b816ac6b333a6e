package checkout

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"servimarket_bff/internal/clients"
	"servimarket_bff/internal/models"
)

type ordersMock struct {
	mu       sync.Mutex
	calls    int
	gotItems []models.OrderItemRequest
	order    *models.Order
	err      error
	block    chan struct{}
}

func (m *ordersMock) CreateOrder(ctx context.Context, token string, items []models.OrderItemRequest) (*models.Order, error) {
	m.mu.Lock()
	m.calls++
	m.gotItems = items
	block := m.block
	m.mu.Unlock()

	if block != nil {
		<-block
	}
	return m.order, m.err
}

type paymentsMock struct {
	mu         sync.Mutex
	calls      int
	gotOrderID int64
	gotMethod  models.PaymentMethod
	gotCard    *models.CardDetails
	payment    *models.Payment
	err        error
}

func (m *paymentsMock) ProcessPayment(ctx context.Context, token string, orderID int64, method models.PaymentMethod, card *models.CardDetails) (*models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.gotOrderID = orderID
	m.gotMethod = method
	m.gotCard = card
	return m.payment, m.err
}

type cartMock struct {
	mu      sync.Mutex
	items   []models.CartItem
	cleared int
}

func (m *cartMock) Items(ctx context.Context, userID string) []models.CartItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.items
}

func (m *cartMock) Clear(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cleared++
	return nil
}

func filledCart() []models.CartItem {
	return []models.CartItem{
		{ServiceID: 7, ServiceName: "Aseo general", Price: 80000, Quantity: 2},
		{ServiceID: 12, ServiceName: "Plomería", Price: 120000, Quantity: 1},
	}
}

func cardRequest() Request {
	return Request{
		UserID: "user-1",
		Email:  "ana@example.com",
		Token:  "jwt-token",
		Method: models.PaymentMethodCreditCard,
		Card: models.CardDetails{
			Number:         "4111 1111 1111 1111",
			HolderName:     "Ana María Rojas",
			ExpirationDate: "12/26",
			CVV:            "123",
		},
	}
}

func newTestOrchestrator(orders *ordersMock, payments *paymentsMock, cart *cartMock) *Orchestrator {
	return NewOrchestrator(orders, payments, cart, 1500*time.Millisecond, 2*time.Second)
}

func TestSubmitHappyPath(t *testing.T) {
	orders := &ordersMock{order: &models.Order{ID: 42, OrderNumber: "ORD-042", Total: 280000}}
	payments := &paymentsMock{payment: &models.Payment{ID: 9, OrderID: 42, Status: models.PaymentStatusCompleted}}
	cart := &cartMock{items: filledCart()}
	orch := newTestOrchestrator(orders, payments, cart)

	result := orch.Submit(context.Background(), cardRequest())

	require.Equal(t, StateSucceeded, result.State)
	assert.Equal(t, MsgPurchaseSucceeded, result.Message)
	assert.True(t, result.CartCleared)
	assert.Equal(t, 1, cart.cleared)

	require.NotNil(t, result.Redirect)
	assert.Equal(t, "/dashboard/ordenes/42", result.Redirect.To)
	assert.Equal(t, 1500*time.Millisecond, result.Redirect.After)

	// La orden viaja solo con pares (serviceId, cantidad)
	require.Len(t, orders.gotItems, 2)
	assert.Equal(t, models.OrderItemRequest{ServiceID: 7, Quantity: 2}, orders.gotItems[0])

	assert.Equal(t, int64(42), payments.gotOrderID)
	assert.Equal(t, models.PaymentMethodCreditCard, payments.gotMethod)
	require.NotNil(t, payments.gotCard)
}

func TestSubmitProcessingCountsAsSuccess(t *testing.T) {
	orders := &ordersMock{order: &models.Order{ID: 5}}
	payments := &paymentsMock{payment: &models.Payment{Status: models.PaymentStatusProcessing}}
	cart := &cartMock{items: filledCart()}
	orch := newTestOrchestrator(orders, payments, cart)

	result := orch.Submit(context.Background(), cardRequest())

	assert.Equal(t, StateSucceeded, result.State)
	assert.Equal(t, 1, cart.cleared)
}

func TestSubmitPendingPayment(t *testing.T) {
	orders := &ordersMock{order: &models.Order{ID: 8}}
	payments := &paymentsMock{payment: &models.Payment{Status: models.PaymentStatusPending}}
	cart := &cartMock{items: filledCart()}
	orch := newTestOrchestrator(orders, payments, cart)

	req := cardRequest()
	req.Method = models.PaymentMethodPSE
	req.Card = models.CardDetails{}

	result := orch.Submit(context.Background(), req)

	require.Equal(t, StatePendingConfirmation, result.State)
	assert.Equal(t, MsgPaymentPending, result.Message)
	assert.True(t, result.CartCleared)
	assert.Equal(t, 1, cart.cleared)

	require.NotNil(t, result.Redirect)
	assert.Equal(t, "/dashboard/ordenes/8", result.Redirect.To)
	assert.Equal(t, 2*time.Second, result.Redirect.After)

	// PSE viaja sin datos de tarjeta
	assert.Nil(t, payments.gotCard)
}

func TestSubmitRejectedPaymentKeepsCart(t *testing.T) {
	orders := &ordersMock{order: &models.Order{ID: 3}}
	payments := &paymentsMock{payment: &models.Payment{Status: models.PaymentStatusFailed}}
	cart := &cartMock{items: filledCart()}
	orch := newTestOrchestrator(orders, payments, cart)

	result := orch.Submit(context.Background(), cardRequest())

	require.Equal(t, StateFailed, result.State)
	assert.Equal(t, MsgPaymentRejected, result.Message)
	assert.False(t, result.CartCleared)
	assert.Equal(t, 0, cart.cleared)
	assert.Nil(t, result.Redirect)
	require.NotNil(t, result.Order)
}

func TestSubmitUnknownPaymentStatusKeepsCart(t *testing.T) {
	orders := &ordersMock{order: &models.Order{ID: 3}}
	payments := &paymentsMock{payment: &models.Payment{Status: "WEIRD"}}
	cart := &cartMock{items: filledCart()}
	orch := newTestOrchestrator(orders, payments, cart)

	result := orch.Submit(context.Background(), cardRequest())

	assert.Equal(t, StateFailed, result.State)
	assert.Equal(t, MsgPaymentUnknown, result.Message)
	assert.Equal(t, 0, cart.cleared)
}

func TestSubmitEmptyCartNeverTouchesNetwork(t *testing.T) {
	orders := &ordersMock{}
	payments := &paymentsMock{}
	cart := &cartMock{}
	orch := newTestOrchestrator(orders, payments, cart)

	result := orch.Submit(context.Background(), cardRequest())

	require.Equal(t, StateIdle, result.State)
	assert.Equal(t, MsgEmptyCart, result.Message)
	require.NotNil(t, result.Redirect)
	assert.Equal(t, "/dashboard/carrito", result.Redirect.To)
	assert.Equal(t, 0, orders.calls)
	assert.Equal(t, 0, payments.calls)
}

func TestSubmitWithoutSession(t *testing.T) {
	orders := &ordersMock{}
	cart := &cartMock{items: filledCart()}
	orch := newTestOrchestrator(orders, &paymentsMock{}, cart)

	req := cardRequest()
	req.Token = ""

	result := orch.Submit(context.Background(), req)

	require.Equal(t, StateIdle, result.State)
	assert.Equal(t, MsgLoginRequired, result.Message)
	require.NotNil(t, result.Redirect)
	assert.Equal(t, "/", result.Redirect.To)
	assert.Equal(t, 0, orders.calls)
}

func TestSubmitInvalidCardStopsBeforeNetwork(t *testing.T) {
	orders := &ordersMock{}
	payments := &paymentsMock{}
	cart := &cartMock{items: filledCart()}
	orch := newTestOrchestrator(orders, payments, cart)

	req := cardRequest()
	req.Card.ExpirationDate = "13-26"

	result := orch.Submit(context.Background(), req)

	require.Equal(t, StateValidating, result.State)
	assert.Equal(t, MsgExpirationInvalid, result.FieldErrors["expirationDate"])
	assert.Equal(t, MsgExpirationInvalid, result.Message)
	assert.Equal(t, 0, orders.calls)
	assert.Equal(t, 0, payments.calls)
}

func TestSubmitOrderFailureSkipsPayment(t *testing.T) {
	orders := &ordersMock{err: &clients.UpstreamError{StatusCode: 400, Message: "Servicio no disponible"}}
	payments := &paymentsMock{}
	cart := &cartMock{items: filledCart()}
	orch := newTestOrchestrator(orders, payments, cart)

	result := orch.Submit(context.Background(), cardRequest())

	require.Equal(t, StateFailed, result.State)
	assert.Equal(t, "Servicio no disponible", result.Message)
	assert.Equal(t, 0, payments.calls)
	assert.Equal(t, 0, cart.cleared)
	assert.Nil(t, result.Order)
	assert.Nil(t, result.Payment)
}

func TestSubmitSessionExpiredDuringOrder(t *testing.T) {
	orders := &ordersMock{err: clients.ErrSessionExpired}
	cart := &cartMock{items: filledCart()}
	orch := newTestOrchestrator(orders, &paymentsMock{}, cart)

	result := orch.Submit(context.Background(), cardRequest())

	assert.Equal(t, StateFailed, result.State)
	assert.Equal(t, MsgLoginRequired, result.Message)
}

func TestSubmitPaymentNetworkFailureKeepsCartAndOrder(t *testing.T) {
	orders := &ordersMock{order: &models.Order{ID: 77}}
	payments := &paymentsMock{err: &clients.UpstreamError{StatusCode: 502}}
	cart := &cartMock{items: filledCart()}
	orch := newTestOrchestrator(orders, payments, cart)

	result := orch.Submit(context.Background(), cardRequest())

	require.Equal(t, StateFailed, result.State)
	assert.Equal(t, MsgGenericFailure, result.Message)
	assert.Equal(t, 0, cart.cleared)
	require.NotNil(t, result.Order)
	assert.Nil(t, result.Payment)
}

func TestSubmitRejectsConcurrentAttempt(t *testing.T) {
	block := make(chan struct{})
	orders := &ordersMock{order: &models.Order{ID: 1}, block: block}
	payments := &paymentsMock{payment: &models.Payment{Status: models.PaymentStatusCompleted}}
	cart := &cartMock{items: filledCart()}
	orch := newTestOrchestrator(orders, payments, cart)

	done := make(chan Result, 1)
	go func() {
		done <- orch.Submit(context.Background(), cardRequest())
	}()

	// Esperar a que el primer intento esté dentro de CreateOrder
	assert.Eventually(t, func() bool {
		orders.mu.Lock()
		defer orders.mu.Unlock()
		return orders.calls == 1
	}, time.Second, 5*time.Millisecond)

	second := orch.Submit(context.Background(), cardRequest())
	assert.Equal(t, StateIdle, second.State)
	assert.Equal(t, MsgAlreadyInFlight, second.Message)

	close(block)
	first := <-done
	assert.Equal(t, StateSucceeded, first.State)

	// Liberado el flag, un nuevo intento vuelve a entrar
	third := orch.Submit(context.Background(), cardRequest())
	assert.NotEqual(t, MsgAlreadyInFlight, third.Message)
}

func TestSubmitDifferentUsersDoNotBlockEachOther(t *testing.T) {
	block := make(chan struct{})
	orders := &ordersMock{order: &models.Order{ID: 1}, block: block}
	payments := &paymentsMock{payment: &models.Payment{Status: models.PaymentStatusCompleted}}
	cart := &cartMock{items: filledCart()}
	orch := newTestOrchestrator(orders, payments, cart)

	done := make(chan Result, 1)
	go func() {
		done <- orch.Submit(context.Background(), cardRequest())
	}()

	assert.Eventually(t, func() bool {
		orders.mu.Lock()
		defer orders.mu.Unlock()
		return orders.calls == 1
	}, time.Second, 5*time.Millisecond)

	other := cardRequest()
	other.UserID = "user-2"
	other.Card.ExpirationDate = "99-99" // corta en validación, no necesita red

	result := orch.Submit(context.Background(), other)
	assert.Equal(t, StateValidating, result.State)

	close(block)
	<-done
}
