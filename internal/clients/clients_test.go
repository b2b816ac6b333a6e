package clients

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"servimarket_bff/internal/models"
)

func TestCreateOrderSendsItemsAndHeaders(t *testing.T) {
	var gotBody map[string]any
	var gotAuth, gotIdempotency string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/orders", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		gotIdempotency = r.Header.Get("X-Idempotency-Key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(map[string]any{
			"id":          42,
			"orderNumber": "ORD-042",
			"totalAmount": 280000,
			"status":      "PENDING",
		})
	}))
	defer srv.Close()

	client := NewOrdersClient(srv.URL, time.Second)
	order, err := client.CreateOrder(context.Background(), "jwt-token", []models.OrderItemRequest{
		{ServiceID: 7, Quantity: 2},
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer jwt-token", gotAuth)
	assert.NotEmpty(t, gotIdempotency)

	items := gotBody["items"].([]any)
	require.Len(t, items, 1)
	first := items[0].(map[string]any)
	assert.Equal(t, float64(7), first["serviceId"])
	assert.Equal(t, float64(2), first["quantity"])

	assert.Equal(t, int64(42), order.ID)
	assert.Equal(t, int64(280000), order.Total)
}

func TestOrderTotalNormalization(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int64
	}{
		{name: "campo actual totalAmount", body: `{"id":1,"totalAmount":150000}`, want: 150000},
		{name: "campo viejo total", body: `{"id":1,"total":99000}`, want: 99000},
		{name: "totalAmount gana sobre total", body: `{"id":1,"totalAmount":150000,"total":99000}`, want: 150000},
		{name: "sin total", body: `{"id":1}`, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewOrdersClient(srv.URL, time.Second)
			order, err := client.GetOrder(context.Background(), "t", 1)
			require.NoError(t, err)
			assert.Equal(t, tt.want, order.Total)
		})
	}
}

func TestProcessPaymentWireFormat(t *testing.T) {
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/payments/process", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(models.Payment{ID: 9, OrderID: 42, Status: models.PaymentStatusCompleted})
	}))
	defer srv.Close()

	client := NewPaymentsClient(srv.URL, time.Second)
	payment, err := client.ProcessPayment(context.Background(), "t", 42, models.PaymentMethodCreditCard, &models.CardDetails{
		Number:         "4111 1111 1111 1111",
		HolderName:     "Ana María Rojas",
		ExpirationDate: "12/26",
		CVV:            "123",
	})
	require.NoError(t, err)

	// El backend exige "expiryDate" y el número sin espacios
	assert.Equal(t, "CREDIT_CARD", gotBody["paymentMethod"])
	assert.Equal(t, "4111111111111111", gotBody["cardNumber"])
	assert.Equal(t, "12/26", gotBody["expiryDate"])
	assert.NotContains(t, gotBody, "expirationDate")

	assert.Equal(t, models.PaymentStatusCompleted, payment.Status)
}

func TestProcessPaymentWithoutCardOmitsFields(t *testing.T) {
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(models.Payment{Status: models.PaymentStatusPending})
	}))
	defer srv.Close()

	client := NewPaymentsClient(srv.URL, time.Second)
	_, err := client.ProcessPayment(context.Background(), "t", 1, models.PaymentMethodPSE, nil)
	require.NoError(t, err)

	assert.NotContains(t, gotBody, "cardNumber")
	assert.NotContains(t, gotBody, "cvv")
}

func TestUnauthorizedBecomesSessionExpired(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewOrdersClient(srv.URL, time.Second)
	_, err := client.GetMyOrders(context.Background(), "expired")

	assert.ErrorIs(t, err, ErrSessionExpired)
}

func TestUpstreamErrorKeepsBackendMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"Servicio no disponible"}`))
	}))
	defer srv.Close()

	client := NewOrdersClient(srv.URL, time.Second)
	_, err := client.CreateOrder(context.Background(), "t", nil)

	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, http.StatusBadRequest, ue.StatusCode)
	assert.Equal(t, "Servicio no disponible", ue.Message)
	assert.Equal(t, "Servicio no disponible", Message(err))
}

func TestUpstreamErrorFallsBackToErrorField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error":"Orden duplicada"}`))
	}))
	defer srv.Close()

	client := NewPaymentsClient(srv.URL, time.Second)
	_, err := client.GetPayment(context.Background(), "t", 1)

	assert.Equal(t, "Orden duplicada", Message(err))
}

func TestGetRetriesOnceOnNetworkError(t *testing.T) {
	calls := 0
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			// Cortar la conexión sin respuesta HTTP válida
			hj, ok := w.(http.Hijacker)
			require.True(t, ok)
			conn, _, err := hj.Hijack()
			require.NoError(t, err)
			conn.Close()
			return
		}
		json.NewEncoder(w).Encode(models.Payment{ID: 1, Status: models.PaymentStatusCompleted})
	}))
	defer srv.Close()

	client := NewPaymentsClient(srv.URL, time.Second)
	payment, err := client.GetPayment(context.Background(), "t", 1)

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, models.PaymentStatusCompleted, payment.Status)
}

func TestHTTPErrorsAreNotRetried(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewOrdersClient(srv.URL, time.Second)
	_, err := client.GetOrder(context.Background(), "t", 1)

	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrSessionExpired))
	assert.Equal(t, 1, calls)
}
