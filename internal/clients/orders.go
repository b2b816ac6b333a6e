package clients

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"servimarket_bff/internal/models"
)

// OrdersClient envuelve el API de órdenes del backend
type OrdersClient struct {
	*Client
}

func NewOrdersClient(baseURL string, timeout time.Duration) *OrdersClient {
	return &OrdersClient{Client: New(baseURL, timeout)}
}

// orderWire tolera las dos variantes históricas del backend: "totalAmount"
// (actual) y "total" (versiones viejas). Nadie más que este archivo debe
// ramificar por nombre de campo.
type orderWire struct {
	ID          int64              `json:"id"`
	OrderNumber string             `json:"orderNumber"`
	UserName    string             `json:"userName"`
	UserEmail   string             `json:"userEmail"`
	Items       []models.OrderItem `json:"items"`
	TotalAmount *int64             `json:"totalAmount"`
	Total       *int64             `json:"total"`
	Status      models.OrderStatus `json:"status"`
	Notes       string             `json:"notes"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

func normalizeOrder(w orderWire) models.Order {
	total := int64(0)
	switch {
	case w.TotalAmount != nil:
		total = *w.TotalAmount
	case w.Total != nil:
		total = *w.Total
	}

	return models.Order{
		ID:          w.ID,
		OrderNumber: w.OrderNumber,
		UserName:    w.UserName,
		UserEmail:   w.UserEmail,
		Items:       w.Items,
		Total:       total,
		Status:      w.Status,
		Notes:       w.Notes,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}

// CreateOrder crea la orden a partir de pares (serviceId, cantidad). El
// precio autoritativo lo pone el backend en la respuesta.
func (c *OrdersClient) CreateOrder(ctx context.Context, token string, items []models.OrderItemRequest) (*models.Order, error) {
	body := struct {
		Items []models.OrderItemRequest `json:"items"`
	}{Items: items}

	var w orderWire
	if err := c.post(ctx, "/api/orders", token, body, &w, uuid.NewString()); err != nil {
		return nil, err
	}

	order := normalizeOrder(w)
	log.Printf("🧾 Orden creada: #%s (id=%d, total=%d)", order.OrderNumber, order.ID, order.Total)
	return &order, nil
}

func (c *OrdersClient) GetOrder(ctx context.Context, token string, id int64) (*models.Order, error) {
	var w orderWire
	if err := c.get(ctx, fmt.Sprintf("/api/orders/%d", id), token, &w); err != nil {
		return nil, err
	}
	order := normalizeOrder(w)
	return &order, nil
}

func (c *OrdersClient) GetMyOrders(ctx context.Context, token string) ([]models.Order, error) {
	var ws []orderWire
	if err := c.get(ctx, "/api/orders/my-orders", token, &ws); err != nil {
		return nil, err
	}

	orders := make([]models.Order, 0, len(ws))
	for _, w := range ws {
		orders = append(orders, normalizeOrder(w))
	}
	return orders, nil
}

// GetAllOrders lista todas las órdenes (solo ADMIN; el backend valida el rol)
func (c *OrdersClient) GetAllOrders(ctx context.Context, token string) ([]models.Order, error) {
	var ws []orderWire
	if err := c.get(ctx, "/api/orders", token, &ws); err != nil {
		return nil, err
	}

	orders := make([]models.Order, 0, len(ws))
	for _, w := range ws {
		orders = append(orders, normalizeOrder(w))
	}
	return orders, nil
}
