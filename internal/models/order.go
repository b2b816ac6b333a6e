package models

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusCompleted  OrderStatus = "COMPLETED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

type OrderItem struct {
	ID          int64  `json:"id"`
	ServiceID   int    `json:"serviceId"`
	ServiceName string `json:"serviceName"`
	Quantity    int    `json:"quantity"`
	Price       int64  `json:"price"`
	Subtotal    int64  `json:"subtotal"`
}

// Order es el tipo canónico interno. El backend responde "totalAmount"
// (algunas versiones enviaban "total"); la normalización vive en
// internal/clients y acá solo existe Total.
type Order struct {
	ID          int64       `json:"id"`
	OrderNumber string      `json:"orderNumber"`
	UserName    string      `json:"userName"`
	UserEmail   string      `json:"userEmail"`
	Items       []OrderItem `json:"items"`
	Total       int64       `json:"totalAmount"`
	Status      OrderStatus `json:"status"`
	Notes       string      `json:"notes,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// OrderItemRequest es lo único que viaja al crear una orden: el backend
// calcula el precio autoritativo, nunca se confía el del carrito.
type OrderItemRequest struct {
	ServiceID int `json:"serviceId"`
	Quantity  int `json:"quantity"`
}
