package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"servimarket_bff/internal/clients"
	"servimarket_bff/internal/utils"
)

type OrdersHandler struct {
	orders *clients.OrdersClient
}

func NewOrdersHandler(orders *clients.OrdersClient) *OrdersHandler {
	return &OrdersHandler{orders: orders}
}

// GET /api/orders/my-orders
func (h *OrdersHandler) MyOrders(c *gin.Context) {
	token := c.GetString("token")

	orders, err := h.orders.GetMyOrders(c.Request.Context(), token)
	if err != nil {
		respondUpstreamError(c, err, "Error recuperando tus órdenes")
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GET /api/orders/:id
func (h *OrdersHandler) GetByID(c *gin.Context) {
	token := c.GetString("token")

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID de orden inválido"})
		return
	}

	order, err := h.orders.GetOrder(c.Request.Context(), token, id)
	if err != nil {
		respondUpstreamError(c, err, "Orden no encontrada")
		return
	}

	c.JSON(http.StatusOK, order)
}

// GET /api/orders (solo ADMIN; el backend vuelve a validar el rol)
func (h *OrdersHandler) All(c *gin.Context) {
	if c.GetString("role") != "ADMIN" {
		c.JSON(http.StatusForbidden, gin.H{"error": "No tienes permisos para ver todas las órdenes"})
		return
	}

	orders, err := h.orders.GetAllOrders(c.Request.Context(), c.GetString("token"))
	if err != nil {
		respondUpstreamError(c, err, "Error recuperando órdenes")
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GET /api/orders/:id/receipt: recibo en PDF de una orden propia
func (h *OrdersHandler) Receipt(c *gin.Context) {
	token := c.GetString("token")

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID de orden inválido"})
		return
	}

	// El backend valida la propiedad de la orden; acá solo se confirma
	// que exista para la sesión antes de pagar el render
	if _, err := h.orders.GetOrder(c.Request.Context(), token, id); err != nil {
		respondUpstreamError(c, err, "Orden no encontrada")
		return
	}

	pdf, err := utils.RenderReceiptPDF(id, token)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error generando el recibo"})
		return
	}

	c.Header("Content-Disposition", "attachment; filename=recibo_servimarket.pdf")
	c.Data(http.StatusOK, "application/pdf", pdf)
}
