package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"servimarket_bff/internal/cart"
	"servimarket_bff/internal/models"
	"servimarket_bff/internal/utils"
)

// Catalog resuelve servicios del catálogo al agregar al carrito
type Catalog interface {
	GetService(ctx context.Context, token string, id int) (*models.Service, error)
}

type CartHandler struct {
	store   *cart.Store
	catalog Catalog
}

func NewCartHandler(store *cart.Store, catalog Catalog) *CartHandler {
	return &CartHandler{store: store, catalog: catalog}
}

func cartResponse(items []models.CartItem) gin.H {
	if items == nil {
		items = []models.CartItem{}
	}
	return gin.H{
		"items":      items,
		"totalItems": models.CartTotalItems(items),
		"totalPrice": models.CartTotalPrice(items),
	}
}

// 🟢 GET /api/cart
func (h *CartHandler) Get(c *gin.Context) {
	userID := c.GetString("user_id")
	c.JSON(http.StatusOK, cartResponse(h.store.Items(c.Request.Context(), userID)))
}

// 🟢 POST /api/cart/add
func (h *CartHandler) Add(c *gin.Context) {
	userID := c.GetString("user_id")
	token := c.GetString("token")

	var input struct {
		ServiceID int  `json:"serviceId"`
		Quantity  *int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos"})
		return
	}

	quantity := 1
	if input.Quantity != nil {
		quantity = *input.Quantity
	}
	if quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cantidad inválida"})
		return
	}

	// Foto de nombre y precio al momento de agregar; el cobro final lo
	// calcula el backend al crear la orden
	svc, err := h.catalog.GetService(c.Request.Context(), token, input.ServiceID)
	if err != nil {
		respondUpstreamError(c, err, "Servicio no encontrado")
		return
	}
	if !svc.Available {
		c.JSON(http.StatusBadRequest, gin.H{"error": "El servicio no está disponible"})
		return
	}

	items, err := h.store.AddItem(c.Request.Context(), userID, *svc, quantity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error guardando el carrito"})
		return
	}

	resp := cartResponse(items)
	resp["message"] = "Servicio agregado al carrito"
	c.JSON(http.StatusOK, resp)
}

// 🔁 PUT /api/cart/update
func (h *CartHandler) Update(c *gin.Context) {
	userID := c.GetString("user_id")

	var input struct {
		ServiceID int `json:"serviceId"`
		Quantity  int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos"})
		return
	}

	// Cantidad ≤ 0 equivale a eliminar el renglón
	items, err := h.store.UpdateQuantity(c.Request.Context(), userID, input.ServiceID, input.Quantity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error guardando el carrito"})
		return
	}

	c.JSON(http.StatusOK, cartResponse(items))
}

// ❌ DELETE /api/cart/:serviceId
func (h *CartHandler) Remove(c *gin.Context) {
	userID := c.GetString("user_id")

	serviceID, err := strconv.Atoi(c.Param("serviceId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID de servicio inválido"})
		return
	}

	items, err := h.store.RemoveItem(c.Request.Context(), userID, serviceID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error guardando el carrito"})
		return
	}

	resp := cartResponse(items)
	resp["message"] = "Servicio eliminado del carrito"
	c.JSON(http.StatusOK, resp)
}

// 🧹 DELETE /api/cart
func (h *CartHandler) Clear(c *gin.Context) {
	userID := c.GetString("user_id")

	if err := h.store.Clear(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error vaciando el carrito"})
		return
	}

	utils.LogAction(c, utils.ActionCartClear, utils.ResourceCart, userID, "", true, "")
	c.JSON(http.StatusOK, gin.H{"message": "Carrito vaciado con éxito"})
}
