package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"servimarket_bff/internal/clients"
)

type ServicesHandler struct {
	catalog *clients.CatalogClient
}

func NewServicesHandler(catalog *clients.CatalogClient) *ServicesHandler {
	return &ServicesHandler{catalog: catalog}
}

// GET /api/services
func (h *ServicesHandler) List(c *gin.Context) {
	services, err := h.catalog.ListServices(c.Request.Context(), c.GetString("token"))
	if err != nil {
		respondUpstreamError(c, err, "Error recuperando el catálogo")
		return
	}

	c.JSON(http.StatusOK, gin.H{"services": services})
}

// GET /api/services/:id
func (h *ServicesHandler) GetByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID de servicio inválido"})
		return
	}

	svc, err := h.catalog.GetService(c.Request.Context(), c.GetString("token"), id)
	if err != nil {
		respondUpstreamError(c, err, "Servicio no encontrado")
		return
	}

	c.JSON(http.StatusOK, svc)
}
