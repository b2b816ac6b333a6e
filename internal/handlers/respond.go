package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"servimarket_bff/internal/clients"
)

// respondUpstreamError traduce errores del backend a respuestas para el
// front. Un 401 del backend invalida la sesión completa.
func respondUpstreamError(c *gin.Context, err error, fallback string) {
	if errors.Is(err, clients.ErrSessionExpired) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Tu sesión expiró. Inicia sesión de nuevo", "redirect": "/"})
		return
	}

	var ue *clients.UpstreamError
	if errors.As(err, &ue) {
		status := http.StatusBadGateway
		if ue.StatusCode == http.StatusNotFound {
			status = http.StatusNotFound
		}
		msg := ue.Message
		if msg == "" {
			msg = fallback
		}
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusBadGateway, gin.H{"error": fallback})
}
