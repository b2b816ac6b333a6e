package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"servimarket_bff/internal/database"
	"servimarket_bff/internal/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Permitir todos los orígenes (ajustar en producción)
		return true
	},
}

// Sync mantiene el carrito sincronizado en tiempo real entre pestañas.
// Cada cambio publicado en Redis se reenvía al cliente conectado.
func (h *CartHandler) Sync(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No autenticado"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ Error en upgrade WebSocket: %v", err)
		return
	}
	defer conn.Close()

	ctx := c.Request.Context()

	pubsub := database.Redis.Subscribe(ctx, "cart:"+userID)
	defer pubsub.Close()
	ch := pubsub.Channel()

	conn.WriteJSON(gin.H{
		"type":    "connected",
		"message": "Sincronización del carrito activada",
	})

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if msg.Payload != "updated" && msg.Payload != "cleared" {
				continue
			}

			items := h.store.Items(ctx, userID)
			if items == nil {
				items = []models.CartItem{}
			}

			if err := conn.WriteJSON(gin.H{
				"type":       "cart_updated",
				"items":      items,
				"totalItems": models.CartTotalItems(items),
				"totalPrice": models.CartTotalPrice(items),
			}); err != nil {
				log.Printf("❌ Error enviando por WebSocket: %v", err)
				return
			}

		case <-time.After(30 * time.Second):
			// Ping para mantener viva la conexión
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-ctx.Done():
			return
		}
	}
}
