package routes

import (
	"github.com/gin-gonic/gin"

	"servimarket_bff/internal/handlers"
	"servimarket_bff/internal/middleware"
)

// Handlers agrupa los handlers que exponen el API del BFF
type Handlers struct {
	Cart     *handlers.CartHandler
	Checkout *handlers.CheckoutHandler
	Orders   *handlers.OrdersHandler
	Payments *handlers.PaymentsHandler
	Services *handlers.ServicesHandler
}

func RegisterRoutes(r *gin.Engine, h *Handlers) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.Use(middleware.APIRateLimit())

	// 🛒 Carrito. El rate limit aplica solo a los cambios de renglones;
	// lecturas, websocket y vaciado quedan por fuera
	cart := api.Group("/cart")
	cart.Use(middleware.AuthRequired())
	{
		cart.GET("", h.Cart.Get)
		cart.GET("/ws", h.Cart.Sync)
		cart.POST("/add", middleware.CartRateLimit(), h.Cart.Add)
		cart.PUT("/update", middleware.CartRateLimit(), h.Cart.Update)
		cart.DELETE("/:serviceId", h.Cart.Remove)
		cart.DELETE("", h.Cart.Clear)
	}

	// 💳 Checkout
	checkout := api.Group("/checkout")
	checkout.Use(middleware.AuthRequired(), middleware.CheckoutRateLimit())
	{
		checkout.POST("", h.Checkout.Submit)
	}

	// 🧾 Órdenes
	orders := api.Group("/orders")
	orders.Use(middleware.AuthRequired())
	{
		orders.GET("", h.Orders.All)
		orders.GET("/my-orders", h.Orders.MyOrders)
		orders.GET("/:id", h.Orders.GetByID)
		orders.GET("/:id/receipt", h.Orders.Receipt)
	}

	// 💰 Pagos
	payments := api.Group("/payments")
	payments.Use(middleware.AuthRequired())
	{
		payments.GET("/order/:orderId", h.Payments.GetByOrder)
		payments.GET("/:id/qr", h.Payments.QR)
	}

	// 🛍️ Catálogo
	services := api.Group("/services")
	services.Use(middleware.AuthRequired())
	{
		services.GET("", h.Services.List)
		services.GET("/:id", h.Services.GetByID)
	}
}
