package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"servimarket_bff/internal/cart"
	"servimarket_bff/internal/checkout"
	"servimarket_bff/internal/clients"
	"servimarket_bff/internal/config"
	"servimarket_bff/internal/database"
	"servimarket_bff/internal/handlers"
	"servimarket_bff/internal/routes"
)

func main() {
	config.Load()
	database.ConnectDatabases()
	defer database.CloseScylla()

	apiURL := config.MarketAPIURL()
	timeout := config.HTTPTimeout()

	ordersClient := clients.NewOrdersClient(apiURL, timeout)
	paymentsClient := clients.NewPaymentsClient(apiURL, timeout)
	catalogClient := clients.NewCatalogClient(apiURL, timeout)

	cartStore := cart.NewStore(cart.NewRedisStorage(database.Redis))

	orchestrator := checkout.NewOrchestrator(
		ordersClient,
		paymentsClient,
		cartStore,
		config.SuccessRedirectDelay(),
		config.PendingRedirectDelay(),
	)

	h := &routes.Handlers{
		Cart:     handlers.NewCartHandler(cartStore, catalogClient),
		Checkout: handlers.NewCheckoutHandler(orchestrator),
		Orders:   handlers.NewOrdersHandler(ordersClient),
		Payments: handlers.NewPaymentsHandler(paymentsClient),
		Services: handlers.NewServicesHandler(catalogClient),
	}

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.FrontendURL()},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, h)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8081"
	}
	log.Println("🚀 Servidor ServiMarket BFF escuchando en el puerto", port)
	r.Run(":" + port)
}
