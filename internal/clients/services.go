package clients

import (
	"context"
	"fmt"
	"time"

	"servimarket_bff/internal/models"
)

// CatalogClient envuelve el API de catálogo de servicios del backend. Se usa
// al agregar al carrito para tomar la foto de nombre y precio.
type CatalogClient struct {
	*Client
}

func NewCatalogClient(baseURL string, timeout time.Duration) *CatalogClient {
	return &CatalogClient{Client: New(baseURL, timeout)}
}

func (c *CatalogClient) GetService(ctx context.Context, token string, id int) (*models.Service, error) {
	var svc models.Service
	if err := c.get(ctx, fmt.Sprintf("/api/services/%d", id), token, &svc); err != nil {
		return nil, err
	}
	return &svc, nil
}

func (c *CatalogClient) ListServices(ctx context.Context, token string) ([]models.Service, error) {
	var services []models.Service
	if err := c.get(ctx, "/api/services", token, &services); err != nil {
		return nil, err
	}
	return services, nil
}
