package cart

import (
	"context"
	"log"

	"servimarket_bff/internal/models"
)

// Storage es el puerto de persistencia del carrito. La implementación real
// vive en Redis; los tests inyectan una en memoria.
type Storage interface {
	Load(ctx context.Context, userID string) ([]models.CartItem, error)
	Save(ctx context.Context, userID string, items []models.CartItem) error
	Clear(ctx context.Context, userID string) error
}

// Store mantiene la selección de compra pendiente de cada usuario.
// Invariantes: un solo renglón por serviceId, toda cantidad ≥ 1.
type Store struct {
	storage Storage
}

func NewStore(storage Storage) *Store {
	return &Store{storage: storage}
}

// Items carga el carrito actual. Un snapshot ausente o corrupto nunca es
// fatal: se responde carrito vacío.
func (s *Store) Items(ctx context.Context, userID string) []models.CartItem {
	items, err := s.storage.Load(ctx, userID)
	if err != nil {
		log.Printf("⚠️  Error cargando carrito de %s: %v (se asume vacío)", userID, err)
		return nil
	}
	return items
}

// AddItem agrega un servicio con foto de nombre y precio. Si ya existe,
// incrementa la cantidad. Cantidad ≤ 0 no modifica nada.
func (s *Store) AddItem(ctx context.Context, userID string, svc models.Service, quantity int) ([]models.CartItem, error) {
	items := s.Items(ctx, userID)
	if quantity <= 0 {
		return items, nil
	}

	found := false
	for i := range items {
		if items[i].ServiceID == svc.ID {
			items[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		items = append(items, models.CartItem{
			ServiceID:   svc.ID,
			ServiceName: svc.Name,
			Price:       svc.Price,
			Quantity:    quantity,
		})
	}

	if err := s.storage.Save(ctx, userID, items); err != nil {
		return nil, err
	}
	return items, nil
}

// RemoveItem elimina el renglón; si no existe no pasa nada
func (s *Store) RemoveItem(ctx context.Context, userID string, serviceID int) ([]models.CartItem, error) {
	items := s.Items(ctx, userID)
	kept := items[:0]
	for _, item := range items {
		if item.ServiceID != serviceID {
			kept = append(kept, item)
		}
	}

	if err := s.storage.Save(ctx, userID, kept); err != nil {
		return nil, err
	}
	return kept, nil
}

// UpdateQuantity reemplaza la cantidad; con ≤ 0 equivale a RemoveItem
func (s *Store) UpdateQuantity(ctx context.Context, userID string, serviceID, quantity int) ([]models.CartItem, error) {
	if quantity <= 0 {
		return s.RemoveItem(ctx, userID, serviceID)
	}

	items := s.Items(ctx, userID)
	for i := range items {
		if items[i].ServiceID == serviceID {
			items[i].Quantity = quantity
			break
		}
	}

	if err := s.storage.Save(ctx, userID, items); err != nil {
		return nil, err
	}
	return items, nil
}

// Clear vacía el carrito y borra el estado persistido
func (s *Store) Clear(ctx context.Context, userID string) error {
	return s.storage.Clear(ctx, userID)
}

func (s *Store) TotalItems(ctx context.Context, userID string) int {
	return models.CartTotalItems(s.Items(ctx, userID))
}

func (s *Store) TotalPrice(ctx context.Context, userID string) int64 {
	return models.CartTotalPrice(s.Items(ctx, userID))
}
