package cart

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"servimarket_bff/internal/models"
)

// CartTTL: el carrito sobrevive recargas y sesiones durante 30 días
const CartTTL = 30 * 24 * time.Hour

// RedisStorage persiste el carrito como JSON bajo cart:<userID> y publica
// eventos en el mismo canal para el websocket de sincronización.
type RedisStorage struct {
	rdb *redis.Client
}

func NewRedisStorage(rdb *redis.Client) *RedisStorage {
	return &RedisStorage{rdb: rdb}
}

func cartKey(userID string) string {
	return "cart:" + userID
}

func (r *RedisStorage) Load(ctx context.Context, userID string) ([]models.CartItem, error) {
	data, err := r.rdb.Get(ctx, cartKey(userID)).Result()
	if err == redis.Nil || data == "" {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var items []models.CartItem
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		// Snapshot corrupto: se descarta y se arranca con carrito vacío
		log.Printf("⚠️  Carrito corrupto para %s, se descarta: %v", userID, err)
		r.rdb.Del(ctx, cartKey(userID))
		return nil, nil
	}
	return items, nil
}

func (r *RedisStorage) Save(ctx context.Context, userID string, items []models.CartItem) error {
	if items == nil {
		items = []models.CartItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}

	if err := r.rdb.Set(ctx, cartKey(userID), data, CartTTL).Err(); err != nil {
		return err
	}
	r.rdb.Publish(ctx, cartKey(userID), "updated")
	return nil
}

func (r *RedisStorage) Clear(ctx context.Context, userID string) error {
	if err := r.rdb.Del(ctx, cartKey(userID)).Err(); err != nil {
		return err
	}
	r.rdb.Publish(ctx, cartKey(userID), "cleared")
	return nil
}
