package redisstore

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/obrasync/estoque-api/internal/application/inventory"
)

// Connect abre e valida a conexão com o Redis.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:            addr,
		Password:        password,
		DB:              db,
		MaxRetries:      3,
		MinRetryBackoff: 100 * time.Millisecond,
		MaxRetryBackoff: 2 * time.Second,
		DialTimeout:     5 * time.Second,
		ReadTimeout:     3 * time.Second,
		WriteTimeout:    3 * time.Second,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("conectar ao redis: %w", err)
	}
	return client, nil
}

// AlertCooldown janela de supressão de alertas por produto, via SETNX + TTL.
// Implementa inventory.CooldownStore.
type AlertCooldown struct {
	client *redis.Client
	ttl    time.Duration
}

var _ inventory.CooldownStore = (*AlertCooldown)(nil)

// NewAlertCooldown constrói o cooldown com a janela informada.
func NewAlertCooldown(client *redis.Client, ttl time.Duration) *AlertCooldown {
	return &AlertCooldown{client: client, ttl: ttl}
}

// Acquire tenta abrir a janela de alerta do produto. Retorna false se um
// alerta já foi enviado dentro do TTL.
func (c *AlertCooldown) Acquire(ctx context.Context, productID string) (bool, error) {
	key := "lowstock:cooldown:" + productID
	return c.client.SetNX(ctx, key, 1, c.ttl).Result()
}
