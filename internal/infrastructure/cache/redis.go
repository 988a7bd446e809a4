// Package cache guarda en Redis el resumen del dashboard.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/mineria-admin/internal/application/analytics"
	"github.com/jhoicas/mineria-admin/internal/application/dto"
	"github.com/jhoicas/mineria-admin/internal/application/inventory"
)

var (
	_ analytics.DashboardCache       = (*DashboardCache)(nil)
	_ inventory.DashboardInvalidator = (*DashboardCache)(nil)
)

const dashboardKey = "mineria:dashboard:resumen"

// NewClient crea el cliente desde REDIS_URL y valida la conexión.
func NewClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

// DashboardCache resumen del dashboard serializado como JSON con TTL.
type DashboardCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewDashboardCache(rdb *redis.Client, ttl time.Duration) *DashboardCache {
	return &DashboardCache{rdb: rdb, ttl: ttl}
}

// GetDashboard devuelve (nil, nil) si la clave no existe o expiró.
func (c *DashboardCache) GetDashboard(ctx context.Context) (*dto.DashboardDTO, error) {
	raw, err := c.rdb.Get(ctx, dashboardKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get dashboard: %w", err)
	}
	var d dto.DashboardDTO
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("decode dashboard: %w", err)
	}
	return &d, nil
}

func (c *DashboardCache) SetDashboard(ctx context.Context, d *dto.DashboardDTO) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode dashboard: %w", err)
	}
	if err := c.rdb.Set(ctx, dashboardKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set dashboard: %w", err)
	}
	return nil
}

// InvalidateDashboard borra el resumen; se llama después de cada movimiento confirmado.
func (c *DashboardCache) InvalidateDashboard(ctx context.Context) error {
	if err := c.rdb.Del(ctx, dashboardKey).Err(); err != nil {
		return fmt.Errorf("redis del dashboard: %w", err)
	}
	return nil
}

// Ping para el health check.
func (c *DashboardCache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}
