// Package cache decora repositorios con una caché de lectura en Redis.
// Redis es opcional: si falla, las lecturas van directo al repositorio.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Logistica-api/internal/domain/entity"
	"github.com/jhoicas/Logistica-api/internal/domain/repository"
	"github.com/jhoicas/Logistica-api/pkg/config"
)

// NewRedisClient abre el cliente y verifica la conexión con PING.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis: ping %s: %w", cfg.Addr, err)
	}
	return rdb, nil
}

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo cachea GetByID de productos; Update y Delete invalidan la clave.
type ProductRepo struct {
	next  repository.ProductRepository
	redis *redis.Client
	ttl   time.Duration
	log   zerolog.Logger
}

// NewProductRepository envuelve next con la caché.
func NewProductRepository(next repository.ProductRepository, rdb *redis.Client, ttl time.Duration, log zerolog.Logger) *ProductRepo {
	return &ProductRepo{next: next, redis: rdb, ttl: ttl, log: log}
}

func productKey(id string) string { return "product:" + id }

func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	return r.next.Create(ctx, product)
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	raw, err := r.redis.Get(ctx, productKey(id)).Bytes()
	switch {
	case err == nil:
		var p entity.Product
		if err := json.Unmarshal(raw, &p); err == nil {
			return &p, nil
		}
		r.log.Warn().Str("key", productKey(id)).Msg("cache: valor corrupto, se ignora")
	case !errors.Is(err, redis.Nil):
		r.log.Warn().Err(err).Str("key", productKey(id)).Msg("cache: get falló")
	}

	p, err := r.next.GetByID(ctx, id)
	if err != nil || p == nil {
		return p, err
	}
	if raw, err := json.Marshal(p); err == nil {
		if err := r.redis.Set(ctx, productKey(id), raw, r.ttl).Err(); err != nil {
			r.log.Warn().Err(err).Str("key", productKey(id)).Msg("cache: set falló")
		}
	}
	return p, nil
}

func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	if err := r.next.Update(ctx, product); err != nil {
		return err
	}
	r.invalidate(ctx, product.ID)
	return nil
}

func (r *ProductRepo) List(ctx context.Context, filter repository.ProductFilter, limit, offset int) ([]*entity.Product, error) {
	return r.next.List(ctx, filter, limit, offset)
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	if err := r.next.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, id)
	return nil
}

func (r *ProductRepo) invalidate(ctx context.Context, id string) {
	if err := r.redis.Del(ctx, productKey(id)).Err(); err != nil {
		r.log.Warn().Err(err).Str("key", productKey(id)).Msg("cache: del falló")
	}
}
