package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Logistica-api/internal/domain/entity"
	"github.com/jhoicas/Logistica-api/internal/infrastructure/cache"
	"github.com/jhoicas/Logistica-api/internal/infrastructure/memory"
	"github.com/jhoicas/Logistica-api/pkg/config"
)

// unreachable devuelve un cliente apuntando a un puerto cerrado: toda operación falla rápido.
func unreachable(t *testing.T) *redis.Client {
	t.Helper()
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		MaxRetries:  -1,
		DialTimeout: 100 * time.Millisecond,
	})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestProductRepo_RedisCaidoNoRompeLecturas(t *testing.T) {
	ctx := context.Background()
	inner := memory.NewProductRepository(memory.NewStore())
	repo := cache.NewProductRepository(inner, unreachable(t), time.Minute, zerolog.Nop())

	require.NoError(t, repo.Create(ctx, &entity.Product{ID: "p-1", Title: "tomate"}))

	got, err := repo.GetByID(ctx, "p-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "tomate", got.Title)

	got.Title = "tomate cherry"
	require.NoError(t, repo.Update(ctx, got))
	require.NoError(t, repo.Delete(ctx, "p-1"))

	missing, err := repo.GetByID(ctx, "p-1")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestNewRedisClient_FallaSinServidor(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err := cache.NewRedisClient(ctx, config.RedisConfig{Addr: "127.0.0.1:1"})
	assert.Error(t, err)
}
