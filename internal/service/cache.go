package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/recipe-realm/backend/internal/model"
	"github.com/redis/go-redis/v9"
)

// RecipeCache is a read-through cache for single recipes
type RecipeCache interface {
	Get(ctx context.Context, id uuid.UUID) (*model.Recipe, bool)
	Set(ctx context.Context, recipe *model.Recipe) error
	Delete(ctx context.Context, id uuid.UUID) error
}

const recipeCacheTTL = 10 * time.Minute

type RedisRecipeCache struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewRedisRecipeCache(client *redis.Client) *RedisRecipeCache {
	return &RedisRecipeCache{redis: client, ttl: recipeCacheTTL}
}

func recipeCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("recipe:cache:%s", id)
}

// Get treats every redis failure as a miss
func (c *RedisRecipeCache) Get(ctx context.Context, id uuid.UUID) (*model.Recipe, bool) {
	data, err := c.redis.Get(ctx, recipeCacheKey(id)).Bytes()
	if err != nil {
		return nil, false
	}
	var recipe model.Recipe
	if err := json.Unmarshal(data, &recipe); err != nil {
		return nil, false
	}
	return &recipe, true
}

func (c *RedisRecipeCache) Set(ctx context.Context, recipe *model.Recipe) error {
	data, err := json.Marshal(recipe)
	if err != nil {
		return fmt.Errorf("failed to marshal recipe: %w", err)
	}
	return c.redis.Set(ctx, recipeCacheKey(recipe.ID), data, c.ttl).Err()
}

func (c *RedisRecipeCache) Delete(ctx context.Context, id uuid.UUID) error {
	err := c.redis.Del(ctx, recipeCacheKey(id)).Err()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	return err
}
