package rediscache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/profilematch/backend/internal/domain"
	"github.com/profilematch/backend/internal/pkg/logger"
	"github.com/profilematch/backend/internal/repository"
)

// DictionaryCache is a read-through cache over the dictionary tables.
// Cache failures degrade to the underlying repository; they are logged
// and never surfaced to the caller.
type DictionaryCache struct {
	next   repository.DictionaryRepository
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

func NewDictionaryCache(next repository.DictionaryRepository, client *redis.Client, ttl time.Duration, log *logger.Logger) *DictionaryCache {
	return &DictionaryCache{next: next, client: client, ttl: ttl, log: log}
}

// cached fetches key from redis, falling back to load and then storing
// the result. A nil client disables caching entirely.
func cached[T any](ctx context.Context, c *DictionaryCache, key string, load func() (T, error)) (T, error) {
	if c.client == nil {
		return load()
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var value T
		if err := json.Unmarshal(data, &value); err == nil {
			return value, nil
		}
		c.log.Warn("dropping undecodable dictionary cache entry", "key", key)
		c.client.Del(ctx, key)
	} else if err != redis.Nil {
		c.log.Warn("dictionary cache read failed", "key", key, "error", err)
	}

	value, err := load()
	if err != nil {
		return value, err
	}

	if data, err := json.Marshal(value); err == nil {
		if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.log.Warn("dictionary cache write failed", "key", key, "error", err)
		}
	}
	return value, nil
}

func (c *DictionaryCache) ListGenders(ctx context.Context) ([]domain.Gender, error) {
	return cached(ctx, c, "dict:genders", func() ([]domain.Gender, error) {
		return c.next.ListGenders(ctx)
	})
}

func (c *DictionaryCache) ListRegions(ctx context.Context, filter repository.RegionFilter) ([]domain.Region, error) {
	key := "dict:regions"
	if filter.Level != nil || filter.ParentID != nil {
		// Filtered listings are not cached; the combinations are
		// unbounded and the full set is already cheap.
		return c.next.ListRegions(ctx, filter)
	}
	return cached(ctx, c, key, func() ([]domain.Region, error) {
		return c.next.ListRegions(ctx, filter)
	})
}

func (c *DictionaryCache) ListOccupations(ctx context.Context, categoryID *uuid.UUID) ([]domain.Occupation, error) {
	if categoryID != nil {
		return c.next.ListOccupations(ctx, categoryID)
	}
	return cached(ctx, c, "dict:occupations", func() ([]domain.Occupation, error) {
		return c.next.ListOccupations(ctx, nil)
	})
}

func (c *DictionaryCache) ListEducationLevels(ctx context.Context) ([]domain.EducationLevel, error) {
	return cached(ctx, c, "dict:education_levels", func() ([]domain.EducationLevel, error) {
		return c.next.ListEducationLevels(ctx)
	})
}

func (c *DictionaryCache) ListRelationshipStatuses(ctx context.Context) ([]domain.RelationshipStatus, error) {
	return cached(ctx, c, "dict:relationship_statuses", func() ([]domain.RelationshipStatus, error) {
		return c.next.ListRelationshipStatuses(ctx)
	})
}

func (c *DictionaryCache) ListHobbies(ctx context.Context) ([]domain.Hobby, error) {
	return cached(ctx, c, "dict:hobbies", func() ([]domain.Hobby, error) {
		return c.next.ListHobbies(ctx)
	})
}

func (c *DictionaryCache) ListHobbiesByCategory(ctx context.Context, category string) ([]domain.Hobby, error) {
	return cached(ctx, c, "dict:hobbies:"+category, func() ([]domain.Hobby, error) {
		return c.next.ListHobbiesByCategory(ctx, category)
	})
}

func (c *DictionaryCache) ListSkills(ctx context.Context) ([]domain.Skill, error) {
	return cached(ctx, c, "dict:skills", func() ([]domain.Skill, error) {
		return c.next.ListSkills(ctx)
	})
}
