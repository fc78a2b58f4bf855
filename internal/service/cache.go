package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pageza/mealplan/backend/internal/logger"
	"github.com/pageza/mealplan/backend/internal/model"
)

const candidateKeyPrefix = "candidates"

// RedisCandidateCache stores candidate lists as JSON in Redis
type RedisCandidateCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCandidateCache creates a new RedisCandidateCache instance
func NewRedisCandidateCache(client *redis.Client, ttl time.Duration) *RedisCandidateCache {
	return &RedisCandidateCache{client: client, ttl: ttl}
}

// Get returns the cached candidates for key
func (c *RedisCandidateCache) Get(ctx context.Context, key string) ([]model.RecipeCandidate, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cache: %w", err)
	}

	var candidates []model.RecipeCandidate
	if err := json.Unmarshal(data, &candidates); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cached candidates: %w", err)
	}
	return candidates, true, nil
}

// Set stores candidates under key for the configured TTL
func (c *RedisCandidateCache) Set(ctx context.Context, key string, candidates []model.RecipeCandidate) error {
	data, err := json.Marshal(candidates)
	if err != nil {
		return fmt.Errorf("failed to marshal candidates: %w", err)
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache: %w", err)
	}
	return nil
}

// providerCacheKey builds the key for one provider request. Health labels are
// sorted so equal constraints share an entry.
func providerCacheKey(provider string, category model.MealCategory, constraint model.DietConstraint) string {
	ceiling := "none"
	if v, ok := constraint.Ceiling(category); ok {
		ceiling = strconv.FormatFloat(v, 'f', -1, 64)
	}

	labels := append([]string{}, constraint.HealthLabels...)
	sort.Strings(labels)

	return strings.Join([]string{
		candidateKeyPrefix, provider, string(category), constraint.Diet, ceiling, strings.Join(labels, ","),
	}, ":")
}

func searchCacheKey(searcher, query string) string {
	return strings.Join([]string{candidateKeyPrefix, searcher, "search", strings.ToLower(strings.TrimSpace(query))}, ":")
}

// CachedProvider serves repeated requests from a CandidateCache. Only
// non-empty successful results are stored.
type CachedProvider struct {
	next  RecipeProvider
	cache CandidateCache
}

// NewCachedProvider wraps next with cache
func NewCachedProvider(next RecipeProvider, cache CandidateCache) *CachedProvider {
	return &CachedProvider{next: next, cache: cache}
}

func (p *CachedProvider) Name() string {
	return p.next.Name()
}

func (p *CachedProvider) FetchCandidates(ctx context.Context, category model.MealCategory, constraint model.DietConstraint) ([]model.RecipeCandidate, error) {
	key := providerCacheKey(p.next.Name(), category, constraint)
	return cached(ctx, p.cache, key, func() ([]model.RecipeCandidate, error) {
		return p.next.FetchCandidates(ctx, category, constraint)
	})
}

// CachedSearcher is the RecipeSearcher counterpart of CachedProvider
type CachedSearcher struct {
	next  RecipeSearcher
	cache CandidateCache
}

// NewCachedSearcher wraps next with cache
func NewCachedSearcher(next RecipeSearcher, cache CandidateCache) *CachedSearcher {
	return &CachedSearcher{next: next, cache: cache}
}

func (s *CachedSearcher) Name() string {
	return s.next.Name()
}

func (s *CachedSearcher) Search(ctx context.Context, query string) ([]model.RecipeCandidate, error) {
	key := searchCacheKey(s.next.Name(), query)
	return cached(ctx, s.cache, key, func() ([]model.RecipeCandidate, error) {
		return s.next.Search(ctx, query)
	})
}

func cached(ctx context.Context, cache CandidateCache, key string, fetch func() ([]model.RecipeCandidate, error)) ([]model.RecipeCandidate, error) {
	candidates, hit, err := cache.Get(ctx, key)
	if err != nil {
		logger.Warn("candidate cache read failed", "key", key, "error", err)
	}
	if hit {
		logger.Debug("candidate cache hit", "key", key, "candidates", len(candidates))
		return candidates, nil
	}

	candidates, err = fetch()
	if err != nil {
		return nil, err
	}
	if len(candidates) > 0 {
		if err := cache.Set(ctx, key, candidates); err != nil {
			logger.Warn("candidate cache write failed", "key", key, "error", err)
		}
	}
	return candidates, nil
}
