package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"gopherpress/internal/app"
)

// ArticleCache holds read-model article projections in Redis under
// "article-<id>" with a fixed TTL. Staleness is bounded strictly by
// the TTL; entries carry no version.
type ArticleCache struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewArticleCache(client *redisv9.Client, ttl time.Duration) *ArticleCache {
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &ArticleCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *ArticleCache) Get(ctx context.Context, id string) (*app.ArticleView, bool, error) {
	raw, err := c.client.Get(ctx, c.articleKey(id)).Result()
	if err == redisv9.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get article failed: %w", err)
	}

	var view app.ArticleView
	if err := json.Unmarshal([]byte(raw), &view); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached article failed: %w", err)
	}
	return &view, true, nil
}

func (c *ArticleCache) Set(ctx context.Context, view *app.ArticleView) error {
	payload, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("marshal article cache failed: %w", err)
	}
	if err := c.client.Set(ctx, c.articleKey(view.ID), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set article failed: %w", err)
	}
	return nil
}

func (c *ArticleCache) Delete(ctx context.Context, id string) error {
	if err := c.client.Del(ctx, c.articleKey(id)).Err(); err != nil {
		return fmt.Errorf("redis delete article failed: %w", err)
	}
	return nil
}

func (c *ArticleCache) articleKey(id string) string {
	return "article-" + id
}
