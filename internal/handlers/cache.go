package handlers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	u "code2img/internal/utils"
)

// computeCacheKey derives a stable key from every render-relevant parameter.
func computeCacheKey(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return "imgcache:" + hex.EncodeToString(h.Sum(nil))
}

func (svc *RenderService) cacheEnabled() bool {
	return svc.Redis != nil && svc.Config.Cache.ImageCacheEnabled
}

// cachedImage attempts to serve previously rendered bytes from Redis.
// Any Redis failure degrades to a cache miss.
func (svc *RenderService) cachedImage(c *fiber.Ctx, key string) []byte {
	if !svc.cacheEnabled() {
		return nil
	}

	ctx, cancel := context.WithTimeout(c.Context(), 1*time.Second)
	defer cancel()

	cached, err := svc.Redis.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		u.Warn("Redis read failed", "error", err)
		return nil
	}

	u.Info("Image cache hit", "key", key)
	return cached
}

// storeImage writes rendered bytes to Redis with the configured TTL.
func (svc *RenderService) storeImage(c *fiber.Ctx, key string, data []byte) {
	if !svc.cacheEnabled() {
		return
	}

	ctx, cancel := context.WithTimeout(c.Context(), 1*time.Second)
	defer cancel()

	ttl := svc.Config.Cache.ImageCacheTTL
	if ttl <= 0 {
		ttl = 1 * time.Minute
	}

	if err := svc.Redis.Set(ctx, key, data, ttl).Err(); err != nil {
		u.Warn("Redis write failed", "error", err)
	}
}
