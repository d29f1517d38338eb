package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const cachePrefix = "cache:"

// ResponseCache stores successful GET responses in Redis, keyed by request path.
// A nil cache or one without a Redis client passes every request through.
type ResponseCache struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewResponseCache(redisClient *redis.Client, ttl time.Duration) *ResponseCache {
	return &ResponseCache{redis: redisClient, ttl: ttl}
}

type cachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// captureWriter copies the response body while forwarding it to the client.
type captureWriter struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) WriteString(s string) (int, error) {
	w.buf.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

func (rc *ResponseCache) enabled() bool {
	return rc != nil && rc.redis != nil
}

// CacheKey returns the Redis key of a request URL.
func CacheKey(path, rawQuery string) string {
	if rawQuery != "" {
		return cachePrefix + path + "?" + rawQuery
	}
	return cachePrefix + path
}

// Middleware serves cached GET responses and stores 200 responses on a miss.
func (rc *ResponseCache) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rc.enabled() || c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := CacheKey(c.Request.URL.Path, c.Request.URL.RawQuery)

		if bs, err := rc.redis.Get(ctx, key).Bytes(); err == nil {
			var cached cachedResponse
			if err := json.Unmarshal(bs, &cached); err == nil {
				c.Header("X-Cache", "HIT")
				c.Data(cached.Status, cached.ContentType, cached.Body)
				c.Abort()
				return
			}
		} else if err != redis.Nil {
			log.Printf("[%s] cache read failed: %v", GetRequestID(c), err)
		}

		cw := &captureWriter{ResponseWriter: c.Writer}
		c.Writer = cw
		c.Header("X-Cache", "MISS")

		c.Next()

		if cw.Status() != http.StatusOK {
			return
		}
		payload, err := json.Marshal(cachedResponse{
			Status:      cw.Status(),
			ContentType: cw.Header().Get("Content-Type"),
			Body:        cw.buf.Bytes(),
		})
		if err != nil {
			return
		}
		if err := rc.redis.Set(context.WithoutCancel(ctx), key, payload, rc.ttl).Err(); err != nil {
			log.Printf("[%s] cache write failed: %v", GetRequestID(c), err)
		}
	}
}

// InvalidateOnSuccess drops cached entries under the given path prefixes once
// the wrapped handler has answered with a status below 400.
func (rc *ResponseCache) InvalidateOnSuccess(prefixes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if !rc.enabled() || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		if err := rc.Invalidate(context.WithoutCancel(c.Request.Context()), prefixes...); err != nil {
			log.Printf("[%s] cache invalidation failed: %v", GetRequestID(c), err)
		}
	}
}

// Invalidate deletes every cached entry whose path starts with one of the prefixes.
func (rc *ResponseCache) Invalidate(ctx context.Context, prefixes ...string) error {
	if !rc.enabled() {
		return nil
	}
	for _, prefix := range prefixes {
		iter := rc.redis.Scan(ctx, 0, cachePrefix+prefix+"*", 100).Iterator()
		var keys []string
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		if err := iter.Err(); err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := rc.redis.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
	}
	return nil
}
