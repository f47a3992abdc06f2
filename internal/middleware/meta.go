package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/nawa-notice-api/pkg/middleware/requestid"
)

const (
	responseMetaKey  = "responseMeta"
	requestStartKey  = "requestStart"
	cacheHitMetaKey  = "cache_hit"
	durationMetaKey  = "processing_time_ms"
	requestIDMetaKey = "request_id"
)

// WithResponseMeta prepares per-request metadata for enveloped responses.
func WithResponseMeta() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(requestStartKey, time.Now())
		c.Set(responseMetaKey, map[string]interface{}{})
		c.Next()
	}
}

// SetCacheHit records whether the response was served from the listing cache.
func SetCacheHit(c *gin.Context, hit bool) {
	ensureMeta(c)[cacheHitMetaKey] = hit
}

// ResponseMeta returns the metadata collected so far, stamped with the
// request id and the elapsed processing time.
func ResponseMeta(c *gin.Context) map[string]interface{} {
	meta := ensureMeta(c)
	if id := requestid.Value(c); id != "" {
		meta[requestIDMetaKey] = id
	}
	if v, ok := c.Get(requestStartKey); ok {
		if start, ok := v.(time.Time); ok {
			meta[durationMetaKey] = time.Since(start).Milliseconds()
		}
	}
	return meta
}

func ensureMeta(c *gin.Context) map[string]interface{} {
	if v, ok := c.Get(responseMetaKey); ok {
		if meta, ok := v.(map[string]interface{}); ok {
			return meta
		}
	}
	meta := make(map[string]interface{})
	c.Set(responseMetaKey, meta)
	return meta
}
